package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/turnwatch/internal/analytics"
)

var statsDB string

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDB, "analytics-db", "", "Path to analytics SQLite database (required)")
	statsCmd.MarkFlagRequired("analytics-db")
}

var statsCmd = &cobra.Command{
	Use:   "stats <session-id>",
	Short: "Show recorded turn totals for a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := analytics.Open(statsDB)
	if err != nil {
		return err
	}
	defer store.Close()

	totals, err := store.Totals(args[0])
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(totals, "", "  ")
	fmt.Println(string(out))
	return nil
}
