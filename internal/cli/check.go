package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/turnwatch/internal/config"
	"github.com/ppiankov/turnwatch/internal/severity"
)

var (
	checkConfig string
	checkFormat string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkConfig, "config", "", "Path to guard YAML (optional)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
}

var checkCmd = &cobra.Command{
	Use:   "check <intent>...",
	Short: "Classify intent labels without counting them",
	Long: "Dry-run classification: prints the severity tier each intent label\n" +
		"would receive under the configured severity sets.\n" +
		"No session state is touched and nothing is audited.",
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(checkConfig)
	if err != nil {
		return err
	}
	classifier := severity.New(cfg.Severity)

	type result struct {
		Intent   string `json:"intent"`
		Severity string `json:"severity"`
	}
	results := make([]result, 0, len(args))
	for _, intent := range args {
		results = append(results, result{
			Intent:   intent,
			Severity: string(classifier.Classify(intent)),
		})
	}

	switch checkFormat {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		for _, r := range results {
			fmt.Printf("%-10s %s\n", r.Severity, r.Intent)
		}
	}

	return nil
}
