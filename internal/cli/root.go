package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turnwatch",
	Short: "Violation tracking and escalation for conversational agents",
	Long:  "Counts guardrail violations per conversation session and signals the\ndialogue policy to warn, then terminate, when thresholds are crossed.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
