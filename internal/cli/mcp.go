package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	turnmcp "github.com/ppiankov/turnwatch/internal/mcp"
)

var (
	mcpConfig    string
	mcpAuditLog  string
	mcpAnalytics string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpConfig, "config", "", "Path to guard YAML (default ~/.turnwatch/guard.yaml)")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to audit log JSONL file")
	mcpCmd.Flags().StringVar(&mcpAnalytics, "analytics-db", "", "Path to analytics SQLite database")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs turnwatch as an MCP (Model Context Protocol) server over stdio.\nExposes tools: turn, check, session, reset.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := turnmcp.Config{
		GuardConfig:   mcpConfig,
		AuditLogPath:  mcpAuditLog,
		AnalyticsPath: mcpAnalytics,
	}

	srv, err := turnmcp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "turnwatch MCP server running on stdio")
	return srv.Run(ctx)
}
