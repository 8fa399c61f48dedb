package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/turnwatch/internal/server"
)

var (
	servePort      int
	serveConfig    string
	serveAuditLog  string
	serveAnalytics string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 5055, "HTTP listen port")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to guard YAML (default ~/.turnwatch/guard.yaml)")
	serveCmd.Flags().StringVar(&serveAuditLog, "audit-log", "", "Path to audit log JSONL file")
	serveCmd.Flags().StringVar(&serveAnalytics, "analytics-db", "", "Path to analytics SQLite database")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the action-endpoint HTTP server",
	Long:  "Runs turnwatch as an action server: the dialogue host POSTs each\naction to /webhook with its tracker snapshot and receives slot events\nand response directives back.\nSupports hot-reload of the guard configuration file.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.Config{
		Port:          servePort,
		GuardConfig:   serveConfig,
		AuditLogPath:  serveAuditLog,
		AnalyticsPath: serveAnalytics,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	reloader, err := server.NewReloader(srv, []string{serveConfig})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down action server...")
		cancel()
	}()

	if serveConfig != "" {
		fmt.Fprintf(os.Stderr, "Config: %s (hot-reload enabled)\n", serveConfig)
	}

	return srv.Start(ctx)
}
