// Package mcp exposes the guard as MCP tools over stdio, so agent hosts
// can run violation tracking without the HTTP action server.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/turnwatch/internal/guard"
)

// Config holds MCP server configuration.
type Config struct {
	GuardConfig   string
	AuditLogPath  string
	AnalyticsPath string
}

// Server wraps the MCP SDK server around the guard pipeline.
type Server struct {
	mcpServer *mcpsdk.Server
	guard     *guard.Guard
}

// New creates an MCP server with loaded guard configuration.
func New(cfg Config) (*Server, error) {
	g, err := guard.Load(cfg.GuardConfig, cfg.AuditLogPath, cfg.AnalyticsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create guard: %w", err)
	}
	return NewWithGuard(g), nil
}

// NewWithGuard creates an MCP server around an existing Guard.
func NewWithGuard(g *guard.Guard) *Server {
	s := &Server{guard: g}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "turnwatch",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases the guard's sinks.
func (s *Server) Close() error {
	return s.guard.Close()
}

// registerTools adds all turnwatch tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "turnwatch_turn",
		Description: "Process one classified user turn: count the violation if any and return the escalation signal.",
	}, s.handleTurn)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "turnwatch_check",
		Description: "Classify an intent label without counting it (dry-run).",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "turnwatch_session",
		Description: "Read the violation tracker state for a session.",
	}, s.handleSession)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "turnwatch_reset",
		Description: "Reset a session's violation count after sustained positive interaction.",
	}, s.handleReset)
}
