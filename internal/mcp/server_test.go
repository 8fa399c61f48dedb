package mcp

import (
	"context"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/turnwatch/internal/guard"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewWithGuard(guard.New(guard.Options{}))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTurnToolCountsViolation(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleTurn(ctx, &mcpsdk.CallToolRequest{}, TurnInput{
		SessionID: "s1",
		Intent:    "harassment",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Severity != "MODERATE" || out.ViolationCount != 1 {
		t.Fatalf("out = %+v, want MODERATE count 1", out)
	}
	if out.Signal != "none" {
		t.Fatalf("signal = %q, want none after first violation", out.Signal)
	}
}

func TestTurnToolSevereEscalates(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleTurn(ctx, &mcpsdk.CallToolRequest{}, TurnInput{
		SessionID: "s1",
		Intent:    "prompt_injection",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Escalated || out.ViolationCount != 2 {
		t.Fatalf("out = %+v, want escalated count 2", out)
	}
	if out.Signal != "warning" {
		t.Fatalf("signal = %q, want warning at count 2", out.Signal)
	}
}

func TestCheckToolDoesNotCount(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{Intent: "sara_topic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Severity != "MODERATE" {
		t.Fatalf("severity = %q, want MODERATE", out.Severity)
	}

	_, sess, err := s.handleSession(ctx, &mcpsdk.CallToolRequest{}, SessionInput{SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ViolationCount != 0 {
		t.Fatalf("count = %d, want 0 after dry-run check", sess.ViolationCount)
	}
}

func TestResetTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	s.handleTurn(ctx, &mcpsdk.CallToolRequest{}, TurnInput{SessionID: "s1", Intent: "harassment"})
	_, out, err := s.handleReset(ctx, &mcpsdk.CallToolRequest{}, ResetInput{SessionID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.PriorCount != 1 || out.Count != 0 {
		t.Fatalf("reset out = %+v, want prior 1 count 0", out)
	}
}
