package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/turnwatch/internal/model"
)

// --- Input/Output types ---

// TurnInput defines parameters for the turnwatch_turn tool.
type TurnInput struct {
	SessionID string `json:"session_id" jsonschema:"conversation session identifier"`
	Intent    string `json:"intent" jsonschema:"NLU intent label of the user turn"`
	Message   string `json:"message,omitempty" jsonschema:"raw user message text"`
}

// TurnOutput contains the counting and escalation outcome of one turn.
type TurnOutput struct {
	Severity          string   `json:"severity"`
	ViolationCount    int      `json:"violation_count"`
	LastViolationType string   `json:"last_violation_type,omitempty"`
	Signal            string   `json:"signal"`
	Escalated         bool     `json:"escalated,omitempty"`
	Responses         []string `json:"responses,omitempty"`
}

// CheckInput defines parameters for the turnwatch_check tool.
type CheckInput struct {
	Intent string `json:"intent" jsonschema:"intent label to classify"`
}

// CheckOutput contains the classification only.
type CheckOutput struct {
	Intent   string `json:"intent"`
	Severity string `json:"severity"`
}

// SessionInput defines parameters for the turnwatch_session tool.
type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"conversation session identifier"`
}

// SessionOutput is the tracker state snapshot.
type SessionOutput struct {
	SessionID         string `json:"session_id"`
	ViolationCount    int    `json:"violation_count"`
	LastViolationType string `json:"last_violation_type,omitempty"`
	UserName          string `json:"user_name,omitempty"`
	UserSegment       string `json:"user_segment,omitempty"`
}

// ResetInput defines parameters for the turnwatch_reset tool.
type ResetInput struct {
	SessionID string `json:"session_id" jsonschema:"conversation session identifier"`
}

// ResetOutput confirms the reset.
type ResetOutput struct {
	SessionID  string `json:"session_id"`
	PriorCount int    `json:"prior_count"`
	Count      int    `json:"count"`
}

// --- Handlers ---

func (s *Server) handleTurn(ctx context.Context, req *mcpsdk.CallToolRequest, input TurnInput) (*mcpsdk.CallToolResult, TurnOutput, error) {
	res := s.guard.HandleTurn(model.Turn{
		SessionID: input.SessionID,
		Intent:    input.Intent,
		Message:   input.Message,
	})
	out := TurnOutput{
		Severity:          string(res.Severity),
		ViolationCount:    res.ViolationCount,
		LastViolationType: res.LastViolationType,
		Signal:            string(res.Signal),
		Escalated:         res.Escalated,
		Responses:         res.Responses,
	}
	return nil, out, nil
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	sev := s.guard.Classify(input.Intent)
	return nil, CheckOutput{Intent: input.Intent, Severity: string(sev)}, nil
}

func (s *Server) handleSession(ctx context.Context, req *mcpsdk.CallToolRequest, input SessionInput) (*mcpsdk.CallToolResult, SessionOutput, error) {
	st := s.guard.Session(input.SessionID)
	out := SessionOutput{
		SessionID:         st.SessionID,
		ViolationCount:    st.ViolationCount,
		LastViolationType: st.LastViolationType,
		UserName:          st.UserName,
		UserSegment:       st.UserSegment,
	}
	return nil, out, nil
}

func (s *Server) handleReset(ctx context.Context, req *mcpsdk.CallToolRequest, input ResetInput) (*mcpsdk.CallToolResult, ResetOutput, error) {
	res := s.guard.ResetCount(input.SessionID)
	return nil, ResetOutput{SessionID: res.SessionID, PriorCount: res.PriorCount, Count: res.Count}, nil
}
