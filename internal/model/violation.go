package model

import "time"

// Severity classifies how serious a violating intent is.
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// SeverityRank maps severity to a comparable integer for ordering.
var SeverityRank = map[Severity]int{
	SeverityMinor:    0,
	SeverityModerate: 1,
	SeveritySevere:   2,
}

// Signal is the count-driven escalation outcome evaluated after each turn.
type Signal string

const (
	SignalNone      Signal = "none"
	SignalWarning   Signal = "warning"
	SignalTerminate Signal = "terminate"
)

// Turn is one classified user turn handed over by the NLU host.
// Intent may be empty or unrecognized; that is a policy default, not an error.
type Turn struct {
	SessionID string `json:"session_id"`
	Intent    string `json:"intent"`
	Message   string `json:"message"`
}

// SessionState is the per-session tracker state turnwatch owns.
// One session is single-writer; the host guarantees no two concurrent
// turns for the same session.
type SessionState struct {
	SessionID         string    `json:"session_id"`
	ViolationCount    int       `json:"violation_count"`
	LastViolationType string    `json:"last_violation_type,omitempty"`
	UserName          string    `json:"user_name,omitempty"`
	UserSegment       string    `json:"user_segment,omitempty"`
	StartedAt         time.Time `json:"started_at"`
}

// TurnResult is the typed slot-update set returned for one processed turn.
type TurnResult struct {
	SessionID         string   `json:"session_id"`
	Intent            string   `json:"intent"`
	Severity          Severity `json:"severity"`
	ViolationCount    int      `json:"violation_count"`
	LastViolationType string   `json:"last_violation_type"`
	Signal            Signal   `json:"signal"`
	Escalated         bool     `json:"escalated,omitempty"`
	Responses         []string `json:"responses,omitempty"`
}

// StartResult describes what a session start did with the tracker state.
type StartResult struct {
	SessionID      string `json:"session_id"`
	CarriedOver    bool   `json:"carried_over"`
	UserName       string `json:"user_name,omitempty"`
	UserSegment    string `json:"user_segment,omitempty"`
	ViolationCount int    `json:"violation_count"`
	CountReset     bool   `json:"count_reset"`
	Listen         bool   `json:"listen"`
}

// ResetResult describes an explicit positive-interaction reset.
type ResetResult struct {
	SessionID  string `json:"session_id"`
	PriorCount int    `json:"prior_count"`
	Count      int    `json:"count"`
}
