package turnwatch

import "github.com/ppiankov/turnwatch/internal/model"

// Severity is the classification tier of a violating intent.
type Severity string

const (
	SeverityMinor    Severity = Severity(model.SeverityMinor)
	SeverityModerate Severity = Severity(model.SeverityModerate)
	SeveritySevere   Severity = Severity(model.SeveritySevere)
)

// Signal is the escalation outcome evaluated after each counted violation.
type Signal string

const (
	SignalNone      Signal = Signal(model.SignalNone)
	SignalWarning   Signal = Signal(model.SignalWarning)
	SignalTerminate Signal = Signal(model.SignalTerminate)
)

// Turn is one classified user turn.
type Turn struct {
	SessionID string
	Intent    string
	Message   string
}

// Result is the outcome of processing one turn.
type Result struct {
	SessionID         string
	Intent            string
	Severity          Severity
	ViolationCount    int
	LastViolationType string
	Signal            Signal
	Escalated         bool
	Responses         []string
}

// SessionStart describes what a session start did with the tracker state.
type SessionStart struct {
	SessionID      string
	CarriedOver    bool
	UserName       string
	UserSegment    string
	ViolationCount int
	CountReset     bool
}

// Reset describes a positive-interaction count reset.
type Reset struct {
	SessionID  string
	PriorCount int
	Count      int
}

// Profile is the user data used for session personalization.
type Profile struct {
	Name    string
	Segment string
}

// Session is a snapshot of the per-session tracker state.
type Session struct {
	SessionID         string
	ViolationCount    int
	LastViolationType string
	UserName          string
	UserSegment       string
}

func toTurn(t Turn) model.Turn {
	return model.Turn{SessionID: t.SessionID, Intent: t.Intent, Message: t.Message}
}

func toResult(r model.TurnResult) Result {
	return Result{
		SessionID:         r.SessionID,
		Intent:            r.Intent,
		Severity:          Severity(r.Severity),
		ViolationCount:    r.ViolationCount,
		LastViolationType: r.LastViolationType,
		Signal:            Signal(r.Signal),
		Escalated:         r.Escalated,
		Responses:         r.Responses,
	}
}

func toSessionStart(r model.StartResult) SessionStart {
	return SessionStart{
		SessionID:      r.SessionID,
		CarriedOver:    r.CarriedOver,
		UserName:       r.UserName,
		UserSegment:    r.UserSegment,
		ViolationCount: r.ViolationCount,
		CountReset:     r.CountReset,
	}
}

func toSession(s model.SessionState) Session {
	return Session{
		SessionID:         s.SessionID,
		ViolationCount:    s.ViolationCount,
		LastViolationType: s.LastViolationType,
		UserName:          s.UserName,
		UserSegment:       s.UserSegment,
	}
}
