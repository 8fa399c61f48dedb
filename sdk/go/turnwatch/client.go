package turnwatch

import (
	"fmt"

	"github.com/ppiankov/turnwatch/internal/guard"
)

// Client holds the violation pipeline for in-process tracking.
// Thread-safe across sessions; the host must not send two concurrent turns
// for the same session.
type Client struct {
	g *guard.Guard
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	var cfg clientConfig
	for _, o := range opts {
		o(&cfg)
	}

	g, err := guard.Load(cfg.configPath, cfg.auditLogPath, cfg.analyticsPath)
	if err != nil {
		return nil, fmt.Errorf("turnwatch: %w", err)
	}
	return &Client{g: g}, nil
}

// HandleTurn processes one classified turn: counts the violation if any and
// returns the escalation signal.
func (c *Client) HandleTurn(t Turn) Result {
	return toResult(c.g.HandleTurn(toTurn(t)))
}

// HandleViolation applies the standard +1 path for a turn the host has
// already routed as a violation, regardless of the intent's configured tier.
func (c *Client) HandleViolation(t Turn) Result {
	return toResult(c.g.HandleViolation(toTurn(t)))
}

// Escalate forces the severe-violation path for a turn the host has already
// judged critical, regardless of the intent's configured tier.
func (c *Client) Escalate(t Turn) Result {
	return toResult(c.g.Escalate(toTurn(t)))
}

// LogViolation records a violation for monitoring without counting it.
func (c *Client) LogViolation(t Turn) Result {
	return toResult(c.g.LogViolation(toTurn(t)))
}

// Check classifies an intent label without counting it.
func (c *Client) Check(intent string) Severity {
	return Severity(c.g.Classify(intent))
}

// StartSession begins a session, applying the configured slot carry-over.
func (c *Client) StartSession(sessionID string) SessionStart {
	return toSessionStart(c.g.StartSession(sessionID))
}

// ResetCount clears a session's violation count after sustained positive
// interaction.
func (c *Client) ResetCount(sessionID string) Reset {
	r := c.g.ResetCount(sessionID)
	return Reset{SessionID: r.SessionID, PriorCount: r.PriorCount, Count: r.Count}
}

// Fallback returns the fixed apology response for an unrecognized message.
func (c *Client) Fallback(sessionID string) Result {
	return toResult(c.g.Fallback(sessionID))
}

// FetchProfile resolves the user profile for a session and stores it on the
// session tracker for carry-over.
func (c *Client) FetchProfile(sessionID string) Profile {
	p := c.g.FetchProfile(sessionID)
	return Profile{Name: p.Name, Segment: p.Segment}
}

// Session returns a snapshot of the tracker state for a session.
func (c *Client) Session(sessionID string) Session {
	return toSession(c.g.Session(sessionID))
}

// Close releases the audit log and analytics store.
func (c *Client) Close() error {
	return c.g.Close()
}
