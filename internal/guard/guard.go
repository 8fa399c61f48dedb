// Package guard ties classification, counting, escalation, sessions and the
// observer sinks into the per-turn pipeline. The pipeline is synchronous:
// classify, count, decide, then audit/alert/analytics. Sink failures are
// noted on stderr and never affect the decision.
package guard

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ppiankov/turnwatch/internal/alert"
	"github.com/ppiankov/turnwatch/internal/analytics"
	"github.com/ppiankov/turnwatch/internal/audit"
	"github.com/ppiankov/turnwatch/internal/config"
	"github.com/ppiankov/turnwatch/internal/escalate"
	"github.com/ppiankov/turnwatch/internal/model"
	"github.com/ppiankov/turnwatch/internal/session"
	"github.com/ppiankov/turnwatch/internal/severity"
	"github.com/ppiankov/turnwatch/internal/users"
)

const timeFormat = "2006-01-02T15:04:05.000Z"

// Options wires the guard's dependencies. AuditLog, Alerts and Analytics
// are optional observers; a nil value disables that sink.
type Options struct {
	Config     *config.Config
	ConfigHash string
	ConfigPath string
	AuditLog   *audit.Log
	Alerts     *alert.Dispatcher
	Analytics  *analytics.Store
	Users      *users.Directory
	Now        func() time.Time
}

// Guard is the per-turn violation pipeline engine.
type Guard struct {
	mu         sync.RWMutex
	cfg        *config.Config
	cfgHash    string
	cfgPath    string
	classifier *severity.Classifier
	sessions   *session.Manager

	auditLog  *audit.Log
	alerts    *alert.Dispatcher
	analytics *analytics.Store
	users     *users.Directory
	now       func() time.Time
}

// New creates a Guard from explicit options. A nil Config uses defaults.
func New(opts Options) *Guard {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	dir := opts.Users
	if dir == nil {
		dir = users.NewDirectory()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Guard{
		cfg:        cfg,
		cfgHash:    opts.ConfigHash,
		cfgPath:    opts.ConfigPath,
		classifier: severity.New(cfg.Severity),
		sessions:   session.NewManager(cfg.Session.CarryOverSlotsToNewSession),
		auditLog:   opts.AuditLog,
		alerts:     opts.Alerts,
		analytics:  opts.Analytics,
		users:      dir,
		now:        now,
	}
}

// Load builds a Guard from a config file path, opening the audit log and
// analytics store when paths are given (empty path disables the sink).
func Load(cfgPath, auditPath, analyticsPath string) (*Guard, error) {
	cfg, hash, err := config.LoadWithHash(cfgPath)
	if err != nil {
		return nil, err
	}

	var auditLog *audit.Log
	if auditPath != "" {
		auditLog, err = audit.Open(auditPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	var store *analytics.Store
	if analyticsPath != "" {
		store, err = analytics.Open(analyticsPath)
		if err != nil {
			if auditLog != nil {
				auditLog.Close()
			}
			return nil, err
		}
	}

	return New(Options{
		Config:     cfg,
		ConfigHash: hash,
		ConfigPath: cfgPath,
		AuditLog:   auditLog,
		Alerts:     alert.NewDispatcher(cfg.Alerts),
		Analytics:  store,
	}), nil
}

// HandleTurn processes one classified turn with severity-based routing.
// Severe intents take the escalation path (weighted increment, CRITICAL
// record, critical alert); moderate intents take the standard path; minor
// intents pass through without touching the count. Hosts that do their own
// routing call HandleViolation or Escalate directly.
func (g *Guard) HandleTurn(turn model.Turn) model.TurnResult {
	g.mu.RLock()
	sev := g.classifier.Classify(turn.Intent)
	g.mu.RUnlock()

	switch sev {
	case model.SeveritySevere:
		return g.Escalate(turn)
	case model.SeverityModerate:
		return g.handleStandard(turn, sev)
	default:
		st := g.sessions.Snapshot(turn.SessionID)
		return model.TurnResult{
			SessionID:         turn.SessionID,
			Intent:            turn.Intent,
			Severity:          model.SeverityMinor,
			ViolationCount:    st.ViolationCount,
			LastViolationType: st.LastViolationType,
			Signal:            model.SignalNone,
		}
	}
}

// Escalate applies the severe-violation path regardless of classification:
// weighted increment, CRITICAL audit record, critical alert. Only the
// highest applicable signal is reported even when the weighted increment
// crosses both thresholds at once.
func (g *Guard) Escalate(turn model.Turn) model.TurnResult {
	g.mu.RLock()
	weight := g.cfg.SevereWeight
	thresholds := g.cfg.Thresholds
	hash := g.cfgHash
	g.mu.RUnlock()

	st := g.sessions.RecordSevere(turn.SessionID, turn.Intent, weight)
	signal := escalate.Decide(st.ViolationCount, thresholds)

	res := model.TurnResult{
		SessionID:         turn.SessionID,
		Intent:            turn.Intent,
		Severity:          model.SeveritySevere,
		ViolationCount:    st.ViolationCount,
		LastViolationType: st.LastViolationType,
		Signal:            signal,
		Escalated:         true,
	}

	g.record(audit.Entry{
		SessionID:  turn.SessionID,
		Kind:       audit.KindEscalation,
		Level:      audit.LevelCritical,
		Intent:     turn.Intent,
		Message:    turn.Message,
		Severity:   string(model.SeveritySevere),
		Count:      st.ViolationCount,
		Signal:     string(signal),
		ConfigHash: hash,
	})
	g.dispatch(alert.AlertEvent{
		Timestamp:  g.now().UTC().Format(timeFormat),
		SessionID:  turn.SessionID,
		Intent:     turn.Intent,
		Severity:   string(model.SeveritySevere),
		Count:      st.ViolationCount,
		Signal:     string(signal),
		Reason:     "severe violation escalated",
		ConfigHash: hash,
		Type:       "critical",
	})
	g.TrackTurn(res)
	return res
}

// HandleViolation applies the standard +1 path for a violation the host has
// already routed here, regardless of the intent's configured tier. The
// dialogue policy decides what counts as a violation; this operation only
// counts it.
func (g *Guard) HandleViolation(turn model.Turn) model.TurnResult {
	g.mu.RLock()
	sev := g.classifier.Classify(turn.Intent)
	g.mu.RUnlock()
	return g.handleStandard(turn, sev)
}

// handleStandard applies the standard path: +1 increment, WARNING audit
// record, alert only when a threshold signal fires.
func (g *Guard) handleStandard(turn model.Turn, sev model.Severity) model.TurnResult {
	g.mu.RLock()
	thresholds := g.cfg.Thresholds
	hash := g.cfgHash
	g.mu.RUnlock()

	st := g.sessions.RecordViolation(turn.SessionID, turn.Intent)
	signal := escalate.Decide(st.ViolationCount, thresholds)

	res := model.TurnResult{
		SessionID:         turn.SessionID,
		Intent:            turn.Intent,
		Severity:          sev,
		ViolationCount:    st.ViolationCount,
		LastViolationType: st.LastViolationType,
		Signal:            signal,
	}

	g.record(audit.Entry{
		SessionID:  turn.SessionID,
		Kind:       audit.KindViolation,
		Level:      audit.LevelWarning,
		Intent:     turn.Intent,
		Message:    turn.Message,
		Severity:   string(sev),
		Count:      st.ViolationCount,
		Signal:     string(signal),
		ConfigHash: hash,
	})
	if signal != model.SignalNone {
		g.dispatch(alert.AlertEvent{
			Timestamp:  g.now().UTC().Format(timeFormat),
			SessionID:  turn.SessionID,
			Intent:     turn.Intent,
			Severity:   string(sev),
			Count:      st.ViolationCount,
			Signal:     string(signal),
			ConfigHash: hash,
		})
	}
	g.TrackTurn(res)
	return res
}

// LogViolation records a violation for monitoring without counting it: the
// tracker's last violation type is updated and an audit entry is written at
// a level matching the intent's tier. The count and signal are untouched.
func (g *Guard) LogViolation(turn model.Turn) model.TurnResult {
	g.mu.RLock()
	sev := g.classifier.Classify(turn.Intent)
	hash := g.cfgHash
	g.mu.RUnlock()

	st := g.sessions.SetLastViolation(turn.SessionID, turn.Intent)

	level := audit.LevelInfo
	switch {
	case model.SeverityRank[sev] >= model.SeverityRank[model.SeveritySevere]:
		level = audit.LevelCritical
	case model.SeverityRank[sev] >= model.SeverityRank[model.SeverityModerate]:
		level = audit.LevelWarning
	}

	g.record(audit.Entry{
		SessionID:  turn.SessionID,
		Kind:       audit.KindViolation,
		Level:      level,
		Intent:     turn.Intent,
		Message:    turn.Message,
		Severity:   string(sev),
		Count:      st.ViolationCount,
		ConfigHash: hash,
	})

	return model.TurnResult{
		SessionID:         turn.SessionID,
		Intent:            turn.Intent,
		Severity:          sev,
		ViolationCount:    st.ViolationCount,
		LastViolationType: st.LastViolationType,
		Signal:            model.SignalNone,
	}
}

// ResetCount clears the violation count after sustained positive
// interaction. Audited only when there was a count to clear.
func (g *Guard) ResetCount(sessionID string) model.ResetResult {
	g.mu.RLock()
	hash := g.cfgHash
	g.mu.RUnlock()

	res := g.sessions.Reset(sessionID)
	if res.PriorCount > 0 {
		g.record(audit.Entry{
			SessionID:  sessionID,
			Kind:       audit.KindReset,
			Level:      audit.LevelInfo,
			Count:      res.PriorCount,
			ConfigHash: hash,
		})
	}
	return res
}

// StartSession begins a session, carrying user profile slots over when the
// configuration allows.
func (g *Guard) StartSession(sessionID string) model.StartResult {
	return g.sessions.Start(sessionID)
}

// Fallback returns the fixed apology response for an unrecognized message.
// It never counts as a violation.
func (g *Guard) Fallback(sessionID string) model.TurnResult {
	g.mu.RLock()
	msg := g.cfg.FallbackMessage
	g.mu.RUnlock()

	st := g.sessions.Snapshot(sessionID)
	return model.TurnResult{
		SessionID:      sessionID,
		Severity:       model.SeverityMinor,
		ViolationCount: st.ViolationCount,
		Signal:         model.SignalNone,
		Responses:      []string{msg},
	}
}

// FetchProfile resolves the user profile for a session and stores it on the
// session tracker for carry-over.
func (g *Guard) FetchProfile(sessionID string) users.Profile {
	p := g.users.Lookup(sessionID)
	g.sessions.SetProfile(sessionID, p.Name, p.Segment)
	return p
}

// SeedProfile registers slot values arriving from the host's tracker, so a
// restarted host can hand its known slots back.
func (g *Guard) SeedProfile(sessionID, name, segment string) {
	if name == "" && segment == "" {
		return
	}
	g.sessions.SetProfile(sessionID, name, segment)
}

// Session returns a copy of the tracker state for a session.
func (g *Guard) Session(sessionID string) model.SessionState {
	return g.sessions.Snapshot(sessionID)
}

// Classify exposes the classifier for dry-run checks.
func (g *Guard) Classify(intent string) model.Severity {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.classifier.Classify(intent)
}

// ConfigHash returns the hash of the configuration currently in force.
func (g *Guard) ConfigHash() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfgHash
}

// TrackTurn records one turn to the analytics store, best-effort.
func (g *Guard) TrackTurn(res model.TurnResult) {
	if g.analytics == nil {
		return
	}
	if err := g.analytics.RecordTurn(res); err != nil {
		fmt.Fprintf(os.Stderr, "turnwatch: analytics write failed: %v\n", err)
	}
}

// Reload re-reads the configuration file and swaps in the new classifier,
// thresholds, carry-over behavior, alerts and fallback message. Existing
// session trackers are untouched.
func (g *Guard) Reload() error {
	g.mu.RLock()
	path := g.cfgPath
	g.mu.RUnlock()

	cfg, hash, err := config.LoadWithHash(path)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.cfg = cfg
	g.cfgHash = hash
	g.classifier = severity.New(cfg.Severity)
	g.alerts = alert.NewDispatcher(cfg.Alerts)
	g.mu.Unlock()
	g.sessions.SetCarryOver(cfg.Session.CarryOverSlotsToNewSession)

	fmt.Fprintf(os.Stderr, "turnwatch: config reloaded (%s)\n", hash)
	return nil
}

// Close releases the observer sinks.
func (g *Guard) Close() error {
	var firstErr error
	if g.auditLog != nil {
		if err := g.auditLog.Close(); err != nil {
			firstErr = err
		}
	}
	if g.analytics != nil {
		if err := g.analytics.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (g *Guard) record(entry audit.Entry) {
	if g.auditLog == nil {
		return
	}
	if err := g.auditLog.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "turnwatch: audit write failed: %v\n", err)
	}
}

func (g *Guard) dispatch(event alert.AlertEvent) {
	g.mu.RLock()
	d := g.alerts
	g.mu.RUnlock()
	if d == nil {
		return
	}
	d.Dispatch(event)
}
