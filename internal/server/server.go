// Package server exposes the guard over the action-endpoint webhook
// protocol spoken by conversational dialogue hosts: the host POSTs the
// action name plus its tracker snapshot, and gets back slot events and
// response directives.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/ppiankov/turnwatch/internal/guard"
	"github.com/ppiankov/turnwatch/internal/model"
)

// Action names accepted on /webhook.
const (
	ActionCheckGuardrails = "action_check_guardrails"
	ActionLogViolation    = "action_log_violation"
	ActionHandleViolation = "action_handle_violation"
	ActionEscalate        = "action_escalate_violation"
	ActionReset           = "action_reset_violation_count"
	ActionSessionStart    = "action_session_start"
	ActionFallback        = "action_default_fallback"
	ActionGetUserInfo     = "action_get_user_info"
	ActionTrackAnalytics  = "action_track_analytics"
)

// Config holds action server configuration.
type Config struct {
	Port          int
	GuardConfig   string
	AuditLogPath  string
	AnalyticsPath string
}

// Request is the webhook payload sent by the dialogue host.
type Request struct {
	NextAction string  `json:"next_action"`
	SenderID   string  `json:"sender_id"`
	Tracker    Tracker `json:"tracker"`
}

// Tracker is the host's conversation state snapshot.
type Tracker struct {
	SenderID      string         `json:"sender_id"`
	Slots         map[string]any `json:"slots"`
	LatestMessage LatestMessage  `json:"latest_message"`
}

// LatestMessage carries the classified user turn.
type LatestMessage struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`
}

// Intent is the NLU classification of the latest message.
type Intent struct {
	Name string `json:"name"`
}

// Event is one tracker mutation returned to the host.
type Event struct {
	Event string `json:"event"`
	Name  string `json:"name,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Response is one outbound message directive.
type Response struct {
	Text string `json:"text"`
}

// Reply is the webhook response body.
type Reply struct {
	Events    []Event    `json:"events"`
	Responses []Response `json:"responses"`
}

// Server serves the action-endpoint protocol backed by a Guard.
type Server struct {
	g   *guard.Guard
	cfg Config
	srv *http.Server
}

// New creates an action server, loading guard configuration and opening
// the audit log and analytics store when configured.
func New(cfg Config) (*Server, error) {
	g, err := guard.Load(cfg.GuardConfig, cfg.AuditLogPath, cfg.AnalyticsPath)
	if err != nil {
		return nil, err
	}
	return NewWithGuard(cfg, g), nil
}

// NewWithGuard creates an action server around an existing Guard.
func NewWithGuard(cfg Config, g *guard.Guard) *Server {
	s := &Server{g: g, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}
	return s
}

// Handler returns the HTTP handler. For testing.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start begins serving. Blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "turnwatch: action server listening on %s\n", s.srv.Addr)
	err = s.srv.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Reload re-reads the guard configuration.
func (s *Server) Reload() error {
	return s.g.Reload()
}

// Close releases the guard's sinks.
func (s *Server) Close() error {
	return s.g.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":      "ok",
		"config_hash": s.g.ConfigHash(),
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sessionID := req.SenderID
	if sessionID == "" {
		sessionID = req.Tracker.SenderID
	}
	if sessionID == "" {
		http.Error(w, "missing sender_id", http.StatusBadRequest)
		return
	}

	// Hand slots the host already knows back to the tracker, so a restarted
	// process can still carry profiles over.
	s.g.SeedProfile(sessionID, slotString(req.Tracker.Slots, "user_name"), slotString(req.Tracker.Slots, "user_segment"))

	turn := model.Turn{
		SessionID: sessionID,
		Intent:    req.Tracker.LatestMessage.Intent.Name,
		Message:   req.Tracker.LatestMessage.Text,
	}

	reply := Reply{Events: []Event{}, Responses: []Response{}}

	switch req.NextAction {
	case ActionCheckGuardrails:
		fmt.Fprintf(os.Stderr, "turnwatch: guardrail check intent=%q severity=%s\n",
			turn.Intent, s.g.Classify(turn.Intent))

	case ActionLogViolation:
		res := s.g.LogViolation(turn)
		reply.Events = append(reply.Events, Event{Event: "slot", Name: "last_violation_type", Value: res.LastViolationType})

	case ActionHandleViolation:
		// The host's stories decide what gets routed here; every routed
		// turn counts, whatever its configured tier.
		reply.Events = turnEvents(s.g.HandleViolation(turn))

	case ActionEscalate:
		reply.Events = turnEvents(s.g.Escalate(turn))

	case ActionReset:
		res := s.g.ResetCount(sessionID)
		reply.Events = []Event{
			{Event: "slot", Name: "violation_count", Value: res.Count},
			{Event: "slot", Name: "last_violation_type", Value: nil},
		}

	case ActionSessionStart:
		reply.Events = startEvents(s.g.StartSession(sessionID))

	case ActionFallback:
		res := s.g.Fallback(sessionID)
		for _, msg := range res.Responses {
			reply.Responses = append(reply.Responses, Response{Text: msg})
		}

	case ActionGetUserInfo:
		p := s.g.FetchProfile(sessionID)
		reply.Events = []Event{
			{Event: "slot", Name: "user_name", Value: p.Name},
			{Event: "slot", Name: "user_segment", Value: p.Segment},
		}

	case ActionTrackAnalytics:
		st := s.g.Session(sessionID)
		s.g.TrackTurn(model.TurnResult{
			SessionID:         sessionID,
			Intent:            turn.Intent,
			Severity:          s.g.Classify(turn.Intent),
			ViolationCount:    st.ViolationCount,
			LastViolationType: st.LastViolationType,
			Signal:            model.SignalNone,
		})

	default:
		http.Error(w, fmt.Sprintf("unknown action %q", req.NextAction), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}

// turnEvents renders a turn result as tracker slot events. The escalation
// signal is surfaced as a slot so the dialogue policy can branch on it.
func turnEvents(res model.TurnResult) []Event {
	events := []Event{
		{Event: "slot", Name: "violation_count", Value: res.ViolationCount},
		{Event: "slot", Name: "last_violation_type", Value: res.LastViolationType},
	}
	if res.Signal != model.SignalNone {
		events = append(events, Event{Event: "slot", Name: "escalation_signal", Value: string(res.Signal)})
	}
	return events
}

func startEvents(res model.StartResult) []Event {
	events := []Event{{Event: "session_started"}}
	if res.UserName != "" {
		events = append(events, Event{Event: "slot", Name: "user_name", Value: res.UserName})
	}
	if res.UserSegment != "" {
		events = append(events, Event{Event: "slot", Name: "user_segment", Value: res.UserSegment})
	}
	if res.CountReset {
		events = append(events,
			Event{Event: "slot", Name: "violation_count", Value: 0},
			Event{Event: "slot", Name: "last_violation_type", Value: nil},
		)
	}
	events = append(events, Event{Event: "action", Name: "action_listen"})
	return events
}

func slotString(slots map[string]any, key string) string {
	if v, ok := slots[key].(string); ok {
		return v
	}
	return ""
}
