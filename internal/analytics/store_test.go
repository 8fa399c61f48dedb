package analytics

import (
	"path/filepath"
	"testing"

	"github.com/ppiankov/turnwatch/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndTotals(t *testing.T) {
	s := openTestStore(t)

	events := []model.TurnResult{
		{SessionID: "s1", Intent: "offensive_language", Severity: model.SeverityModerate, ViolationCount: 1, Signal: model.SignalNone},
		{SessionID: "s1", Intent: "harassment", Severity: model.SeverityModerate, ViolationCount: 2, Signal: model.SignalWarning},
		{SessionID: "s1", Intent: "prompt_injection", Severity: model.SeveritySevere, ViolationCount: 4, Signal: model.SignalTerminate},
		{SessionID: "other", Intent: "sara_topic", Severity: model.SeverityModerate, ViolationCount: 1, Signal: model.SignalNone},
	}
	for _, e := range events {
		if err := s.RecordTurn(e); err != nil {
			t.Fatalf("record turn: %v", err)
		}
	}

	got, err := s.Totals("s1")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if got.Turns != 3 {
		t.Errorf("turns = %d, want 3", got.Turns)
	}
	if got.Severe != 1 || got.Moderate != 2 {
		t.Errorf("severe/moderate = %d/%d, want 1/2", got.Severe, got.Moderate)
	}
	if got.Warnings != 1 || got.Terminates != 1 {
		t.Errorf("warnings/terminates = %d/%d, want 1/1", got.Warnings, got.Terminates)
	}
}

func TestTotalsEmptySession(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Totals("nobody")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if got.Turns != 0 || got.Severe != 0 || got.Terminates != 0 {
		t.Errorf("expected zero totals, got %+v", got)
	}
}
