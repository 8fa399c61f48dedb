package escalate

import (
	"testing"

	"github.com/ppiankov/turnwatch/internal/model"
)

func TestDecideDefaults(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		count int
		want  model.Signal
	}{
		{0, model.SignalNone},
		{1, model.SignalNone},
		{2, model.SignalWarning},
		{3, model.SignalTerminate},
		{4, model.SignalTerminate},
		{100, model.SignalTerminate},
		{-1, model.SignalNone}, // corrupt count treated as 0
	}

	for _, tt := range tests {
		if got := Decide(tt.count, th); got != tt.want {
			t.Errorf("Decide(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}
}

func TestDecideHighestSignalOnly(t *testing.T) {
	// A severe increment from 1 to 3 crosses both boundaries in one step.
	// Only the terminate signal fires.
	if got := Decide(3, DefaultThresholds()); got != model.SignalTerminate {
		t.Errorf("Decide(3) = %s, want terminate", got)
	}
}

func TestDecideCustomThresholds(t *testing.T) {
	th := Thresholds{WarningAt: 3, TerminateAt: 5}

	tests := []struct {
		count int
		want  model.Signal
	}{
		{2, model.SignalNone},
		{3, model.SignalWarning},
		{4, model.SignalWarning},
		{5, model.SignalTerminate},
	}

	for _, tt := range tests {
		if got := Decide(tt.count, th); got != tt.want {
			t.Errorf("Decide(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}
}

func TestNormalizedRepairsBadConfig(t *testing.T) {
	tests := []struct {
		in   Thresholds
		want Thresholds
	}{
		{Thresholds{}, Thresholds{WarningAt: 2, TerminateAt: 3}},
		{Thresholds{WarningAt: -1, TerminateAt: 0}, Thresholds{WarningAt: 2, TerminateAt: 3}},
		{Thresholds{WarningAt: 4, TerminateAt: 2}, Thresholds{WarningAt: 4, TerminateAt: 5}},
		{Thresholds{WarningAt: 2, TerminateAt: 2}, Thresholds{WarningAt: 2, TerminateAt: 3}},
	}

	for _, tt := range tests {
		if got := tt.in.Normalized(); got != tt.want {
			t.Errorf("Normalized(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
