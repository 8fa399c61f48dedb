// Package escalate decides the graduated escalation signal from the
// violation count. There is no stored state machine: the count itself is
// the state, and thresholds are simple comparisons recomputed each turn.
package escalate

import "github.com/ppiankov/turnwatch/internal/model"

// Thresholds defines the count boundaries for graduated escalation.
type Thresholds struct {
	WarningAt   int `yaml:"warning_at"`
	TerminateAt int `yaml:"terminate_at"`
}

// DefaultThresholds returns the built-in boundaries: final warning on the
// second violation, termination on the third.
func DefaultThresholds() Thresholds {
	return Thresholds{WarningAt: 2, TerminateAt: 3}
}

// Normalized returns the thresholds with unset or inverted values replaced
// by defaults, so Decide is total over arbitrary configuration.
func (t Thresholds) Normalized() Thresholds {
	d := DefaultThresholds()
	if t.WarningAt <= 0 {
		t.WarningAt = d.WarningAt
	}
	if t.TerminateAt <= t.WarningAt {
		t.TerminateAt = t.WarningAt + 1
	}
	return t
}

// Decide evaluates the updated count against the thresholds.
// Only the highest applicable signal is returned: a severe increment that
// crosses both boundaries in one turn yields TERMINATE, not both.
func Decide(count int, t Thresholds) model.Signal {
	t = t.Normalized()
	if count < 0 {
		count = 0
	}
	switch {
	case count >= t.TerminateAt:
		return model.SignalTerminate
	case count >= t.WarningAt:
		return model.SignalWarning
	default:
		return model.SignalNone
	}
}
