package severity

import (
	"strings"

	"github.com/ppiankov/turnwatch/internal/model"
)

// Sets holds the raw intent labels organized by severity tier.
// Any label in neither set classifies as MINOR.
type Sets struct {
	Severe   []string `yaml:"severe"`
	Moderate []string `yaml:"moderate"`
}

// DefaultSets returns the built-in severity membership sets.
func DefaultSets() Sets {
	return Sets{
		Severe: []string{
			"prompt_injection",
			"out_of_scope_technical",
			"share_sensitive_data",
		},
		Moderate: []string{
			"offensive_language",
			"harassment",
			"sara_topic",
		},
	}
}

// Classifier maps intent labels to severity tiers via set membership.
// Classification is total: every string input, including the empty string,
// yields exactly one tier.
type Classifier struct {
	severe   map[string]bool
	moderate map[string]bool
	raw      Sets
}

// New creates a Classifier from raw sets, normalizing labels for lookup.
func New(s Sets) *Classifier {
	c := &Classifier{
		severe:   make(map[string]bool, len(s.Severe)),
		moderate: make(map[string]bool, len(s.Moderate)),
		raw:      s,
	}
	for _, label := range s.Severe {
		c.severe[normalize(label)] = true
	}
	for _, label := range s.Moderate {
		c.moderate[normalize(label)] = true
	}
	return c
}

// NewDefault creates a Classifier with the built-in sets.
func NewDefault() *Classifier {
	return New(DefaultSets())
}

// Classify returns the severity tier for an intent label.
// Severe membership is checked first; unknown and empty labels are MINOR.
func (c *Classifier) Classify(intent string) model.Severity {
	label := normalize(intent)
	switch {
	case c.severe[label]:
		return model.SeveritySevere
	case c.moderate[label]:
		return model.SeverityModerate
	default:
		return model.SeverityMinor
	}
}

// Sets returns the raw membership sets the classifier was built from.
func (c *Classifier) Sets() Sets {
	return c.raw
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
