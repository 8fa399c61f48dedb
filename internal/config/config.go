// Package config loads the turnwatch guard configuration.
// Missing files fall back to built-in defaults; YAML overlays only the
// fields it specifies.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/turnwatch/internal/alert"
	"github.com/ppiankov/turnwatch/internal/escalate"
	"github.com/ppiankov/turnwatch/internal/severity"
)

// SessionConfig holds session lifecycle behavior.
type SessionConfig struct {
	// CarryOverSlotsToNewSession preserves user profile slots across a
	// session boundary. When false, session start resets the tracker.
	CarryOverSlotsToNewSession bool `yaml:"carry_over_slots_to_new_session"`
}

// DefaultFallbackMessage is the fixed apology rendered when the upstream
// classifier produced no recognized intent.
const DefaultFallbackMessage = "Maaf, saya tidak mengerti maksud Anda. " +
	"Saya dapat membantu Anda dengan informasi tentang produk dan layanan kami. " +
	"Apakah ada yang ingin ditanyakan?"

// Config holds all configurable guard parameters.
type Config struct {
	Severity        severity.Sets       `yaml:"severity"`
	Thresholds      escalate.Thresholds `yaml:"thresholds"`
	SevereWeight    int                 `yaml:"severe_weight"`
	Session         SessionConfig       `yaml:"session"`
	FallbackMessage string              `yaml:"fallback_message"`
	Alerts          []alert.AlertConfig `yaml:"alerts"`
}

// DefaultConfig returns the built-in guard configuration.
func DefaultConfig() *Config {
	return &Config{
		Severity:        severity.DefaultSets(),
		Thresholds:      escalate.DefaultThresholds(),
		SevereWeight:    2,
		Session:         SessionConfig{CarryOverSlotsToNewSession: true},
		FallbackMessage: DefaultFallbackMessage,
	}
}

// DefaultPath returns the default guard configuration path.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".turnwatch", "guard.yaml")
}

// Load loads guard configuration from a YAML file.
// Empty path falls back to ~/.turnwatch/guard.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash loads guard configuration and returns its SHA-256 hash.
// The hash is computed over the raw YAML bytes on disk and is stamped into
// audit entries so records can be tied to the config that produced them.
// When no file exists (defaults used), the hash is the SHA-256 of empty input.
func LoadWithHash(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return DefaultConfig(), emptyHash(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), emptyHash(), nil
		}
		return nil, "", fmt.Errorf("failed to read guard config: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse guard config: %w", err)
	}

	if cfg.SevereWeight <= 0 {
		cfg.SevereWeight = 2
	}
	cfg.Thresholds = cfg.Thresholds.Normalized()
	if cfg.FallbackMessage == "" {
		cfg.FallbackMessage = DefaultFallbackMessage
	}

	return cfg, hash, nil
}

func emptyHash() string {
	h := sha256.Sum256(nil)
	return "sha256:" + hex.EncodeToString(h[:])
}
