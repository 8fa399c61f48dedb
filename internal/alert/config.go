package alert

// AlertConfig defines a webhook alert destination.
type AlertConfig struct {
	URL     string            `yaml:"url"     json:"url"`
	Format  string            `yaml:"format"  json:"format"` // "generic", "slack", "pagerduty"
	Events  []string          `yaml:"events"  json:"events"` // ["warning", "terminate", "critical"]
	Headers map[string]string `yaml:"headers" json:"headers"`
}

// AlertEvent is the payload sent to webhook endpoints.
type AlertEvent struct {
	Timestamp  string `json:"timestamp"`
	SessionID  string `json:"session_id"`
	Intent     string `json:"intent"`
	Severity   string `json:"severity"`
	Count      int    `json:"count"`
	Signal     string `json:"signal"`
	Reason     string `json:"reason,omitempty"`
	ConfigHash string `json:"config_hash"`
	Type       string `json:"type,omitempty"` // "critical" for severe-path escalations
}
