package audit

// Entry kinds.
const (
	KindViolation  = "violation"  // graduated-path violation
	KindEscalation = "escalation" // severe-path violation, CRITICAL level
	KindReset      = "reset"      // positive-interaction reset
)

// Entry levels. Escalation records are always CRITICAL.
const (
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelCritical = "CRITICAL"
)

// Entry is one line in the hash-chained JSONL audit log.
// All fields are flat scalars (no map[string]any) to guarantee deterministic
// json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp  string `json:"ts"`
	SessionID  string `json:"session_id"`
	Kind       string `json:"kind"`
	Level      string `json:"level"`
	Intent     string `json:"intent,omitempty"`
	Message    string `json:"message,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Count      int    `json:"count"`
	Signal     string `json:"signal,omitempty"`
	ConfigHash string `json:"config_hash,omitempty"`
	PrevHash   string `json:"prev_hash"`
}
