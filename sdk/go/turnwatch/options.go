package turnwatch

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	configPath    string
	auditLogPath  string
	analyticsPath string
}

// WithConfig sets the path to a guard YAML file.
func WithConfig(path string) Option {
	return func(c *clientConfig) { c.configPath = path }
}

// WithAuditLog enables the hash-chained JSONL audit log at the given path.
func WithAuditLog(path string) Option {
	return func(c *clientConfig) { c.auditLogPath = path }
}

// WithAnalytics enables the SQLite analytics store at the given path.
func WithAnalytics(path string) Option {
	return func(c *clientConfig) { c.analyticsPath = path }
}
