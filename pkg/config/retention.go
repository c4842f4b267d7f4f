package config

import "time"

// RetentionConfig controls data retention and cleanup behavior.
type RetentionConfig struct {
	// SessionRetentionDays is how many days to keep terminal sessions
	// before deleting them. Event logs cascade with the session row.
	SessionRetentionDays int `yaml:"session_retention_days"`

	// CleanupInterval is how often the cleanup loop runs.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// DefaultRetentionConfig returns the built-in retention defaults.
func DefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		SessionRetentionDays: 365,
		CleanupInterval:      12 * time.Hour,
	}
}
