package config

import "time"

// QueueConfig contains queue and worker pool configuration. These values
// control how pending sessions are polled, claimed, and run.
type QueueConfig struct {
	// WorkerCount is the number of worker goroutines per replica/pod.
	// Each worker independently polls and runs sessions.
	WorkerCount int `yaml:"worker_count"`

	// MaxConcurrentSessions is the global limit of concurrent runs across
	// ALL replicas/pods. Enforced by database COUNT(*) check.
	MaxConcurrentSessions int `yaml:"max_concurrent_sessions"`

	// PollInterval is the base interval for checking pending sessions.
	PollInterval time.Duration `yaml:"poll_interval"`

	// PollIntervalJitter is the random jitter added to PollInterval.
	// Actual interval: PollInterval ± PollIntervalJitter.
	PollIntervalJitter time.Duration `yaml:"poll_interval_jitter"`

	// SessionTimeout is the maximum time one run may take end to end,
	// including the emitter's retries.
	SessionTimeout time.Duration `yaml:"session_timeout"`

	// GracefulShutdownTimeout is the max time to wait for active runs to
	// complete during shutdown. Should match SessionTimeout.
	GracefulShutdownTimeout time.Duration `yaml:"graceful_shutdown_timeout"`

	// HeartbeatInterval is how often a worker refreshes a running
	// session's last_interaction_at.
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`

	// OrphanDetectionInterval is how often to scan for orphaned sessions.
	OrphanDetectionInterval time.Duration `yaml:"orphan_detection_interval"`

	// OrphanThreshold is how long a session can go without a heartbeat
	// before it is considered orphaned.
	OrphanThreshold time.Duration `yaml:"orphan_threshold"`
}

// DefaultQueueConfig returns the built-in queue defaults.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		WorkerCount:             5,
		MaxConcurrentSessions:   5,
		PollInterval:            1 * time.Second,
		PollIntervalJitter:      500 * time.Millisecond,
		SessionTimeout:          30 * time.Minute,
		GracefulShutdownTimeout: 30 * time.Minute,
		HeartbeatInterval:       30 * time.Second,
		OrphanDetectionInterval: 5 * time.Minute,
		OrphanThreshold:         5 * time.Minute,
	}
}
