// Package config loads and validates faultline.yaml: scenarios, the agent
// runtime endpoint, side-effect actions, and queue tuning.
package config

// Config is the fully resolved configuration.
type Config struct {
	configDir string

	// Runtime is the hosted agent runtime connection.
	Runtime *RuntimeConfig

	// Queue and worker pool configuration.
	Queue *QueueConfig

	// Server is the HTTP listener configuration.
	Server *ServerConfig

	// Retention controls background cleanup of old terminal sessions.
	Retention *RetentionConfig

	// Scenarios is the registry of configured scenarios.
	Scenarios *ScenarioRegistry

	// Actions are the side-effect tool definitions, by runtime agent.
	Actions []ActionConfig
}

// Stats contains statistics about loaded configuration.
type Stats struct {
	Scenarios int
	Actions   int
}

// Stats returns configuration statistics for logging.
func (c *Config) Stats() Stats {
	s := Stats{Actions: len(c.Actions)}
	if c.Scenarios != nil {
		s.Scenarios = c.Scenarios.Len()
	}
	return s
}

// ConfigDir returns the directory the configuration was loaded from.
func (c *Config) ConfigDir() string {
	return c.configDir
}
