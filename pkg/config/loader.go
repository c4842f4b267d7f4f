package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// faultlineYAML is the on-disk shape of faultline.yaml.
type faultlineYAML struct {
	Scenarios map[string]*ScenarioConfig `yaml:"scenarios"`
	Runtime   *RuntimeConfig             `yaml:"runtime"`
	Actions   []ActionConfig             `yaml:"actions"`
	Queue     *QueueConfig               `yaml:"queue"`
	Server    *ServerConfig              `yaml:"server"`
	Retention *RetentionConfig           `yaml:"retention"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Read faultline.yaml from configDir
//  2. Expand environment variables
//  3. Parse YAML into structs
//  4. Merge user values over built-in defaults
//  5. Build the scenario registry
//  6. Validate everything
func Initialize(_ context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	stats := cfg.Stats()
	log.Info("Configuration initialized successfully",
		"scenarios", stats.Scenarios,
		"actions", stats.Actions)

	return cfg, nil
}

func load(configDir string) (*Config, error) {
	path := filepath.Join(configDir, "faultline.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewLoadError(path, ErrConfigNotFound)
		}
		return nil, NewLoadError(path, err)
	}

	data = ExpandEnv(data)

	var raw faultlineYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, NewLoadError(path, fmt.Errorf("%w: %w", ErrInvalidYAML, err))
	}

	// User values override defaults; unset fields keep the defaults.
	queueConfig := DefaultQueueConfig()
	if raw.Queue != nil {
		if err := mergo.Merge(queueConfig, raw.Queue, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging queue config: %w", err)
		}
	}
	runtimeConfig := DefaultRuntimeConfig()
	if raw.Runtime != nil {
		if err := mergo.Merge(runtimeConfig, raw.Runtime, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging runtime config: %w", err)
		}
	}
	serverConfig := DefaultServerConfig()
	if raw.Server != nil {
		if err := mergo.Merge(serverConfig, raw.Server, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging server config: %w", err)
		}
	}
	retentionConfig := DefaultRetentionConfig()
	if raw.Retention != nil {
		if err := mergo.Merge(retentionConfig, raw.Retention, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging retention config: %w", err)
		}
	}

	return &Config{
		configDir: configDir,
		Runtime:   runtimeConfig,
		Queue:     queueConfig,
		Server:    serverConfig,
		Retention: retentionConfig,
		Scenarios: NewScenarioRegistry(raw.Scenarios),
		Actions:   raw.Actions,
	}, nil
}

func validate(cfg *Config) error {
	if cfg.Scenarios.Len() == 0 {
		return NewValidationError("scenarios", "", "", ErrMissingRequiredField)
	}
	if cfg.Runtime.URL == "" {
		return NewValidationError("runtime", "", "url", ErrMissingRequiredField)
	}
	if cfg.Runtime.APIKeyEnv != "" && os.Getenv(cfg.Runtime.APIKeyEnv) == "" {
		slog.Warn("Runtime API key environment variable is empty", "env", cfg.Runtime.APIKeyEnv)
	}
	for _, action := range cfg.Actions {
		if action.Name == "" {
			return NewValidationError("action", action.Agent, "name", ErrMissingRequiredField)
		}
		if action.Agent == "" {
			return NewValidationError("action", action.Name, "agent", ErrMissingRequiredField)
		}
		if action.URL == "" {
			return NewValidationError("action", action.Name, "url", ErrMissingRequiredField)
		}
	}
	if cfg.Queue.WorkerCount <= 0 {
		return NewValidationError("queue", "", "worker_count", ErrInvalidValue)
	}
	if cfg.Queue.MaxConcurrentSessions <= 0 {
		return NewValidationError("queue", "", "max_concurrent_sessions", ErrInvalidValue)
	}
	if cfg.Retention.SessionRetentionDays <= 0 {
		return NewValidationError("retention", "", "session_retention_days", ErrInvalidValue)
	}
	return nil
}
