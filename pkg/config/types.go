package config

import "time"

// ScenarioConfig describes one investigation scenario: a named dataset the
// runtime's tool queries are routed against.
type ScenarioConfig struct {
	// Description is shown in listings; optional.
	Description string `yaml:"description,omitempty"`

	// Dataset is the routing tag sent to the runtime so data-query tools
	// hit the right backend data. Defaults to the scenario name.
	Dataset string `yaml:"dataset,omitempty"`
}

// RuntimeConfig is the hosted agent runtime connection.
type RuntimeConfig struct {
	// URL is the runtime base URL, e.g. "http://runtime:9000".
	URL string `yaml:"url"`

	// APIKeyEnv names the environment variable holding the bearer token.
	// Empty disables authentication.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`

	// AttemptTimeout bounds one run attempt's wall clock.
	AttemptTimeout time.Duration `yaml:"attempt_timeout,omitempty"`
}

// ActionConfig declares one side-effect tool (auto-executed dispatch).
type ActionConfig struct {
	// Name identifies the action in event payloads.
	Name string `yaml:"name"`

	// Agent is the runtime agent whose completed steps trigger the action.
	Agent string `yaml:"agent"`

	// URL receives the dispatch POST.
	URL string `yaml:"url"`

	// Timeout bounds the dispatch call.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ServerConfig is the HTTP listener configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// AllowedWSOrigins restricts WebSocket upgrades; empty allows the
	// server's own origin only.
	AllowedWSOrigins []string `yaml:"allowed_ws_origins,omitempty"`
}

// DefaultServerConfig returns the built-in server defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host: "0.0.0.0",
		Port: 8080,
	}
}

// DefaultRuntimeConfig returns the built-in runtime defaults.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		URL:            "http://localhost:9000",
		AttemptTimeout: 10 * time.Minute,
	}
}

// ScenarioRegistry is the immutable scenario lookup built at load time.
type ScenarioRegistry struct {
	scenarios map[string]*ScenarioConfig
}

// NewScenarioRegistry builds a registry. Scenarios without an explicit
// dataset default to their own name.
func NewScenarioRegistry(scenarios map[string]*ScenarioConfig) *ScenarioRegistry {
	resolved := make(map[string]*ScenarioConfig, len(scenarios))
	for name, sc := range scenarios {
		cp := *sc
		if cp.Dataset == "" {
			cp.Dataset = name
		}
		resolved[name] = &cp
	}
	return &ScenarioRegistry{scenarios: resolved}
}

// Get returns the scenario config by name.
func (r *ScenarioRegistry) Get(name string) (*ScenarioConfig, bool) {
	sc, ok := r.scenarios[name]
	return sc, ok
}

// Names returns all configured scenario names.
func (r *ScenarioRegistry) Names() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	return names
}

// Len returns the number of configured scenarios.
func (r *ScenarioRegistry) Len() int {
	return len(r.scenarios)
}
