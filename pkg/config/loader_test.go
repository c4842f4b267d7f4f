package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faultline.yaml"), []byte(content), 0o644))
	return dir
}

func TestInitializeFullConfig(t *testing.T) {
	dir := writeConfig(t, `
scenarios:
  grid-outage:
    description: "Regional power grid outage"
    dataset: grid_v2
  checkout-latency: {}
runtime:
  url: http://runtime:9000
  attempt_timeout: 5m
actions:
  - name: dispatch_crew
    agent: dispatcher
    url: http://dispatch:7000/dispatch
queue:
  worker_count: 2
  session_timeout: 10m
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	grid, ok := cfg.Scenarios.Get("grid-outage")
	require.True(t, ok)
	assert.Equal(t, "grid_v2", grid.Dataset)

	// Dataset defaults to the scenario name.
	checkout, ok := cfg.Scenarios.Get("checkout-latency")
	require.True(t, ok)
	assert.Equal(t, "checkout-latency", checkout.Dataset)

	assert.Equal(t, "http://runtime:9000", cfg.Runtime.URL)
	assert.Equal(t, 5*time.Minute, cfg.Runtime.AttemptTimeout)

	// User override merged over defaults; unset fields keep defaults.
	assert.Equal(t, 2, cfg.Queue.WorkerCount)
	assert.Equal(t, 10*time.Minute, cfg.Queue.SessionTimeout)
	assert.Equal(t, DefaultQueueConfig().PollInterval, cfg.Queue.PollInterval)

	require.Len(t, cfg.Actions, 1)
	assert.Equal(t, "dispatch_crew", cfg.Actions[0].Name)

	// Retention was not configured; defaults apply.
	assert.Equal(t, DefaultRetentionConfig().SessionRetentionDays, cfg.Retention.SessionRetentionDays)
}

func TestInitializeRetentionOverride(t *testing.T) {
	dir := writeConfig(t, `
scenarios:
  grid-outage: {}
retention:
  session_retention_days: 30
  cleanup_interval: 1h
`)
	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Retention.SessionRetentionDays)
	assert.Equal(t, time.Hour, cfg.Retention.CleanupInterval)
}

func TestInitializeRequiresScenarios(t *testing.T) {
	dir := writeConfig(t, `
runtime:
  url: http://runtime:9000
`)
	_, err := Initialize(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestInitializeRejectsIncompleteAction(t *testing.T) {
	dir := writeConfig(t, `
scenarios:
  grid-outage: {}
actions:
  - name: dispatch_crew
    agent: dispatcher
`)
	_, err := Initialize(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestInitializeMissingFile(t *testing.T) {
	_, err := Initialize(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FAULTLINE_RUNTIME_URL", "http://runtime.internal:9000")

	out := ExpandEnv([]byte("url: {{.FAULTLINE_RUNTIME_URL}}\npattern: ^error.*$\n"))
	assert.Contains(t, string(out), "http://runtime.internal:9000")
	// Literal dollars survive.
	assert.Contains(t, string(out), "^error.*$")
}

func TestExpandEnvMissingVariable(t *testing.T) {
	out := ExpandEnv([]byte("key: {{.FAULTLINE_DOES_NOT_EXIST}}\n"))
	assert.Equal(t, "key: \n", string(out))
}
