// Package e2e provides end-to-end test infrastructure for the faultline
// pipeline: a complete in-process instance backed by a real PostgreSQL
// testcontainer, with the agent runtime replaced by a scripted fake.
package e2e

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/pkg/actions"
	"github.com/sentientmobilefurniture/faultline/pkg/api"
	"github.com/sentientmobilefurniture/faultline/pkg/client"
	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/database"
	"github.com/sentientmobilefurniture/faultline/pkg/emitter"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/manager"
	"github.com/sentientmobilefurniture/faultline/pkg/queue"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
	testdb "github.com/sentientmobilefurniture/faultline/test/database"
	"github.com/sentientmobilefurniture/faultline/test/util"
)

// TestApp boots a complete faultline instance for e2e testing.
type TestApp struct {
	Config    *config.Config
	DBClient  *database.Client
	EntClient *ent.Client

	Runtime *runtime.ScriptedRuntime

	Publisher  *events.Publisher
	Broker     *events.Broker
	Listener   *events.Listener
	WorkerPool *queue.WorkerPool
	Manager    *manager.SessionManager
	Server     *api.Server

	BaseURL string
	Client  *client.Client

	t *testing.T
}

// testAppConfig holds options accumulated before creating the TestApp.
type testAppConfig struct {
	scripted       *runtime.ScriptedRuntime
	invoker        actions.Invoker
	workerCount    int
	sessionTimeout time.Duration
	dbClient       *database.Client
	podID          string
}

// TestAppOption configures the test app.
type TestAppOption func(*testAppConfig)

// WithRuntime sets a pre-scripted runtime.
func WithRuntime(rt *runtime.ScriptedRuntime) TestAppOption {
	return func(c *testAppConfig) { c.scripted = rt }
}

// WithInvoker sets the action invoker handed to the emitter.
func WithInvoker(inv actions.Invoker) TestAppOption {
	return func(c *testAppConfig) { c.invoker = inv }
}

// WithWorkerCount sets the number of worker pool goroutines.
func WithWorkerCount(n int) TestAppOption {
	return func(c *testAppConfig) { c.workerCount = n }
}

// WithSessionTimeout sets the per-run execution timeout.
func WithSessionTimeout(d time.Duration) TestAppOption {
	return func(c *testAppConfig) { c.sessionTimeout = d }
}

// WithDBClient injects a pre-created database client, skipping the default
// per-test schema creation. Used by multi-replica tests where several
// TestApp instances share one schema.
func WithDBClient(c *database.Client) TestAppOption {
	return func(tc *testAppConfig) { tc.dbClient = c }
}

// WithPodID overrides the auto-generated pod ID so each replica gets a
// distinct identity for claiming and orphan detection.
func WithPodID(id string) TestAppOption {
	return func(c *testAppConfig) { c.podID = id }
}

// NewTestApp creates and starts a full faultline test instance.
// Shutdown is registered via t.Cleanup automatically.
func NewTestApp(t *testing.T, opts ...TestAppOption) *TestApp {
	t.Helper()

	tc := &testAppConfig{
		workerCount:    1,
		sessionTimeout: 30 * time.Second,
		invoker:        actions.NoopInvoker{},
	}
	for _, opt := range opts {
		opt(tc)
	}
	if tc.scripted == nil {
		tc.scripted = runtime.NewScriptedRuntime(runtime.SuccessScript("thread-e2e", "All clear."))
	}

	cfg := defaultTestConfig()
	cfg.Queue.WorkerCount = tc.workerCount
	cfg.Queue.MaxConcurrentSessions = tc.workerCount
	cfg.Queue.SessionTimeout = tc.sessionTimeout

	// 1. Database.
	dbClient := tc.dbClient
	if dbClient == nil {
		dbClient = testdb.NewTestClient(t)
	}
	entClient := dbClient.Client

	// 2. Event infrastructure — real publisher, broker, and LISTEN loop.
	// NOTIFY channels are global, so the listener can use the base DSN even
	// though the tables live in a per-test schema.
	publisher := events.NewPublisher(dbClient.DB())
	broker := events.NewBroker()
	listener := events.NewListener(util.GetBaseConnectionString(t), broker)
	ctx := context.Background()
	require.NoError(t, listener.Start(ctx))
	broker.SetListener(listener)

	// 3. Domain services and emitter.
	sessionService := services.NewSessionService(entClient)
	eventService := services.NewEventService(entClient)
	em := emitter.New(tc.scripted, tc.invoker)

	// 4. Worker pool.
	podID := tc.podID
	if podID == "" {
		podID = fmt.Sprintf("e2e-test-%s", t.Name())
	}
	executor := queue.NewExecutor(em, cfg.Scenarios, sessionService, publisher)
	workerPool := queue.NewWorkerPool(podID, entClient, cfg.Queue, executor, publisher)
	require.NoError(t, workerPool.Start(ctx))

	// 5. HTTP server on an ephemeral port.
	sessionManager := manager.New(sessionService, eventService, cfg.Scenarios, workerPool)
	server := api.NewServer(cfg, dbClient, sessionManager, eventService, broker, workerPool)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = server.StartWithListener(ln)
	}()

	baseURL := fmt.Sprintf("http://%s", ln.Addr().String())

	app := &TestApp{
		Config:     cfg,
		DBClient:   dbClient,
		EntClient:  entClient,
		Runtime:    tc.scripted,
		Publisher:  publisher,
		Broker:     broker,
		Listener:   listener,
		WorkerPool: workerPool,
		Manager:    sessionManager,
		Server:     server,
		BaseURL:    baseURL,
		Client:     client.New(baseURL),
		t:          t,
	}

	t.Cleanup(func() {
		workerPool.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		listener.Stop(context.Background())
	})

	return app
}

// defaultTestConfig creates a config with fast polling and the standard test
// scenarios.
func defaultTestConfig() *config.Config {
	queueCfg := config.DefaultQueueConfig()
	queueCfg.PollInterval = 100 * time.Millisecond
	queueCfg.PollIntervalJitter = 50 * time.Millisecond
	queueCfg.HeartbeatInterval = 5 * time.Second
	queueCfg.GracefulShutdownTimeout = 10 * time.Second
	queueCfg.OrphanDetectionInterval = time.Minute
	queueCfg.OrphanThreshold = time.Minute

	return &config.Config{
		Runtime: &config.RuntimeConfig{URL: "http://scripted"},
		Queue:   queueCfg,
		Server:  config.DefaultServerConfig(),
		Scenarios: config.NewScenarioRegistry(map[string]*config.ScenarioConfig{
			"network-triage": {
				Description: "Diagnose network alerts",
				Dataset:     "network-triage",
			},
		}),
	}
}
