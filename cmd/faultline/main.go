// Faultline orchestrator server — provides the HTTP API, manages queue
// workers, and drives investigation runs against the agent runtime.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sentientmobilefurniture/faultline/pkg/actions"
	"github.com/sentientmobilefurniture/faultline/pkg/api"
	"github.com/sentientmobilefurniture/faultline/pkg/cleanup"
	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/database"
	"github.com/sentientmobilefurniture/faultline/pkg/emitter"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/manager"
	"github.com/sentientmobilefurniture/faultline/pkg/queue"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// resolvePodID determines the pod identifier for multi-replica coordination.
// Priority: POD_ID env > HOSTNAME env > "local"
func resolvePodID() string {
	if id := os.Getenv("POD_ID"); id != "" {
		return id
	}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		return hostname
	}
	return "local"
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	// Load .env file from config directory
	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	podID := resolvePodID()
	ctx := context.Background()

	// 1. Initialize configuration
	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	slog.Info("Starting faultline",
		"addr", addr,
		"pod_id", podID,
		"config_dir", *configDir)

	// 2. Initialize database
	dbConfig, err := database.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load database config", "error", err)
		os.Exit(1)
	}

	dbClient, err := database.NewClient(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			slog.Error("Error closing database client", "error", err)
		}
	}()
	slog.Info("Connected to PostgreSQL database")

	// 3. Streaming infrastructure: publisher, broker, LISTEN connection
	publisher := events.NewPublisher(dbClient.DB())
	broker := events.NewBroker()
	listener := events.NewListener(dbConfig.ConnString(), broker)
	if err := listener.Start(ctx); err != nil {
		slog.Error("Failed to start notify listener", "error", err)
		os.Exit(1)
	}
	defer listener.Stop(ctx)
	broker.SetListener(listener)
	slog.Info("Streaming infrastructure initialized")

	// 4. One-time startup orphan cleanup
	if err := queue.CleanupStartupOrphans(ctx, dbClient.Client, publisher, podID); err != nil {
		slog.Error("Failed to cleanup startup orphans", "error", err)
		// Non-fatal — continue
	}

	// 5. Domain services
	sessionService := services.NewSessionService(dbClient.Client)
	eventService := services.NewEventService(dbClient.Client)
	slog.Info("Services initialized")

	// 5a. Retention cleanup loop
	cleanupService := cleanup.NewService(cfg.Retention, sessionService)
	cleanupService.Start(ctx)
	defer cleanupService.Stop()

	// 6. Agent runtime client and emitter
	var runtimeOpts []runtime.RemoteOption
	if cfg.Runtime.APIKeyEnv != "" {
		if key := os.Getenv(cfg.Runtime.APIKeyEnv); key != "" {
			runtimeOpts = append(runtimeOpts, runtime.WithAPIKey(key))
		}
	}
	rt := runtime.NewRemoteRuntime(cfg.Runtime.URL, runtimeOpts...)

	defs := make([]actions.Definition, 0, len(cfg.Actions))
	for _, a := range cfg.Actions {
		defs = append(defs, actions.Definition{
			Name:    a.Name,
			Agent:   a.Agent,
			URL:     a.URL,
			Timeout: a.Timeout,
		})
	}
	var invoker actions.Invoker = actions.NoopInvoker{}
	if len(defs) > 0 {
		invoker = actions.NewHTTPInvoker(defs)
	}
	em := emitter.New(rt, invoker, emitter.WithAttemptTimeout(cfg.Runtime.AttemptTimeout))
	slog.Info("Runtime client initialized", "url", cfg.Runtime.URL, "actions", len(defs))

	// 7. Worker pool (before the HTTP server, so claims start immediately)
	executor := queue.NewExecutor(em, cfg.Scenarios, sessionService, publisher)
	workerPool := queue.NewWorkerPool(podID, dbClient.Client, cfg.Queue, executor, publisher)
	if err := workerPool.Start(ctx); err != nil {
		slog.Error("Failed to start worker pool", "error", err)
		os.Exit(1)
	}

	// 8. Session manager and HTTP server
	sessionManager := manager.New(sessionService, eventService, cfg.Scenarios, workerPool)
	httpServer := api.NewServer(cfg, dbClient, sessionManager, eventService, broker, workerPool)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	slog.Info("Faultline started successfully",
		"pod_id", podID,
		"workers", cfg.Queue.WorkerCount)

	// 9. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// 10. Graceful shutdown: drain workers first, then the HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Queue.GracefulShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		workerPool.Stop()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("Worker pool stopped gracefully")
	case <-shutdownCtx.Done():
		slog.Warn("Worker pool shutdown timeout exceeded")
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Faultline stopped")
}
