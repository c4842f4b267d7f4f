package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/emitter"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
)

// WorkerPool manages a pool of queue workers and the per-pod registry of
// in-flight cancel tokens.
type WorkerPool struct {
	podID     string
	client    *ent.Client
	config    *config.QueueConfig
	executor  RunExecutor
	publisher *events.Publisher
	workers   []*Worker
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	// Cancel registry: session_id → the run's cooperative cancel token.
	activeSessions map[string]*emitter.CancelToken
	mu             sync.RWMutex
	started        bool

	orphans orphanState
}

// NewWorkerPool creates a new worker pool. publisher may be nil (transient
// status notifications disabled).
func NewWorkerPool(podID string, client *ent.Client, cfg *config.QueueConfig, executor RunExecutor, publisher *events.Publisher) *WorkerPool {
	return &WorkerPool{
		podID:          podID,
		client:         client,
		config:         cfg,
		executor:       executor,
		publisher:      publisher,
		workers:        make([]*Worker, 0, cfg.WorkerCount),
		stopCh:         make(chan struct{}),
		activeSessions: make(map[string]*emitter.CancelToken),
	}
}

// Start spawns worker goroutines and the orphan detection background task.
// Safe to call multiple times; subsequent calls are no-ops.
func (p *WorkerPool) Start(ctx context.Context) error {
	if p.started {
		slog.Warn("Worker pool already started, ignoring duplicate Start call", "pod_id", p.podID)
		return nil
	}
	p.started = true

	slog.Info("Starting worker pool", "pod_id", p.podID, "worker_count", p.config.WorkerCount)

	for i := 0; i < p.config.WorkerCount; i++ {
		workerID := fmt.Sprintf("%s-worker-%d", p.podID, i)
		worker := NewWorker(workerID, p.podID, p.client, p.config, p.executor, p)
		worker.SetPublisher(p.publisher)
		p.workers = append(p.workers, worker)
		worker.Start(ctx)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.runOrphanDetection(ctx)
	}()

	slog.Info("Worker pool started")
	return nil
}

// Stop signals all workers to stop and waits for them to finish. Workers
// finish their current runs before exiting.
func (p *WorkerPool) Stop() {
	slog.Info("Stopping worker pool gracefully")

	active := p.getActiveSessionIDs()
	if len(active) > 0 {
		slog.Info("Waiting for active runs to complete",
			"count", len(active),
			"session_ids", active)
	}

	for _, worker := range p.workers {
		worker.Stop()
	}

	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()

	slog.Info("Worker pool stopped gracefully")
}

// RegisterSession stores a run's cancel token for API-triggered cancellation.
func (p *WorkerPool) RegisterSession(sessionID string, token *emitter.CancelToken) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeSessions[sessionID] = token
}

// UnregisterSession removes the cancel token when the run ends.
func (p *WorkerPool) UnregisterSession(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.activeSessions, sessionID)
}

// CancelSession flips the cancel token for a run on this pod. Returns true
// if the session had a run in flight here. The run winds down at its next
// cancellation checkpoint; completion shows up on the event stream.
func (p *WorkerPool) CancelSession(sessionID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if token, ok := p.activeSessions[sessionID]; ok {
		token.Cancel()
		return true
	}
	return false
}

// Health returns the current health status of the pool.
func (p *WorkerPool) Health() *PoolHealth {
	ctx := context.Background()

	queueDepth, errQ := p.client.InvestigationSession.Query().
		Where(investigationsession.StatusEQ(investigationsession.StatusPending)).
		Count(ctx)
	if errQ != nil {
		slog.Error("Failed to query queue depth for health check",
			"pod_id", p.podID,
			"error", errQ)
	}

	activeSessions, errA := p.client.InvestigationSession.Query().
		Where(
			investigationsession.StatusEQ(investigationsession.StatusInProgress),
			investigationsession.PodIDEQ(p.podID),
		).
		Count(ctx)
	if errA != nil {
		slog.Error("Failed to query active sessions for health check",
			"pod_id", p.podID,
			"error", errA)
	}

	workerStats := make([]WorkerHealth, len(p.workers))
	activeWorkers := 0
	for i, worker := range p.workers {
		stats := worker.Health()
		workerStats[i] = stats
		if stats.Status == string(WorkerStatusWorking) {
			activeWorkers++
		}
	}

	dbHealthy := errQ == nil && errA == nil
	isHealthy := len(p.workers) > 0 && activeSessions <= p.config.MaxConcurrentSessions && dbHealthy

	p.orphans.mu.Lock()
	lastOrphanScan := p.orphans.lastOrphanScan
	orphansRecovered := p.orphans.orphansRecovered
	p.orphans.mu.Unlock()

	var dbError string
	if !dbHealthy {
		if errQ != nil {
			dbError = fmt.Sprintf("queue depth query failed: %v", errQ)
		} else if errA != nil {
			dbError = fmt.Sprintf("active sessions query failed: %v", errA)
		}
	}

	return &PoolHealth{
		IsHealthy:        isHealthy,
		DBReachable:      dbHealthy,
		DBError:          dbError,
		PodID:            p.podID,
		ActiveWorkers:    activeWorkers,
		TotalWorkers:     len(p.workers),
		ActiveSessions:   activeSessions,
		MaxConcurrent:    p.config.MaxConcurrentSessions,
		QueueDepth:       queueDepth,
		WorkerStats:      workerStats,
		LastOrphanScan:   lastOrphanScan,
		OrphansRecovered: orphansRecovered,
	}
}

// getActiveSessionIDs returns IDs of currently running sessions (for logging).
func (p *WorkerPool) getActiveSessionIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sessions := make([]string, 0, len(p.activeSessions))
	for id := range p.activeSessions {
		sessions = append(sessions, id)
	}
	return sessions
}
