package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"entgo.io/ent/dialect/sql"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/emitter"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
)

// WorkerStatus represents the current state of a worker.
type WorkerStatus string

// Worker status constants.
const (
	WorkerStatusIdle    WorkerStatus = "idle"
	WorkerStatusWorking WorkerStatus = "working"
)

// Worker is a single queue worker that polls for and runs pending sessions.
type Worker struct {
	id        string
	podID     string
	client    *ent.Client
	config    *config.QueueConfig
	executor  RunExecutor
	publisher *events.Publisher
	pool      SessionRegistry
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	// Health tracking
	mu                sync.RWMutex
	status            WorkerStatus
	currentSessionID  string
	sessionsProcessed int
	lastActivity      time.Time
}

// SessionRegistry is the subset of WorkerPool used by Worker for cancel
// token registration.
type SessionRegistry interface {
	RegisterSession(sessionID string, token *emitter.CancelToken)
	UnregisterSession(sessionID string)
}

// NewWorker creates a new queue worker.
func NewWorker(id, podID string, client *ent.Client, cfg *config.QueueConfig, executor RunExecutor, pool SessionRegistry) *Worker {
	return &Worker{
		id:           id,
		podID:        podID,
		client:       client,
		config:       cfg,
		executor:     executor,
		pool:         pool,
		stopCh:       make(chan struct{}),
		status:       WorkerStatusIdle,
		lastActivity: time.Now(),
	}
}

// SetPublisher wires the transient status publisher. Optional; without it
// status changes are only observable by polling.
func (w *Worker) SetPublisher(p *events.Publisher) {
	w.publisher = p
}

// Start begins the worker polling loop in a goroutine.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// multiple times.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

// Health returns the current worker health status.
func (w *Worker) Health() WorkerHealth {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return WorkerHealth{
		ID:                w.id,
		Status:            string(w.status),
		CurrentSessionID:  w.currentSessionID,
		SessionsProcessed: w.sessionsProcessed,
		LastActivity:      w.lastActivity,
	}
}

// run is the main worker loop.
func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	log := slog.With("worker_id", w.id, "pod_id", w.podID)
	log.Info("Worker started")

	for {
		select {
		case <-w.stopCh:
			log.Info("Worker shutting down")
			return
		case <-ctx.Done():
			log.Info("Context cancelled, worker shutting down")
			return
		default:
			if err := w.pollAndProcess(ctx); err != nil {
				if errors.Is(err, ErrNoSessionsAvailable) || errors.Is(err, ErrAtCapacity) {
					w.sleep(w.pollInterval())
					continue
				}
				log.Error("Error running session", "error", err)
				w.sleep(time.Second) // Brief backoff on error
			}
		}
	}
}

// sleep waits for the given duration or until stop is signalled.
func (w *Worker) sleep(d time.Duration) {
	select {
	case <-w.stopCh:
	case <-time.After(d):
	}
}

// pollAndProcess checks capacity, claims a session, and runs it.
func (w *Worker) pollAndProcess(ctx context.Context) error {
	// Best-effort global capacity check; racy with concurrent workers but
	// bounded by WorkerCount and mitigated by poll jitter.
	activeCount, err := w.client.InvestigationSession.Query().
		Where(investigationsession.StatusEQ(investigationsession.StatusInProgress)).
		Count(ctx)
	if err != nil {
		return fmt.Errorf("checking active sessions: %w", err)
	}
	if activeCount >= w.config.MaxConcurrentSessions {
		return ErrAtCapacity
	}

	session, err := w.claimNextSession(ctx)
	if err != nil {
		return err
	}

	log := slog.With("session_id", session.ID, "worker_id", w.id)
	log.Info("Session claimed", "scenario", session.Scenario)

	w.publishSessionStatus(ctx, session.ID, investigationsession.StatusInProgress)

	w.setStatus(WorkerStatusWorking, session.ID)
	defer w.setStatus(WorkerStatusIdle, "")

	runCtx, cancelRun := context.WithTimeout(ctx, w.config.SessionTimeout)
	defer cancelRun()

	// Register the cooperative cancel token for API-triggered cancellation.
	token := emitter.NewCancelToken()
	w.pool.RegisterSession(session.ID, token)
	defer w.pool.UnregisterSession(session.ID)

	heartbeatCtx, cancelHeartbeat := context.WithCancel(runCtx)
	defer cancelHeartbeat()
	go w.runHeartbeat(heartbeatCtx, session.ID)

	result := w.executor.Execute(runCtx, session, token)

	if result == nil {
		switch {
		case token.Cancelled() || errors.Is(runCtx.Err(), context.Canceled):
			result = &ExecutionResult{Status: investigationsession.StatusCancelled}
		default:
			result = &ExecutionResult{
				Status:      investigationsession.StatusFailed,
				ErrorDetail: "executor returned nil result",
			}
		}
	}

	cancelHeartbeat()

	// Terminal status write uses a background context; the run context may
	// already be cancelled.
	if err := w.finishSession(context.Background(), session.ID, result); err != nil {
		log.Error("Failed to update session terminal status", "error", err)
		return err
	}

	w.publishSessionStatus(context.Background(), session.ID, result.Status)

	w.mu.Lock()
	w.sessionsProcessed++
	w.mu.Unlock()

	log.Info("Session run complete", "status", result.Status)
	return nil
}

// claimNextSession atomically claims the next pending session using
// FOR UPDATE SKIP LOCKED, FIFO by creation time.
func (w *Worker) claimNextSession(ctx context.Context) (*ent.InvestigationSession, error) {
	tx, err := w.client.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	session, err := tx.InvestigationSession.Query().
		Where(investigationsession.StatusEQ(investigationsession.StatusPending)).
		Order(ent.Asc(investigationsession.FieldCreatedAt)).
		Limit(1).
		ForUpdate(sql.WithLockAction(sql.SkipLocked)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNoSessionsAvailable
		}
		return nil, fmt.Errorf("failed to query pending session: %w", err)
	}

	now := time.Now()
	session, err = session.Update().
		SetStatus(investigationsession.StatusInProgress).
		SetPodID(w.podID).
		SetLastInteractionAt(now).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to claim session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}

	return session, nil
}

// runHeartbeat periodically updates last_interaction_at for orphan detection.
func (w *Worker) runHeartbeat(ctx context.Context, sessionID string) {
	ticker := time.NewTicker(w.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.client.InvestigationSession.UpdateOneID(sessionID).
				SetLastInteractionAt(time.Now()).
				Exec(ctx); err != nil {
				slog.Warn("Heartbeat update failed", "session_id", sessionID, "error", err)
			}
		}
	}
}

// finishSession writes the terminal status plus the run footer fields.
func (w *Worker) finishSession(ctx context.Context, sessionID string, result *ExecutionResult) error {
	update := w.client.InvestigationSession.UpdateOneID(sessionID).
		SetStatus(result.Status).
		SetLastInteractionAt(time.Now())

	if result.Meta != nil {
		update = update.SetRunMeta(map[string]any{
			"steps":  result.Meta.Steps,
			"tokens": result.Meta.Tokens,
			"time":   result.Meta.Time,
		})
	}
	if result.ErrorDetail != "" {
		update = update.SetErrorDetail(result.ErrorDetail)
	} else {
		update = update.ClearErrorDetail()
	}

	return update.Exec(ctx)
}

// publishSessionStatus publishes a transient session status change on the
// global channel for dashboard delivery. Errors are logged, not returned.
func (w *Worker) publishSessionStatus(ctx context.Context, sessionID string, status investigationsession.Status) {
	if w.publisher == nil {
		return
	}
	w.publisher.NotifySessionStatus(ctx, sessionID, string(status))
}

// pollInterval returns the poll duration with jitter.
func (w *Worker) pollInterval() time.Duration {
	base := w.config.PollInterval
	jitter := w.config.PollIntervalJitter
	if jitter <= 0 {
		return base
	}
	// Range: [base - jitter, base + jitter]
	offset := time.Duration(rand.Int64N(int64(2 * jitter)))
	return base - jitter + offset
}

// setStatus updates the worker's health tracking state.
func (w *Worker) setStatus(status WorkerStatus, sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
	w.currentSessionID = sessionID
	w.lastActivity = time.Now()
}
