// Package queue provides the worker pool that claims pending investigation
// sessions and drives their runs to a terminal state.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/emitter"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
)

// Sentinel errors for queue operations.
var (
	// ErrNoSessionsAvailable indicates no pending sessions are in the queue.
	ErrNoSessionsAvailable = errors.New("no sessions available")

	// ErrAtCapacity indicates the global concurrent session limit has been reached.
	ErrAtCapacity = errors.New("at capacity")
)

// RunExecutor drives one claimed session's run to completion.
//
// The executor owns the run lifecycle internally: it calls the emitter,
// appends every canonical event to the session's log as it arrives, and
// updates the derived cache fields progressively. The worker only handles
// claiming, heartbeat, cancellation registration, and the terminal status
// write. The cancel token is the cooperative signal flipped by the API's
// cancel endpoint.
type RunExecutor interface {
	Execute(ctx context.Context, session *ent.InvestigationSession, cancel *emitter.CancelToken) *ExecutionResult
}

// ExecutionResult is just the terminal state; all intermediate state was
// already written progressively by the executor.
type ExecutionResult struct {
	Status      investigationsession.Status // completed, failed, cancelled
	Meta        *models.RunMeta             // run counters, if completed
	ErrorDetail string                      // error text, if failed
}

// PoolHealth contains health information for the entire worker pool.
type PoolHealth struct {
	IsHealthy        bool           `json:"is_healthy"`
	DBReachable      bool           `json:"db_reachable"`
	DBError          string         `json:"db_error,omitempty"`
	PodID            string         `json:"pod_id"`
	ActiveWorkers    int            `json:"active_workers"`
	TotalWorkers     int            `json:"total_workers"`
	ActiveSessions   int            `json:"active_sessions"`
	MaxConcurrent    int            `json:"max_concurrent"`
	QueueDepth       int            `json:"queue_depth"`
	WorkerStats      []WorkerHealth `json:"worker_stats"`
	LastOrphanScan   time.Time      `json:"last_orphan_scan"`
	OrphansRecovered int            `json:"orphans_recovered"`
}

// WorkerHealth contains health information for a single worker.
type WorkerHealth struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"` // "idle" or "working"
	CurrentSessionID  string    `json:"current_session_id,omitempty"`
	SessionsProcessed int       `json:"sessions_processed"`
	LastActivity      time.Time `json:"last_activity"`
}
