package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
)

// orphanState tracks orphan detection metrics (thread-safe).
type orphanState struct {
	mu               sync.Mutex
	lastOrphanScan   time.Time
	orphansRecovered int
}

// runOrphanDetection periodically scans for orphaned sessions. All pods run
// this independently; the operations are idempotent.
func (p *WorkerPool) runOrphanDetection(ctx context.Context) {
	ticker := time.NewTicker(p.config.OrphanDetectionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			if err := p.detectAndRecoverOrphans(ctx); err != nil {
				slog.Error("Orphan detection failed", "error", err)
			}
		}
	}
}

// detectAndRecoverOrphans finds in_progress sessions with stale heartbeats
// and fails them over.
func (p *WorkerPool) detectAndRecoverOrphans(ctx context.Context) error {
	threshold := time.Now().Add(-p.config.OrphanThreshold)

	orphans, err := p.client.InvestigationSession.Query().
		Where(
			investigationsession.StatusEQ(investigationsession.StatusInProgress),
			investigationsession.LastInteractionAtNotNil(),
			investigationsession.LastInteractionAtLT(threshold),
		).
		All(ctx)
	if err != nil {
		return fmt.Errorf("failed to query orphaned sessions: %w", err)
	}

	if len(orphans) == 0 {
		p.orphans.mu.Lock()
		p.orphans.lastOrphanScan = time.Now()
		p.orphans.mu.Unlock()
		return nil
	}

	slog.Warn("Detected orphaned sessions", "count", len(orphans))

	recovered := 0
	for _, session := range orphans {
		lastHeartbeat := "unknown"
		if session.LastInteractionAt != nil {
			lastHeartbeat = session.LastInteractionAt.Format(time.RFC3339)
		}
		detail := fmt.Sprintf("orphaned: no heartbeat from pod %s since %s",
			orDefault(session.PodID, "unknown"), lastHeartbeat)
		if err := failOverSession(ctx, p.client, p.publisher, session, detail); err != nil {
			slog.Error("Failed to recover orphaned session",
				"session_id", session.ID,
				"error", err)
			continue
		}
		recovered++
	}

	p.orphans.mu.Lock()
	p.orphans.lastOrphanScan = time.Now()
	p.orphans.orphansRecovered += recovered
	p.orphans.mu.Unlock()

	return nil
}

// CleanupStartupOrphans performs a one-time fail-over of sessions owned by
// this pod that were in progress when the pod previously crashed. Called
// once during startup, before the worker pool begins processing.
func CleanupStartupOrphans(ctx context.Context, client *ent.Client, publisher *events.Publisher, podID string) error {
	orphans, err := client.InvestigationSession.Query().
		Where(
			investigationsession.StatusEQ(investigationsession.StatusInProgress),
			investigationsession.PodIDEQ(podID),
		).
		All(ctx)
	if err != nil {
		return fmt.Errorf("failed to query startup orphans: %w", err)
	}

	if len(orphans) == 0 {
		return nil
	}

	slog.Warn("Found startup orphans from previous run",
		"pod_id", podID,
		"count", len(orphans))

	for _, session := range orphans {
		detail := fmt.Sprintf("orphaned: pod %s restarted while the run was in progress", podID)
		if err := failOverSession(ctx, client, publisher, session, detail); err != nil {
			slog.Error("Failed to mark startup orphan",
				"session_id", session.ID,
				"error", err)
			continue
		}
		slog.Info("Startup orphan recovered", "session_id", session.ID)
	}

	return nil
}

// failOverSession moves one orphaned session to failed. A terminal error
// event goes into the log first so stream consumers and replay both see the
// run end; partial steps and diagnosis stay untouched.
func failOverSession(ctx context.Context, client *ent.Client, publisher *events.Publisher, session *ent.InvestigationSession, detail string) error {
	if publisher != nil {
		if _, err := publisher.Append(ctx, session.ID, events.New(events.ErrorPayload{
			Message: detail,
			Code:    "orphaned",
		})); err != nil {
			slog.Warn("Failed to append orphan error event",
				"session_id", session.ID, "error", err)
		}
	}

	err := session.Update().
		SetStatus(investigationsession.StatusFailed).
		SetErrorDetail(detail).
		SetLastInteractionAt(time.Now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark session as failed: %w", err)
	}

	if publisher != nil {
		publisher.NotifySessionStatus(ctx, session.ID, string(investigationsession.StatusFailed))
	}
	return nil
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
