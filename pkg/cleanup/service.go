// Package cleanup provides data retention enforcement.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
)

// Service periodically deletes terminal sessions past the retention window.
// Event logs cascade with the session rows, so one delete covers both.
// Deletion is idempotent and safe to run from multiple pods.
type Service struct {
	config         *config.RetentionConfig
	sessionService *services.SessionService

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a new cleanup service.
func NewService(cfg *config.RetentionConfig, sessionService *services.SessionService) *Service {
	return &Service{
		config:         cfg,
		sessionService: sessionService,
	}
}

// Start launches the background cleanup loop.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("Cleanup service started",
		"session_retention_days", s.config.SessionRetentionDays,
		"interval", s.config.CleanupInterval)
}

// Stop signals the cleanup loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("Cleanup service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.deleteOldSessions(ctx)

	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.deleteOldSessions(ctx)
		}
	}
}

func (s *Service) deleteOldSessions(ctx context.Context) {
	count, err := s.sessionService.DeleteOldSessions(ctx, s.config.SessionRetentionDays)
	if err != nil {
		slog.Error("Retention: session deletion failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Retention: deleted old sessions", "count", count)
	}
}
