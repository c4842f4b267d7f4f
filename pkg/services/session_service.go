package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
)

// SessionService owns investigation-session records. It is the only
// component that mutates a session's derived fields; the event log itself is
// appended by the events.Publisher under the session's single writer.
type SessionService struct {
	client *ent.Client
}

// NewSessionService creates a new SessionService.
func NewSessionService(client *ent.Client) *SessionService {
	return &SessionService{client: client}
}

// CreateSession creates a new session in the pending state. The input text
// doubles as the implicit first user message during replay, so it is stored
// on the record as alert_text in addition to pending_input.
func (s *SessionService) CreateSession(httpCtx context.Context, req models.CreateSessionRequest) (*ent.InvestigationSession, error) {
	if req.SessionID == "" {
		return nil, NewValidationError("session_id", "required")
	}
	if req.Scenario == "" {
		return nil, NewValidationError("scenario", "required")
	}
	if req.InputText == "" {
		return nil, NewValidationError("input_text", "required")
	}

	// Background context with timeout for the critical write.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := s.client.InvestigationSession.Create().
		SetID(req.SessionID).
		SetScenario(req.Scenario).
		SetStatus(investigationsession.StatusPending).
		SetAlertText(req.InputText).
		SetPendingInput(req.InputText).
		Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ContinueSession queues a follow-up run. The prior run must be terminal:
// the transition back to pending is a single conditional UPDATE, so a
// concurrent follow-up on the same session fails fast with ErrConflict
// instead of interleaving two runs' events into one log.
func (s *SessionService) ContinueSession(httpCtx context.Context, sessionID, inputText string) error {
	if inputText == "" {
		return NewValidationError("text", "required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.client.InvestigationSession.Update().
		Where(
			investigationsession.IDEQ(sessionID),
			investigationsession.StatusIn(
				investigationsession.StatusCompleted,
				investigationsession.StatusFailed,
				investigationsession.StatusCancelled,
			),
		).
		SetStatus(investigationsession.StatusPending).
		SetPendingInput(inputText).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("failed to queue follow-up: %w", err)
	}
	if count > 0 {
		return nil
	}

	exists, err := s.client.InvestigationSession.Query().
		Where(investigationsession.IDEQ(sessionID)).
		Exist(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrConflict
}

// GetSession retrieves a session record by ID.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*ent.InvestigationSession, error) {
	session, err := s.client.InvestigationSession.Get(ctx, sessionID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListSessions lists session summaries with filtering and pagination,
// newest first, without loading event logs.
func (s *SessionService) ListSessions(ctx context.Context, filters models.SessionFilters) (*models.SessionListResponse, error) {
	query := s.client.InvestigationSession.Query()

	if filters.Scenario != "" {
		query = query.Where(investigationsession.ScenarioEQ(filters.Scenario))
	}
	if filters.Status != "" {
		// Comma-separated statuses select the union.
		tokens := strings.Split(filters.Status, ",")
		statuses := make([]investigationsession.Status, len(tokens))
		for i, tok := range tokens {
			statuses[i] = investigationsession.Status(strings.TrimSpace(tok))
		}
		query = query.Where(investigationsession.StatusIn(statuses...))
	}

	totalCount, err := query.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	sessions, err := query.
		Limit(limit).
		Offset(offset).
		Order(ent.Desc(investigationsession.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	summaries := make([]models.SessionSummary, len(sessions))
	for i, sess := range sessions {
		summaries[i] = models.SessionSummary{
			ID:        sess.ID,
			Scenario:  sess.Scenario,
			Status:    string(sess.Status),
			Query:     briefQuery(sess.AlertText),
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
		}
	}

	return &models.SessionListResponse{
		Sessions:   summaries,
		TotalCount: totalCount,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// DeleteSession permanently removes a session and (by cascade) its event log.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	writeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.client.InvestigationSession.DeleteOneID(sessionID).Exec(writeCtx)
	if err != nil {
		if ent.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CancelPending flips a still-queued session straight to cancelled before
// any worker claims it. Returns true if this call performed the transition;
// false means a run is already in flight (or terminal) and cancellation must
// go through the worker pool's registry instead.
func (s *SessionService) CancelPending(ctx context.Context, sessionID string) (bool, error) {
	writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := s.client.InvestigationSession.Update().
		Where(
			investigationsession.IDEQ(sessionID),
			investigationsession.StatusEQ(investigationsession.StatusPending),
		).
		SetStatus(investigationsession.StatusCancelled).
		ClearPendingInput().
		Save(writeCtx)
	if err != nil {
		return false, fmt.Errorf("failed to cancel pending session: %w", err)
	}
	return count > 0, nil
}

// UpdateSessionStatus updates a session's status and its heartbeat field.
func (s *SessionService) UpdateSessionStatus(ctx context.Context, sessionID string, status investigationsession.Status) error {
	writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.client.InvestigationSession.UpdateOneID(sessionID).
		SetStatus(status).
		SetLastInteractionAt(time.Now()).
		Exec(writeCtx)
	if err != nil {
		if ent.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update session status: %w", err)
	}
	return nil
}

// SetThreadID stores the runtime conversation context after the first run
// allocates it. Set once, reused by every follow-up run.
func (s *SessionService) SetThreadID(ctx context.Context, sessionID, threadID string) error {
	err := s.client.InvestigationSession.UpdateOneID(sessionID).
		SetThreadID(threadID).
		Exec(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to set thread id: %w", err)
	}
	return nil
}

// ClearRunState resets per-run derived fields when a new run starts:
// error_detail from a previous failure is cleared, pending_input is consumed.
func (s *SessionService) ClearRunState(ctx context.Context, sessionID string) error {
	err := s.client.InvestigationSession.UpdateOneID(sessionID).
		ClearErrorDetail().
		ClearPendingInput().
		SetLastInteractionAt(time.Now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear run state: %w", err)
	}
	return nil
}

// AppendStepSummary folds one completed tool call into the steps derived
// cache. Reads and rewrites the JSON column; safe because each session has
// a single writer while a run is active.
func (s *SessionService) AppendStepSummary(ctx context.Context, sessionID string, step map[string]any) error {
	session, err := s.client.InvestigationSession.Get(ctx, sessionID)
	if err != nil {
		if ent.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load session for step summary: %w", err)
	}

	steps := append(session.Steps, step)
	err = s.client.InvestigationSession.UpdateOneID(sessionID).
		SetSteps(steps).
		SetLastInteractionAt(time.Now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to append step summary: %w", err)
	}
	return nil
}

// TrimStepSummaries drops the last n entries from the steps derived cache.
// Used when a retried run supersedes tool calls from a failed attempt: replay
// discards them, so the cache must too.
func (s *SessionService) TrimStepSummaries(ctx context.Context, sessionID string, n int) error {
	if n <= 0 {
		return nil
	}

	session, err := s.client.InvestigationSession.Get(ctx, sessionID)
	if err != nil {
		if ent.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load session for step trim: %w", err)
	}

	if n > len(session.Steps) {
		n = len(session.Steps)
	}
	err = s.client.InvestigationSession.UpdateOneID(sessionID).
		SetSteps(session.Steps[:len(session.Steps)-n]).
		SetLastInteractionAt(time.Now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to trim step summaries: %w", err)
	}
	return nil
}

// SetDiagnosis stores the latest completed message text.
func (s *SessionService) SetDiagnosis(ctx context.Context, sessionID, text string) error {
	err := s.client.InvestigationSession.UpdateOneID(sessionID).
		SetDiagnosis(text).
		SetLastInteractionAt(time.Now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set diagnosis: %w", err)
	}
	return nil
}

// FinishRun writes the terminal state of a run: status, optional run
// counters, optional error detail. Partial progress (steps, diagnosis) is
// left untouched — a failed run does not discard what it produced.
func (s *SessionService) FinishRun(ctx context.Context, sessionID string, status investigationsession.Status, runMeta *models.RunMeta, errorDetail string) error {
	writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := s.client.InvestigationSession.UpdateOneID(sessionID).
		SetStatus(status).
		SetLastInteractionAt(time.Now())

	if runMeta != nil {
		update = update.SetRunMeta(map[string]any{
			"steps":  runMeta.Steps,
			"tokens": runMeta.Tokens,
			"time":   runMeta.Time,
		})
	}
	if errorDetail != "" {
		update = update.SetErrorDetail(errorDetail)
	}

	if err := update.Exec(writeCtx); err != nil {
		if ent.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// FindOrphanedSessions finds sessions stuck in-progress past the timeout —
// their owning pod died without writing a terminal status.
func (s *SessionService) FindOrphanedSessions(ctx context.Context, timeout time.Duration) ([]*ent.InvestigationSession, error) {
	threshold := time.Now().Add(-timeout)

	sessions, err := s.client.InvestigationSession.Query().
		Where(
			investigationsession.StatusEQ(investigationsession.StatusInProgress),
			investigationsession.LastInteractionAtNotNil(),
			investigationsession.LastInteractionAtLT(threshold),
		).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find orphaned sessions: %w", err)
	}
	return sessions, nil
}

// DeleteOldSessions removes terminal sessions not touched for the given
// number of days. Event logs cascade with the session rows. Returns the
// number of sessions deleted.
func (s *SessionService) DeleteOldSessions(ctx context.Context, retentionDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	n, err := s.client.InvestigationSession.Delete().
		Where(
			investigationsession.StatusIn(
				investigationsession.StatusCompleted,
				investigationsession.StatusFailed,
				investigationsession.StatusCancelled,
			),
			investigationsession.UpdatedAtLT(cutoff),
		).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old sessions: %w", err)
	}
	return n, nil
}

// briefQuery truncates alert text for list rendering.
func briefQuery(text string) string {
	const max = 120
	if len(text) <= max {
		return text
	}
	return text[:max] + "…"
}
