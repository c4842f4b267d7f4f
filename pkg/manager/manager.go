// Package manager owns the session lifecycle: it is the only component that
// creates, continues, cancels, or deletes sessions. Runs themselves are
// executed by the queue's worker pool; the manager's start/continue calls
// only enqueue work and return immediately.
package manager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
)

// Canceller is the subset of the worker pool the manager needs: flip the
// cancel token of an in-flight run on this pod.
type Canceller interface {
	CancelSession(sessionID string) bool
}

// SessionManager coordinates session operations across the services layer
// and the worker pool.
type SessionManager struct {
	sessions  *services.SessionService
	events    *services.EventService
	scenarios *config.ScenarioRegistry
	pool      Canceller
}

// New creates a SessionManager.
func New(sessions *services.SessionService, events *services.EventService, scenarios *config.ScenarioRegistry, pool Canceller) *SessionManager {
	return &SessionManager{
		sessions:  sessions,
		events:    events,
		scenarios: scenarios,
		pool:      pool,
	}
}

// Start creates a new session in pending state and returns its id
// immediately; a worker claims and runs it in the background, observable
// via the event stream.
func (m *SessionManager) Start(ctx context.Context, scenario, inputText string) (string, error) {
	if _, ok := m.scenarios.Get(scenario); !ok {
		return "", services.NewValidationError("scenario", fmt.Sprintf("unknown scenario %q", scenario))
	}

	sessionID := uuid.NewString()
	_, err := m.sessions.CreateSession(ctx, models.CreateSessionRequest{
		SessionID: sessionID,
		Scenario:  scenario,
		InputText: inputText,
	})
	if err != nil {
		return "", err
	}

	slog.Info("Session started", "session_id", sessionID, "scenario", scenario)
	return sessionID, nil
}

// Continue queues a follow-up run on an existing session. The prior run
// must be terminal; a session with a run in progress fails with
// services.ErrConflict and no event is appended.
func (m *SessionManager) Continue(ctx context.Context, sessionID, inputText string) error {
	if err := m.sessions.ContinueSession(ctx, sessionID, inputText); err != nil {
		return err
	}
	slog.Info("Session continued", "session_id", sessionID)
	return nil
}

// Cancel requests cancellation of the session's in-flight run. A still
// pending (unclaimed) run is cancelled directly; a claimed run gets its
// cancel token flipped and winds down at the emitter's next checkpoint.
// No-ops when no run is in progress.
func (m *SessionManager) Cancel(ctx context.Context, sessionID string) error {
	session, err := m.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	switch session.Status {
	case investigationsession.StatusPending:
		cancelled, err := m.sessions.CancelPending(ctx, sessionID)
		if err != nil {
			return err
		}
		if cancelled {
			slog.Info("Pending session cancelled before claim", "session_id", sessionID)
			return nil
		}
		// Lost the race with a worker claim; fall through to the token.
		fallthrough
	case investigationsession.StatusInProgress:
		if m.pool.CancelSession(sessionID) {
			slog.Info("Cancellation requested for running session", "session_id", sessionID)
		} else {
			slog.Warn("Cancellation requested but run is not on this pod", "session_id", sessionID)
		}
		return nil
	default:
		// Terminal: nothing to cancel.
		return nil
	}
}

// Get returns the full persisted record including the event log, the shape
// a client replays from.
func (m *SessionManager) Get(ctx context.Context, sessionID string) (*models.SessionDetail, error) {
	session, err := m.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	log, err := m.events.GetEventLog(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &models.SessionDetail{InvestigationSession: session, EventLog: log}, nil
}

// GetSession returns the session record without its event log.
func (m *SessionManager) GetSession(ctx context.Context, sessionID string) (*ent.InvestigationSession, error) {
	return m.sessions.GetSession(ctx, sessionID)
}

// List returns lightweight session summaries, optionally filtered.
func (m *SessionManager) List(ctx context.Context, filters models.SessionFilters) (*models.SessionListResponse, error) {
	return m.sessions.ListSessions(ctx, filters)
}

// Delete removes the session permanently; the event log cascades.
func (m *SessionManager) Delete(ctx context.Context, sessionID string) error {
	if err := m.sessions.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	slog.Info("Session deleted", "session_id", sessionID)
	return nil
}
