package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
	testdb "github.com/sentientmobilefurniture/faultline/test/database"
)

func TestSessionService_CreateSession(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	t.Run("creates pending session with input stored twice", func(t *testing.T) {
		req := models.CreateSessionRequest{
			SessionID: uuid.New().String(),
			Scenario:  "network-triage",
			InputText: "checkout error rate above 30%",
		}

		session, err := service.CreateSession(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, req.SessionID, session.ID)
		assert.Equal(t, investigationsession.StatusPending, session.Status)
		// Stored as the replayable first user message and as the queued input.
		assert.Equal(t, req.InputText, session.AlertText)
		assert.Equal(t, req.InputText, session.PendingInput)
		assert.Nil(t, session.ThreadID)
	})

	t.Run("validates required fields", func(t *testing.T) {
		_, err := service.CreateSession(ctx, models.CreateSessionRequest{
			Scenario: "network-triage", InputText: "x",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)

		_, err = service.CreateSession(ctx, models.CreateSessionRequest{
			SessionID: uuid.New().String(), InputText: "x",
		})
		require.ErrorAs(t, err, &verr)

		_, err = service.CreateSession(ctx, models.CreateSessionRequest{
			SessionID: uuid.New().String(), Scenario: "network-triage",
		})
		require.ErrorAs(t, err, &verr)
	})

	t.Run("rejects duplicate session id", func(t *testing.T) {
		req := models.CreateSessionRequest{
			SessionID: uuid.New().String(),
			Scenario:  "network-triage",
			InputText: "dup",
		}
		_, err := service.CreateSession(ctx, req)
		require.NoError(t, err)
		_, err = service.CreateSession(ctx, req)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestSessionService_ContinueSession(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	create := func(t *testing.T) string {
		id := uuid.New().String()
		_, err := service.CreateSession(ctx, models.CreateSessionRequest{
			SessionID: id, Scenario: "network-triage", InputText: "initial alert",
		})
		require.NoError(t, err)
		return id
	}

	t.Run("queues follow-up on terminal session", func(t *testing.T) {
		id := create(t)
		require.NoError(t, service.FinishRun(ctx, id, investigationsession.StatusCompleted, nil, ""))

		require.NoError(t, service.ContinueSession(ctx, id, "what changed?"))

		session, err := service.GetSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, investigationsession.StatusPending, session.Status)
		assert.Equal(t, "what changed?", session.PendingInput)
		// The original alert is untouched.
		assert.Equal(t, "initial alert", session.AlertText)
	})

	t.Run("conflicts while a run is active", func(t *testing.T) {
		id := create(t)
		for _, status := range []investigationsession.Status{
			investigationsession.StatusPending,
			investigationsession.StatusInProgress,
		} {
			require.NoError(t, service.UpdateSessionStatus(ctx, id, status))
			err := service.ContinueSession(ctx, id, "follow-up")
			assert.ErrorIs(t, err, ErrConflict, "status %s", status)
		}
	})

	t.Run("not found", func(t *testing.T) {
		err := service.ContinueSession(ctx, uuid.New().String(), "hello")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("validates text", func(t *testing.T) {
		id := create(t)
		err := service.ContinueSession(ctx, id, "")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestSessionService_CancelPending(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	id := uuid.New().String()
	_, err := service.CreateSession(ctx, models.CreateSessionRequest{
		SessionID: id, Scenario: "network-triage", InputText: "alert",
	})
	require.NoError(t, err)

	cancelled, err := service.CancelPending(ctx, id)
	require.NoError(t, err)
	assert.True(t, cancelled)

	session, err := service.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, investigationsession.StatusCancelled, session.Status)
	assert.Empty(t, session.PendingInput)

	// A second attempt loses: the session is no longer pending.
	cancelled, err = service.CancelPending(ctx, id)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestSessionService_FinishRun(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	id := uuid.New().String()
	_, err := service.CreateSession(ctx, models.CreateSessionRequest{
		SessionID: id, Scenario: "network-triage", InputText: "alert",
	})
	require.NoError(t, err)

	t.Run("success writes meta", func(t *testing.T) {
		require.NoError(t, service.AppendStepSummary(ctx, id, map[string]any{"agent": "metrics"}))
		require.NoError(t, service.SetDiagnosis(ctx, id, "pool exhausted"))
		require.NoError(t, service.FinishRun(ctx, id, investigationsession.StatusCompleted,
			&models.RunMeta{Steps: 2, Tokens: 100, Time: 1.5}, ""))

		session, err := service.GetSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, investigationsession.StatusCompleted, session.Status)
		assert.EqualValues(t, 2, session.RunMeta["steps"])
		require.NotNil(t, session.Diagnosis)
		assert.Equal(t, "pool exhausted", *session.Diagnosis)
		assert.NotNil(t, session.LastInteractionAt)
	})

	t.Run("failure keeps partial progress", func(t *testing.T) {
		require.NoError(t, service.FinishRun(ctx, id, investigationsession.StatusFailed, nil, "runtime gone"))

		session, err := service.GetSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, investigationsession.StatusFailed, session.Status)
		require.NotNil(t, session.ErrorDetail)
		assert.Equal(t, "runtime gone", *session.ErrorDetail)
		assert.Len(t, session.Steps, 1)
		require.NotNil(t, session.Diagnosis)
	})

	t.Run("clear run state drops error detail", func(t *testing.T) {
		require.NoError(t, service.ClearRunState(ctx, id))
		session, err := service.GetSession(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, session.ErrorDetail)
		assert.Empty(t, session.PendingInput)
	})

	t.Run("not found", func(t *testing.T) {
		err := service.FinishRun(ctx, uuid.New().String(), investigationsession.StatusCompleted, nil, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSessionService_ListSessions(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	mk := func(scenario string, status investigationsession.Status) string {
		id := uuid.New().String()
		_, err := service.CreateSession(ctx, models.CreateSessionRequest{
			SessionID: id, Scenario: scenario, InputText: "alert for " + scenario,
		})
		require.NoError(t, err)
		if status != investigationsession.StatusPending {
			require.NoError(t, service.UpdateSessionStatus(ctx, id, status))
		}
		return id
	}

	mk("network-triage", investigationsession.StatusCompleted)
	mk("network-triage", investigationsession.StatusPending)
	mk("capacity-review", investigationsession.StatusCompleted)
	mk("capacity-review", investigationsession.StatusFailed)

	t.Run("filter by scenario", func(t *testing.T) {
		resp, err := service.ListSessions(ctx, models.SessionFilters{Scenario: "capacity-review"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalCount)
		require.Len(t, resp.Sessions, 2)
		assert.Equal(t, "capacity-review", resp.Sessions[0].Scenario)
	})

	t.Run("filter by status", func(t *testing.T) {
		resp, err := service.ListSessions(ctx, models.SessionFilters{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalCount)
	})

	t.Run("filter by multiple statuses", func(t *testing.T) {
		resp, err := service.ListSessions(ctx, models.SessionFilters{Status: "completed,failed"})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalCount)
		for _, sess := range resp.Sessions {
			assert.Contains(t, []string{"completed", "failed"}, sess.Status)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := service.ListSessions(ctx, models.SessionFilters{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.TotalCount)
		assert.Len(t, resp.Sessions, 2)

		resp, err = service.ListSessions(ctx, models.SessionFilters{Limit: 3, Offset: 3})
		require.NoError(t, err)
		assert.Len(t, resp.Sessions, 1)
	})
}

func TestSessionService_DeleteSession(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	id := uuid.New().String()
	_, err := service.CreateSession(ctx, models.CreateSessionRequest{
		SessionID: id, Scenario: "network-triage", InputText: "alert",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSession(ctx, id))
	_, err = service.GetSession(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, service.DeleteSession(ctx, id), ErrNotFound)
}

func TestSessionService_DeleteOldSessions(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	mk := func(status investigationsession.Status, age time.Duration) string {
		id := uuid.New().String()
		_, err := service.CreateSession(ctx, models.CreateSessionRequest{
			SessionID: id, Scenario: "network-triage", InputText: "alert",
		})
		require.NoError(t, err)
		require.NoError(t, client.InvestigationSession.UpdateOneID(id).
			SetStatus(status).
			SetUpdatedAt(time.Now().Add(-age)).
			Exec(ctx))
		return id
	}

	oldCompleted := mk(investigationsession.StatusCompleted, 48*time.Hour)
	oldInProgress := mk(investigationsession.StatusInProgress, 48*time.Hour)
	freshCompleted := mk(investigationsession.StatusCompleted, time.Hour)

	n, err := service.DeleteOldSessions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = service.GetSession(ctx, oldCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
	// Non-terminal and recent sessions survive regardless of age.
	_, err = service.GetSession(ctx, oldInProgress)
	assert.NoError(t, err)
	_, err = service.GetSession(ctx, freshCompleted)
	assert.NoError(t, err)
}

func TestSessionService_FindOrphanedSessions(t *testing.T) {
	client := testdb.NewTestClient(t)
	service := NewSessionService(client.Client)
	ctx := context.Background()

	stale := uuid.New().String()
	_, err := service.CreateSession(ctx, models.CreateSessionRequest{
		SessionID: stale, Scenario: "network-triage", InputText: "alert",
	})
	require.NoError(t, err)
	require.NoError(t, client.InvestigationSession.UpdateOneID(stale).
		SetStatus(investigationsession.StatusInProgress).
		SetLastInteractionAt(time.Now().Add(-time.Hour)).
		Exec(ctx))

	healthy := uuid.New().String()
	_, err = service.CreateSession(ctx, models.CreateSessionRequest{
		SessionID: healthy, Scenario: "network-triage", InputText: "alert",
	})
	require.NoError(t, err)
	require.NoError(t, client.InvestigationSession.UpdateOneID(healthy).
		SetStatus(investigationsession.StatusInProgress).
		SetLastInteractionAt(time.Now()).
		Exec(ctx))

	orphans, err := service.FindOrphanedSessions(ctx, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, stale, orphans[0].ID)
}
