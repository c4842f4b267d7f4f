package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
	testdb "github.com/sentientmobilefurniture/faultline/test/database"
)

func TestEventService_Log(t *testing.T) {
	client := testdb.NewTestClient(t)
	sessions := NewSessionService(client.Client)
	service := NewEventService(client.Client)
	publisher := events.NewPublisher(client.DB())
	ctx := context.Background()

	sessionID := uuid.New().String()
	_, err := sessions.CreateSession(ctx, models.CreateSessionRequest{
		SessionID: sessionID, Scenario: "network-triage", InputText: "alert",
	})
	require.NoError(t, err)

	payloads := []events.Payload{
		events.SessionCreatedPayload{ThreadID: "thread-1"},
		events.RunStartPayload{RunID: "run-1", InputText: "alert"},
		events.StatusPayload{Message: "retrying after recoverable error (attempt 2 of 3): capacity"},
		events.RunCompletePayload{Steps: 0, Tokens: 10, Time: 0.5},
	}
	for i, p := range payloads {
		offset, err := publisher.Append(ctx, sessionID, events.New(p))
		require.NoError(t, err)
		assert.Equal(t, i, offset, "offsets are dense from zero")
	}

	t.Run("next offset", func(t *testing.T) {
		next, err := service.NextOffset(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, len(payloads), next)
	})

	t.Run("full log in order", func(t *testing.T) {
		log, err := service.GetEventLog(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, log, len(payloads))
		for i, entry := range log {
			assert.Equal(t, i, entry.Offset)
			assert.Equal(t, payloads[i].EventType(), entry.EventType)
		}
		assert.Equal(t, "thread-1", log[0].Payload["thread_id"])
	})

	t.Run("since filters and limits", func(t *testing.T) {
		evts, err := service.GetEventsSince(ctx, sessionID, 2, 0)
		require.NoError(t, err)
		require.Len(t, evts, 2)
		assert.Equal(t, 2, evts[0].Offset)
		assert.Equal(t, events.TypeStatus, evts[0].EventType)

		evts, err = service.GetEventsSince(ctx, sessionID, 1, 1)
		require.NoError(t, err)
		require.Len(t, evts, 1)
		assert.Equal(t, 1, evts[0].Offset)
	})

	t.Run("since past the end is empty", func(t *testing.T) {
		evts, err := service.GetEventsSince(ctx, sessionID, 100, 0)
		require.NoError(t, err)
		assert.Empty(t, evts)
	})

	t.Run("unknown session has empty log", func(t *testing.T) {
		log, err := service.GetEventLog(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Empty(t, log)
	})
}

func TestEventService_OffsetsIsolatedPerSession(t *testing.T) {
	client := testdb.NewTestClient(t)
	sessions := NewSessionService(client.Client)
	publisher := events.NewPublisher(client.DB())
	ctx := context.Background()

	var ids []string
	for i := 0; i < 2; i++ {
		id := uuid.New().String()
		_, err := sessions.CreateSession(ctx, models.CreateSessionRequest{
			SessionID: id, Scenario: "network-triage", InputText: "alert",
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for _, id := range ids {
		offset, err := publisher.Append(ctx, id, events.New(events.StatusPayload{Message: "hello"}))
		require.NoError(t, err)
		assert.Equal(t, 0, offset, "each session's log starts at zero")
	}
}
