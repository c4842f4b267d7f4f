package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
	testdb "github.com/sentientmobilefurniture/faultline/test/database"
)

func TestCleanupDeletesExpiredSessions(t *testing.T) {
	client := testdb.NewTestClient(t)
	sessionService := services.NewSessionService(client.Client)
	ctx := context.Background()

	mk := func(status investigationsession.Status, age time.Duration) string {
		id := uuid.New().String()
		_, err := sessionService.CreateSession(ctx, models.CreateSessionRequest{
			SessionID: id, Scenario: "network-triage", InputText: "alert",
		})
		require.NoError(t, err)
		require.NoError(t, client.InvestigationSession.UpdateOneID(id).
			SetStatus(status).
			SetUpdatedAt(time.Now().Add(-age)).
			Exec(ctx))
		return id
	}

	expired := mk(investigationsession.StatusCompleted, 72*time.Hour)
	active := mk(investigationsession.StatusInProgress, 72*time.Hour)
	recent := mk(investigationsession.StatusFailed, time.Hour)

	svc := NewService(&config.RetentionConfig{
		SessionRetentionDays: 1,
		CleanupInterval:      time.Hour, // initial pass only
	}, sessionService)
	svc.Start(ctx)
	defer svc.Stop()

	// The initial pass runs on start; poll until it lands.
	require.Eventually(t, func() bool {
		_, err := sessionService.GetSession(ctx, expired)
		return err != nil
	}, 5*time.Second, 50*time.Millisecond, "expired session should be deleted")

	_, err := sessionService.GetSession(ctx, active)
	assert.NoError(t, err, "non-terminal sessions are never reaped")
	_, err = sessionService.GetSession(ctx, recent)
	assert.NoError(t, err, "sessions inside the retention window survive")
}

func TestCleanupStartStop(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewService(&config.RetentionConfig{
		SessionRetentionDays: 1,
		CleanupInterval:      time.Hour,
	}, services.NewSessionService(client.Client))

	svc.Start(context.Background())
	svc.Start(context.Background()) // second start is a no-op
	svc.Stop()
	svc.Stop() // second stop is a no-op
}
