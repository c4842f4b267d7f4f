package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/queue"
)

// TestStartupOrphanRecovery simulates a pod crash: an in_progress session
// owned by a pod that restarts is failed over on startup, with a terminal
// error event appended so replay and stream consumers see the run end.
func TestStartupOrphanRecovery(t *testing.T) {
	app := NewTestApp(t)
	ctx := context.Background()

	sessionID := uuid.NewString()
	_, err := app.EntClient.InvestigationSession.Create().
		SetID(sessionID).
		SetScenario("network-triage").
		SetStatus(investigationsession.StatusInProgress).
		SetAlertText("core router unreachable").
		SetPodID("pod-crashed").
		SetLastInteractionAt(time.Now().Add(-time.Hour)).
		Save(ctx)
	require.NoError(t, err)

	require.NoError(t, queue.CleanupStartupOrphans(ctx, app.EntClient, app.Publisher, "pod-crashed"))

	detail, err := app.Client.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, investigationsession.StatusFailed, detail.Status)
	require.NotNil(t, detail.ErrorDetail)
	assert.Contains(t, *detail.ErrorDetail, "orphaned")

	require.Len(t, detail.EventLog, 1)
	entry := detail.EventLog[0]
	assert.Equal(t, events.TypeError, entry.EventType)
	assert.Equal(t, "orphaned", entry.Payload["code"])

	// A session owned by a different pod is untouched.
	otherID := uuid.NewString()
	_, err = app.EntClient.InvestigationSession.Create().
		SetID(otherID).
		SetScenario("network-triage").
		SetStatus(investigationsession.StatusInProgress).
		SetAlertText("unrelated alert").
		SetPodID("pod-alive").
		SetLastInteractionAt(time.Now()).
		Save(ctx)
	require.NoError(t, err)

	require.NoError(t, queue.CleanupStartupOrphans(ctx, app.EntClient, app.Publisher, "pod-crashed"))
	other, err := app.Client.GetSession(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, investigationsession.StatusInProgress, other.Status)
}
