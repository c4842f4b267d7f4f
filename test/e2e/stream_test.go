package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

// TestStreamEndsWhenReplayTailIsTerminal covers the window where the run's
// terminal event is already in the log but the status row still reads
// in_progress: a stream opened inside that window must end with done right
// after replay instead of waiting on a notification that already fired.
func TestStreamEndsWhenReplayTailIsTerminal(t *testing.T) {
	rt := runtime.NewScriptedRuntime(runtime.SuccessScript("thread-window", "DNS TTL change propagated mid-incident."))
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "resolver timeouts after TTL change")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 15*time.Second)

	// Put the status row back to its pre-commit state; the log keeps the
	// run.complete event.
	require.NoError(t, app.EntClient.InvestigationSession.UpdateOneID(sessionID).
		SetStatus(investigationsession.StatusInProgress).
		Exec(ctx))

	streamCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var types []string
	err = app.Client.Stream(streamCtx, sessionID, 0, func(ev events.Event) error {
		types = append(types, ev.Type())
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, types)
	assert.Contains(t, types, events.TypeRunComplete)
	assert.Equal(t, events.TypeDone, types[len(types)-1])
}
