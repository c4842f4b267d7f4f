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

// TestCancellationMidRun cancels an in-progress run. Cancellation is
// cooperative: the in-flight attempt is allowed to finish streaming, and the
// run then ends with a "cancelling" status instead of retrying.
func TestCancellationMidRun(t *testing.T) {
	// No RunCompleted: the stream ends mid-run, which without a cancel
	// request would be a retryable truncation.
	script := []runtime.Event{
		runtime.ThreadCreated{ThreadID: "thread-cn"},
		runtime.RunStarted{RunID: "run-cn"},
		runtime.StepStarted{StepID: "s1", Agent: "metrics", Query: "per-AZ latency"},
		runtime.StepCompleted{StepID: "s1", Agent: "metrics", Duration: 0.3, Query: "per-AZ latency", Response: "us-east-1a p99 at 4s"},
	}
	rt := runtime.NewScriptedRuntime(script)
	rt.Delay = 150 * time.Millisecond
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "latency spike in one AZ")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusInProgress, 10*time.Second)

	require.NoError(t, app.Client.CancelSession(ctx, sessionID))
	app.waitForStatus(t, sessionID, investigationsession.StatusCancelled, 15*time.Second)

	log := app.eventLog(t, sessionID)
	require.NotEmpty(t, log)
	assert.Zero(t, countType(log, events.TypeRunComplete))
	assert.Zero(t, countType(log, events.TypeError), "a cancelled run must not be reported as failed")

	last := log[len(log)-1]
	require.Equal(t, events.TypeStatus, last.EventType)
	assert.Equal(t, "cancelling", last.Payload["message"])

	// The stream the runtime did deliver is preserved in full.
	assert.Equal(t, 1, countType(log, events.TypeToolCallComplete))
}

// TestCancelPendingSession cancels a session that is still queued: no run
// ever starts and no runtime call is made.
func TestCancelPendingSession(t *testing.T) {
	// A worker poll interval of 100ms leaves a window, but not a reliable
	// one, so park the only worker on a decoy session first.
	rt := runtime.NewScriptedRuntime(runtime.SuccessScript("thread-decoy", "decoy"))
	rt.Delay = 300 * time.Millisecond
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	decoyID, err := app.Client.CreateSession(ctx, "network-triage", "decoy alert")
	require.NoError(t, err)
	app.waitForStatus(t, decoyID, investigationsession.StatusInProgress, 10*time.Second)

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "second alert")
	require.NoError(t, err)
	require.NoError(t, app.Client.CancelSession(ctx, sessionID))
	app.waitForStatus(t, sessionID, investigationsession.StatusCancelled, 5*time.Second)

	detail, err := app.Client.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, detail.EventLog)

	app.waitForStatus(t, decoyID, investigationsession.StatusCompleted, 15*time.Second)
	for _, call := range rt.Calls() {
		assert.Equal(t, "decoy alert", call.InputText)
	}
}
