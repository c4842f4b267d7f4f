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

// TestRecoverableFailureRetries scripts a capacity failure on the first
// attempt and success on the second: the session still completes, the log
// records a retry status, and session.created appears exactly once even
// though both attempts report a thread.
func TestRecoverableFailureRetries(t *testing.T) {
	rt := runtime.NewScriptedRuntime(
		failureScript("capacity", true),
		runtime.SuccessScript("thread-retry", "Load balancer drained the wrong pool during deploy."),
	)
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "5xx burst during deploy window")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 15*time.Second)

	log := app.eventLog(t, sessionID)
	assert.Equal(t, 1, countType(log, events.TypeSessionCreated))
	assert.Equal(t, 1, countType(log, events.TypeRunComplete))
	assert.Zero(t, countType(log, events.TypeError))
	require.GreaterOrEqual(t, countType(log, events.TypeStatus), 1)

	require.Len(t, rt.Calls(), 2)
}

// TestRetryDropsSupersededToolCalls scripts a first attempt that completes a
// tool call before failing recoverably. The retried run starts the turn over,
// so both replay and the steps cache must keep only the successful attempt's
// tool calls.
func TestRetryDropsSupersededToolCalls(t *testing.T) {
	partial := []runtime.Event{
		runtime.ThreadCreated{ThreadID: "thread-partial"},
		runtime.RunStarted{RunID: "run-a"},
		runtime.StepStarted{StepID: "step-1", Agent: "metrics", Query: "packet loss by link"},
		runtime.StepCompleted{StepID: "step-1", Agent: "metrics", Duration: 0.3, Query: "packet loss by link", Response: "uplink-3 dropping 9%"},
		runtime.RunFailed{Message: "provider capacity", Code: "capacity", Recoverable: true},
	}
	rt := runtime.NewScriptedRuntime(partial,
		runtime.SuccessScript("thread-partial", "Checkout pods were failing readiness probes."))
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "checkout 5xx spike")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 15*time.Second)
	require.Len(t, rt.Calls(), 2)

	conv, err := app.Client.Replay(ctx, sessionID)
	require.NoError(t, err)
	replayed := 0
	for _, msg := range conv.Messages {
		replayed += len(msg.ToolCalls)
	}
	assert.Equal(t, 1, replayed)

	detail, err := app.Client.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, detail.Steps, replayed)
	assert.Equal(t, "error rate by service", detail.Steps[0]["query"])
}

// TestNewRunClearsErrorDetail verifies that the error detail left by a failed
// run disappears when a follow-up run starts, not only once it succeeds.
func TestNewRunClearsErrorDetail(t *testing.T) {
	rt := runtime.NewScriptedRuntime(
		failureScript("invalid_request", false),
		runtime.SuccessScript("thread-fail", "Retry after the config rollback succeeded."),
	)
	rt.Delay = 100 * time.Millisecond
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "malformed alert")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusFailed, 15*time.Second)

	detail, err := app.Client.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, detail.ErrorDetail)

	require.NoError(t, app.Client.SendMessage(ctx, sessionID, "try again after rollback"))

	// The stale detail must vanish while the follow-up is still running.
	deadline := time.Now().Add(15 * time.Second)
	cleared := false
	for time.Now().Before(deadline) {
		session, getErr := app.Manager.GetSession(ctx, sessionID)
		require.NoError(t, getErr)
		if session.Status == investigationsession.StatusCompleted {
			break
		}
		if session.Status == investigationsession.StatusInProgress && session.ErrorDetail == nil {
			cleared = true
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	assert.True(t, cleared, "error detail survived into the follow-up run")

	final := app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 15*time.Second)
	assert.Nil(t, final.ErrorDetail)
}

// TestUnrecoverableFailureFails scripts a terminal runtime failure: no retry,
// one error event, session failed with the runtime's message surfaced.
func TestUnrecoverableFailureFails(t *testing.T) {
	rt := runtime.NewScriptedRuntime(failureScript("invalid_request", false))
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "malformed alert")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusFailed, 15*time.Second)

	log := app.eventLog(t, sessionID)
	assert.Equal(t, 1, countType(log, events.TypeError))
	assert.Zero(t, countType(log, events.TypeRunComplete))
	require.Len(t, rt.Calls(), 1)

	detail, err := app.Client.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, detail.ErrorDetail)
	assert.Contains(t, *detail.ErrorDetail, "runtime rejected the run")
}

// TestRetriesExhausted scripts recoverable failures on every attempt: after
// the retry budget is spent the run ends with a terminal error.
func TestRetriesExhausted(t *testing.T) {
	rt := runtime.NewScriptedRuntime(failureScript("rate_limited", true))
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "persistent rate limiting")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusFailed, 15*time.Second)

	log := app.eventLog(t, sessionID)
	// Initial attempt plus two retries.
	require.Len(t, rt.Calls(), 3)
	assert.Equal(t, 2, countType(log, events.TypeStatus))
	assert.Equal(t, 1, countType(log, events.TypeError))
	assert.Equal(t, 1, countType(log, events.TypeSessionCreated))
}
