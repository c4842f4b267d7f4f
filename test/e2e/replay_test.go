package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/conversation"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

// TestReplayEquivalence verifies the core state-machine property across the
// whole stack: folding the persisted log offline produces a Conversation
// structurally equal to the one built from the live stream.
func TestReplayEquivalence(t *testing.T) {
	app := NewTestApp(t, WithRuntime(runtime.NewScriptedRuntime(
		runtime.SuccessScript("thread-eq", "The BGP session to the upstream flapped."),
	)))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "intermittent packet loss")
	require.NoError(t, err)

	live := conversation.New(sessionID)
	streamCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	_, err = app.Client.Follow(streamCtx, sessionID, live, -1)
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 10*time.Second)

	replayed, err := app.Client.Replay(ctx, sessionID)
	require.NoError(t, err)

	// Streaming and Closed are live-only transients (done never persists);
	// clear them before comparing.
	live.Streaming = false
	live.Closed = false
	require.Equal(t, live, replayed)
}

// TestReplayEquivalence_FailedRun covers replay of a log whose tail is an
// error event: the errored assistant turn and its completed tool calls must
// survive replay identically.
func TestReplayEquivalence_FailedRun(t *testing.T) {
	script := []runtime.Event{
		runtime.ThreadCreated{ThreadID: "thread-err"},
		runtime.RunStarted{RunID: "run-err"},
		runtime.StepStarted{StepID: "s1", Agent: "metrics", Query: "interface counters"},
		runtime.StepCompleted{StepID: "s1", Agent: "metrics", Duration: 0.2, Query: "interface counters", Response: "CRC errors climbing"},
		runtime.RunFailed{Message: "model provider unavailable", Code: "provider_down", Recoverable: false},
	}
	app := NewTestApp(t, WithRuntime(runtime.NewScriptedRuntime(script)))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "link errors on core switch")
	require.NoError(t, err)

	live := conversation.New(sessionID)
	streamCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	_, err = app.Client.Follow(streamCtx, sessionID, live, -1)
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusFailed, 10*time.Second)

	replayed, err := app.Client.Replay(ctx, sessionID)
	require.NoError(t, err)

	live.Streaming = false
	live.Closed = false
	require.Equal(t, live, replayed)

	// Partial results stay visible on the errored turn.
	assistant := replayed.Messages[len(replayed.Messages)-1]
	assert.Equal(t, conversation.MessageErrored, assistant.Status)
	assert.Contains(t, assistant.Error, "provider unavailable")
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, conversation.ToolCallComplete, assistant.ToolCalls[0].Status)
}
