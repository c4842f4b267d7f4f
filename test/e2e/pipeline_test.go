package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/conversation"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

// TestPipeline_HappyPath drives a full investigation through the worker
// pool and verifies the persisted record, the derived cache fields, and the
// streamed conversation.
func TestPipeline_HappyPath(t *testing.T) {
	app := NewTestApp(t, WithRuntime(runtime.NewScriptedRuntime(
		runtime.SuccessScript("thread-1", "Checkout is failing because the payment pool is exhausted."),
	)))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "checkout error rate above 30%")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	// Follow the live stream into a conversation until the server ends it.
	conv := conversation.New(sessionID)
	streamCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	lastSeen, err := app.Client.Follow(streamCtx, sessionID, conv, -1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lastSeen, 0)

	session := app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 10*time.Second)

	// Derived cache fields.
	require.NotNil(t, session.ThreadID)
	assert.Equal(t, "thread-1", *session.ThreadID)
	require.NotNil(t, session.Diagnosis)
	assert.Contains(t, *session.Diagnosis, "payment pool")
	require.Len(t, session.Steps, 1)
	require.NotNil(t, session.RunMeta)
	assert.EqualValues(t, 1, session.RunMeta["steps"])

	// Conversation shape: one user turn, one completed assistant turn.
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, conversation.KindUser, conv.Messages[0].Kind)
	assert.Equal(t, "checkout error rate above 30%", conv.Messages[0].Text)

	assistant := conv.Messages[1]
	assert.Equal(t, conversation.KindAssistant, assistant.Kind)
	assert.Equal(t, conversation.MessageDone, assistant.Status)
	assert.Contains(t, assistant.Text, "payment pool")
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, conversation.ToolCallComplete, assistant.ToolCalls[0].Status)
	assert.Equal(t, "metrics", assistant.ToolCalls[0].Agent)
	require.NotNil(t, assistant.Meta)
	assert.Equal(t, 1, assistant.Meta.Steps)

	// Log shape: canonical order, terminal run.complete.
	log := app.eventLog(t, sessionID)
	types := logTypes(log)
	assert.Equal(t, []string{
		events.TypeSessionCreated,
		events.TypeRunStart,
		events.TypeToolCallStart,
		events.TypeToolCallComplete,
		events.TypeMessageStart,
		events.TypeMessageDelta,
		events.TypeMessageDelta,
		events.TypeMessageComplete,
		events.TypeRunComplete,
	}, types)
}

// TestPipeline_OffsetsAreGapFree verifies the append-only log numbering:
// offsets start at zero and increase by exactly one.
func TestPipeline_OffsetsAreGapFree(t *testing.T) {
	app := NewTestApp(t)
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "packet loss on the uplink")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 10*time.Second)

	log := app.eventLog(t, sessionID)
	require.NotEmpty(t, log)
	for i, entry := range log {
		assert.Equal(t, i, entry.Offset, "offset gap at log index %d", i)
	}
}

// TestPipeline_UnknownScenarioRejected verifies validation happens before
// any session row is created.
func TestPipeline_UnknownScenarioRejected(t *testing.T) {
	app := NewTestApp(t)

	_, err := app.Client.CreateSession(context.Background(), "no-such-scenario", "help")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")

	sessions, err := app.Client.ListSessions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
