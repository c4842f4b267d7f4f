package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/pkg/events"
)

func happyRun() []events.Payload {
	return []events.Payload{
		events.SessionCreatedPayload{ThreadID: "thread-1"},
		events.RunStartPayload{RunID: "run-1", InputText: "why is checkout failing?"},
		events.ToolCallStartPayload{ID: "tc-1", Step: 1, Agent: "metrics", Query: "5xx by service"},
		events.ToolCallCompletePayload{ID: "tc-1", Step: 1, Agent: "metrics", Duration: 0.4, Query: "5xx by service", Response: "checkout 34%"},
		events.MessageStartPayload{ID: "m-1"},
		events.MessageDeltaPayload{ID: "m-1", Text: "checkout is "},
		events.MessageDeltaPayload{ID: "m-1", Text: "overloaded"},
		events.MessageCompletePayload{ID: "m-1", Text: "checkout is overloaded"},
		events.RunCompletePayload{Steps: 1, Tokens: 512, Time: 1.2},
	}
}

func TestReducerHappyPath(t *testing.T) {
	c := New("s-1")
	for _, p := range happyRun() {
		Apply(c, p, true)
	}

	assert.Equal(t, "thread-1", c.ThreadID)
	require.Len(t, c.Messages, 2)

	user := c.Messages[0]
	assert.Equal(t, KindUser, user.Kind)
	assert.Equal(t, "why is checkout failing?", user.Text)

	asst := c.Messages[1]
	assert.Equal(t, KindAssistant, asst.Kind)
	assert.Equal(t, MessageDone, asst.Status)
	assert.Equal(t, "checkout is overloaded", asst.Text)
	assert.Empty(t, asst.StreamBuf, "final text replaces the stream buffer")
	require.NotNil(t, asst.Meta)
	assert.Equal(t, 512, asst.Meta.Tokens)

	require.Len(t, asst.ToolCalls, 1)
	assert.Equal(t, ToolCallComplete, asst.ToolCalls[0].Status)
	assert.Equal(t, "checkout 34%", asst.ToolCalls[0].Response)
	assert.False(t, c.Streaming)
}

func TestToolCallCompletesInPlace(t *testing.T) {
	c := New("s-1")
	Apply(c, events.RunStartPayload{RunID: "run-1", InputText: "check"}, true)
	Apply(c, events.ToolCallStartPayload{ID: "tc-1", Step: 1, Agent: "graph"}, true)
	Apply(c, events.ToolCallStartPayload{ID: "tc-2", Step: 2, Agent: "logs"}, true)
	Apply(c, events.ToolCallCompletePayload{ID: "tc-1", Step: 1, Agent: "graph", Response: "ok"}, true)
	Apply(c, events.ToolCallCompletePayload{ID: "tc-2", Step: 2, Agent: "logs", Error: "index unreachable"}, true)

	asst := c.Messages[1]
	require.Len(t, asst.ToolCalls, 2, "completion must update in place, not append")
	assert.Equal(t, ToolCallComplete, asst.ToolCalls[0].Status)
	assert.Equal(t, ToolCallError, asst.ToolCalls[1].Status)
	assert.Equal(t, "index unreachable", asst.ToolCalls[1].Error)
}

func TestErrorKeepsPartialProgress(t *testing.T) {
	c := New("s-1")
	Apply(c, events.RunStartPayload{RunID: "run-1", InputText: "check"}, true)
	Apply(c, events.ToolCallStartPayload{ID: "tc-1", Step: 1, Agent: "graph"}, true)
	Apply(c, events.ToolCallCompletePayload{ID: "tc-1", Step: 1, Agent: "graph", Response: "42 nodes"}, true)
	Apply(c, events.MessageStartPayload{ID: "m-1"}, true)
	Apply(c, events.MessageDeltaPayload{ID: "m-1", Text: "the root cause is"}, true)
	Apply(c, events.ErrorPayload{Message: "model overloaded"}, true)

	asst := c.Messages[1]
	assert.Equal(t, MessageErrored, asst.Status)
	assert.Equal(t, "model overloaded", asst.Error)
	require.Len(t, asst.ToolCalls, 1, "completed tool calls survive the failure")
	assert.Equal(t, "42 nodes", asst.ToolCalls[0].Response)
	assert.Equal(t, "the root cause is", asst.StreamBuf, "streamed text so far is retained")
}

func TestStatusAndDoneAreTransient(t *testing.T) {
	c := New("s-1")
	Apply(c, events.RunStartPayload{RunID: "run-1", InputText: "check"}, true)
	Apply(c, events.StatusPayload{Message: "retrying after recoverable error"}, true)
	assert.Equal(t, "retrying after recoverable error", c.StatusLine)
	assert.Equal(t, MessageStreaming, c.Messages[1].Status, "status must not touch terminal state")

	Apply(c, events.DonePayload{}, true)
	assert.True(t, c.Closed)
}

func TestRetryRunStartDoesNotDuplicateTurn(t *testing.T) {
	c := New("s-1")
	Apply(c, events.RunStartPayload{RunID: "run-1", InputText: "check"}, true)
	Apply(c, events.ToolCallStartPayload{ID: "tc-1", Step: 1, Agent: "graph"}, true)
	Apply(c, events.StatusPayload{Message: "retrying"}, true)
	Apply(c, events.RunStartPayload{RunID: "run-2", InputText: "check"}, true)

	require.Len(t, c.Messages, 2, "a retried run reuses the same turn")
	assert.Empty(t, c.Messages[1].ToolCalls, "stale tool calls from the failed attempt are reset")
}

func TestReplayEquivalence(t *testing.T) {
	seq := happyRun()

	live := New("s-1")
	for _, p := range seq {
		Apply(live, p, true)
	}

	log := make([]events.Event, len(seq))
	for i, p := range seq {
		log[i] = events.Event{Offset: i, Payload: p}
	}
	replayed := Replay("s-1", "why is checkout failing?", log)

	// Streaming is live-only transient state; everything else must match.
	live.Streaming = false
	require.Equal(t, live, replayed)
}

func TestReplaySynthesizesFirstUserMessage(t *testing.T) {
	// A run that failed before run.start leaves no user-message marker in
	// the log; the creation input is the first user message.
	log := []events.Event{
		{Offset: 0, Payload: events.ErrorPayload{Message: "runtime unreachable"}},
	}
	c := Replay("s-1", "pager: checkout p99 spiking", log)

	require.Len(t, c.Messages, 2)
	assert.Equal(t, KindUser, c.Messages[0].Kind)
	assert.Equal(t, "pager: checkout p99 spiking", c.Messages[0].Text)
	assert.Equal(t, MessageErrored, c.Messages[1].Status)
}

func TestReplayMidRunSuffix(t *testing.T) {
	// Reconnect with since can start mid-run; the reducer must cope with a
	// log that opens on a completion event.
	log := []events.Event{
		{Offset: 5, Payload: events.ToolCallCompletePayload{ID: "tc-3", Step: 3, Agent: "search", Response: "2 hits"}},
		{Offset: 6, Payload: events.RunCompletePayload{Steps: 3}},
	}
	c := Replay("s-1", "", log)

	require.Len(t, c.Messages, 1)
	asst := c.Messages[0]
	assert.Equal(t, KindAssistant, asst.Kind)
	assert.Equal(t, MessageDone, asst.Status)
	require.Len(t, asst.ToolCalls, 1)
	assert.Equal(t, ToolCallComplete, asst.ToolCalls[0].Status)
}
