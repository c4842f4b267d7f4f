package emitter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/pkg/actions"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

func collect(t *testing.T, ch <-chan events.Payload) []events.Payload {
	t.Helper()
	var out []events.Payload
	for p := range ch {
		out = append(out, p)
	}
	return out
}

func eventTypes(payloads []events.Payload) []string {
	types := make([]string, len(payloads))
	for i, p := range payloads {
		types[i] = p.EventType()
	}
	return types
}

func TestEmitterHappyPath(t *testing.T) {
	rt := runtime.NewScriptedRuntime(runtime.SuccessScript("thread-1", "checkout is down"))
	e := New(rt, actions.NoopInvoker{})

	got := collect(t, e.Run(context.Background(), runtime.RunInput{InputText: "why is checkout failing?"}, NewCancelToken()))

	require.Equal(t, []string{
		events.TypeSessionCreated,
		events.TypeRunStart,
		events.TypeToolCallStart,
		events.TypeToolCallComplete,
		events.TypeMessageStart,
		events.TypeMessageDelta,
		events.TypeMessageDelta,
		events.TypeMessageComplete,
		events.TypeRunComplete,
	}, eventTypes(got))

	created := got[0].(events.SessionCreatedPayload)
	assert.Equal(t, "thread-1", created.ThreadID)

	start := got[1].(events.RunStartPayload)
	assert.Equal(t, "why is checkout failing?", start.InputText)

	callStart := got[2].(events.ToolCallStartPayload)
	callComplete := got[3].(events.ToolCallCompletePayload)
	require.NotEmpty(t, callStart.ID)
	assert.Equal(t, callStart.ID, callComplete.ID, "tool call id must be stable across start and complete")
	assert.Equal(t, 1, callStart.Step)
	assert.Equal(t, 1, callComplete.Step)

	msgStart := got[4].(events.MessageStartPayload)
	msgComplete := got[7].(events.MessageCompletePayload)
	assert.Equal(t, msgStart.ID, msgComplete.ID)
	assert.Equal(t, "checkout is down", msgComplete.Text)

	meta := got[8].(events.RunCompletePayload)
	assert.Equal(t, 1, meta.Steps)
}

func TestEmitterRetryAfterRecoverableFailure(t *testing.T) {
	rt := runtime.NewScriptedRuntime(
		[]runtime.Event{
			runtime.ThreadCreated{ThreadID: "thread-1"},
			runtime.RunStarted{RunID: "run-1"},
			runtime.RunFailed{Message: "model overloaded", Code: "overloaded", Recoverable: true},
		},
		runtime.SuccessScript("thread-ignored", "fixed"),
	)
	e := New(rt, actions.NoopInvoker{})

	got := collect(t, e.Run(context.Background(), runtime.RunInput{InputText: "check it"}, NewCancelToken()))
	types := eventTypes(got)

	// One retry status between the two attempts, no terminal error.
	assert.Contains(t, types, events.TypeStatus)
	assert.NotContains(t, types, events.TypeError)
	assert.Equal(t, events.TypeRunComplete, types[len(types)-1])

	// session.created appears exactly once even though both attempts
	// reported a thread.
	createdCount := 0
	for _, typ := range types {
		if typ == events.TypeSessionCreated {
			createdCount++
		}
	}
	assert.Equal(t, 1, createdCount)

	assert.Len(t, rt.Calls(), 2)
}

func TestEmitterRetriesExhausted(t *testing.T) {
	failing := []runtime.Event{
		runtime.RunStarted{RunID: "run-1"},
		runtime.RunFailed{Message: "model overloaded", Code: "overloaded", Recoverable: true},
	}
	rt := runtime.NewScriptedRuntime(failing)
	e := New(rt, actions.NoopInvoker{})

	got := collect(t, e.Run(context.Background(), runtime.RunInput{InputText: "check it"}, NewCancelToken()))
	types := eventTypes(got)

	require.Equal(t, events.TypeError, types[len(types)-1])
	terminal := got[len(got)-1].(events.ErrorPayload)
	assert.False(t, terminal.Recoverable)
	assert.Len(t, rt.Calls(), MaxRetries+1)
}

func TestEmitterNonRecoverableFailsFast(t *testing.T) {
	rt := runtime.NewScriptedRuntime([]runtime.Event{
		runtime.RunStarted{RunID: "run-1"},
		runtime.RunFailed{Message: "invalid scenario dataset", Code: "bad_request"},
	})
	e := New(rt, actions.NoopInvoker{})

	got := collect(t, e.Run(context.Background(), runtime.RunInput{InputText: "check it"}, NewCancelToken()))
	types := eventTypes(got)

	assert.Equal(t, []string{events.TypeRunStart, events.TypeError}, types)
	assert.Len(t, rt.Calls(), 1)
}

func TestEmitterCancelledBeforeStart(t *testing.T) {
	rt := runtime.NewScriptedRuntime(runtime.SuccessScript("thread-1", "never runs"))
	e := New(rt, actions.NoopInvoker{})

	token := NewCancelToken()
	token.Cancel()

	got := collect(t, e.Run(context.Background(), runtime.RunInput{InputText: "check it"}, token))

	require.Len(t, got, 1)
	status := got[0].(events.StatusPayload)
	assert.Equal(t, "cancelling", status.Message)
	assert.Empty(t, rt.Calls(), "runtime must not be invoked after cancellation")
}

type runtimeFunc func(ctx context.Context, in runtime.RunInput) (<-chan runtime.Event, error)

func (f runtimeFunc) Run(ctx context.Context, in runtime.RunInput) (<-chan runtime.Event, error) {
	return f(ctx, in)
}

func TestEmitterCancelledBetweenRetries(t *testing.T) {
	token := NewCancelToken()
	scripted := runtime.NewScriptedRuntime([]runtime.Event{
		runtime.RunStarted{RunID: "run-1"},
		runtime.RunFailed{Message: "model overloaded", Code: "overloaded", Recoverable: true},
	})
	// Cancel during the first attempt; the emitter must observe the token
	// at the between-retries checkpoint instead of attempting again.
	rt := runtimeFunc(func(ctx context.Context, in runtime.RunInput) (<-chan runtime.Event, error) {
		token.Cancel()
		return scripted.Run(ctx, in)
	})
	e := New(rt, actions.NoopInvoker{})

	got := collect(t, e.Run(context.Background(), runtime.RunInput{InputText: "check it"}, token))
	types := eventTypes(got)

	assert.Equal(t, events.TypeStatus, types[len(types)-1])
	assert.NotContains(t, types, events.TypeRunComplete)
	assert.NotContains(t, types, events.TypeError)
	assert.Len(t, scripted.Calls(), 1)
}

type stubInvoker struct {
	def    actions.Definition
	result actions.Result
	err    error
	calls  int
}

func (s *stubInvoker) Match(agent string) (actions.Definition, bool) {
	if agent == s.def.Agent {
		return s.def, true
	}
	return actions.Definition{}, false
}

func (s *stubInvoker) Invoke(_ context.Context, _ actions.Definition, _ string) (actions.Result, error) {
	s.calls++
	return s.result, s.err
}

func TestEmitterFoldsActionIntoCompletion(t *testing.T) {
	rt := runtime.NewScriptedRuntime([]runtime.Event{
		runtime.RunStarted{RunID: "run-1"},
		runtime.StepStarted{StepID: "s1", Agent: "dispatcher", Query: "send crew to substation 7"},
		runtime.StepCompleted{StepID: "s1", Agent: "dispatcher", Query: "send crew to substation 7", Response: "plan drafted"},
		runtime.MessageCompleted{Text: "crew dispatched"},
		runtime.RunCompleted{Steps: 1},
	})
	invoker := &stubInvoker{
		def:    actions.Definition{Name: "dispatch_crew", Agent: "dispatcher"},
		result: actions.Result{Name: "dispatch_crew", Response: "crew 12 en route"},
	}
	e := New(rt, invoker)

	got := collect(t, e.Run(context.Background(), runtime.RunInput{InputText: "outage at substation 7"}, NewCancelToken()))

	var completion *events.ToolCallCompletePayload
	for _, p := range got {
		if c, ok := p.(events.ToolCallCompletePayload); ok {
			completion = &c
			break
		}
	}
	require.NotNil(t, completion, "expected a tool_call.complete event")
	assert.True(t, completion.IsAction)
	assert.Equal(t, "dispatch_crew", completion.Action["name"])
	assert.Equal(t, "crew 12 en route", completion.Action["response"])
	assert.Equal(t, 1, invoker.calls)

	// One step still yields exactly one completion event.
	completions := 0
	for _, typ := range eventTypes(got) {
		if typ == events.TypeToolCallComplete {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
}
