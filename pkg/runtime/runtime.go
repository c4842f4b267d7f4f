// Package runtime defines the boundary to the hosted agent runtime: the
// black box that, given a prompt and an optional conversation thread,
// executes a multi-step investigation and reports progress through a stream
// of native callback events. The emitter package is the sole adapter that
// translates these into canonical investigation events.
package runtime

import "context"

// RunInput is everything the runtime needs for one run.
type RunInput struct {
	// ThreadID is the multi-turn conversation context. Empty on a session's
	// first run; the runtime then allocates one and reports it via
	// ThreadCreated.
	ThreadID string
	// InputText is the alert or follow-up prompt.
	InputText string
	// Dataset routes the runtime's tool queries to the scenario's data.
	Dataset string
}

// Event is the native callback stream from the runtime. Concrete types are
// consumed with a type switch; the stream for a successful run is
// ThreadCreated? RunStarted (StepStarted StepCompleted)* MessageDelta*
// MessageCompleted RunCompleted, with RunFailed replacing the tail on error.
type Event interface {
	runtimeEvent()
}

// ThreadCreated — the runtime allocated a new conversation thread.
// Only emitted when RunInput.ThreadID was empty.
type ThreadCreated struct {
	ThreadID string
}

// RunStarted — the run began executing.
type RunStarted struct {
	RunID string
}

// StepStarted — a sub-agent/tool step entered progress. StepID is the
// runtime's internal identifier, stable across this step's pair of events.
type StepStarted struct {
	StepID    string
	Agent     string
	Query     string
	Reasoning string
}

// StepCompleted — the same step finished, successfully or not.
type StepCompleted struct {
	StepID         string
	Agent          string
	Duration       float64 // seconds
	Query          string
	Response       string
	Err            string // non-empty on step failure
	Visualizations []map[string]any
	SubSteps       []map[string]any
}

// MessageDelta — one token/chunk of the final synthesized answer.
type MessageDelta struct {
	Text string
}

// MessageCompleted — the full final answer text.
type MessageCompleted struct {
	Text string
}

// RunCompleted — the run finished successfully.
type RunCompleted struct {
	Steps    int
	Tokens   int
	Duration float64 // seconds
}

// RunFailed — the run failed. Recoverable marks capacity/rate-limit class
// failures that are eligible for retry.
type RunFailed struct {
	Message     string
	Code        string
	Recoverable bool
}

func (ThreadCreated) runtimeEvent()    {}
func (RunStarted) runtimeEvent()       {}
func (StepStarted) runtimeEvent()      {}
func (StepCompleted) runtimeEvent()    {}
func (MessageDelta) runtimeEvent()     {}
func (MessageCompleted) runtimeEvent() {}
func (RunCompleted) runtimeEvent()     {}
func (RunFailed) runtimeEvent()        {}

// Runtime executes investigation runs. Implementations deliver events on
// the returned channel in emission order and close it when the run reaches
// a terminal state or ctx is cancelled. A nil channel with an error means
// the run never started (eligible for retry by the caller's policy).
type Runtime interface {
	Run(ctx context.Context, in RunInput) (<-chan Event, error)
}
