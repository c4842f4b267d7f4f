// Package conversation is the client-side state machine. A pure reducer
// folds canonical events into a Conversation; the same reducer serves both
// live streaming and offline replay of a persisted event log, so the two
// paths cannot diverge.
package conversation

// ToolCallStatus is the lifecycle of one agent-to-tool invocation.
type ToolCallStatus string

const (
	ToolCallPending  ToolCallStatus = "pending"
	ToolCallRunning  ToolCallStatus = "running"
	ToolCallComplete ToolCallStatus = "complete"
	ToolCallError    ToolCallStatus = "error"
)

// ToolCall is one step of a run. Identity is the emitter-assigned id,
// stable from start to completion so the entry updates in place.
type ToolCall struct {
	ID             string
	Step           int
	Agent          string
	Status         ToolCallStatus
	Query          string
	Reasoning      string
	Response       string
	Duration       float64
	Error          string
	Visualizations []map[string]any
	SubSteps       []map[string]any
	IsAction       bool
	Action         map[string]any
}

// MessageKind discriminates conversation messages.
type MessageKind string

const (
	KindUser      MessageKind = "user"
	KindAssistant MessageKind = "assistant"
)

// MessageStatus is the lifecycle of an assistant turn.
type MessageStatus string

const (
	MessageStreaming MessageStatus = "streaming"
	MessageDone      MessageStatus = "done"
	MessageErrored   MessageStatus = "error"
)

// RunMeta is the footer attached to a completed assistant turn.
type RunMeta struct {
	Steps  int
	Tokens int
	Time   float64
}

// Message is one conversation turn. User messages are immutable once
// created; the assistant message for a run is the sole mutation target for
// every event belonging to that run.
type Message struct {
	Kind MessageKind
	// Text is the user's input (user kind) or the completed answer
	// (assistant kind).
	Text string
	// StreamBuf accumulates message.delta text until message.complete
	// replaces it with the authoritative final text.
	StreamBuf string
	// ToolCalls in insertion order. Assistant kind only.
	ToolCalls []*ToolCall
	Status    MessageStatus
	Error     string
	Meta      *RunMeta
}

// Conversation is the full reducible state for one session.
type Conversation struct {
	SessionID string
	ThreadID  string
	Messages  []*Message
	// StatusLine is the transient informational line from status events.
	// It never affects message or tool-call terminal state.
	StatusLine string
	// Streaming is a live-only flag: true while a message.start has been
	// seen without its message.complete. Replay leaves it false.
	Streaming bool
	// Closed is set by the done event; the consumer should release its
	// stream resources.
	Closed bool
}

// New returns the empty initial state.
func New(sessionID string) *Conversation {
	return &Conversation{SessionID: sessionID}
}

// currentAssistant returns the trailing assistant message, or nil when the
// last turn is not an open assistant turn.
func (c *Conversation) currentAssistant() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	last := c.Messages[len(c.Messages)-1]
	if last.Kind != KindAssistant {
		return nil
	}
	return last
}

// findToolCall locates a tool call by id in the current assistant message.
func (m *Message) findToolCall(id string) *ToolCall {
	for _, tc := range m.ToolCalls {
		if tc.ID == id {
			return tc
		}
	}
	return nil
}
