package events

import (
	"encoding/json"
	"fmt"
)

// Payload is the tagged union of canonical event payloads. Each event kind
// has a fixed payload shape; consumers dispatch with an exhaustive type
// switch instead of probing loosely-typed maps for fields.
type Payload interface {
	// EventType returns the dotted canonical name for this payload kind.
	EventType() string
}

// Event is one canonical investigation event together with its position in
// the session's append-only log. Offset is -1 until the publisher persists
// the event and assigns the next per-session offset.
type Event struct {
	Offset  int
	Payload Payload
}

// Type returns the dotted canonical name of the wrapped payload.
func (e Event) Type() string { return e.Payload.EventType() }

// New wraps a payload into an Event with no offset assigned yet.
func New(p Payload) Event { return Event{Offset: -1, Payload: p} }

// SessionCreatedPayload — the runtime allocated a new multi-turn context.
// Emitted once per session, on the first run only.
type SessionCreatedPayload struct {
	ThreadID string `json:"thread_id"`
}

func (SessionCreatedPayload) EventType() string { return TypeSessionCreated }

// RunStartPayload — a run began executing.
type RunStartPayload struct {
	RunID     string `json:"run_id"`
	InputText string `json:"input_text"`
	Timestamp string `json:"timestamp"` // RFC3339Nano
}

func (RunStartPayload) EventType() string { return TypeRunStart }

// ToolCallStartPayload — the runtime reported a step entering progress.
// ID is generated here and reused verbatim by the matching complete event.
type ToolCallStartPayload struct {
	ID        string `json:"id"`
	Step      int    `json:"step"` // 1-based ordinal within the run
	Agent     string `json:"agent"`
	Query     string `json:"query,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339Nano
}

func (ToolCallStartPayload) EventType() string { return TypeToolCallStart }

// ToolCallCompletePayload — the same step finished, successfully or not.
// Substep, visualization and action data are bundled here rather than
// emitted as separate events: one step, one completion event, regardless of
// whether the step was pure retrieval or had a side effect.
type ToolCallCompletePayload struct {
	ID             string           `json:"id"`
	Step           int              `json:"step"`
	Agent          string           `json:"agent"`
	Duration       float64          `json:"duration"` // seconds
	Query          string           `json:"query"`
	Response       string           `json:"response"`
	Error          string           `json:"error,omitempty"`
	Visualizations []map[string]any `json:"visualizations,omitempty"`
	SubSteps       []map[string]any `json:"sub_steps,omitempty"`
	IsAction       bool             `json:"is_action,omitempty"`
	Action         map[string]any   `json:"action,omitempty"`
}

func (ToolCallCompletePayload) EventType() string { return TypeToolCallComplete }

// MessageStartPayload — first token of the final synthesized text arrived.
type MessageStartPayload struct {
	ID string `json:"id"`
}

func (MessageStartPayload) EventType() string { return TypeMessageStart }

// MessageDeltaPayload — one token/chunk of the streaming text.
type MessageDeltaPayload struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (MessageDeltaPayload) EventType() string { return TypeMessageDelta }

// MessageCompletePayload — the authoritative full final text.
type MessageCompletePayload struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (MessageCompletePayload) EventType() string { return TypeMessageComplete }

// RunCompletePayload — the run finished successfully.
type RunCompletePayload struct {
	Steps  int     `json:"steps"`
	Tokens int     `json:"tokens"`
	Time   float64 `json:"time"` // seconds
}

func (RunCompletePayload) EventType() string { return TypeRunComplete }

// ErrorPayload — a terminal run failure, or a recoverable mid-run issue.
type ErrorPayload struct {
	Message     string `json:"message"`
	Code        string `json:"code,omitempty"`
	Recoverable bool   `json:"recoverable,omitempty"`
}

func (ErrorPayload) EventType() string { return TypeError }

// StatusPayload — informational only (retry announcements, "cancelling").
// No state-machine effect beyond transient display.
type StatusPayload struct {
	Message string `json:"message"`
}

func (StatusPayload) EventType() string { return TypeStatus }

// DonePayload — the transport should close the stream. Never persisted.
type DonePayload struct{}

func (DonePayload) EventType() string { return TypeDone }

// newPayload returns a zero payload value for the given canonical type name.
func newPayload(eventType string) (Payload, error) {
	switch eventType {
	case TypeSessionCreated:
		return &SessionCreatedPayload{}, nil
	case TypeRunStart:
		return &RunStartPayload{}, nil
	case TypeToolCallStart:
		return &ToolCallStartPayload{}, nil
	case TypeToolCallComplete:
		return &ToolCallCompletePayload{}, nil
	case TypeMessageStart:
		return &MessageStartPayload{}, nil
	case TypeMessageDelta:
		return &MessageDeltaPayload{}, nil
	case TypeMessageComplete:
		return &MessageCompletePayload{}, nil
	case TypeRunComplete:
		return &RunCompletePayload{}, nil
	case TypeError:
		return &ErrorPayload{}, nil
	case TypeStatus:
		return &StatusPayload{}, nil
	case TypeDone:
		return &DonePayload{}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
}

// Decode parses a JSON payload for the given canonical event type. An
// "offset" field injected by the transport is honored if present, otherwise
// the returned event's Offset is -1.
func Decode(eventType string, data []byte) (Event, error) {
	p, err := newPayload(eventType)
	if err != nil {
		return Event{}, err
	}
	if err := json.Unmarshal(data, p); err != nil {
		return Event{}, fmt.Errorf("decoding %s payload: %w", eventType, err)
	}

	var pos struct {
		Offset *int `json:"offset"`
	}
	offset := -1
	if err := json.Unmarshal(data, &pos); err == nil && pos.Offset != nil {
		offset = *pos.Offset
	}
	return Event{Offset: offset, Payload: deref(p)}, nil
}

// deref unwraps the pointer allocated for unmarshaling so that reducer type
// switches work on value types.
func deref(p Payload) Payload {
	switch v := p.(type) {
	case *SessionCreatedPayload:
		return *v
	case *RunStartPayload:
		return *v
	case *ToolCallStartPayload:
		return *v
	case *ToolCallCompletePayload:
		return *v
	case *MessageStartPayload:
		return *v
	case *MessageDeltaPayload:
		return *v
	case *MessageCompletePayload:
		return *v
	case *RunCompletePayload:
		return *v
	case *ErrorPayload:
		return *v
	case *StatusPayload:
		return *v
	case *DonePayload:
		return *v
	default:
		return p
	}
}

// DecodeStored converts a persisted log row (event type + payload map) back
// into a typed event, for replay and for the session detail endpoint.
func DecodeStored(eventType string, payload map[string]any, offset int) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("re-marshaling stored %s payload: %w", eventType, err)
	}
	ev, err := Decode(eventType, raw)
	if err != nil {
		return Event{}, err
	}
	ev.Offset = offset
	return ev, nil
}
