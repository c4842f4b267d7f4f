// Package events defines the canonical investigation event stream and its
// delivery infrastructure: typed payloads, transactional persistence with
// PostgreSQL NOTIFY, a LISTEN loop, and an in-process broker for fan-out to
// SSE and WebSocket subscribers.
//
// ════════════════════════════════════════════════════════════════
// Event lifecycle
// ════════════════════════════════════════════════════════════════
//
// One run emits, in order:
//
//	session.created   {thread_id}            (first run of a session only)
//	run.start         {run_id, input_text}
//	tool_call.start   {id, step, agent, ...} (per tool invocation)
//	tool_call.complete{id, ...}              (same id as the matching start)
//	message.start     {id}
//	message.delta     {id, text}             (repeated, token streaming)
//	message.complete  {id, text}
//	run.complete      {steps, tokens, time}
//
// A terminal failure replaces the tail with a single `error` event.
// `status` events are informational (retries, cancellation progress) and
// carry no state-machine effect beyond transient display. `done` is emitted
// by the transport, never persisted.
//
// The tool-call id assigned at tool_call.start is reused verbatim at
// tool_call.complete — this is what lets a client update the entry in place
// instead of appending a duplicate.
package events

// Canonical event type names. Dotted names pass through every transport
// layer verbatim, including the SSE `event:` field.
const (
	TypeSessionCreated   = "session.created"
	TypeRunStart         = "run.start"
	TypeToolCallStart    = "tool_call.start"
	TypeToolCallComplete = "tool_call.complete"
	TypeMessageStart     = "message.start"
	TypeMessageDelta     = "message.delta"
	TypeMessageComplete  = "message.complete"
	TypeRunComplete      = "run.complete"
	TypeError            = "error"
	TypeStatus           = "status"
	TypeDone             = "done"
)

// GlobalSessionsChannel carries session-level status notifications for the
// session list page.
const GlobalSessionsChannel = "sessions"

// SessionChannel returns the NOTIFY/broker channel for one session's events.
// Format: "session:{session_id}"
func SessionChannel(sessionID string) string {
	return "session:" + sessionID
}
