package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent holds the schema definition for the SessionEvent entity: one
// entry of a session's append-only event log. The log is the durable source
// of truth — derived session fields exist purely as a read optimization and
// must never diverge from what replaying the log produces.
type SessionEvent struct {
	ent.Schema
}

// Fields of the SessionEvent.
func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Immutable(),
		field.Int("offset").
			Immutable().
			Comment("Strictly increasing per session from 0, no gaps; assigned under the session's single writer"),
		field.String("event_type").
			Immutable().
			Comment("Dotted canonical name (tool_call.start, message.delta, ...)"),
		field.JSON("payload", map[string]interface{}{}).
			Comment("Canonical event payload"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Edges of the SessionEvent.
func (SessionEvent) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("session", InvestigationSession.Type).
			Ref("events").
			Field("session_id").
			Unique().
			Required().
			Immutable(),
	}
}

// Indexes of the SessionEvent.
func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "offset").
			Unique(),
		index.Fields("created_at"),
	}
}
