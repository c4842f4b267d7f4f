package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// InvestigationSession holds the schema definition for the InvestigationSession entity.
// One investigation conversation: a persistent, possibly multi-run exchange between
// an operator and the agent runtime, identified by a stable id.
type InvestigationSession struct {
	ent.Schema
}

// Fields of the InvestigationSession.
func (InvestigationSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("session_id").
			Unique().
			Immutable(),
		field.String("scenario").
			Immutable().
			Comment("Dataset/config tag the session is bound to"),
		field.Enum("status").
			Values("pending", "in_progress", "completed", "failed", "cancelled").
			Default("pending").
			Comment("Reflects the most recent run's outcome; reverts to in_progress when a new run starts"),
		field.Text("alert_text").
			Comment("Initial alert payload — also the implicit first user message on replay"),
		field.Text("pending_input").
			Optional().
			Comment("Input text for the next queued run (initial alert or follow-up)"),
		field.String("thread_id").
			Optional().
			Nillable().
			Comment("Agent runtime conversation context; set on first run, reused on follow-ups"),
		field.JSON("steps", []map[string]interface{}{}).
			Optional().
			Comment("Derived cache — completed tool-call summaries folded from tool_call.complete events"),
		field.Text("diagnosis").
			Optional().
			Nillable().
			Comment("Derived cache — latest message.complete text"),
		field.JSON("run_meta", map[string]interface{}{}).
			Optional().
			Comment("Derived cache — step/token/duration counters of the last completed run"),
		field.String("error_detail").
			Optional().
			Nillable().
			Comment("Derived cache — last error event message, cleared when a new run starts"),
		field.String("pod_id").
			Optional().
			Nillable().
			Comment("For multi-replica coordination"),
		field.Time("last_interaction_at").
			Optional().
			Nillable().
			Comment("For orphan detection"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Edges of the InvestigationSession.
func (InvestigationSession) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("events", SessionEvent.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

// Indexes of the InvestigationSession.
func (InvestigationSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
		index.Fields("scenario"),
		index.Fields("status", "created_at"),
		index.Fields("status", "last_interaction_at"),
	}
}
