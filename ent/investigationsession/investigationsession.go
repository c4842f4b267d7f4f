// Code generated by ent, DO NOT EDIT.

package investigationsession

import (
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

const (
	// Label holds the string label denoting the investigationsession type in the database.
	Label = "investigation_session"
	// FieldID holds the string denoting the id field in the database.
	FieldID = "session_id"
	// FieldScenario holds the string denoting the scenario field in the database.
	FieldScenario = "scenario"
	// FieldStatus holds the string denoting the status field in the database.
	FieldStatus = "status"
	// FieldAlertText holds the string denoting the alert_text field in the database.
	FieldAlertText = "alert_text"
	// FieldPendingInput holds the string denoting the pending_input field in the database.
	FieldPendingInput = "pending_input"
	// FieldThreadID holds the string denoting the thread_id field in the database.
	FieldThreadID = "thread_id"
	// FieldSteps holds the string denoting the steps field in the database.
	FieldSteps = "steps"
	// FieldDiagnosis holds the string denoting the diagnosis field in the database.
	FieldDiagnosis = "diagnosis"
	// FieldRunMeta holds the string denoting the run_meta field in the database.
	FieldRunMeta = "run_meta"
	// FieldErrorDetail holds the string denoting the error_detail field in the database.
	FieldErrorDetail = "error_detail"
	// FieldPodID holds the string denoting the pod_id field in the database.
	FieldPodID = "pod_id"
	// FieldLastInteractionAt holds the string denoting the last_interaction_at field in the database.
	FieldLastInteractionAt = "last_interaction_at"
	// FieldCreatedAt holds the string denoting the created_at field in the database.
	FieldCreatedAt = "created_at"
	// FieldUpdatedAt holds the string denoting the updated_at field in the database.
	FieldUpdatedAt = "updated_at"
	// EdgeEvents holds the string denoting the events edge name in mutations.
	EdgeEvents = "events"
	// SessionEventFieldID holds the string denoting the ID field of the SessionEvent.
	SessionEventFieldID = "id"
	// Table holds the table name of the investigationsession in the database.
	Table = "investigation_sessions"
	// EventsTable is the table that holds the events relation/edge.
	EventsTable = "session_events"
	// EventsInverseTable is the table name for the SessionEvent entity.
	// It exists in this package in order to avoid circular dependency with the "sessionevent" package.
	EventsInverseTable = "session_events"
	// EventsColumn is the table column denoting the events relation/edge.
	EventsColumn = "session_id"
)

// Columns holds all SQL columns for investigationsession fields.
var Columns = []string{
	FieldID,
	FieldScenario,
	FieldStatus,
	FieldAlertText,
	FieldPendingInput,
	FieldThreadID,
	FieldSteps,
	FieldDiagnosis,
	FieldRunMeta,
	FieldErrorDetail,
	FieldPodID,
	FieldLastInteractionAt,
	FieldCreatedAt,
	FieldUpdatedAt,
}

// ValidColumn reports if the column name is valid (part of the table columns).
func ValidColumn(column string) bool {
	for i := range Columns {
		if column == Columns[i] {
			return true
		}
	}
	return false
}

var (
	// DefaultCreatedAt holds the default value on creation for the "created_at" field.
	DefaultCreatedAt func() time.Time
	// DefaultUpdatedAt holds the default value on creation for the "updated_at" field.
	DefaultUpdatedAt func() time.Time
	// UpdateDefaultUpdatedAt holds the default value on update for the "updated_at" field.
	UpdateDefaultUpdatedAt func() time.Time
)

// Status defines the type for the "status" enum field.
type Status string

// StatusPending is the default value of the Status enum.
const DefaultStatus = StatusPending

// Status values.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// StatusValidator is a validator for the "status" field enum values. It is called by the builders before save.
func StatusValidator(s Status) error {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed, StatusCancelled:
		return nil
	default:
		return fmt.Errorf("investigationsession: invalid enum value for status field: %q", s)
	}
}

// OrderOption defines the ordering options for the InvestigationSession queries.
type OrderOption func(*sql.Selector)

// ByID orders the results by the id field.
func ByID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldID, opts...).ToFunc()
}

// ByScenario orders the results by the scenario field.
func ByScenario(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldScenario, opts...).ToFunc()
}

// ByStatus orders the results by the status field.
func ByStatus(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldStatus, opts...).ToFunc()
}

// ByAlertText orders the results by the alert_text field.
func ByAlertText(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldAlertText, opts...).ToFunc()
}

// ByPendingInput orders the results by the pending_input field.
func ByPendingInput(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldPendingInput, opts...).ToFunc()
}

// ByThreadID orders the results by the thread_id field.
func ByThreadID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldThreadID, opts...).ToFunc()
}

// ByDiagnosis orders the results by the diagnosis field.
func ByDiagnosis(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldDiagnosis, opts...).ToFunc()
}

// ByErrorDetail orders the results by the error_detail field.
func ByErrorDetail(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldErrorDetail, opts...).ToFunc()
}

// ByPodID orders the results by the pod_id field.
func ByPodID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldPodID, opts...).ToFunc()
}

// ByLastInteractionAt orders the results by the last_interaction_at field.
func ByLastInteractionAt(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldLastInteractionAt, opts...).ToFunc()
}

// ByCreatedAt orders the results by the created_at field.
func ByCreatedAt(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldCreatedAt, opts...).ToFunc()
}

// ByUpdatedAt orders the results by the updated_at field.
func ByUpdatedAt(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldUpdatedAt, opts...).ToFunc()
}

// ByEventsCount orders the results by events count.
func ByEventsCount(opts ...sql.OrderTermOption) OrderOption {
	return func(s *sql.Selector) {
		sqlgraph.OrderByNeighborsCount(s, newEventsStep(), opts...)
	}
}

// ByEvents orders the results by events terms.
func ByEvents(term sql.OrderTerm, terms ...sql.OrderTerm) OrderOption {
	return func(s *sql.Selector) {
		sqlgraph.OrderByNeighborTerms(s, newEventsStep(), append([]sql.OrderTerm{term}, terms...)...)
	}
}
func newEventsStep() *sqlgraph.Step {
	return sqlgraph.NewStep(
		sqlgraph.From(Table, FieldID),
		sqlgraph.To(EventsInverseTable, SessionEventFieldID),
		sqlgraph.Edge(sqlgraph.O2M, false, EventsTable, EventsColumn),
	)
}
