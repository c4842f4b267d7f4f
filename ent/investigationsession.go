// Code generated by ent, DO NOT EDIT.

package ent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
)

// InvestigationSession is the model entity for the InvestigationSession schema.
type InvestigationSession struct {
	config `json:"-"`
	// ID of the ent.
	ID string `json:"id,omitempty"`
	// Dataset/config tag the session is bound to
	Scenario string `json:"scenario,omitempty"`
	// Reflects the most recent run's outcome; reverts to in_progress when a new run starts
	Status investigationsession.Status `json:"status,omitempty"`
	// Initial alert payload — also the implicit first user message on replay
	AlertText string `json:"alert_text,omitempty"`
	// Input text for the next queued run (initial alert or follow-up)
	PendingInput string `json:"pending_input,omitempty"`
	// Agent runtime conversation context; set on first run, reused on follow-ups
	ThreadID *string `json:"thread_id,omitempty"`
	// Derived cache — completed tool-call summaries folded from tool_call.complete events
	Steps []map[string]interface{} `json:"steps,omitempty"`
	// Derived cache — latest message.complete text
	Diagnosis *string `json:"diagnosis,omitempty"`
	// Derived cache — step/token/duration counters of the last completed run
	RunMeta map[string]interface{} `json:"run_meta,omitempty"`
	// Derived cache — last error event message, cleared when a new run starts
	ErrorDetail *string `json:"error_detail,omitempty"`
	// For multi-replica coordination
	PodID *string `json:"pod_id,omitempty"`
	// For orphan detection
	LastInteractionAt *time.Time `json:"last_interaction_at,omitempty"`
	// CreatedAt holds the value of the "created_at" field.
	CreatedAt time.Time `json:"created_at,omitempty"`
	// UpdatedAt holds the value of the "updated_at" field.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	// Edges holds the relations/edges for other nodes in the graph.
	// The values are being populated by the InvestigationSessionQuery when eager-loading is set.
	Edges        InvestigationSessionEdges `json:"edges"`
	selectValues sql.SelectValues
}

// InvestigationSessionEdges holds the relations/edges for other nodes in the graph.
type InvestigationSessionEdges struct {
	// Events holds the value of the events edge.
	Events []*SessionEvent `json:"events,omitempty"`
	// loadedTypes holds the information for reporting if a
	// type was loaded (or requested) in eager-loading or not.
	loadedTypes [1]bool
}

// EventsOrErr returns the Events value or an error if the edge
// was not loaded in eager-loading.
func (e InvestigationSessionEdges) EventsOrErr() ([]*SessionEvent, error) {
	if e.loadedTypes[0] {
		return e.Events, nil
	}
	return nil, &NotLoadedError{edge: "events"}
}

// scanValues returns the types for scanning values from sql.Rows.
func (*InvestigationSession) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case investigationsession.FieldSteps, investigationsession.FieldRunMeta:
			values[i] = new([]byte)
		case investigationsession.FieldID, investigationsession.FieldScenario, investigationsession.FieldStatus, investigationsession.FieldAlertText, investigationsession.FieldPendingInput, investigationsession.FieldThreadID, investigationsession.FieldDiagnosis, investigationsession.FieldErrorDetail, investigationsession.FieldPodID:
			values[i] = new(sql.NullString)
		case investigationsession.FieldLastInteractionAt, investigationsession.FieldCreatedAt, investigationsession.FieldUpdatedAt:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the InvestigationSession fields.
func (_m *InvestigationSession) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case investigationsession.FieldID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field id", values[i])
			} else if value.Valid {
				_m.ID = value.String
			}
		case investigationsession.FieldScenario:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field scenario", values[i])
			} else if value.Valid {
				_m.Scenario = value.String
			}
		case investigationsession.FieldStatus:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field status", values[i])
			} else if value.Valid {
				_m.Status = investigationsession.Status(value.String)
			}
		case investigationsession.FieldAlertText:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field alert_text", values[i])
			} else if value.Valid {
				_m.AlertText = value.String
			}
		case investigationsession.FieldPendingInput:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field pending_input", values[i])
			} else if value.Valid {
				_m.PendingInput = value.String
			}
		case investigationsession.FieldThreadID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field thread_id", values[i])
			} else if value.Valid {
				_m.ThreadID = new(string)
				*_m.ThreadID = value.String
			}
		case investigationsession.FieldSteps:
			if value, ok := values[i].(*[]byte); !ok {
				return fmt.Errorf("unexpected type %T for field steps", values[i])
			} else if value != nil && len(*value) > 0 {
				if err := json.Unmarshal(*value, &_m.Steps); err != nil {
					return fmt.Errorf("unmarshal field steps: %w", err)
				}
			}
		case investigationsession.FieldDiagnosis:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field diagnosis", values[i])
			} else if value.Valid {
				_m.Diagnosis = new(string)
				*_m.Diagnosis = value.String
			}
		case investigationsession.FieldRunMeta:
			if value, ok := values[i].(*[]byte); !ok {
				return fmt.Errorf("unexpected type %T for field run_meta", values[i])
			} else if value != nil && len(*value) > 0 {
				if err := json.Unmarshal(*value, &_m.RunMeta); err != nil {
					return fmt.Errorf("unmarshal field run_meta: %w", err)
				}
			}
		case investigationsession.FieldErrorDetail:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field error_detail", values[i])
			} else if value.Valid {
				_m.ErrorDetail = new(string)
				*_m.ErrorDetail = value.String
			}
		case investigationsession.FieldPodID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field pod_id", values[i])
			} else if value.Valid {
				_m.PodID = new(string)
				*_m.PodID = value.String
			}
		case investigationsession.FieldLastInteractionAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field last_interaction_at", values[i])
			} else if value.Valid {
				_m.LastInteractionAt = new(time.Time)
				*_m.LastInteractionAt = value.Time
			}
		case investigationsession.FieldCreatedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field created_at", values[i])
			} else if value.Valid {
				_m.CreatedAt = value.Time
			}
		case investigationsession.FieldUpdatedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field updated_at", values[i])
			} else if value.Valid {
				_m.UpdatedAt = value.Time
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the InvestigationSession.
// This includes values selected through modifiers, order, etc.
func (_m *InvestigationSession) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// QueryEvents queries the "events" edge of the InvestigationSession entity.
func (_m *InvestigationSession) QueryEvents() *SessionEventQuery {
	return NewInvestigationSessionClient(_m.config).QueryEvents(_m)
}

// Update returns a builder for updating this InvestigationSession.
// Note that you need to call InvestigationSession.Unwrap() before calling this method if this InvestigationSession
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *InvestigationSession) Update() *InvestigationSessionUpdateOne {
	return NewInvestigationSessionClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the InvestigationSession entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *InvestigationSession) Unwrap() *InvestigationSession {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: InvestigationSession is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *InvestigationSession) String() string {
	var builder strings.Builder
	builder.WriteString("InvestigationSession(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("scenario=")
	builder.WriteString(_m.Scenario)
	builder.WriteString(", ")
	builder.WriteString("status=")
	builder.WriteString(fmt.Sprintf("%v", _m.Status))
	builder.WriteString(", ")
	builder.WriteString("alert_text=")
	builder.WriteString(_m.AlertText)
	builder.WriteString(", ")
	builder.WriteString("pending_input=")
	builder.WriteString(_m.PendingInput)
	builder.WriteString(", ")
	if v := _m.ThreadID; v != nil {
		builder.WriteString("thread_id=")
		builder.WriteString(*v)
	}
	builder.WriteString(", ")
	builder.WriteString("steps=")
	builder.WriteString(fmt.Sprintf("%v", _m.Steps))
	builder.WriteString(", ")
	if v := _m.Diagnosis; v != nil {
		builder.WriteString("diagnosis=")
		builder.WriteString(*v)
	}
	builder.WriteString(", ")
	builder.WriteString("run_meta=")
	builder.WriteString(fmt.Sprintf("%v", _m.RunMeta))
	builder.WriteString(", ")
	if v := _m.ErrorDetail; v != nil {
		builder.WriteString("error_detail=")
		builder.WriteString(*v)
	}
	builder.WriteString(", ")
	if v := _m.PodID; v != nil {
		builder.WriteString("pod_id=")
		builder.WriteString(*v)
	}
	builder.WriteString(", ")
	if v := _m.LastInteractionAt; v != nil {
		builder.WriteString("last_interaction_at=")
		builder.WriteString(v.Format(time.ANSIC))
	}
	builder.WriteString(", ")
	builder.WriteString("created_at=")
	builder.WriteString(_m.CreatedAt.Format(time.ANSIC))
	builder.WriteString(", ")
	builder.WriteString("updated_at=")
	builder.WriteString(_m.UpdatedAt.Format(time.ANSIC))
	builder.WriteByte(')')
	return builder.String()
}

// InvestigationSessions is a parsable slice of InvestigationSession.
type InvestigationSessions []*InvestigationSession
