// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// InvestigationSessionsColumns holds the columns for the "investigation_sessions" table.
	InvestigationSessionsColumns = []*schema.Column{
		{Name: "session_id", Type: field.TypeString, Unique: true},
		{Name: "scenario", Type: field.TypeString},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"pending", "in_progress", "completed", "failed", "cancelled"}, Default: "pending"},
		{Name: "alert_text", Type: field.TypeString, Size: 2147483647},
		{Name: "pending_input", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "thread_id", Type: field.TypeString, Nullable: true},
		{Name: "steps", Type: field.TypeJSON, Nullable: true},
		{Name: "diagnosis", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "run_meta", Type: field.TypeJSON, Nullable: true},
		{Name: "error_detail", Type: field.TypeString, Nullable: true},
		{Name: "pod_id", Type: field.TypeString, Nullable: true},
		{Name: "last_interaction_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// InvestigationSessionsTable holds the schema information for the "investigation_sessions" table.
	InvestigationSessionsTable = &schema.Table{
		Name:       "investigation_sessions",
		Columns:    InvestigationSessionsColumns,
		PrimaryKey: []*schema.Column{InvestigationSessionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "investigationsession_status",
				Unique:  false,
				Columns: []*schema.Column{InvestigationSessionsColumns[2]},
			},
			{
				Name:    "investigationsession_scenario",
				Unique:  false,
				Columns: []*schema.Column{InvestigationSessionsColumns[1]},
			},
			{
				Name:    "investigationsession_status_created_at",
				Unique:  false,
				Columns: []*schema.Column{InvestigationSessionsColumns[2], InvestigationSessionsColumns[12]},
			},
			{
				Name:    "investigationsession_status_last_interaction_at",
				Unique:  false,
				Columns: []*schema.Column{InvestigationSessionsColumns[2], InvestigationSessionsColumns[11]},
			},
		},
	}
	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "offset", Type: field.TypeInt},
		{Name: "event_type", Type: field.TypeString},
		{Name: "payload", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
	}
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "session_events_investigation_sessions_events",
				Columns:    []*schema.Column{SessionEventsColumns[5]},
				RefColumns: []*schema.Column{InvestigationSessionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "sessionevent_session_id_offset",
				Unique:  true,
				Columns: []*schema.Column{SessionEventsColumns[5], SessionEventsColumns[1]},
			},
			{
				Name:    "sessionevent_created_at",
				Unique:  false,
				Columns: []*schema.Column{SessionEventsColumns[4]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		InvestigationSessionsTable,
		SessionEventsTable,
	}
)

func init() {
	SessionEventsTable.ForeignKeys[0].RefTable = InvestigationSessionsTable
}
