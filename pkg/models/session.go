package models

import (
	"time"

	"github.com/sentientmobilefurniture/faultline/ent"
)

// CreateSessionRequest contains fields for starting a new investigation session.
type CreateSessionRequest struct {
	SessionID string `json:"session_id"`
	Scenario  string `json:"scenario"`
	InputText string `json:"input_text"`
}

// SessionFilters contains filtering options for listing sessions.
type SessionFilters struct {
	Scenario string `json:"scenario,omitempty"`
	Status   string `json:"status,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// SessionSummary is the lightweight listing shape: everything the session
// list page needs without loading the event log.
type SessionSummary struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	Status    string    `json:"status"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionListResponse contains a paginated session list.
type SessionListResponse struct {
	Sessions   []SessionSummary `json:"sessions"`
	TotalCount int              `json:"total_count"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

// LogEntry is one persisted event-log row as exposed on the session detail
// endpoint, in log order.
type LogEntry struct {
	Offset    int            `json:"offset"`
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
}

// SessionDetail is the full session record including the event log, the
// shape a client replays from.
type SessionDetail struct {
	*ent.InvestigationSession
	EventLog []LogEntry `json:"event_log"`
}

// RunMeta is the derived cache of the last completed run's counters.
type RunMeta struct {
	Steps  int     `json:"steps"`
	Tokens int     `json:"tokens"`
	Time   float64 `json:"time"`
}
