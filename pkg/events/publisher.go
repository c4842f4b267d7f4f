package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// notifyLimit is the size above which NOTIFY payloads are replaced with a
// truncation envelope. PostgreSQL rejects notifications near 8000 bytes;
// clients recover the full event from the log via its offset.
const notifyLimit = 7900

// Publisher appends canonical events to a session's log and broadcasts them
// via NOTIFY. Persisted events get the next per-session offset inside the
// same transaction as the pg_notify call, so live subscribers observe
// exactly the committed log order. Offsets are gap-free because the session
// manager guarantees a single writer per session.
type Publisher struct {
	db *sql.DB
}

// NewPublisher creates a Publisher on the given database handle.
func NewPublisher(db *sql.DB) *Publisher {
	return &Publisher{db: db}
}

// Append persists one event to the session's log and notifies the session
// channel. Returns the assigned offset.
func (p *Publisher) Append(ctx context.Context, sessionID string, ev Event) (int, error) {
	payloadJSON, err := json.Marshal(ev.Payload)
	if err != nil {
		return 0, fmt.Errorf("marshaling %s payload: %w", ev.Type(), err)
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning event transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var offset int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO session_events (session_id, "offset", event_type, payload, created_at)
		 VALUES ($1, (SELECT COALESCE(MAX("offset") + 1, 0) FROM session_events WHERE session_id = $1), $2, $3, $4)
		 RETURNING "offset"`,
		sessionID, ev.Type(), payloadJSON, time.Now(),
	).Scan(&offset)
	if err != nil {
		return 0, fmt.Errorf("persisting %s event: %w", ev.Type(), err)
	}

	notifyPayload, err := buildNotifyPayload(ev.Type(), sessionID, offset, payloadJSON)
	if err != nil {
		return 0, err
	}

	// pg_notify is transactional — the notification is held until COMMIT, so
	// the INSERT and the broadcast are atomic.
	if _, err := tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", SessionChannel(sessionID), notifyPayload); err != nil {
		return 0, fmt.Errorf("pg_notify failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing event transaction: %w", err)
	}

	return offset, nil
}

// NotifySessionStatus broadcasts a transient session-status notification to
// the global sessions channel for the session list page. Not persisted — the
// authoritative status lives on the session record.
func (p *Publisher) NotifySessionStatus(ctx context.Context, sessionID, status string) {
	payload, err := json.Marshal(map[string]any{
		"type":       "session.status",
		"session_id": sessionID,
		"status":     status,
		"timestamp":  time.Now().Format(time.RFC3339Nano),
	})
	if err != nil {
		return
	}
	if _, err := p.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", GlobalSessionsChannel, string(payload)); err != nil {
		slog.Warn("Failed to notify global sessions channel",
			"session_id", sessionID, "status", status, "error", err)
	}
}

// buildNotifyPayload wraps a marshaled payload with its routing fields
// (type, session_id, offset) for NOTIFY delivery, truncating oversized
// payloads to a minimal envelope.
func buildNotifyPayload(eventType, sessionID string, offset int, payloadJSON []byte) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(payloadJSON, &m); err != nil {
		return "", fmt.Errorf("unmarshaling payload for notify enrichment: %w", err)
	}
	m["type"] = eventType
	m["session_id"] = sessionID
	m["offset"] = offset

	enriched, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling notify payload: %w", err)
	}
	if len(enriched) <= notifyLimit {
		return string(enriched), nil
	}

	// Too big for NOTIFY: send only the routing fields. The subscriber
	// refetches the full event from the log by offset.
	truncated, err := json.Marshal(map[string]any{
		"type":       eventType,
		"session_id": sessionID,
		"offset":     offset,
		"truncated":  true,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling truncation envelope: %w", err)
	}
	return string(truncated), nil
}
