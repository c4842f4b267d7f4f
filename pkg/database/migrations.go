package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql"
)

// CreateGINIndexes creates full-text search GIN indexes for PostgreSQL.
// These enable efficient full-text search over alert text and diagnoses on
// the session listing surface. Custom SQL not handled by the Ent schema.
func CreateGINIndexes(ctx context.Context, driver *sql.Driver) error {
	db := driver.DB()

	_, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_investigation_sessions_alert_text_gin
		ON investigation_sessions USING gin(to_tsvector('english', alert_text))`)
	if err != nil {
		return fmt.Errorf("failed to create alert_text GIN index: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_investigation_sessions_diagnosis_gin
		ON investigation_sessions USING gin(to_tsvector('english', COALESCE(diagnosis, '')))`)
	if err != nil {
		return fmt.Errorf("failed to create diagnosis GIN index: %w", err)
	}

	return nil
}
