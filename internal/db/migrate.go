package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id                     INTEGER PRIMARY KEY,
		plan_number            TEXT NOT NULL DEFAULT '',
		entity_name            TEXT NOT NULL,
		entity_contact         TEXT NOT NULL DEFAULT '',
		indicator              TEXT NOT NULL DEFAULT '',
		improvement_input      TEXT NOT NULL DEFAULT '',
		action_type            TEXT NOT NULL DEFAULT '',
		recommended_action     TEXT NOT NULL DEFAULT '',
		proposed_action        TEXT NOT NULL DEFAULT '',
		activities_description TEXT NOT NULL DEFAULT '',
		compliance_evidence    TEXT NOT NULL DEFAULT '',
		start_date             TEXT NOT NULL DEFAULT '',
		end_date               TEXT NOT NULL DEFAULT '',
		state                  TEXT NOT NULL DEFAULT '',
		decision               TEXT NOT NULL DEFAULT '',
		quality_observation    TEXT NOT NULL DEFAULT '',
		created_by             INTEGER NOT NULL DEFAULT 0,
		created_at             TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS follow_ups (
		id                   INTEGER PRIMARY KEY,
		plan_id              INTEGER NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		report_date          TEXT NOT NULL DEFAULT '',
		activities_performed TEXT NOT NULL DEFAULT '',
		evidence_file        TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'Pendiente',
		quality_observation  TEXT NOT NULL DEFAULT '',
		updated_by           TEXT NOT NULL DEFAULT '',
		created_at           TEXT,
		updated_at           TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_follow_ups_plan ON follow_ups(plan_id)`,

	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		synced_at  TEXT NOT NULL
	)`,
}
