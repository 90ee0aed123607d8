package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations evolve the local schema additively: each step only adds tables
// and indexes. The single exception is step 3, which drops the
// activity_units cache; per-date session plans replaced it and the table was
// always rebuildable from the remote backend, so this is a deliberate
// one-time cleanup, not silent data loss.
var migrations = []string{
	// v1: roster, curriculum cache and the critical progress table. The
	// unique (child_id, execution_date) index rejects a second same-day
	// submission for the same child.
	`CREATE TABLE IF NOT EXISTS children (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		contact_phone TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_children_class ON children(class_id, active);

	CREATE TABLE IF NOT EXISTS activity_units (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		track TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS progress_records (
		id TEXT PRIMARY KEY,
		child_id TEXT NOT NULL,
		activity_id TEXT NOT NULL DEFAULT '',
		execution_date TEXT NOT NULL,
		attended INTEGER NOT NULL DEFAULT 0,
		evidence_status TEXT NOT NULL DEFAULT '',
		sync_state INTEGER NOT NULL DEFAULT 0
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_progress_child_date
		ON progress_records(child_id, execution_date);
	CREATE INDEX IF NOT EXISTS idx_progress_sync_state
		ON progress_records(sync_state);`,

	// v2: class identity for theming plus the nearest-session plan cache,
	// at most one plan per (class_id, session_date).
	`CREATE TABLE IF NOT EXISTS class_profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		target_age INTEGER NOT NULL DEFAULT 0,
		primary_color TEXT NOT NULL DEFAULT '',
		secondary_color TEXT NOT NULL DEFAULT '',
		accent_color TEXT NOT NULL DEFAULT '',
		background_color TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS session_plans (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		session_date TEXT NOT NULL,
		title TEXT,
		teaching_instruction TEXT NOT NULL DEFAULT '',
		teaching_note TEXT NOT NULL DEFAULT '',
		practice_instruction TEXT NOT NULL DEFAULT '',
		practice_note TEXT NOT NULL DEFAULT '',
		materials TEXT NOT NULL DEFAULT '[]',
		lead TEXT NOT NULL DEFAULT ''
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_class_date
		ON session_plans(class_id, session_date);`,

	// v3: device state (cached identity, cached session token) and the
	// documented activity_units cleanup.
	`CREATE TABLE IF NOT EXISTS device_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	DROP TABLE IF EXISTS activity_units;`,
}

// Migrate applies any pending schema migrations, tracking progress with
// PRAGMA user_version.
func Migrate(db *sqlx.DB) error {
	var version int
	if err := db.Get(&version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("bump schema version to %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
