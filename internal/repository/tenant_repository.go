package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TenantRepository handles whole-tenant lifecycle in the local store.
type TenantRepository struct {
	db       *sqlx.DB
	notifier *Notifier
}

// NewTenantRepository constructs the repository.
func NewTenantRepository(db *sqlx.DB, notifier *Notifier) *TenantRepository {
	return &TenantRepository{db: db, notifier: notifier}
}

// Clear deletes every row belonging to the class across all tables, plus the
// cached device identity, in one transaction. All-or-nothing: a partially
// purged store would leak one tenant's rows into the next session.
func (r *TenantRepository) Clear(ctx context.Context, classID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tenant: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	statements := []string{
		`DELETE FROM progress_records WHERE child_id IN (SELECT id FROM children WHERE class_id = ?)`,
		`DELETE FROM session_plans WHERE class_id = ?`,
		`DELETE FROM children WHERE class_id = ?`,
		`DELETE FROM class_profiles WHERE id = ?`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, classID); err != nil {
			return fmt.Errorf("clear tenant %s: %w", classID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM device_state WHERE key = ? AND value = ?`, StateKeyClassID, classID); err != nil {
		return fmt.Errorf("clear tenant identity %s: %w", classID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear tenant: %w", err)
	}
	committed = true

	r.notifier.Publish(TableClassProfiles)
	r.notifier.Publish(TableChildren)
	r.notifier.Publish(TableSessionPlans)
	r.notifier.Publish(TableProgressRecords)
	return nil
}
