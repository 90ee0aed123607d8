package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/aventureros/clubsync-api/internal/models"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

// ProgressRepository persists session outcome records. Pending rows
// (sync_state 0) are the only local data that must survive until uploaded.
type ProgressRepository struct {
	db       *sqlx.DB
	notifier *Notifier
}

// NewProgressRepository constructs the repository.
func NewProgressRepository(db *sqlx.DB, notifier *Notifier) *ProgressRepository {
	return &ProgressRepository{db: db, notifier: notifier}
}

// Insert writes one new pending record. A second record for the same
// (child_id, execution_date) violates the unique index and surfaces as a
// duplicate-record conflict.
func (r *ProgressRepository) Insert(ctx context.Context, record models.ProgressRecord) error {
	query := `INSERT INTO progress_records (id, child_id, activity_id, execution_date, attended, evidence_status, sync_state)
VALUES (:id, :child_id, :activity_id, :execution_date, :attended, :evidence_status, :sync_state)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return appErrors.Clone(appErrors.ErrDuplicateRecord, "")
		}
		return fmt.Errorf("insert progress record: %w", err)
	}
	r.notifier.Publish(TableProgressRecords)
	return nil
}

// ListPending returns every record awaiting upload.
func (r *ProgressRepository) ListPending(ctx context.Context) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	query := `SELECT id, child_id, activity_id, execution_date, attended, evidence_status, sync_state
FROM progress_records WHERE sync_state = ? ORDER BY execution_date, child_id`
	if err := r.db.SelectContext(ctx, &records, query, models.SyncStatePending); err != nil {
		return nil, fmt.Errorf("list pending progress: %w", err)
	}
	return records, nil
}

// MarkSynced flips sync_state to synced for exactly the given ids in one
// batch update.
func (r *ProgressRepository) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE progress_records SET sync_state = ? WHERE id IN (?)`, models.SyncStateSynced, ids)
	if err != nil {
		return fmt.Errorf("build mark synced query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	r.notifier.Publish(TableProgressRecords)
	return nil
}

// CountPending returns how many records still await upload.
func (r *ProgressRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM progress_records WHERE sync_state = ?`, models.SyncStatePending); err != nil {
		return 0, fmt.Errorf("count pending progress: %w", err)
	}
	return count, nil
}

// ListByDate returns every record for one execution date, for reporting.
func (r *ProgressRepository) ListByDate(ctx context.Context, date string) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	query := `SELECT id, child_id, activity_id, execution_date, attended, evidence_status, sync_state
FROM progress_records WHERE execution_date = ? ORDER BY child_id`
	if err := r.db.SelectContext(ctx, &records, query, date); err != nil {
		return nil, fmt.Errorf("list progress by date: %w", err)
	}
	return records, nil
}
