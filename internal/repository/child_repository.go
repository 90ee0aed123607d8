package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aventureros/clubsync-api/internal/models"
)

// ChildRepository persists the class roster in the local store.
type ChildRepository struct {
	db       *sqlx.DB
	notifier *Notifier
}

// NewChildRepository constructs the repository.
func NewChildRepository(db *sqlx.DB, notifier *Notifier) *ChildRepository {
	return &ChildRepository{db: db, notifier: notifier}
}

// BulkPut upserts roster records keyed by id in one transaction.
func (r *ChildRepository) BulkPut(ctx context.Context, children []models.Child) error {
	if len(children) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk put children: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := `INSERT INTO children (id, class_id, full_name, contact_phone, active)
VALUES (:id, :class_id, :full_name, :contact_phone, :active)
ON CONFLICT (id) DO UPDATE SET
	class_id = excluded.class_id,
	full_name = excluded.full_name,
	contact_phone = excluded.contact_phone,
	active = excluded.active`
	for _, child := range children {
		if _, err := tx.NamedExecContext(ctx, query, child); err != nil {
			return fmt.Errorf("bulk put child %s: %w", child.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk put children: %w", err)
	}
	committed = true
	r.notifier.Publish(TableChildren)
	return nil
}

// ListActiveByClass returns the active roster for one class.
func (r *ChildRepository) ListActiveByClass(ctx context.Context, classID string) ([]models.Child, error) {
	var children []models.Child
	query := `SELECT id, class_id, full_name, contact_phone, active
FROM children WHERE class_id = ? AND active = 1 ORDER BY full_name`
	if err := r.db.SelectContext(ctx, &children, query, classID); err != nil {
		return nil, fmt.Errorf("list active children: %w", err)
	}
	return children, nil
}
