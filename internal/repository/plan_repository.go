package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aventureros/clubsync-api/internal/models"
)

// PlanRepository persists the nearest-session plan cache.
type PlanRepository struct {
	db       *sqlx.DB
	notifier *Notifier
}

// NewPlanRepository constructs the repository.
func NewPlanRepository(db *sqlx.DB, notifier *Notifier) *PlanRepository {
	return &PlanRepository{db: db, notifier: notifier}
}

// Replace purges every cached plan for the class and inserts the fresh one
// in a single transaction, so a stale plan can never linger alongside the
// new one.
func (r *PlanRepository) Replace(ctx context.Context, classID string, plan models.SessionPlan) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace plan: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_plans WHERE class_id = ?`, classID); err != nil {
		return fmt.Errorf("purge plans for class %s: %w", classID, err)
	}

	query := `INSERT INTO session_plans (id, class_id, session_date, title, teaching_instruction, teaching_note, practice_instruction, practice_note, materials, lead)
VALUES (:id, :class_id, :session_date, :title, :teaching_instruction, :teaching_note, :practice_instruction, :practice_note, :materials, :lead)`
	if _, err := tx.NamedExecContext(ctx, query, plan); err != nil {
		return fmt.Errorf("insert plan %s: %w", plan.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace plan: %w", err)
	}
	committed = true
	r.notifier.Publish(TableSessionPlans)
	return nil
}

// GetByClass returns the cached plan for a class, or sql.ErrNoRows.
func (r *PlanRepository) GetByClass(ctx context.Context, classID string) (*models.SessionPlan, error) {
	var plan models.SessionPlan
	query := `SELECT id, class_id, session_date, title, teaching_instruction, teaching_note, practice_instruction, practice_note, materials, lead
FROM session_plans WHERE class_id = ? ORDER BY session_date LIMIT 1`
	if err := r.db.GetContext(ctx, &plan, query, classID); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CountByClass returns how many plan rows exist for a class.
func (r *PlanRepository) CountByClass(ctx context.Context, classID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM session_plans WHERE class_id = ?`, classID); err != nil {
		return 0, fmt.Errorf("count plans: %w", err)
	}
	return count, nil
}
