package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aventureros/clubsync-api/internal/models"
)

// ClassRepository persists class identity records in the local store.
type ClassRepository struct {
	db       *sqlx.DB
	notifier *Notifier
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB, notifier *Notifier) *ClassRepository {
	return &ClassRepository{db: db, notifier: notifier}
}

// Put upserts a class profile keyed by id, overwriting on conflict.
func (r *ClassRepository) Put(ctx context.Context, profile models.ClassProfile) error {
	query := `INSERT INTO class_profiles (id, name, target_age, primary_color, secondary_color, accent_color, background_color)
VALUES (:id, :name, :target_age, :primary_color, :secondary_color, :accent_color, :background_color)
ON CONFLICT (id) DO UPDATE SET
	name = excluded.name,
	target_age = excluded.target_age,
	primary_color = excluded.primary_color,
	secondary_color = excluded.secondary_color,
	accent_color = excluded.accent_color,
	background_color = excluded.background_color`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("put class profile: %w", err)
	}
	r.notifier.Publish(TableClassProfiles)
	return nil
}

// Get returns one class profile by id.
func (r *ClassRepository) Get(ctx context.Context, id string) (*models.ClassProfile, error) {
	var profile models.ClassProfile
	query := `SELECT id, name, target_age, primary_color, secondary_color, accent_color, background_color
FROM class_profiles WHERE id = ?`
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns every cached class profile.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassProfile, error) {
	var profiles []models.ClassProfile
	query := `SELECT id, name, target_age, primary_color, secondary_color, accent_color, background_color
FROM class_profiles ORDER BY name`
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list class profiles: %w", err)
	}
	return profiles, nil
}
