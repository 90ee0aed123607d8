package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Device state keys.
const (
	StateKeyClassID     = "class_id"
	StateKeyAccessToken = "access_token"
)

// StateRepository holds small last-known-good device state, such as the
// cached class identity that hydration falls back to when the remote lookup
// loses its race against the timeout.
type StateRepository struct {
	db *sqlx.DB
}

// NewStateRepository constructs the repository.
func NewStateRepository(db *sqlx.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the stored value for key, or empty string when absent.
func (r *StateRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM device_state WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get device state %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key.
func (r *StateRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO device_state (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set device state %s: %w", key, err)
	}
	return nil
}
