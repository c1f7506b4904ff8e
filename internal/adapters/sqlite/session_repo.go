package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/trench/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionRepository with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Set upserts a key. The value and updated_at are replaced wholesale.
func (r *SessionRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set session key: %w", err)
	}

	return nil
}

// Get retrieves the current value for a key.
func (r *SessionRepository) Get(ctx context.Context, key string) (*secondary.SessionRecord, error) {
	var updatedAt time.Time

	record := &secondary.SessionRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM session WHERE key = ?",
		key,
	).Scan(&record.Key, &record.Value, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session key %q: %w", key, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session key: %w", err)
	}

	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure SessionRepository implements the interface
var _ secondary.SessionRepository = (*SessionRepository)(nil)
