package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/trench/internal/ports/secondary"
)

// TagRepository implements secondary.TagRepository with SQLite.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new SQLite tag repository.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create persists a new tag.
func (r *TagRepository) Create(ctx context.Context, tag *secondary.TagRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tags (id, worktree_id, name) VALUES (?, ?, ?)",
		tag.ID, tag.WorktreeID, tag.Name,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tag %q on worktree %s: %w", tag.Name, tag.WorktreeID, secondary.ErrDuplicateTag)
	}
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// ListNames retrieves the tag names on a worktree, sorted.
func (r *TagRepository) ListNames(ctx context.Context, worktreeID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM tags WHERE worktree_id = ? ORDER BY name ASC",
		worktreeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		names = append(names, name)
	}

	return names, nil
}

// Delete removes a tag by (worktree, name).
func (r *TagRepository) Delete(ctx context.Context, worktreeID, name string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tags WHERE worktree_id = ? AND name = ?",
		worktreeID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("tag %q on worktree %s: %w", name, worktreeID, secondary.ErrNotFound)
	}

	return nil
}

// GetNextID returns the next available tag ID.
func (r *TagRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM tags",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next tag ID: %w", err)
	}

	return fmt.Sprintf("TAG-%03d", maxID+1), nil
}

// Ensure TagRepository implements the interface
var _ secondary.TagRepository = (*TagRepository)(nil)
