package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/trench/internal/ports/secondary"
)

const worktreeColumns = "id, repo_id, name, branch, path, base_branch, managed, adopted_at, last_accessed, removed_at, created_at"

// WorktreeRepository implements secondary.WorktreeRepository with SQLite.
type WorktreeRepository struct {
	db *sql.DB
}

// NewWorktreeRepository creates a new SQLite worktree repository.
func NewWorktreeRepository(db *sql.DB) *WorktreeRepository {
	return &WorktreeRepository{db: db}
}

// Create persists a new worktree. Managed worktrees get a NULL adopted_at;
// adopted ones are stamped with the current time.
func (r *WorktreeRepository) Create(ctx context.Context, wt *secondary.WorktreeRecord) error {
	var baseBranch sql.NullString
	if wt.BaseBranch != "" {
		baseBranch = sql.NullString{String: wt.BaseBranch, Valid: true}
	}

	adoptedAt := sql.NullTime{Time: time.Now().UTC(), Valid: !wt.Managed}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO worktrees (id, repo_id, name, branch, path, base_branch, managed, adopted_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		wt.ID, wt.RepoID, wt.Name, wt.Branch, wt.Path, baseBranch, wt.Managed, adoptedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("worktree path %s: %w", wt.Path, secondary.ErrDuplicatePath)
	}
	if err != nil {
		return fmt.Errorf("failed to create worktree: %w", err)
	}

	return nil
}

// GetByID retrieves a worktree by its ID.
func (r *WorktreeRepository) GetByID(ctx context.Context, id string) (*secondary.WorktreeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+worktreeColumns+" FROM worktrees WHERE id = ?", id)

	record, err := scanWorktree(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("worktree %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	return record, nil
}

// FindByIdentifier resolves a worktree within a repo by name first, then by
// branch.
func (r *WorktreeRepository) FindByIdentifier(ctx context.Context, repoID, identifier string) (*secondary.WorktreeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+worktreeColumns+" FROM worktrees WHERE repo_id = ? AND name = ?",
		repoID, identifier)

	record, err := scanWorktree(row)
	if err == sql.ErrNoRows {
		row = r.db.QueryRowContext(ctx,
			"SELECT "+worktreeColumns+" FROM worktrees WHERE repo_id = ? AND branch = ?",
			repoID, identifier)
		record, err = scanWorktree(row)
	}

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("worktree %s: %w", identifier, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find worktree: %w", err)
	}

	return record, nil
}

// List retrieves all worktrees belonging to a repo, oldest first.
func (r *WorktreeRepository) List(ctx context.Context, repoID string) ([]*secondary.WorktreeRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+worktreeColumns+" FROM worktrees WHERE repo_id = ? ORDER BY created_at ASC, id ASC",
		repoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	defer rows.Close()

	var worktrees []*secondary.WorktreeRecord
	for rows.Next() {
		record, err := scanWorktree(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worktree: %w", err)
		}
		worktrees = append(worktrees, record)
	}

	return worktrees, nil
}

// Touch sets last_accessed to now.
func (r *WorktreeRepository) Touch(ctx context.Context, id string) error {
	return r.stamp(ctx, "last_accessed", id)
}

// MarkRemoved sets removed_at to now. The row stays; external removal is
// recorded as an event by the caller.
func (r *WorktreeRepository) MarkRemoved(ctx context.Context, id string) error {
	return r.stamp(ctx, "removed_at", id)
}

func (r *WorktreeRepository) stamp(ctx context.Context, column, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE worktrees SET "+column+" = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to update worktree: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("worktree %s: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// GetNextID returns the next available worktree ID.
func (r *WorktreeRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM worktrees",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next worktree ID: %w", err)
	}

	return fmt.Sprintf("WT-%03d", maxID+1), nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorktree(row rowScanner) (*secondary.WorktreeRecord, error) {
	var (
		baseBranch   sql.NullString
		managed      bool
		adoptedAt    sql.NullTime
		lastAccessed sql.NullTime
		removedAt    sql.NullTime
		createdAt    time.Time
	)

	record := &secondary.WorktreeRecord{}
	err := row.Scan(&record.ID, &record.RepoID, &record.Name, &record.Branch,
		&record.Path, &baseBranch, &managed, &adoptedAt, &lastAccessed, &removedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	record.BaseBranch = baseBranch.String
	record.Managed = managed
	if adoptedAt.Valid {
		record.AdoptedAt = adoptedAt.Time.Format(time.RFC3339)
	}
	if lastAccessed.Valid {
		record.LastAccessed = lastAccessed.Time.Format(time.RFC3339)
	}
	if removedAt.Valid {
		record.RemovedAt = removedAt.Time.Format(time.RFC3339)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure WorktreeRepository implements the interface
var _ secondary.WorktreeRepository = (*WorktreeRepository)(nil)
