package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/trench/internal/ports/secondary"
)

// RepoRepository implements secondary.RepoRepository with SQLite.
type RepoRepository struct {
	db *sql.DB
}

// NewRepoRepository creates a new SQLite repo repository.
func NewRepoRepository(db *sql.DB) *RepoRepository {
	return &RepoRepository{db: db}
}

// Create persists a new repo.
func (r *RepoRepository) Create(ctx context.Context, repo *secondary.RepoRecord) error {
	var defaultBase sql.NullString
	if repo.DefaultBase != "" {
		defaultBase = sql.NullString{String: repo.DefaultBase, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO repos (id, name, path, default_base) VALUES (?, ?, ?, ?)",
		repo.ID, repo.Name, repo.Path, defaultBase,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("repo path %s: %w", repo.Path, secondary.ErrDuplicatePath)
	}
	if err != nil {
		return fmt.Errorf("failed to create repo: %w", err)
	}

	return nil
}

// GetByID retrieves a repo by its ID.
func (r *RepoRepository) GetByID(ctx context.Context, id string) (*secondary.RepoRecord, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByPath retrieves a repo by its unique filesystem path.
func (r *RepoRepository) GetByPath(ctx context.Context, path string) (*secondary.RepoRecord, error) {
	return r.getByColumn(ctx, "path", path)
}

func (r *RepoRepository) getByColumn(ctx context.Context, column, value string) (*secondary.RepoRecord, error) {
	var (
		defaultBase sql.NullString
		createdAt   time.Time
	)

	record := &secondary.RepoRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, path, default_base, created_at FROM repos WHERE "+column+" = ?",
		value,
	).Scan(&record.ID, &record.Name, &record.Path, &defaultBase, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("repo %s: %w", value, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get repo: %w", err)
	}

	record.DefaultBase = defaultBase.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves all repos ordered by name.
func (r *RepoRepository) List(ctx context.Context) ([]*secondary.RepoRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, path, default_base, created_at FROM repos ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list repos: %w", err)
	}
	defer rows.Close()

	var repos []*secondary.RepoRecord
	for rows.Next() {
		var (
			defaultBase sql.NullString
			createdAt   time.Time
		)

		record := &secondary.RepoRecord{}
		err := rows.Scan(&record.ID, &record.Name, &record.Path, &defaultBase, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repo: %w", err)
		}

		record.DefaultBase = defaultBase.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		repos = append(repos, record)
	}

	return repos, nil
}

// GetNextID returns the next available repo ID.
func (r *RepoRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM repos",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next repo ID: %w", err)
	}

	return fmt.Sprintf("REPO-%03d", maxID+1), nil
}

// Ensure RepoRepository implements the interface
var _ secondary.RepoRepository = (*RepoRepository)(nil)
