package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/trench/internal/ports/secondary"
)

const eventColumns = "id, seq, repo_id, worktree_id, event_type, payload, created_at"

// EventRepository implements secondary.EventRepository with SQLite.
//
// Record is the atomic half of the consistency enforcer: the repo/worktree
// membership check, the seq allocation, and the insert all happen inside a
// single transaction, so no event row is ever visible that violates the
// standing rule, even transiently.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Record inserts a new event and returns the stored row.
func (r *EventRepository) Record(ctx context.Context, event *secondary.EventRecord) (*secondary.EventRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin event transaction: %w", err)
	}
	defer tx.Rollback()

	// Repo must exist for every event.
	var repoCount int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM repos WHERE id = ?", event.RepoID,
	).Scan(&repoCount); err != nil {
		return nil, fmt.Errorf("failed to check repo existence: %w", err)
	}
	if repoCount == 0 {
		return nil, fmt.Errorf("repo %s: %w", event.RepoID, secondary.ErrNotFound)
	}

	var worktreeID sql.NullString
	if event.WorktreeID != "" {
		// Standing rule: the worktree must belong to the event's repo.
		// Checked here, inside the same transaction as the insert.
		var worktreeRepoID string
		err := tx.QueryRowContext(ctx,
			"SELECT repo_id FROM worktrees WHERE id = ?", event.WorktreeID,
		).Scan(&worktreeRepoID)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("worktree %s: %w", event.WorktreeID, secondary.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check worktree repo: %w", err)
		}
		if worktreeRepoID != event.RepoID {
			return nil, fmt.Errorf("worktree %s belongs to repo %s, event targets %s: %w",
				event.WorktreeID, worktreeRepoID, event.RepoID, secondary.ErrInvariantViolation)
		}
		worktreeID = sql.NullString{String: event.WorktreeID, Valid: true}
	}

	var payload sql.NullString
	if event.Payload != "" {
		payload = sql.NullString{String: event.Payload, Valid: true}
	}

	// Seq allocation and insert in one statement; the transaction holds
	// the write lock, so concurrent recorders cannot observe the same max.
	result, err := tx.ExecContext(ctx,
		`INSERT INTO events (id, seq, repo_id, worktree_id, event_type, payload)
		 SELECT printf('EVT-%04d', next), next, ?, ?, ?, ?
		 FROM (SELECT COALESCE(MAX(seq), 0) + 1 AS next FROM events)`,
		event.RepoID, worktreeID, event.EventType, payload,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}

	rowID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get event rowid: %w", err)
	}

	row := tx.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE rowid = ?", rowID)
	stored, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event: %w", err)
	}

	return stored, nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*secondary.EventRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", id)

	record, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return record, nil
}

// List retrieves events matching the given filters in creation order.
func (r *EventRepository) List(ctx context.Context, filters secondary.EventFilters) ([]*secondary.EventRecord, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE 1=1"
	args := []any{}

	if filters.RepoID != "" {
		query += " AND repo_id = ?"
		args = append(args, filters.RepoID)
	}

	if filters.WorktreeID != "" {
		query += " AND worktree_id = ?"
		args = append(args, filters.WorktreeID)
	}

	if filters.EventType != "" {
		query += " AND event_type = ?"
		args = append(args, filters.EventType)
	}

	query += " ORDER BY seq ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.EventRecord
	for rows.Next() {
		record, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, record)
	}

	return events, nil
}

func scanEvent(row rowScanner) (*secondary.EventRecord, error) {
	var (
		worktreeID sql.NullString
		payload    sql.NullString
		createdAt  time.Time
	)

	record := &secondary.EventRecord{}
	err := row.Scan(&record.ID, &record.Seq, &record.RepoID, &worktreeID,
		&record.EventType, &payload, &createdAt)
	if err != nil {
		return nil, err
	}

	record.WorktreeID = worktreeID.String
	record.Payload = payload.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure EventRepository implements the interface
var _ secondary.EventRepository = (*EventRepository)(nil)
