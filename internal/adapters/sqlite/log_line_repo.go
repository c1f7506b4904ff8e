package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/trench/internal/ports/secondary"
)

const logLineColumns = "id, event_id, stream, line, line_number, created_at"

// LogLineRepository implements secondary.LogLineRepository with SQLite.
//
// Append allocates the next line number for the (event, stream) pair and
// inserts the row in the same transaction. Two concurrent appenders to the
// same pair serialize on the write lock, so numbers stay contiguous with
// no duplicates and no gaps.
type LogLineRepository struct {
	db *sql.DB
}

// NewLogLineRepository creates a new SQLite log line repository.
func NewLogLineRepository(db *sql.DB) *LogLineRepository {
	return &LogLineRepository{db: db}
}

// Append inserts the next line for (event, stream) and returns the stored row.
func (r *LogLineRepository) Append(ctx context.Context, eventID, stream, line string) (*secondary.LogLineRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin log transaction: %w", err)
	}
	defer tx.Rollback()

	var eventCount int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE id = ?", eventID,
	).Scan(&eventCount); err != nil {
		return nil, fmt.Errorf("failed to check event existence: %w", err)
	}
	if eventCount == 0 {
		return nil, fmt.Errorf("event %s: %w", eventID, secondary.ErrNotFound)
	}

	// ID and line_number both come from maxima read inside the write
	// transaction: line numbers start at 1 and stay contiguous per
	// (event, stream); the ID counter is global.
	result, err := tx.ExecContext(ctx,
		`INSERT INTO log_lines (id, event_id, stream, line, line_number)
		 SELECT printf('LOG-%06d', (SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) + 1 FROM log_lines)),
		        ?, ?, ?,
		        (SELECT COALESCE(MAX(line_number), 0) + 1 FROM log_lines WHERE event_id = ? AND stream = ?)`,
		eventID, stream, line, eventID, stream,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append log line: %w", err)
	}

	rowID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get log line rowid: %w", err)
	}

	row := tx.QueryRowContext(ctx,
		"SELECT "+logLineColumns+" FROM log_lines WHERE rowid = ?", rowID)
	stored, err := scanLogLine(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back log line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit log line: %w", err)
	}

	return stored, nil
}

// Read retrieves lines ordered by line number, optionally filtered to one
// stream. An event with no lines yields an empty slice.
func (r *LogLineRepository) Read(ctx context.Context, eventID, stream string) ([]*secondary.LogLineRecord, error) {
	query := "SELECT " + logLineColumns + " FROM log_lines WHERE event_id = ?"
	args := []any{eventID}

	if stream != "" {
		query += " AND stream = ?"
		args = append(args, stream)
	}

	query += " ORDER BY stream ASC, line_number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read log lines: %w", err)
	}
	defer rows.Close()

	var lines []*secondary.LogLineRecord
	for rows.Next() {
		record, err := scanLogLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log line: %w", err)
		}
		lines = append(lines, record)
	}

	return lines, nil
}

// PruneOlderThan deletes log lines older than the given number of days.
func (r *LogLineRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM log_lines WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune log lines: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

func scanLogLine(row rowScanner) (*secondary.LogLineRecord, error) {
	var createdAt time.Time

	record := &secondary.LogLineRecord{}
	err := row.Scan(&record.ID, &record.EventID, &record.Stream,
		&record.Line, &record.LineNumber, &createdAt)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure LogLineRepository implements the interface
var _ secondary.LogLineRepository = (*LogLineRepository)(nil)
