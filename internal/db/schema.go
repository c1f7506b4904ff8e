package db

// SchemaSQL is the complete schema for fresh trench installs.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL() so that repository code and tests can never
// drift apart: if a repository references a column that does not exist here,
// tests fail immediately with "no such column".
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
const SchemaSQL = `
-- Repos (registered source repositories)
CREATE TABLE IF NOT EXISTS repos (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	path TEXT NOT NULL UNIQUE,
	default_base TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Worktrees (managed or adopted checkouts belonging to a repo)
CREATE TABLE IF NOT EXISTS worktrees (
	id TEXT PRIMARY KEY,
	repo_id TEXT NOT NULL,
	name TEXT NOT NULL,
	branch TEXT NOT NULL,
	path TEXT NOT NULL UNIQUE,
	base_branch TEXT,
	managed INTEGER NOT NULL DEFAULT 1,
	adopted_at DATETIME,
	last_accessed DATETIME,
	removed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (repo_id) REFERENCES repos(id)
);

-- Events (append-only lifecycle records, repo-scoped, optionally worktree-scoped)
-- Standing rule: when worktree_id is set, repo_id must equal that worktree's
-- repo_id. Enforced inside the insert transaction by the event repository.
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	seq INTEGER NOT NULL UNIQUE,
	repo_id TEXT NOT NULL,
	worktree_id TEXT,
	event_type TEXT NOT NULL,
	payload TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (repo_id) REFERENCES repos(id),
	FOREIGN KEY (worktree_id) REFERENCES worktrees(id)
);

-- Log lines (append-only output captured per event and stream)
CREATE TABLE IF NOT EXISTS log_lines (
	id TEXT PRIMARY KEY,
	event_id TEXT NOT NULL,
	stream TEXT NOT NULL,
	line TEXT NOT NULL,
	line_number INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (event_id) REFERENCES events(id),
	UNIQUE(event_id, stream, line_number)
);

-- Tags (labels attached to worktrees)
CREATE TABLE IF NOT EXISTS tags (
	id TEXT PRIMARY KEY,
	worktree_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (worktree_id) REFERENCES worktrees(id),
	UNIQUE(worktree_id, name)
);

-- Session (singleton process key-value state, no foreign keys)
CREATE TABLE IF NOT EXISTS session (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_worktrees_repo ON worktrees(repo_id);
CREATE INDEX IF NOT EXISTS idx_events_repo ON events(repo_id);
CREATE INDEX IF NOT EXISTS idx_events_worktree ON events(worktree_id);
CREATE INDEX IF NOT EXISTS idx_log_lines_event ON log_lines(event_id, stream);
`

// GetSchemaSQL returns the authoritative schema SQL for tests and InitSchema.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables and indexes if they do not exist. Fresh
// installs are stamped at the latest schema version; databases from older
// releases get pending migrations applied instead.
func InitSchema() error {
	database, err := GetDB()
	if err != nil {
		return err
	}

	var repoTableCount int
	err = database.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='repos'",
	).Scan(&repoTableCount)
	if err != nil {
		return err
	}

	if repoTableCount > 0 {
		return RunMigrations()
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}

	if err := ensureVersionTable(database); err != nil {
		return err
	}
	_, err = database.Exec(
		"INSERT OR IGNORE INTO schema_version (version) VALUES (?)", latestVersion())
	return err
}
