// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/trench/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// An in-memory database exists per connection; keep the pool at one.
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setupFileTestDB creates a file-backed database with the same DSN options
// production uses (WAL, immediate transactions, busy timeout). Needed for
// tests that exercise concurrent writers: an in-memory database is private
// to a single connection.
func setupFileTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trench.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)

	testDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRepo inserts a test repo and returns its ID.
func seedRepo(t *testing.T, db *sql.DB, id, path string) string {
	t.Helper()
	if id == "" {
		id = "REPO-001"
	}
	if path == "" {
		path = "/repos/app"
	}
	_, err := db.Exec("INSERT INTO repos (id, name, path, default_base) VALUES (?, 'app', ?, 'main')", id, path)
	if err != nil {
		t.Fatalf("failed to seed repo: %v", err)
	}
	return id
}

// seedWorktree inserts a test worktree and returns its ID.
func seedWorktree(t *testing.T, db *sql.DB, id, repoID, path string) string {
	t.Helper()
	if id == "" {
		id = "WT-001"
	}
	if repoID == "" {
		repoID = "REPO-001"
	}
	if path == "" {
		path = "/repos/app/.wt/feature"
	}
	_, err := db.Exec(
		"INSERT INTO worktrees (id, repo_id, name, branch, path, managed) VALUES (?, ?, 'feature', 'feature', ?, 1)",
		id, repoID, path)
	if err != nil {
		t.Fatalf("failed to seed worktree: %v", err)
	}
	return id
}

// seedEvent inserts a test event and returns its ID.
func seedEvent(t *testing.T, db *sql.DB, id string, seq int, repoID string) string {
	t.Helper()
	if id == "" {
		id = "EVT-0001"
	}
	if seq == 0 {
		seq = 1
	}
	if repoID == "" {
		repoID = "REPO-001"
	}
	_, err := db.Exec(
		"INSERT INTO events (id, seq, repo_id, event_type) VALUES (?, ?, ?, 'test')",
		id, seq, repoID)
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return id
}
