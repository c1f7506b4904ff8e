package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

var dbInitialized bool

// GetDB returns the database connection, initializing if needed
func GetDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	trenchDir := filepath.Join(home, ".trench")
	dbPath := filepath.Join(trenchDir, "trench.db")

	// Ensure .trench directory exists
	if err := os.MkdirAll(trenchDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .trench directory: %w", err)
	}

	// WAL and a busy timeout let concurrent writers serialize instead of
	// erroring; foreign keys are off by default in SQLite.
	// _txlock=immediate makes BeginTx take the write lock up front, so
	// transactions that read a maximum before inserting (event seq, log
	// line numbers) serialize instead of racing.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", dbPath)
	db, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run schema init on first connection (but avoid recursion)
	if !dbInitialized {
		dbInitialized = true
		if err := InitSchema(); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// GetDBPath returns the path to the database file
func GetDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trench", "trench.db"), nil
}
