package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order. Fresh installs get the
// full schema from SchemaSQL and are stamped at the latest version; only
// databases created by older releases run these.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_removed_at_to_worktrees",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_default_base_to_repos",
		Up:      migrationV2,
	},
}

// latestVersion returns the highest known migration version.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

func migrationV1(db *sql.DB) error {
	if has, err := columnExists(db, "worktrees", "removed_at"); err != nil || has {
		return err
	}
	_, err := db.Exec("ALTER TABLE worktrees ADD COLUMN removed_at DATETIME")
	return err
}

func migrationV2(db *sql.DB) error {
	if has, err := columnExists(db, "repos", "default_base"); err != nil || has {
		return err
	}
	_, err := db.Exec("ALTER TABLE repos ADD COLUMN default_base TEXT")
	return err
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	database, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	if err := ensureVersionTable(database); err != nil {
		return err
	}

	var currentVersion int
	err = database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = database.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}
