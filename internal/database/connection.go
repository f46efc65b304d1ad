// Package database is the single source of truth for which episodes have
// already been ingested. It persists feeds and episode records in SQLite and
// enforces the (feed, guid) uniqueness constraint that makes repeated and
// concurrent runs safe.
package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
}

// Open initializes or connects to the ledger database at path, archives any
// pre-multi-feed schema it finds and applies pending migrations. A failure
// here is fatal to the run: without the ledger there is no safe dedup.
func Open(path string, logger *slog.Logger) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := sqlDB.Exec(pragma); execErr != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply pragma %q: %w", pragma, execErr)
		}
	}

	db := &DB{DB: sqlDB}

	if err := db.archiveLegacySchema(logger); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := db.runMigrations(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("Database setup complete", "path", path)
	return db, nil
}
