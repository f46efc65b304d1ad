package database

import (
	"fmt"
	"log/slog"
)

// legacyArchiveName is the label the pre-multi-feed episodes table is
// archived under. The old table is kept, not dropped: its shape is unknown
// and an automatic data migration is not attempted.
const legacyArchiveName = "episodes_old_pre_multi_feed"

// archiveLegacySchema detects a ledger created before feeds were first-class
// (an episodes table without a feed_id column) and renames it out of the
// way. This deliberately resets dedup history once, loudly, instead of
// guessing at a data migration.
func (db *DB) archiveLegacySchema(logger *slog.Logger) error {
	var tableCount int
	err := db.QueryRow(
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'episodes'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to check for episodes table: %w", err)
	}
	if tableCount == 0 {
		return nil
	}

	hasFeedColumn, err := db.tableHasColumn("episodes", "feed_id")
	if err != nil {
		return err
	}
	if hasFeedColumn {
		return nil
	}

	logger.Warn("Old database schema detected. Archiving old 'episodes' table and creating new schema. Download history will be reset.",
		"archived_table", legacyArchiveName)

	if _, err := db.Exec("ALTER TABLE episodes RENAME TO " + legacyArchiveName); err != nil {
		return fmt.Errorf("failed to archive legacy episodes table: %w", err)
	}

	return nil
}

// tableHasColumn reports whether the named table declares the named column.
func (db *DB) tableHasColumn(table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			columnType string
			notNull    int
			defaultVal any
			pk         int
		)
		if err := rows.Scan(&cid, &name, &columnType, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table info row: %w", err)
		}
		if name == column {
			return true, nil
		}
	}

	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("error iterating table info rows: %w", err)
	}

	return false, nil
}
