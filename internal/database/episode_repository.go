package database

import (
	"fmt"
	"log/slog"
)

// EpisodeRepository handles ledger operations for episode records
type EpisodeRepository struct {
	db     *DB
	logger *slog.Logger
}

// NewEpisodeRepository creates a new episode repository
func NewEpisodeRepository(db *DB, logger *slog.Logger) *EpisodeRepository {
	return &EpisodeRepository{db: db, logger: logger}
}

// HasEpisode reports whether the (feed, guid) pair is already recorded.
// Existence check only, no side effects.
func (r *EpisodeRepository) HasEpisode(feedID int64, guid string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(1) FROM episodes WHERE feed_id = ? AND guid = ?",
		feedID, guid,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check episode existence: %w", err)
	}
	return count > 0, nil
}

// RecordEpisode inserts an episode record. Returns ErrDuplicateEpisode when
// the (feed, guid) pair already exists; any other error indicates a real
// write failure.
func (r *EpisodeRepository) RecordEpisode(ep Episode) error {
	_, err := r.db.Exec(
		`INSERT INTO episodes (feed_id, guid, title, published, filepath, downloaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ep.FeedID, ep.GUID, ep.Title, ep.Published, ep.FilePath, ep.DownloadedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEpisode
		}
		return fmt.Errorf("failed to record episode: %w", err)
	}
	return nil
}

// GetEpisodeCount returns the number of recorded episodes for a feed.
func (r *EpisodeRepository) GetEpisodeCount(feedID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM episodes WHERE feed_id = ?", feedID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get episode count: %w", err)
	}
	return count, nil
}
