package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// FeedRepository handles ledger operations for feeds
type FeedRepository struct {
	db     *DB
	logger *slog.Logger
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *DB, logger *slog.Logger) *FeedRepository {
	return &FeedRepository{db: db, logger: logger}
}

// ResolveFeed returns the ledger identity for a feed URL, creating a new
// feed row with the given title hint when the URL is unknown. Idempotent
// across repeated calls within and across runs.
func (r *FeedRepository) ResolveFeed(feedURL, titleHint string) (int64, error) {
	var id int64
	err := r.db.QueryRow("SELECT feed_id FROM feeds WHERE feed_url = ?", feedURL).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up feed: %w", err)
	}

	res, err := r.db.Exec(
		"INSERT INTO feeds (feed_url, feed_title) VALUES (?, ?)",
		feedURL, titleHint,
	)
	if err != nil {
		// A concurrent run may have inserted the same URL between our
		// lookup and insert; re-read before giving up.
		if isUniqueViolation(err) {
			if lookupErr := r.db.QueryRow("SELECT feed_id FROM feeds WHERE feed_url = ?", feedURL).Scan(&id); lookupErr == nil {
				return id, nil
			}
		}
		return 0, fmt.Errorf("failed to insert feed: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get feed id: %w", err)
	}

	r.logger.Info("Added new feed to database", "title", titleHint, "url", feedURL)
	return id, nil
}

// GetFeedByURL retrieves a feed by its URL, returning nil when absent.
func (r *FeedRepository) GetFeedByURL(feedURL string) (*Feed, error) {
	var feed Feed
	err := r.db.QueryRow(
		"SELECT feed_id, feed_url, COALESCE(feed_title, '') FROM feeds WHERE feed_url = ?",
		feedURL,
	).Scan(&feed.ID, &feed.URL, &feed.Title)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed by URL: %w", err)
	}

	return &feed, nil
}

// GetFeedCount returns the total number of registered feeds.
func (r *FeedRepository) GetFeedCount() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM feeds").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get feed count: %w", err)
	}
	return count, nil
}
