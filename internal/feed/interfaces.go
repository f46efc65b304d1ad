package feed

import (
	"context"

	"github.com/lysyi3m/rss-ripper/internal/database"
	"github.com/lysyi3m/rss-ripper/internal/parser"
	"github.com/lysyi3m/rss-ripper/internal/tags"
)

// FeedParser turns raw feed bytes into metadata and ordered entries.
type FeedParser interface {
	Parse(data []byte) (*parser.FeedMetadata, []parser.Entry, error)
}

// Fetcher downloads a URL to a destination path.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// TagWriter mutates a file's embedded metadata block in place.
type TagWriter interface {
	WriteTags(path string, meta tags.Tags) error
}

// FeedStore resolves feed URLs to ledger identities.
type FeedStore interface {
	ResolveFeed(feedURL, titleHint string) (int64, error)
}

// EpisodeStore checks and records ingested episodes.
type EpisodeStore interface {
	HasEpisode(feedID int64, guid string) (bool, error)
	RecordEpisode(ep database.Episode) error
}
