// Package feed implements the ingestion pipeline: it expands parsed feed
// entries into candidate downloads, filters out episodes the ledger already
// knows, and turns each remaining candidate into a locally stored, tagged
// file plus a ledger row.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/lysyi3m/rss-ripper/internal/database"
	"github.com/lysyi3m/rss-ripper/internal/parser"
	"github.com/lysyi3m/rss-ripper/internal/sanitize"
	"github.com/lysyi3m/rss-ripper/internal/tags"
)

const (
	// audioMIMEType is the enclosure content type this system targets.
	audioMIMEType = "audio/mpeg"

	// audioExtension is the canonical extension used when an enclosure URL
	// carries none.
	audioExtension = ".mp3"

	// interItemPause is the fixed delay between consecutive downloads, a
	// politeness measure toward the origin server.
	interItemPause = 1 * time.Second

	// timestampLayout is the ISO-8601 layout used for ledger timestamps.
	timestampLayout = "2006-01-02T15:04:05"
)

// Processor orchestrates one ingestion run. It is the only component that
// knows about all collaborators; data flows one way from feed entries to
// side effects.
type Processor struct {
	parser   FeedParser
	feeds    FeedStore
	episodes EpisodeStore
	fetcher  Fetcher
	tagger   TagWriter
	logger   *slog.Logger
	opts     Options

	// sleep and now are replaceable in tests
	sleep func(time.Duration)
	now   func() time.Time
}

// NewProcessor creates a new ingestion processor
func NewProcessor(p FeedParser, feeds FeedStore, episodes EpisodeStore,
	fetcher Fetcher, tagger TagWriter, logger *slog.Logger, opts Options) *Processor {
	return &Processor{
		parser:   p,
		feeds:    feeds,
		episodes: episodes,
		fetcher:  fetcher,
		tagger:   tagger,
		logger:   logger,
		opts:     opts,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Run ingests one feed from its raw bytes. The feed is registered in the
// ledger, unseen audio enclosures are downloaded sequentially, and every
// successful transfer is recorded. Per-item failures are logged and skipped;
// only parse and feed-registration failures abort the run.
func (p *Processor) Run(ctx context.Context, feedURL string, data []byte) (*Report, error) {
	metadata, entries, err := p.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	feedID, err := p.feeds.ResolveFeed(feedURL, metadata.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve feed: %w", err)
	}

	all := expandCandidates(entries)

	// The limit applies before dedup: "at most N candidates considered",
	// counted from the top of the feed.
	considered := all
	if p.opts.NumEpisodes > 0 && len(all) > p.opts.NumEpisodes {
		p.logger.Info("Considering only the latest episodes from the feed",
			"num_episodes", p.opts.NumEpisodes)
		considered = all[:p.opts.NumEpisodes]
	}

	var toDownload []candidate
	for _, c := range considered {
		guid := episodeGUID(c)
		seen, err := p.episodes.HasEpisode(feedID, guid)
		if err != nil {
			p.logger.Error("Failed to check episode in ledger, skipping item",
				"guid", guid, "error", err)
			continue
		}
		if !seen {
			toDownload = append(toDownload, c)
		}
	}

	p.logger.Info("Episode discovery complete",
		"total", len(all), "considered", len(considered), "new", len(toDownload))

	downloaded := 0
	for i, c := range toDownload {
		p.logger.Info("Downloading audio file",
			"index", i+1, "total", len(toDownload), "title", c.entry.Title)

		if p.processCandidate(ctx, feedID, metadata, c) {
			downloaded++
		}

		if i < len(toDownload)-1 {
			p.sleep(interItemPause)
		}
	}

	p.logger.Info("Completed", "downloaded", downloaded, "considered", len(toDownload))

	return &Report{
		TotalEpisodes: len(all),
		Considered:    len(considered),
		New:           len(toDownload),
		Downloaded:    downloaded,
	}, nil
}

// processCandidate downloads, records, tags and optionally sidecars a single
// candidate. It reports whether the episode was downloaded and recorded.
func (p *Processor) processCandidate(ctx context.Context, feedID int64,
	metadata *parser.FeedMetadata, c candidate) bool {
	guid := episodeGUID(c)
	filename := filepath.Join(p.opts.SaveDir, p.fileName(c, guid))

	if err := p.fetcher.Fetch(ctx, c.link.URL, filename); err != nil {
		p.logger.Error("Failed to download episode", "url", c.link.URL, "error", err)
		return false
	}

	publishedISO := ""
	if c.entry.PublishedParsed != nil {
		publishedISO = c.entry.PublishedParsed.Format(timestampLayout)
	}

	err := p.episodes.RecordEpisode(database.Episode{
		FeedID:       feedID,
		GUID:         guid,
		Title:        c.entry.Title,
		Published:    publishedISO,
		FilePath:     filename,
		DownloadedAt: p.now().Format(timestampLayout),
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEpisode) {
			// Another run may have raced us between the dedup check and
			// here; the episode is already handled.
			p.logger.Warn("Episode already in database for this feed, skipping DB entry",
				"guid", guid)
		} else {
			p.logger.Error("Failed to record episode", "guid", guid, "error", err)
		}
		return false
	}

	if strings.EqualFold(filepath.Ext(filename), audioExtension) {
		if err := p.tagger.WriteTags(filename, buildTags(metadata, c.entry)); err != nil {
			p.logger.Error("Failed to set tags", "path", filename, "error", err)
		}
	}

	if p.opts.SaveText {
		if err := writeSidecar(filename, c.entry); err != nil {
			p.logger.Error("Failed to write sidecar file", "path", filename, "error", err)
		}
	}

	return true
}

// fileName derives the output file name for a candidate: sanitized title
// (falling back to the episode identifier), optional date prefix, extension
// from the enclosure URL path.
func (p *Processor) fileName(c candidate, guid string) string {
	title := c.entry.Title
	if sanitize.Title(title) == "" {
		title = guid
	}

	if c.entry.Published != "" {
		if _, ok := sanitize.PublishedDate(c.entry.Published); !ok {
			p.logger.Warn("Could not parse date, filename will not have a date prefix",
				"published", c.entry.Published)
		}
	}

	base := sanitize.FileBase(title, c.entry.Published)
	if base == "" {
		base = "episode"
	}

	return base + fileExtension(c.link)
}

// expandCandidates selects every enclosure link carrying the target audio
// type; entries fan out into one candidate per qualifying link.
func expandCandidates(entries []parser.Entry) []candidate {
	var candidates []candidate
	for _, entry := range entries {
		for _, link := range entry.Enclosures {
			if link.Type == audioMIMEType {
				candidates = append(candidates, candidate{entry: entry, link: link})
			}
		}
	}
	return candidates
}

// episodeGUID applies the identity resolution rule: the feed-declared
// identifier when present, otherwise the download URL. The same rule is used
// for the dedup check and the ledger write, or dedup would silently break.
func episodeGUID(c candidate) string {
	if c.entry.GUID != "" {
		return c.entry.GUID
	}
	return c.link.URL
}

// fileExtension derives the file extension from the unescaped enclosure URL
// path, falling back to the canonical audio extension when the URL carries
// none.
func fileExtension(link parser.Enclosure) string {
	path := link.URL
	if u, err := url.Parse(link.URL); err == nil {
		path = u.Path
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	ext := filepath.Ext(path)
	if ext == "" && link.Type == audioMIMEType {
		ext = audioExtension
	}
	return ext
}

// buildTags maps feed and entry metadata onto the tag block written into
// downloaded audio files.
func buildTags(metadata *parser.FeedMetadata, entry parser.Entry) tags.Tags {
	artist := entry.Author
	if artist == "" {
		artist = metadata.Author
	}

	genre := ""
	if len(metadata.Categories) > 0 {
		genre = metadata.Categories[0]
	}

	return tags.Tags{
		Album:       metadata.Title,
		Artist:      artist,
		Title:       entry.Title,
		ReleaseDate: entry.PublishedParsed,
		Comment:     entry.Summary,
		Genre:       genre,
	}
}
