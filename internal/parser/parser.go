// Package parser wraps gofeed to turn raw feed bytes into feed metadata and
// an ordered list of entries with their enclosure links. The feed's own item
// order is treated as authoritative (newest-first by convention).
package parser

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Parser handles parsing of RSS/Atom feeds
type Parser struct {
	gofeedParser *gofeed.Parser
}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Parse parses feed data and returns feed metadata and entries in feed order.
func (p *Parser) Parse(data []byte) (*FeedMetadata, []Entry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &FeedMetadata{
		Title:      feed.Title,
		Author:     feedAuthor(feed),
		Categories: feed.Categories,
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, p.normalizeItem(item))
	}

	return metadata, entries, nil
}

// normalizeItem converts a gofeed.Item to our Entry format
func (p *Parser) normalizeItem(item *gofeed.Item) Entry {
	entry := Entry{
		GUID:            item.GUID,
		Title:           item.Title,
		Summary:         item.Description,
		Published:       item.Published,
		PublishedParsed: item.PublishedParsed,
	}

	if item.Author != nil {
		entry.Author = item.Author.Name
	}

	if item.ITunesExt != nil {
		entry.Subtitle = item.ITunesExt.Subtitle
		if entry.Author == "" {
			entry.Author = item.ITunesExt.Author
		}
		if entry.Summary == "" {
			entry.Summary = item.ITunesExt.Summary
		}
	}

	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		entry.Enclosures = append(entry.Enclosures, Enclosure{
			URL:  enc.URL,
			Type: enc.Type,
		})
	}

	return entry
}

func feedAuthor(feed *gofeed.Feed) string {
	if feed.Author != nil && feed.Author.Name != "" {
		return feed.Author.Name
	}
	if feed.ITunesExt != nil {
		return feed.ITunesExt.Author
	}
	return ""
}
