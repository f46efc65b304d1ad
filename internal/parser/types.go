package parser

import "time"

// FeedMetadata contains feed-level metadata used for feed registration and
// audio tagging.
type FeedMetadata struct {
	Title      string
	Author     string
	Categories []string
}

// Entry represents a single feed entry in authoritative feed order.
type Entry struct {
	GUID            string // feed-declared identifier, may be empty
	Title           string
	Subtitle        string
	Author          string
	Summary         string
	Published       string // raw publication date text as it appeared in the feed
	PublishedParsed *time.Time
	Enclosures      []Enclosure
}

// Enclosure is a typed reference to a downloadable payload attached to an
// entry.
type Enclosure struct {
	URL  string
	Type string
}
