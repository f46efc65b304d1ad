package database

// Feed represents a feed record in the ledger. Feeds are created on first
// encounter with a URL and never deleted.
type Feed struct {
	ID    int64
	URL   string
	Title string
}

// Episode represents a successfully ingested episode. Records are created
// exactly once per (feed, guid) pair and never mutated afterwards.
type Episode struct {
	ID           int64
	FeedID       int64
	GUID         string
	Title        string
	Published    string // ISO-8601 publication timestamp, may be empty
	FilePath     string
	DownloadedAt string // ISO-8601 ingestion timestamp
}
