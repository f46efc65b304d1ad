package feed

import "github.com/lysyi3m/rss-ripper/internal/parser"

// Options controls a single ingestion run.
type Options struct {
	SaveDir  string
	SaveText bool // emit a .txt sidecar per downloaded episode

	// NumEpisodes limits how many candidates are considered, counted from
	// the top of the feed BEFORE dedup filtering. This means "at most N
	// candidates considered", not "N newly downloaded". Zero disables the
	// limit.
	NumEpisodes int
}

// candidate pairs a feed entry with one qualifying enclosure link. An entry
// with several audio enclosures fans out into several candidates.
type candidate struct {
	entry parser.Entry
	link  parser.Enclosure
}

// Report summarizes the outcome of one ingestion run.
type Report struct {
	TotalEpisodes int // audio candidates present in the feed
	Considered    int // candidates remaining after the num-episodes limit
	New           int // candidates remaining after dedup filtering
	Downloaded    int // successfully downloaded and recorded
}
