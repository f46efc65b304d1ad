package cfg

// Cfg holds all resolved application configuration.
type Cfg struct {
	// Single-feed mode: positional arguments
	FeedURL string
	SaveDir string

	// Multi-feed mode: directory of per-feed YAML configuration files
	FeedsDir string

	// Run options
	SaveText    bool
	NumEpisodes int
	MaxAttempts int
	DBPath      string

	// Application metadata
	UserAgent string
	LogLevel  string
	LogFormat string
	Version   string
}

// MultiFeed reports whether the run ingests feeds from a configuration
// directory instead of a single positional URL.
func (c *Cfg) MultiFeed() bool {
	return c.FeedsDir != ""
}
