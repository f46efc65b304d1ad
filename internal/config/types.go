package config

// FeedConfig represents a complete per-feed configuration file
type FeedConfig struct {
	Feed     FeedInfo     `yaml:"feed"`
	Settings FeedSettings `yaml:"settings"`
}

// FeedInfo contains basic feed information
type FeedInfo struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// FeedSettings contains per-feed ingestion settings
type FeedSettings struct {
	SaveDir     string `yaml:"save_dir"`
	SaveText    bool   `yaml:"save_text"`
	NumEpisodes int    `yaml:"num_episodes"`
}
