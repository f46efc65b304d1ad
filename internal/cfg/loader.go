// Package cfg resolves application configuration from command-line flags and
// environment variables.
package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	FeedsDir    string `long:"feeds-dir" env:"FEEDS_DIR" description:"Directory of per-feed YAML configuration files (alternative to positional arguments)"`
	SaveText    bool   `long:"save-text" env:"SAVE_TEXT" description:"Save a text file with extra episode data next to each download"`
	NumEpisodes int    `long:"num-episodes" env:"NUM_EPISODES" description:"Consider only the latest N episodes from the feed"`
	MaxAttempts int    `long:"max-attempts" env:"MAX_ATTEMPTS" default:"3" description:"Download attempts per episode before giving up"`
	DBPath      string `long:"db-path" env:"DB_PATH" default:"downloads.db" description:"Path to the download ledger database"`

	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"rss-ripper/1.0" description:"User agent string for HTTP requests"`
	LogLevel  string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level (debug, info, warn, error)"`
	LogFormat string `long:"log-format" env:"LOG_FORMAT" default:"text" description:"Log format (text, json)"`

	ShowVersion bool `long:"version" description:"Print version and exit"`

	Args struct {
		FeedURL string `positional-arg-name:"FEED_URL" description:"RSS feed URL (include authentication token if applicable)"`
		SaveDir string `positional-arg-name:"SAVE_DIR" description:"Directory to save downloaded files"`
	} `positional-args:"yes"`
}

// Load parses configuration from command-line flags and environment
// variables. Returns (nil, nil) when help or the version was requested.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.ShowVersion {
		fmt.Println("rss-ripper " + GetVersion())
		return nil, nil
	}

	cfg := &Cfg{
		FeedURL:     raw.Args.FeedURL,
		SaveDir:     raw.Args.SaveDir,
		FeedsDir:    raw.FeedsDir,
		SaveText:    raw.SaveText,
		NumEpisodes: raw.NumEpisodes,
		MaxAttempts: raw.MaxAttempts,
		DBPath:      raw.DBPath,
		UserAgent:   raw.UserAgent,
		LogLevel:    raw.LogLevel,
		LogFormat:   raw.LogFormat,
		Version:     GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Cfg) error {
	if cfg.NumEpisodes < 0 {
		return fmt.Errorf("num-episodes must be non-negative")
	}
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("max-attempts must be at least 1")
	}

	if cfg.MultiFeed() {
		if cfg.FeedURL != "" {
			return fmt.Errorf("positional FEED_URL and --feeds-dir are mutually exclusive")
		}
		return nil
	}

	if cfg.FeedURL == "" || cfg.SaveDir == "" {
		return fmt.Errorf("FEED_URL and SAVE_DIR are required (or use --feeds-dir)")
	}

	return nil
}
