// Package config loads per-feed YAML configuration files for multi-feed
// runs. Each file names one feed URL plus its ingestion settings.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of feed configurations
type Loader struct {
	feedsDir string
	logger   *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(feedsDir string, logger *slog.Logger) *Loader {
	return &Loader{feedsDir: feedsDir, logger: logger}
}

// LoadAll loads all YAML configuration files from the feeds directory,
// keyed by file path.
func (l *Loader) LoadAll() (map[string]*FeedConfig, error) {
	configs := make(map[string]*FeedConfig)

	if _, err := os.Stat(l.feedsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("feeds directory does not exist: %s", l.feedsDir)
	}

	files, err := filepath.Glob(filepath.Join(l.feedsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(l.feedsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(config); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", file, err)
		}

		configs[file] = config
		l.logger.Info("Loaded feed configuration", "file", file, "url", config.Feed.URL)
	}

	return configs, nil
}

// loadFile loads a single YAML configuration file
func (l *Loader) loadFile(path string) (*FeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config FeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &config, nil
}

// validate validates the configuration
func (l *Loader) validate(config *FeedConfig) error {
	if config.Feed.URL == "" {
		return fmt.Errorf("feed URL is required")
	}
	if config.Settings.SaveDir == "" {
		return fmt.Errorf("save_dir is required")
	}
	if config.Settings.NumEpisodes < 0 {
		return fmt.Errorf("num_episodes must be non-negative")
	}

	return nil
}
