package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/lysyi3m/rss-ripper/internal/cfg"
	"github.com/lysyi3m/rss-ripper/internal/config"
	"github.com/lysyi3m/rss-ripper/internal/database"
	"github.com/lysyi3m/rss-ripper/internal/download"
	"github.com/lysyi3m/rss-ripper/internal/feed"
	"github.com/lysyi3m/rss-ripper/internal/logging"
	"github.com/lysyi3m/rss-ripper/internal/parser"
	"github.com/lysyi3m/rss-ripper/internal/tags"
)

// Exit codes: configuration and ledger failures are distinct from feed-level
// failures so wrapping scripts can tell them apart.
const (
	exitFatal     = 1 // store cannot be opened/migrated, bad configuration
	exitFeedError = 2 // feed cannot be fetched or parsed at all
)

func main() {
	os.Exit(run())
}

func run() int {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFatal
	}
	if appCfg == nil {
		// Help or version was shown, exit gracefully
		return 0
	}

	logger, err := logging.New(os.Stderr, logging.Options{
		Level:  appCfg.LogLevel,
		Format: appCfg.LogFormat,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFatal
	}

	logger.Info("Starting rss-ripper", "version", appCfg.Version)

	db, err := database.Open(appCfg.DBPath, logger)
	if err != nil {
		logger.Error("Failed to open ledger database", "error", err)
		return exitFatal
	}
	defer func() {
		db.Close()
		logger.Info("Database connection closed")
	}()

	app := &app{
		feedParser:  parser.NewParser(),
		feedRepo:    database.NewFeedRepository(db, logger),
		episodeRepo: database.NewEpisodeRepository(db, logger),
		client:      download.NewClient(appCfg.UserAgent),
		tagWriter:   tags.NewWriter(logger),
		maxAttempts: appCfg.MaxAttempts,
		logger:      logger,
	}

	ctx := context.Background()

	if appCfg.MultiFeed() {
		return app.runMultiFeed(ctx, appCfg)
	}
	return app.runSingleFeed(ctx, appCfg)
}

// app bundles the collaborators shared by every feed ingestion.
type app struct {
	feedParser  *parser.Parser
	feedRepo    *database.FeedRepository
	episodeRepo *database.EpisodeRepository
	client      *download.Client
	tagWriter   *tags.Writer
	maxAttempts int
	logger      *slog.Logger
}

func (a *app) runSingleFeed(ctx context.Context, appCfg *cfg.Cfg) int {
	opts := feed.Options{
		SaveDir:     appCfg.SaveDir,
		SaveText:    appCfg.SaveText,
		NumEpisodes: appCfg.NumEpisodes,
	}

	if err := a.ingestFeed(ctx, appCfg.FeedURL, opts); err != nil {
		a.logger.Error("Feed ingestion failed", "url", appCfg.FeedURL, "error", err)
		a.logger.Error("Please check the URL and authentication token (if applicable)")
		return exitFeedError
	}
	return 0
}

func (a *app) runMultiFeed(ctx context.Context, appCfg *cfg.Cfg) int {
	loader := config.NewLoader(appCfg.FeedsDir, a.logger)
	configs, err := loader.LoadAll()
	if err != nil {
		a.logger.Error("Failed to load feed configurations", "error", err)
		return exitFatal
	}
	if len(configs) == 0 {
		a.logger.Warn("No feed configurations found", "dir", appCfg.FeedsDir)
		return 0
	}

	files := make([]string, 0, len(configs))
	for file := range configs {
		files = append(files, file)
	}
	sort.Strings(files)

	failed := 0
	for _, file := range files {
		fc := configs[file]
		opts := feed.Options{
			SaveDir:     fc.Settings.SaveDir,
			SaveText:    fc.Settings.SaveText,
			NumEpisodes: fc.Settings.NumEpisodes,
		}

		// One feed's failure does not stop the remaining feeds.
		if err := a.ingestFeed(ctx, fc.Feed.URL, opts); err != nil {
			a.logger.Error("Feed ingestion failed", "file", file, "url", fc.Feed.URL, "error", err)
			failed++
		}
	}

	if failed == len(configs) {
		return exitFeedError
	}
	return 0
}

// ingestFeed fetches one feed document and runs the ingestion pipeline over
// it.
func (a *app) ingestFeed(ctx context.Context, feedURL string, opts feed.Options) error {
	if err := os.MkdirAll(opts.SaveDir, 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	data, err := a.client.Get(ctx, feedURL)
	if err != nil {
		return fmt.Errorf("error fetching the RSS feed: %w", err)
	}

	engine := download.NewEngine(a.client, a.maxAttempts, a.logger)
	processor := feed.NewProcessor(a.feedParser, a.feedRepo, a.episodeRepo,
		engine, a.tagWriter, a.logger, opts)

	if _, err := processor.Run(ctx, feedURL, data); err != nil {
		return err
	}
	return nil
}
