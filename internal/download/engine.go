package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultMaxAttempts is the number of transfer attempts made before an
// enclosure download is reported as exhausted.
const DefaultMaxAttempts = 3

// ErrAttemptsExhausted reports that every transfer attempt for a URL failed.
// One item's exhaustion never stops the batch; callers log it and move on.
var ErrAttemptsExhausted = errors.New("all download attempts failed")

// Engine performs a single network fetch with bounded retry and exponential
// backoff, writing the payload to a target path.
type Engine struct {
	client      *Client
	maxAttempts int
	logger      *slog.Logger

	// sleep is replaceable in tests so backoff timing can be asserted
	// without waiting.
	sleep func(time.Duration)
}

// NewEngine creates a transfer engine. maxAttempts values below 1 fall back
// to DefaultMaxAttempts.
func NewEngine(client *Client, maxAttempts int, logger *slog.Logger) *Engine {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Engine{
		client:      client,
		maxAttempts: maxAttempts,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// Fetch downloads url to destPath, retrying transport failures with
// exponential backoff (2s, 4s, 8s, ...). No backoff wait follows the final
// attempt. Returns ErrAttemptsExhausted once every attempt has failed.
func (e *Engine) Fetch(ctx context.Context, url, destPath string) error {
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		err := e.client.DownloadFile(ctx, url, destPath)
		if err == nil {
			if attempt > 1 {
				e.logger.Info("Download succeeded after retry", "path", destPath, "attempt", attempt)
			} else {
				e.logger.Info("Downloaded", "path", destPath)
			}
			return nil
		}

		e.logger.Warn("Error downloading file",
			"url", url, "attempt", attempt, "max_attempts", e.maxAttempts, "error", err)

		if attempt < e.maxAttempts {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			e.logger.Info("Retrying download", "wait", wait)
			e.sleep(wait)
		}
	}

	return fmt.Errorf("%w: %s after %d attempts", ErrAttemptsExhausted, url, e.maxAttempts)
}
