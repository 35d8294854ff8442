package ripping

import (
	"context"
	"log/slog"

	"juiceit/internal/handbrake"
	"juiceit/internal/logging"
	"juiceit/internal/scancache"
	"juiceit/internal/services"
)

// Scanner enumerates the titles on a disc.
type Scanner interface {
	Scan(ctx context.Context, device string) (handbrake.ScanResult, error)
}

// Count is the outcome of a title count.
type Count struct {
	Titles int
	Cached bool
}

// Counter resolves the number of titles on a disc, preferring the scan cache.
type Counter struct {
	cache   *scancache.Cache
	scanner Scanner
	logger  *slog.Logger
}

// NewCounter constructs a counter.
func NewCounter(cache *scancache.Cache, scanner Scanner, logger *slog.Logger) *Counter {
	return &Counter{
		cache:   cache,
		scanner: scanner,
		logger:  logging.NewComponentLogger(logger, "counter"),
	}
}

// Count returns the title count for the disc labelled label in device. A
// valid cache record short-circuits the scan. A scan that finds no title
// summary yields zero titles and leaves the cache untouched; a failed scan
// never writes the cache.
func (c *Counter) Count(ctx context.Context, device, label string) (Count, error) {
	if titles, ok := c.cache.Lookup(label); ok {
		return Count{Titles: titles, Cached: true}, nil
	}

	ctx = services.WithStage(ctx, "scan")
	logger := logging.WithContext(ctx, c.logger)

	result, err := c.scanner.Scan(ctx, device)
	if err != nil {
		return Count{}, err
	}
	if !result.Found {
		logging.WarnWithContext(logger, "scan output had no title summary", "scan_no_titles",
			logging.String(logging.FieldDevice, device),
			logging.String(logging.FieldErrorHint, "run with --log-level debug to see the scan output"),
			logging.String(logging.FieldImpact, "no titles will be ripped"))
		return Count{}, nil
	}

	logger.Info("disc scan complete", logging.Int("titles", result.Titles))
	if err := c.cache.Store(label, result.Titles); err != nil {
		logging.WarnWithContext(logger, "failed to write scan cache", "scan_cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the next run will rescan the disc"))
	}
	return Count{Titles: result.Titles}, nil
}
