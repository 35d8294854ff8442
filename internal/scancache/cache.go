package scancache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"juiceit/internal/fileutil"
	"juiceit/internal/logging"
)

// Record is the persisted scan result for one disc.
type Record struct {
	VolumeName string `json:"volumeName"`
	NumTitles  int    `json:"numTitles"`
}

// Cache reads and writes the scan record at a fixed path. Runs are
// serialized by the output-directory lock, so no in-process locking is done.
type Cache struct {
	path   string
	logger *slog.Logger
}

// New binds a cache to path.
func New(path string, logger *slog.Logger) *Cache {
	return &Cache{
		path:   path,
		logger: logging.NewComponentLogger(logger, "scancache"),
	}
}

// Path returns the record location.
func (c *Cache) Path() string {
	return c.path
}

// Valid reports whether rec may be reused for a disc labelled label.
func Valid(rec Record, label string) bool {
	return rec.VolumeName == label
}

// Load returns the persisted record. Missing, unreadable, and malformed
// files all report false.
func (c *Cache) Load() (Record, bool) {
	rec, err := c.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(c.logger, "scan cache unreadable", "scan_cache_corrupt",
				logging.String("path", c.path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "the file is replaced after the next scan"),
				logging.String(logging.FieldImpact, "disc will be rescanned"))
		}
		return Record{}, false
	}
	return rec, true
}

func (c *Cache) read() (Record, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse cache file: %w", err)
	}
	if rec.NumTitles < 0 {
		return Record{}, fmt.Errorf("parse cache file: negative title count %d", rec.NumTitles)
	}
	return rec, nil
}

// Lookup returns the cached title count when a valid record exists for label.
func (c *Cache) Lookup(label string) (int, bool) {
	rec, ok := c.Load()
	if !ok {
		c.logger.Info("scan cache absent; scanning disc", logging.String(logging.FieldVolumeName, label))
		return 0, false
	}
	if !Valid(rec, label) {
		c.logger.Info("volume names do not match; ignoring scan cache",
			logging.String("cached_volume_name", rec.VolumeName),
			logging.String(logging.FieldVolumeName, label))
		return 0, false
	}
	c.logger.Info("using cached title information",
		logging.String(logging.FieldVolumeName, label),
		logging.Int("titles", rec.NumTitles))
	return rec.NumTitles, true
}

// Store overwrites the record atomically.
func (c *Cache) Store(label string, count int) error {
	if count < 0 {
		return fmt.Errorf("title count cannot be negative: %d", count)
	}
	data, err := json.Marshal(Record{VolumeName: label, NumTitles: count})
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write scan cache: %w", err)
	}

	c.logger.Info("scan cache written",
		logging.String(logging.FieldVolumeName, label),
		logging.Int("titles", count))
	return nil
}

// Invalidate deletes the record. A missing file is not an error.
func (c *Cache) Invalidate() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove scan cache: %w", err)
	}
	return nil
}

// InvalidateIfStale deletes the record when it belongs to a different disc
// or cannot be parsed. It reports whether a file was removed.
func (c *Cache) InvalidateIfStale(label string) (bool, error) {
	rec, err := c.read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err == nil && Valid(rec, label):
		return false, nil
	}
	if err := c.Invalidate(); err != nil {
		return false, err
	}
	c.logger.Info("scan cache cleared due to volume name change",
		logging.String("cached_volume_name", rec.VolumeName),
		logging.String(logging.FieldVolumeName, label))
	return true, nil
}
