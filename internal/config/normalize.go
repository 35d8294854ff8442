package config

import (
	"fmt"
	"strings"

	"juiceit/internal/language"
)

func (c *Config) normalize() error {
	var err error

	outputDir := strings.TrimSpace(c.Paths.OutputDir)
	if outputDir == "" {
		outputDir = "."
	}
	if c.Paths.OutputDir, err = expandPath(outputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}

	c.Disc.Source = strings.TrimSpace(c.Disc.Source)

	c.HandBrake.Binary = strings.TrimSpace(c.HandBrake.Binary)
	if c.HandBrake.Binary == "" {
		c.HandBrake.Binary = defaultHandBrakeBinary
	}
	c.HandBrake.Encoder = strings.TrimSpace(c.HandBrake.Encoder)
	c.HandBrake.Quality = strings.TrimSpace(c.HandBrake.Quality)
	c.HandBrake.Preset = strings.TrimSpace(c.HandBrake.Preset)
	c.HandBrake.FrameRate = strings.TrimSpace(c.HandBrake.FrameRate)

	if lang := strings.TrimSpace(c.Subtitles.Language); lang != "" {
		normalized, err := language.Normalize(lang)
		if err != nil {
			return fmt.Errorf("subtitles.language: %w", err)
		}
		c.Subtitles.Language = normalized
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
