package config

import (
	"errors"
	"fmt"
	"strconv"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateHandBrake(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateHandBrake() error {
	if c.HandBrake.Encoder == "" {
		return errors.New("handbrake.encoder must be set")
	}
	if c.HandBrake.Quality == "" {
		return errors.New("handbrake.quality must be set")
	}
	if _, err := strconv.ParseFloat(c.HandBrake.Quality, 64); err != nil {
		return fmt.Errorf("handbrake.quality must be numeric, got %q", c.HandBrake.Quality)
	}
	if c.HandBrake.Preset == "" {
		return errors.New("handbrake.preset must be set")
	}
	if c.HandBrake.FrameRate == "" {
		return errors.New("handbrake.frame_rate must be set")
	}
	if rate, err := strconv.ParseFloat(c.HandBrake.FrameRate, 64); err != nil || rate <= 0 {
		return fmt.Errorf("handbrake.frame_rate must be a positive number, got %q", c.HandBrake.FrameRate)
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.Track < 1 {
		return fmt.Errorf("subtitles.track must be at least 1, got %d", c.Subtitles.Track)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
