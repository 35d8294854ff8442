package main

import (
	"strings"

	"github.com/spf13/cobra"

	"juiceit/internal/config"
)

type ripFlags struct {
	output        string
	dvdSource     string
	quality       string
	encoder       string
	subtitles     int
	subLang       string
	noDeinterlace bool
	eject         bool
	wait          bool
	logLevel      string
	logFormat     string
}

type commandContext struct {
	configFlag string
	flags      ripFlags
}

// overrides carries only the flags the user actually set, so config file
// values survive when a flag is left at its default.
func (c *commandContext) overrides(cmd *cobra.Command) config.Overrides {
	set := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}
	var ov config.Overrides
	if set("output") {
		ov.OutputDir = &c.flags.output
	}
	if set("dvdSource") {
		ov.DiscSource = &c.flags.dvdSource
	}
	if set("quality") {
		ov.Quality = &c.flags.quality
	}
	if set("encoder") {
		ov.Encoder = &c.flags.encoder
	}
	if set("subtitles") {
		ov.SubtitleTrack = &c.flags.subtitles
	}
	if set("sub-lang") {
		ov.SubtitleLanguage = &c.flags.subLang
	}
	if set("log-level") {
		ov.LogLevel = &c.flags.logLevel
	}
	if set("log-format") {
		ov.LogFormat = &c.flags.logFormat
	}
	ov.NoDeinterlace = c.flags.noDeinterlace
	return ov
}

// resolveConfig merges defaults, the config file and flags, then creates the
// output directory.
func (c *commandContext) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, _, _, err := config.Resolve(strings.TrimSpace(c.configFlag), c.overrides(cmd))
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
