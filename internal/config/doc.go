// Package config loads, normalizes, and validates juiceit configuration.
//
// Settings are layered: repository defaults, then an optional TOML file
// (~/.config/juiceit/config.toml or --config), then command-line overrides.
// Paths are tilde-expanded and made absolute, the subtitle language is
// canonicalized, and the resulting Config is treated as immutable for the
// rest of the run.
package config
