package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"juiceit/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// CacheFileName is the hidden scan cache record kept in the output directory.
const CacheFileName = ".dvd_cache.json"

// HistoryFileName is the SQLite rip log kept in the output directory.
const HistoryFileName = ".juiceit_history.db"

// LockFileName guards the output directory against concurrent runs.
const LockFileName = ".juiceit.lock"

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
}

// Disc selects the optical drive.
type Disc struct {
	Source string `toml:"source"`
}

// HandBrake contains encoder invocation settings.
type HandBrake struct {
	Binary      string `toml:"binary"`
	Encoder     string `toml:"encoder"`
	Quality     string `toml:"quality"`
	Deinterlace bool   `toml:"deinterlace"`
	Preset      string `toml:"preset"`
	FrameRate   string `toml:"frame_rate"`
}

// Subtitles selects the subtitle track burned into each rip.
type Subtitles struct {
	Track    int    `toml:"track"`
	Language string `toml:"language"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for a rip run.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Disc      Disc      `toml:"disc"`
	HandBrake HandBrake `toml:"handbrake"`
	Subtitles Subtitles `toml:"subtitles"`
	Logging   Logging   `toml:"logging"`
}

// Overrides carries command-line values. Nil fields leave the file or
// default value untouched.
type Overrides struct {
	OutputDir        *string
	DiscSource       *string
	Encoder          *string
	Quality          *string
	NoDeinterlace    bool
	SubtitleTrack    *int
	SubtitleLanguage *string
	LogLevel         *string
	LogFormat        *string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates and parses a configuration file, then normalizes and
// validates it. A missing file yields defaults.
func Load(path string) (Config, string, bool, error) {
	return Resolve(path, Overrides{})
}

// Resolve builds the run configuration from defaults, the config file at
// path (or the default location), and command-line overrides.
func Resolve(path string, ov Overrides) (Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return Config{}, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return Config{}, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.apply(ov)

	if err := cfg.normalize(); err != nil {
		return Config{}, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", false, err
	}
	return cfg, resolvedPath, exists, nil
}

func (c *Config) apply(ov Overrides) {
	if ov.OutputDir != nil {
		c.Paths.OutputDir = *ov.OutputDir
	}
	if ov.DiscSource != nil {
		c.Disc.Source = *ov.DiscSource
	}
	if ov.Encoder != nil {
		c.HandBrake.Encoder = *ov.Encoder
	}
	if ov.Quality != nil {
		c.HandBrake.Quality = *ov.Quality
	}
	if ov.NoDeinterlace {
		c.HandBrake.Deinterlace = false
	}
	if ov.SubtitleTrack != nil {
		c.Subtitles.Track = *ov.SubtitleTrack
	}
	if ov.SubtitleLanguage != nil {
		c.Subtitles.Language = *ov.SubtitleLanguage
	}
	if ov.LogLevel != nil {
		c.Logging.Level = *ov.LogLevel
	}
	if ov.LogFormat != nil {
		c.Logging.Format = *ov.LogFormat
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	} else {
		var err error
		if path, err = expandPath(path); err != nil {
			return "", false, err
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", path)
	}
	return path, true, nil
}

// EnsureDirectories creates the output directory and any missing parents.
func (c Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", c.Paths.OutputDir, err)
	}
	return nil
}

// CachePath returns the location of the scan cache record.
func (c Config) CachePath() string {
	return filepath.Join(c.Paths.OutputDir, CacheFileName)
}

// LockPath returns the location of the output-directory run lock.
func (c Config) LockPath() string {
	return filepath.Join(c.Paths.OutputDir, LockFileName)
}

// HistoryPath returns the location of the rip history database.
func (c Config) HistoryPath() string {
	return filepath.Join(c.Paths.OutputDir, HistoryFileName)
}

// OutputFile returns the destination path for a rip with the given base name.
func (c Config) OutputFile(baseName string) string {
	return filepath.Join(c.Paths.OutputDir, baseName+".mp4")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
// An existing file is never overwritten.
func CreateSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
