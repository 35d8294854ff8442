package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"juiceit/internal/config"
)

func ptr[T any](v T) *T { return &v }

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "juiceit", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}

	wantOutput, err := filepath.Abs(".")
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("expected output dir to default to working directory, got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Disc.Source != "" {
		t.Fatalf("expected empty disc source, got %q", cfg.Disc.Source)
	}
	if cfg.HandBrake.Encoder != "x264" || cfg.HandBrake.Quality != "20" {
		t.Fatalf("unexpected encoder defaults: %+v", cfg.HandBrake)
	}
	if !cfg.HandBrake.Deinterlace {
		t.Fatal("expected deinterlace enabled by default")
	}
	if cfg.HandBrake.Preset != "HQ 1080p30 Surround" || cfg.HandBrake.FrameRate != "30" {
		t.Fatalf("unexpected preset defaults: %+v", cfg.HandBrake)
	}
	if cfg.Subtitles.Track != 1 || cfg.Subtitles.Language != "eng" {
		t.Fatalf("unexpected subtitle defaults: %+v", cfg.Subtitles)
	}
}

func TestResolveAppliesFileThenOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	fileCfg := config.Default()
	fileCfg.Paths.OutputDir = filepath.Join(dir, "from-file")
	fileCfg.HandBrake.Quality = "18"
	fileCfg.Subtitles.Language = "fr"
	data, err := toml.Marshal(fileCfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Resolve(path, config.Overrides{
		OutputDir:     ptr(filepath.Join(dir, "from-flag")),
		SubtitleTrack: ptr(3),
		NoDeinterlace: true,
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Paths.OutputDir != filepath.Join(dir, "from-flag") {
		t.Fatalf("flag should win over file, got %q", cfg.Paths.OutputDir)
	}
	if cfg.HandBrake.Quality != "18" {
		t.Fatalf("file value should survive without override, got %q", cfg.HandBrake.Quality)
	}
	if cfg.Subtitles.Language != "fre" {
		t.Fatalf("expected normalized language, got %q", cfg.Subtitles.Language)
	}
	if cfg.Subtitles.Track != 3 {
		t.Fatalf("expected subtitle track override, got %d", cfg.Subtitles.Track)
	}
	if cfg.HandBrake.Deinterlace {
		t.Fatal("expected --no-deinterlace to disable deinterlacing")
	}
}

func TestResolveExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, _, _, err := config.Resolve("", config.Overrides{OutputDir: ptr("~/rips")})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.Paths.OutputDir != filepath.Join(home, "rips") {
		t.Fatalf("unexpected output dir %q", cfg.Paths.OutputDir)
	}
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cases := []struct {
		name string
		ov   config.Overrides
		want string
	}{
		{"zero subtitle track", config.Overrides{SubtitleTrack: ptr(0)}, "subtitles.track"},
		{"non numeric quality", config.Overrides{Quality: ptr("high")}, "handbrake.quality"},
		{"empty quality", config.Overrides{Quality: ptr("  ")}, "handbrake.quality"},
		{"unknown language", config.Overrides{SubtitleLanguage: ptr("klingonese")}, "subtitles.language"},
		{"bad log format", config.Overrides{LogFormat: ptr("xml")}, "logging.format"},
		{"bad log level", config.Overrides{LogLevel: ptr("loud")}, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := config.Resolve("", tc.ov)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error %q", tc.want, err.Error())
			}
		})
	}
}

func TestResolveRejectsUnknownFileKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[handbrake]\nspeed = \"fast\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Resolve(path, config.Overrides{}); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnsureDirectoriesCreatesNestedOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "a", "b", "c")

	cfg, _, _, err := config.Resolve("", config.Overrides{OutputDir: ptr(target)})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		t.Fatalf("expected output directory to exist: %v", err)
	}
	if cfg.CachePath() != filepath.Join(target, ".dvd_cache.json") {
		t.Fatalf("unexpected cache path %q", cfg.CachePath())
	}
	if cfg.OutputFile("Track_1") != filepath.Join(target, "Track_1.mp4") {
		t.Fatalf("unexpected output file %q", cfg.OutputFile("Track_1"))
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected second CreateSample to refuse overwrite")
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists || cfg.HandBrake.Binary != "HandBrakeCLI" {
		t.Fatalf("unexpected sample config: exists=%v %+v", exists, cfg.HandBrake)
	}
}
