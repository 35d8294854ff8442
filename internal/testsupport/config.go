package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"juiceit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose output directory is a fresh temp dir.
func NewConfig(t testing.TB, opts ...ConfigOption) config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir output dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfg,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return cfg
}

// WithDiscSource pins the DVD device instead of auto-detecting it.
func WithDiscSource(device string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Disc.Source = device
	}
}

// WithStubbedBinaries writes stub executables that exit 0 and prepends them
// to PATH. If names is empty, HandBrakeCLI is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"HandBrakeCLI"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteStub(b.t, binDir, name, "exit 0\n")
		}
		PrependPath(b.t, binDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
