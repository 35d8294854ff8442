package handbrake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"juiceit/internal/config"
	"juiceit/internal/logging"
	"juiceit/internal/services"
)

// Settings are the encoder parameters shared by every title of a run.
type Settings struct {
	Binary           string
	Encoder          string
	Quality          string
	Deinterlace      bool
	Preset           string
	FrameRate        string
	SubtitleTrack    int
	SubtitleLanguage string
}

// SettingsFromConfig extracts encoder settings from the run configuration.
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		Binary:           cfg.HandBrake.Binary,
		Encoder:          cfg.HandBrake.Encoder,
		Quality:          cfg.HandBrake.Quality,
		Deinterlace:      cfg.HandBrake.Deinterlace,
		Preset:           cfg.HandBrake.Preset,
		FrameRate:        cfg.HandBrake.FrameRate,
		SubtitleTrack:    cfg.Subtitles.Track,
		SubtitleLanguage: cfg.Subtitles.Language,
	}
}

// EncodeRequest describes one title encode.
type EncodeRequest struct {
	Device     string
	OutputPath string
	Title      int
}

// ScanResult captures the outcome of a title scan.
type ScanResult struct {
	Titles int
	// Found is false when the scan output had no title summary line.
	Found  bool
	Output string
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger sets the logger used for HandBrakeCLI diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "handbrake")
	}
}

// Client wraps HandBrakeCLI interactions.
type Client struct {
	settings Settings
	exec     Executor
	logger   *slog.Logger
}

// New constructs a HandBrakeCLI client.
func New(settings Settings, opts ...Option) (*Client, error) {
	settings.Binary = strings.TrimSpace(settings.Binary)
	if settings.Binary == "" {
		return nil, errors.New("handbrake binary required")
	}
	client := &Client{
		settings: settings,
		exec:     commandExecutor{},
		logger:   logging.NewComponentLogger(nil, "handbrake"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Scan runs HandBrakeCLI in scan-only mode and reports the title count.
// A scan that exits cleanly without a title summary yields Found=false.
func (c *Client) Scan(ctx context.Context, device string) (ScanResult, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return ScanResult{}, errors.New("scan device required")
	}
	logger := logging.WithContext(ctx, c.logger)

	// The executor drains stdout and stderr on separate goroutines, so each
	// stream gets its own buffer and they are joined once Run returns.
	var stdout, stderr strings.Builder
	collect := func(buf *strings.Builder) func(string) {
		return func(line string) {
			logger.Debug(line)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	args := ScanArgs(device)
	logger.Info("scanning disc titles", logging.String(logging.FieldDevice, device), logging.String("args", strings.Join(args, " ")))
	err := c.exec.Run(ctx, c.settings.Binary, args, collect(&stdout), collect(&stderr))
	output := stdout.String() + stderr.String()
	if err != nil {
		return ScanResult{Output: output}, services.Wrap(services.ErrScanFailed, "scan", "HandBrakeCLI scan", device, err)
	}

	result := ScanResult{Output: output}
	result.Titles, result.Found = ParseTitleCount(result.Output)
	return result, nil
}

// Encode rips one title to req.OutputPath. progress, when non-nil, receives
// every parsed percentage in the order HandBrakeCLI emits them.
func (c *Client) Encode(ctx context.Context, req EncodeRequest, progress func(Progress)) error {
	if strings.TrimSpace(req.Device) == "" {
		return errors.New("encode device required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return errors.New("encode output path required")
	}
	if req.Title < 1 {
		return fmt.Errorf("title index must be positive, got %d", req.Title)
	}
	logger := logging.WithContext(ctx, c.logger)

	args := EncodeArgs(c.settings, req)
	logger.Info("running HandBrakeCLI", logging.String("command", c.settings.Binary+" "+strings.Join(args, " ")))

	onStdout := func(line string) {
		update, ok := ParseProgress(line)
		if !ok || progress == nil {
			return
		}
		update.Title = req.Title
		progress(update)
	}
	onStderr := func(line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		logger.Info("handbrake-info", logging.String("line", line))
	}
	if err := c.exec.Run(ctx, c.settings.Binary, args, onStdout, onStderr); err != nil {
		return services.Wrap(services.ErrRipFailed, "rip", "HandBrakeCLI encode", fmt.Sprintf("title %d", req.Title), err)
	}
	return nil
}

// ScanArgs returns the HandBrakeCLI arguments for a title scan.
func ScanArgs(device string) []string {
	return []string{"-i", device, "--title", "0", "--scan"}
}

// EncodeArgs returns the HandBrakeCLI arguments for one title encode.
// Decomb and detelecine are always applied; --deinterlace follows the
// Deinterlace setting.
func EncodeArgs(s Settings, req EncodeRequest) []string {
	args := []string{
		"-i", req.Device,
		"-o", req.OutputPath,
		"-e", s.Encoder,
		"-q", s.Quality,
		"-t", strconv.Itoa(req.Title),
		"--subtitle", strconv.Itoa(s.SubtitleTrack),
	}
	if s.SubtitleLanguage != "" {
		args = append(args, "--subtitle-lang-list", s.SubtitleLanguage)
	}
	args = append(args,
		"--decomb",
		"--detelecine",
		"--rate", s.FrameRate,
		"--preset", s.Preset,
	)
	if s.Deinterlace {
		args = append(args, "--deinterlace")
	}
	return args
}
