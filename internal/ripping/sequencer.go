package ripping

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"juiceit/internal/config"
	"juiceit/internal/disc"
	"juiceit/internal/handbrake"
	"juiceit/internal/history"
	"juiceit/internal/logging"
	"juiceit/internal/preflight"
	"juiceit/internal/scancache"
	"juiceit/internal/services"
)

// Encoder rips a single title.
type Encoder interface {
	Encode(ctx context.Context, req handbrake.EncodeRequest, progress func(handbrake.Progress)) error
}

// Reporter receives per-title lifecycle and progress events.
type Reporter interface {
	TitleStarted(job Job, total int)
	Progress(update handbrake.Progress)
	TitleFinished(job Job, err error)
}

type nopReporter struct{}

func (nopReporter) TitleStarted(Job, int)       {}
func (nopReporter) Progress(handbrake.Progress) {}
func (nopReporter) TitleFinished(Job, error)    {}

// Recorder persists completed titles.
type Recorder interface {
	Record(ctx context.Context, entry *history.Entry) error
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithProbe overrides the disc probe.
func WithProbe(probe disc.Probe) Option {
	return func(s *Sequencer) {
		if probe != nil {
			s.probe = probe
		}
	}
}

// WithReporter sets the progress reporter.
func WithReporter(reporter Reporter) Option {
	return func(s *Sequencer) {
		if reporter != nil {
			s.reporter = reporter
		}
	}
}

// WithEjector ejects the disc after every title ripped successfully.
func WithEjector(ejector disc.Ejector) Option {
	return func(s *Sequencer) {
		s.ejector = ejector
	}
}

// WithWaiter blocks for disc insertion when no disc is present instead of
// failing.
func WithWaiter(waiter disc.Waiter) Option {
	return func(s *Sequencer) {
		s.waiter = waiter
	}
}

// WithRecorder logs every completed title to recorder.
func WithRecorder(recorder Recorder) Option {
	return func(s *Sequencer) {
		s.recorder = recorder
	}
}

// WithPreflight replaces the dependency check (primarily for tests).
func WithPreflight(check func(context.Context, config.Config) error) Option {
	return func(s *Sequencer) {
		if check != nil {
			s.preflight = check
		}
	}
}

// Sequencer drives a complete rip run.
type Sequencer struct {
	cfg       config.Config
	probe     disc.Probe
	cache     *scancache.Cache
	scanner   Scanner
	encoder   Encoder
	ejector   disc.Ejector
	waiter    disc.Waiter
	recorder  Recorder
	reporter  Reporter
	preflight func(context.Context, config.Config) error
	logger    *slog.Logger
}

// NewSequencer wires a run from resolved configuration. scanner and encoder
// are usually the same *handbrake.Client.
func NewSequencer(cfg config.Config, scanner Scanner, encoder Encoder, logger *slog.Logger, opts ...Option) *Sequencer {
	s := &Sequencer{
		cfg:       cfg,
		probe:     disc.NewProbe(),
		cache:     scancache.New(cfg.CachePath(), logger),
		scanner:   scanner,
		encoder:   encoder,
		reporter:  nopReporter{},
		preflight: preflight.Verify,
		logger:    logging.NewComponentLogger(logger, "sequencer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the rip. The returned Summary lists every title completed
// before any failure.
func (s *Sequencer) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	var summary Summary
	err := s.run(ctx, &summary)
	summary.Elapsed = time.Since(started)
	return summary, err
}

func (s *Sequencer) run(ctx context.Context, summary *Summary) error {
	if err := s.preflight(ctx, s.cfg); err != nil {
		return err
	}

	device, err := s.resolveDevice(ctx)
	if err != nil {
		return err
	}
	summary.Device = device
	logger := s.logger.With(logging.String(logging.FieldDevice, device))

	lock, err := acquireLock(s.cfg.LockPath(), s.cfg.Paths.OutputDir)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "lock", "output directory", "", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output directory lock", logging.Error(err))
		}
	}()

	label, err := s.volumeName(ctx, device)
	if err != nil {
		return err
	}
	summary.VolumeName = label
	logger = logger.With(logging.String(logging.FieldVolumeName, label))

	if _, err := s.cache.InvalidateIfStale(label); err != nil {
		logging.WarnWithContext(logger, "failed to clear stale scan cache", "scan_cache_invalidate_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the cached count is ignored for this disc"))
	}

	count, err := NewCounter(s.cache, s.scanner, s.logger).Count(ctx, device, label)
	if err != nil {
		return err
	}
	summary.Titles = count.Titles
	summary.CacheHit = count.Cached
	logger.Info("titles to rip", logging.Int("titles", count.Titles), logging.Bool("cached", count.Cached))

	jobs := Jobs(count.Titles)
	for _, job := range jobs {
		result, err := s.rip(ctx, device, job, len(jobs))
		if err != nil {
			return err
		}
		summary.Completed = append(summary.Completed, result)
		s.record(ctx, summary, result)
	}

	if s.ejector != nil && len(jobs) > 0 {
		if err := s.ejector.Eject(ctx, device); err != nil {
			logging.WarnWithContext(logger, "failed to eject disc", "eject_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "remove the disc manually"))
		}
	}
	return nil
}

func (s *Sequencer) rip(ctx context.Context, device string, job Job, total int) (Result, error) {
	ctx = services.WithTitle(services.WithStage(ctx, "rip"), job.Index)
	logger := logging.WithContext(ctx, s.logger)

	output := s.cfg.OutputFile(job.BaseName)
	logger.Info("ripping title", logging.String("output", output), logging.Int("total", total))
	s.reporter.TitleStarted(job, total)

	started := time.Now()
	err := s.encoder.Encode(ctx, handbrake.EncodeRequest{
		Device:     device,
		OutputPath: output,
		Title:      job.Index,
	}, s.reporter.Progress)
	s.reporter.TitleFinished(job, err)
	if err != nil {
		logging.ErrorWithContext(logger, "title rip failed", "rip_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "remaining titles were not ripped"))
		return Result{}, err
	}

	result := Result{Job: job, Path: output, Elapsed: time.Since(started)}
	if info, statErr := os.Stat(output); statErr == nil {
		result.Size = info.Size()
	} else {
		logging.WarnWithContext(logger, "encoded file not found", "rip_output_missing",
			logging.String("output", output),
			logging.Error(statErr),
			logging.String(logging.FieldImpact, "HandBrakeCLI reported success without writing the file"))
	}
	logger.Info("title ripped", logging.String("output", output), logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (s *Sequencer) record(ctx context.Context, summary *Summary, result Result) {
	if s.recorder == nil {
		return
	}
	runID, _ := services.RunIDFromContext(ctx)
	entry := &history.Entry{
		RunID:      runID,
		VolumeName: summary.VolumeName,
		Device:     summary.Device,
		Title:      result.Job.Index,
		OutputPath: result.Path,
		SizeBytes:  result.Size,
		Elapsed:    result.Elapsed,
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		logging.WarnWithContext(s.logger, "failed to record rip history", "history_write_failed",
			logging.Int(logging.FieldTitle, result.Job.Index),
			logging.Error(err),
			logging.String(logging.FieldImpact, "title missing from juiceit history"))
	}
}

func (s *Sequencer) resolveDevice(ctx context.Context) (string, error) {
	if device := strings.TrimSpace(s.cfg.Disc.Source); device != "" {
		return device, nil
	}
	device, err := s.probe.DetectDevice(ctx)
	if err != nil && s.waiter != nil {
		s.logger.Info("no DVD found; waiting for insertion", logging.Error(err))
		device, err = s.waiter.WaitForDisc(ctx, "")
	}
	if err != nil {
		return "", services.Wrap(services.ErrDiscNotFound, "detect", "drive", "no DVD found", err)
	}
	s.logger.Info("detected DVD drive", logging.String(logging.FieldDevice, device))
	return device, nil
}

// volumeName returns the disc label. An unreadable label is treated as the
// empty string, which still takes part in cache comparison. An empty drive
// is waited on when a waiter is configured.
func (s *Sequencer) volumeName(ctx context.Context, device string) (string, error) {
	label, err := s.probe.VolumeName(ctx, device)
	if errors.Is(err, disc.ErrNoDisc) && s.waiter != nil {
		s.logger.Info("drive is empty; waiting for insertion", logging.String(logging.FieldDevice, device))
		if _, waitErr := s.waiter.WaitForDisc(ctx, device); waitErr != nil {
			return "", services.Wrap(services.ErrDiscNotFound, "detect", "wait", device, waitErr)
		}
		label, err = s.probe.VolumeName(ctx, device)
	}
	if err != nil {
		eventType := "label_unreadable"
		if errors.Is(err, disc.ErrNoDisc) {
			eventType = "label_no_disc"
		}
		logging.WarnWithContext(s.logger, "could not read volume name", eventType,
			logging.String(logging.FieldDevice, device),
			logging.Error(err),
			logging.String(logging.FieldImpact, "scan cache keyed by an empty label"))
		return "", nil
	}
	return label, nil
}
