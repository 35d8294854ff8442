package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"juiceit/internal/config"
	"juiceit/internal/disc"
	"juiceit/internal/handbrake"
	"juiceit/internal/history"
	"juiceit/internal/logging"
	"juiceit/internal/ripping"
	"juiceit/internal/services"
)

func runRip(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.resolveConfig(cmd)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "resolve options", "", err)
	}

	runID := uuid.NewString()
	logger, err := newLogger(cfg, runID)
	if err != nil {
		return err
	}
	runCtx := services.WithRunID(cmd.Context(), runID)
	logger.Info("juiceit run starting",
		logging.String("output_dir", cfg.Paths.OutputDir),
		logging.String(logging.FieldDevice, cfg.Disc.Source),
		logging.Bool("deinterlace", cfg.HandBrake.Deinterlace))

	client, err := handbrake.New(handbrake.SettingsFromConfig(cfg), handbrake.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := []ripping.Option{ripping.WithReporter(newProgressReporter(out, logger))}
	if ctx.flags.eject {
		opts = append(opts, ripping.WithEjector(disc.NewEjector()))
	}
	if ctx.flags.wait {
		opts = append(opts, ripping.WithWaiter(disc.NewWaiter(logger)))
	}

	if store, histErr := history.Open(cfg.HistoryPath()); histErr != nil {
		logging.WarnWithContext(logger, "rip history unavailable", "history_open_failed",
			logging.Error(histErr),
			logging.String(logging.FieldImpact, "this run is not recorded in juiceit history"))
	} else {
		defer store.Close()
		opts = append(opts, ripping.WithRecorder(store))
	}

	summary, err := ripping.NewSequencer(cfg, client, client, logger, opts...).Run(runCtx)
	printSummary(out, summary, err == nil)
	return err
}

func newLogger(cfg config.Config, runID string) (*slog.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		RunID:  runID,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func printSummary(out io.Writer, summary ripping.Summary, ok bool) {
	if summary.Device == "" {
		return
	}
	colorize := stdoutIsTerminal(out)
	label := summary.VolumeName
	if label == "" {
		label = "(unknown)"
	}
	titles := fmt.Sprintf("%d", summary.Titles)
	if summary.CacheHit {
		titles += " (cached)"
	}
	result := summaryField("Result", fmt.Sprintf("%d ripped in %s", len(summary.Completed), formatElapsed(summary.Elapsed)), outcomeRipped, colorize)
	if !ok {
		result = summaryField("Result", fmt.Sprintf("stopped after %d of %d", len(summary.Completed), summary.Titles), outcomeStopped, colorize)
	}

	fmt.Fprintln(out, summaryHeader("Rip summary", colorize))
	fmt.Fprintln(out, summaryField("Device", summary.Device, outcomeNone, colorize))
	fmt.Fprintln(out, summaryField("Volume", label, outcomeNone, colorize))
	fmt.Fprintln(out, summaryField("Titles", titles, outcomeNone, colorize))
	fmt.Fprintln(out, result)
	if len(summary.Completed) > 0 {
		fmt.Fprintln(out, renderSummaryTable(summary.Completed))
	}
}
