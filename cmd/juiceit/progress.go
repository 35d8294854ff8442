package main

import (
	"fmt"
	"io"
	"log/slog"

	"juiceit/internal/handbrake"
	"juiceit/internal/logging"
	"juiceit/internal/ripping"
)

// progressReporter redraws a single "Progress: NN.NN%" line on a terminal
// and falls back to sampled log lines when output is redirected.
type progressReporter struct {
	out         io.Writer
	interactive bool
	sampler     *logging.ProgressSampler
	logger      *slog.Logger
	drawn       bool
}

func newProgressReporter(out io.Writer, logger *slog.Logger) *progressReporter {
	return &progressReporter{
		out:         out,
		interactive: stdoutIsTerminal(out),
		sampler:     logging.NewProgressSampler(10),
		logger:      logging.NewComponentLogger(logger, "progress"),
	}
}

func (p *progressReporter) TitleStarted(job ripping.Job, total int) {
	p.sampler.Reset()
	p.drawn = false
	fmt.Fprintf(p.out, "Ripping title %d of %d -> %s.mp4\n", job.Index, total, job.BaseName)
}

func (p *progressReporter) Progress(update handbrake.Progress) {
	if p.interactive {
		fmt.Fprintf(p.out, "\rProgress: %.2f%%", update.Percent)
		p.drawn = true
		return
	}
	if !p.sampler.ShouldLog(update.Percent) {
		return
	}
	attrs := []logging.Attr{
		logging.Int(logging.FieldTitle, update.Title),
		logging.Float64("percent", update.Percent),
	}
	if update.ETA > 0 {
		attrs = append(attrs, logging.Duration("eta", update.ETA))
	}
	p.logger.Info("encode progress", logging.Args(attrs...)...)
}

// TitleFinished ends the redrawn progress line so the next title starts on
// a fresh line.
func (p *progressReporter) TitleFinished(job ripping.Job, err error) {
	if p.interactive && p.drawn {
		fmt.Fprintln(p.out)
	}
	if err != nil {
		fmt.Fprintf(p.out, "Title %d failed\n", job.Index)
	}
}
