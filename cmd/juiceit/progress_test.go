package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"juiceit/internal/handbrake"
	"juiceit/internal/ripping"
)

func forceTerminal(t *testing.T, value bool) {
	t.Helper()
	original := stdoutIsTerminal
	stdoutIsTerminal = func(io.Writer) bool { return value }
	t.Cleanup(func() { stdoutIsTerminal = original })
}

func TestProgressReporterRedrawsLineOnTerminal(t *testing.T) {
	forceTerminal(t, true)
	var out bytes.Buffer
	reporter := newProgressReporter(&out, nil)
	job := ripping.NewJob(1)

	reporter.TitleStarted(job, 2)
	reporter.Progress(handbrake.Progress{Title: 1, Percent: 12.5})
	reporter.Progress(handbrake.Progress{Title: 1, Percent: 99.99})
	reporter.TitleFinished(job, nil)

	got := out.String()
	if !strings.Contains(got, "\rProgress: 12.50%\rProgress: 99.99%\n") {
		t.Fatalf("unexpected progress rendering %q", got)
	}
	if !strings.HasPrefix(got, "Ripping title 1 of 2 -> Track_1.mp4\n") {
		t.Fatalf("missing title header in %q", got)
	}
}

func TestProgressReporterQuietWhenRedirected(t *testing.T) {
	forceTerminal(t, false)
	var out bytes.Buffer
	reporter := newProgressReporter(&out, nil)
	job := ripping.NewJob(3)

	reporter.TitleStarted(job, 3)
	reporter.Progress(handbrake.Progress{Title: 3, Percent: 50})
	reporter.TitleFinished(job, errors.New("boom"))

	got := out.String()
	if strings.Contains(got, "\r") {
		t.Fatalf("redirected output must not contain carriage returns: %q", got)
	}
	if !strings.Contains(got, "Title 3 failed") {
		t.Fatalf("expected failure line, got %q", got)
	}
}

func TestPrintSummaryRendersTable(t *testing.T) {
	forceTerminal(t, false)
	var out bytes.Buffer
	printSummary(&out, ripping.Summary{
		Device:     "/dev/disk5",
		VolumeName: "MOVIE",
		Titles:     2,
		CacheHit:   true,
		Completed: []ripping.Result{
			{Job: ripping.NewJob(1), Path: "/out/Track_1.mp4", Size: 2048, Elapsed: 90 * time.Second},
		},
	}, false)

	got := out.String()
	for _, want := range []string{"MOVIE", "2 (cached)", "stopped after 1 of 2", "/out/Track_1.mp4", "2.0 KiB", "1m30s"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSummaryColorsOnlyResult(t *testing.T) {
	forceTerminal(t, true)
	var out bytes.Buffer
	printSummary(&out, ripping.Summary{Device: "/dev/sr0", VolumeName: "MOVIE", Titles: 1, Elapsed: 2 * time.Second,
		Completed: []ripping.Result{{Job: ripping.NewJob(1), Path: "/out/Track_1.mp4", Size: 10}},
	}, true)

	lines := strings.Split(out.String(), "\n")
	if lines[0] != ansiBlue+"== Rip summary =="+ansiReset {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "  Device:  /dev/sr0" {
		t.Fatalf("descriptive field should be plain, got %q", lines[1])
	}
	if want := ansiGreen + "  Result:  [OK] 1 ripped in 2s" + ansiReset; lines[4] != want {
		t.Fatalf("result line = %q, want %q", lines[4], want)
	}
}

func TestPrintSummarySkipsWithoutDevice(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, ripping.Summary{}, false)
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestHumanBytes(t *testing.T) {
	cases := map[int64]string{
		512:             "512 B",
		1536:            "1.5 KiB",
		5 * 1024 * 1024: "5.0 MiB",
	}
	for in, want := range cases {
		if got := humanBytes(in); got != want {
			t.Fatalf("humanBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
