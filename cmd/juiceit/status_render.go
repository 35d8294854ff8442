package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// outcome colours the Result line of the rip summary. Descriptive fields
// render without a tag.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeRipped
	outcomeStopped
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

const summaryFieldWidth = 8

func summaryField(name, value string, result outcome, colorize bool) string {
	var tag, color string
	switch result {
	case outcomeRipped:
		tag, color = "[OK] ", ansiGreen
	case outcomeStopped:
		tag, color = "[FAILED] ", ansiRed
	}
	line := fmt.Sprintf("  %-*s %s%s", summaryFieldWidth, name+":", tag, value)
	if colorize && color != "" {
		return color + line + ansiReset
	}
	return line
}

func summaryHeader(title string, colorize bool) string {
	heading := "== " + strings.TrimSpace(title) + " =="
	if colorize {
		heading = ansiBlue + heading + ansiReset
	}
	return heading
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

// stdoutIsTerminal is overridden in tests.
var stdoutIsTerminal = func(w io.Writer) bool {
	file, ok := w.(interface{ Fd() uintptr })
	return ok && isTerminal(file.Fd())
}
