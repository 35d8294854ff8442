package handbrake

import (
	"regexp"
	"strconv"
	"time"
)

var (
	titleCountPattern = regexp.MustCompile(`scan: DVD has (\d+) title`)
	progressPattern   = regexp.MustCompile(`Encoding:.* (\d{1,3}\.\d{1,2}) %`)
	etaPattern        = regexp.MustCompile(`ETA (\d+)h(\d+)m(\d+)s`)
)

// Progress is one percentage update from a running encode.
type Progress struct {
	Title   int
	Percent float64
	ETA     time.Duration
}

// ParseTitleCount finds the "scan: DVD has N title(s)" summary in scan output.
func ParseTitleCount(output string) (int, bool) {
	match := titleCountPattern.FindStringSubmatch(output)
	if match == nil {
		return 0, false
	}
	count, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return count, true
}

// ParseProgress extracts the completion percentage from an encode status
// line such as "Encoding: task 1 of 1, 45.67 % (120.5 fps, avg 118.2 fps, ETA 00h05m12s)".
func ParseProgress(line string) (Progress, bool) {
	match := progressPattern.FindStringSubmatch(line)
	if match == nil {
		return Progress{}, false
	}
	percent, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Progress{}, false
	}
	progress := Progress{Percent: percent}
	if eta := etaPattern.FindStringSubmatch(line); eta != nil {
		h, _ := strconv.Atoi(eta[1])
		m, _ := strconv.Atoi(eta[2])
		s, _ := strconv.Atoi(eta[3])
		progress.ETA = time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	}
	return progress, true
}
