package handbrake

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseTitleCount(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int
		found  bool
	}{
		{"plural", "[12:00:01] scan: DVD has 3 title(s)\n", 3, true},
		{"single", "libdvdnav: using dvdnav\nscan: DVD has 1 title(s)", 1, true},
		{"zero", "scan: DVD has 0 title(s)", 0, true},
		{"missing", "libdvdread: Encrypted DVD support unavailable.\n", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ParseTitleCount(tt.output)
			if got != tt.want || found != tt.found {
				t.Fatalf("ParseTitleCount() = (%d, %v), want (%d, %v)", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		percent float64
		eta     time.Duration
		ok      bool
	}{
		{
			"with eta",
			"Encoding: task 1 of 1, 45.67 % (120.50 fps, avg 118.20 fps, ETA 00h05m12s)",
			45.67, 5*time.Minute + 12*time.Second, true,
		},
		{"no eta", "Encoding: task 1 of 1, 2.10 %", 2.10, 0, true},
		{"complete", "Encoding: task 1 of 1, 100.00 %", 100, 0, true},
		{"muxing", "Muxing: this may take awhile...", 0, 0, false},
		{"unrelated", "x264 [info]: using cpu capabilities", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseProgress(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseProgress(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if got.Percent != tt.percent || got.ETA != tt.eta {
				t.Fatalf("ParseProgress(%q) = %+v, want percent %v eta %v", tt.line, got, tt.percent, tt.eta)
			}
		})
	}
}

func TestScanLinesOrCarriageReturns(t *testing.T) {
	input := "first\rsecond\r\nthird\nfourth"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(scanLinesOrCarriageReturns)
	var got []string
	for scanner.Scan() {
		got = append(got, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	want := []string{"first", "second", "third", "fourth"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("tokens = %q, want %q", got, want)
	}
}

func TestScanLinesTrailingCarriageReturn(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("only\r"))
	scanner.Split(scanLinesOrCarriageReturns)
	var got []string
	for scanner.Scan() {
		got = append(got, scanner.Text())
	}
	if len(got) != 1 || got[0] != "only" {
		t.Fatalf("tokens = %q, want [only]", got)
	}
}
