package disc

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"
)

var volumeNamePattern = regexp.MustCompile(`Volume Name:\s*(.+)`)

type darwinProbe struct {
	exec Executor
}

func (p *darwinProbe) VolumeName(ctx context.Context, device string) (string, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return "", fmt.Errorf("no device specified")
	}
	output, err := p.exec.Output(ctx, "diskutil", "info", device)
	if err != nil {
		return "", fmt.Errorf("diskutil info %s: %w", device, err)
	}
	name, ok := ParseVolumeName(string(output))
	if !ok {
		return "", fmt.Errorf("diskutil info %s: %w", device, ErrNoDisc)
	}
	return name, nil
}

func (p *darwinProbe) DetectDevice(ctx context.Context) (string, error) {
	output, err := p.exec.Output(ctx, "drutil", "status")
	if err != nil {
		return "", fmt.Errorf("drutil status: %w", err)
	}
	device, ok := ParseDrutilDevice(string(output))
	if !ok {
		return "", ErrNoDrive
	}
	return device, nil
}

// ParseVolumeName extracts the "Volume Name:" field from diskutil info output.
func ParseVolumeName(output string) (string, bool) {
	match := volumeNamePattern.FindStringSubmatch(output)
	if match == nil {
		return "", false
	}
	name := strings.TrimSpace(match[1])
	return name, name != ""
}

// ParseDrutilDevice scans drutil status output for the first line whose
// type is DVD-ROM and returns its trailing device identifier.
func ParseDrutilDevice(output string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Type: DVD-ROM") {
			continue
		}
		fields := strings.Fields(line)
		return fields[len(fields)-1], true
	}
	return "", false
}
