package disc

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

type linuxProbe struct {
	exec        Executor
	driveStatus func(string) (DriveStatus, error)
}

func (p *linuxProbe) VolumeName(ctx context.Context, device string) (string, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return "", fmt.Errorf("no device specified")
	}
	if p.driveStatus != nil {
		status, err := p.driveStatus(device)
		if err == nil && (status == DriveStatusNoDisc || status == DriveStatusTrayOpen) {
			return "", fmt.Errorf("%s: %s: %w", device, status, ErrNoDisc)
		}
	}

	output, err := p.exec.Output(ctx, "lsblk", "-P", "-o", "LABEL,FSTYPE", device)
	if err != nil {
		return "", fmt.Errorf("failed to run lsblk: %w", err)
	}
	label, fstype := ParseLSBLKLabelFSType(string(output))
	if strings.TrimSpace(fstype) == "" {
		return "", fmt.Errorf("%s: no filesystem found: %w", device, ErrNoDisc)
	}
	if strings.TrimSpace(label) == "" {
		return "", fmt.Errorf("%s: disc has no volume label", device)
	}
	return label, nil
}

func (p *linuxProbe) DetectDevice(ctx context.Context) (string, error) {
	output, err := p.exec.Output(ctx, "lsblk", "-P", "-o", "PATH,TYPE,FSTYPE")
	if err != nil {
		return "", fmt.Errorf("failed to run lsblk: %w", err)
	}
	device, ok := ParseLSBLKOpticalDevice(string(output))
	if !ok {
		return "", ErrNoDrive
	}
	return device, nil
}

// ParseLSBLKLabelFSType parses lsblk -P output and returns the first LABEL/FSTYPE pair.
func ParseLSBLKLabelFSType(output string) (string, string) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		data := parseLSBLKKeyValueLine(scanner.Text())
		if len(data) == 0 {
			continue
		}
		return data["LABEL"], data["FSTYPE"]
	}
	return "", ""
}

// ParseLSBLKOpticalDevice returns the path of the first optical drive
// ("rom" type) carrying a DVD filesystem. DVD-Video is always UDF (bridge
// discs report udf first), so a plain iso9660 data CD is not a match.
func ParseLSBLKOpticalDevice(output string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		data := parseLSBLKKeyValueLine(scanner.Text())
		if data["TYPE"] != "rom" || data["PATH"] == "" {
			continue
		}
		if strings.EqualFold(data["FSTYPE"], "udf") {
			return data["PATH"], true
		}
	}
	return "", false
}

// parseLSBLKKeyValueLine splits KEY="value" pairs. Quoted values may
// contain spaces, which disc labels frequently do.
func parseLSBLKKeyValueLine(line string) map[string]string {
	result := make(map[string]string)
	line = strings.TrimSpace(line)
	for line != "" {
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			break
		}
		key := strings.TrimSpace(line[:eq])
		rest := line[eq+1:]
		var value string
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				value, rest = rest[1:], ""
			} else {
				value, rest = rest[1:end+1], rest[end+2:]
			}
		} else {
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				value, rest = rest, ""
			} else {
				value, rest = rest[:end], rest[end:]
			}
		}
		result[key] = value
		line = strings.TrimSpace(rest)
	}
	return result
}
