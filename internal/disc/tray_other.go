//go:build !linux

package disc

import (
	"fmt"
	"strings"
)

// CheckDriveStatus is only implemented on Linux; other platforms report no
// information so callers fall back to the label probe.
func CheckDriveStatus(devicePath string) (DriveStatus, error) {
	if strings.TrimSpace(devicePath) == "" {
		return DriveStatusNoInfo, fmt.Errorf("empty device path")
	}
	return DriveStatusNoInfo, nil
}
