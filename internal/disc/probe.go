package disc

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
)

var (
	// ErrNoDisc reports an empty or open drive, or a disc without a readable label.
	ErrNoDisc = errors.New("no disc present")
	// ErrNoDrive reports that no drive holding a DVD could be found.
	ErrNoDrive = errors.New("no DVD drive detected")
)

// Probe resolves disc identity and the device path of the DVD drive.
type Probe interface {
	// VolumeName returns the human-readable label of the disc in device.
	VolumeName(ctx context.Context, device string) (string, error)
	// DetectDevice returns the device path of the first drive holding a DVD.
	DetectDevice(ctx context.Context) (string, error)
}

// Executor abstracts command execution for probes.
type Executor interface {
	Output(ctx context.Context, binary string, args ...string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).Output() //nolint:gosec
}

// NewProbe returns the probe for the running platform.
func NewProbe() Probe {
	return NewProbeWithExecutor(runtime.GOOS, commandExecutor{})
}

// NewProbeWithExecutor allows injecting a custom executor and platform for testing.
func NewProbeWithExecutor(goos string, exec Executor) Probe {
	if exec == nil {
		exec = commandExecutor{}
	}
	if goos == "darwin" {
		return &darwinProbe{exec: exec}
	}
	return &linuxProbe{exec: exec, driveStatus: CheckDriveStatus}
}
