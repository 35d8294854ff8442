package disc

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Ejector defines disc eject operations.
type Ejector interface {
	Eject(ctx context.Context, device string) error
}

type commandEjector struct {
	goos string
	exec Executor
}

// NewEjector creates an ejector that shells out to the platform eject utility.
func NewEjector() Ejector {
	return NewEjectorWithExecutor(runtime.GOOS, commandExecutor{})
}

// NewEjectorWithExecutor allows injecting a custom executor and platform for testing.
func NewEjectorWithExecutor(goos string, exec Executor) Ejector {
	if exec == nil {
		exec = commandExecutor{}
	}
	return commandEjector{goos: goos, exec: exec}
}

func (e commandEjector) Eject(ctx context.Context, device string) error {
	device = strings.TrimSpace(device)
	binary, args := "eject", []string{}
	if e.goos == "darwin" {
		binary, args = "drutil", []string{"eject"}
		if device != "" {
			binary, args = "diskutil", []string{"eject", device}
		}
	} else if device != "" {
		args = append(args, device)
	}
	if _, err := e.exec.Output(ctx, binary, args...); err != nil {
		return fmt.Errorf("eject %s: %w", device, err)
	}
	return nil
}
