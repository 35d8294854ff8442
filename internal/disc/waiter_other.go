//go:build !linux

package disc

import (
	"context"
	"log/slog"
)

type unsupportedWaiter struct{}

// NewWaiter returns the insertion waiter for the running platform.
func NewWaiter(*slog.Logger) Waiter {
	return unsupportedWaiter{}
}

func (unsupportedWaiter) WaitForDisc(context.Context, string) (string, error) {
	return "", ErrWaitUnsupported
}
