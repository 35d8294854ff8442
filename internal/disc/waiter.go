package disc

import (
	"context"
	"errors"
)

// ErrWaitUnsupported reports a platform without insertion events.
var ErrWaitUnsupported = errors.New("waiting for disc insertion is not supported on this platform")

// Waiter blocks until a disc is inserted.
type Waiter interface {
	// WaitForDisc returns the device that received media. When device is
	// non-empty only events for that device are accepted.
	WaitForDisc(ctx context.Context, device string) (string, error)
}
