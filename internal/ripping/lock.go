package ripping

import (
	"fmt"

	"github.com/gofrs/flock"
)

// acquireLock takes the output-directory lock without blocking.
func acquireLock(path, dir string) (*flock.Flock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another juiceit run is using %s", dir)
	}
	return lock, nil
}
