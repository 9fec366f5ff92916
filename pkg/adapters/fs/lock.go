package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/actionlog/pkg/core"
)

const (
	// LockSuffix is appended to the log path to name the advisory lock file.
	LockSuffix = ".lock"

	lockRetryInterval = 10 * time.Millisecond
)

// fileLock is a cooperative lock: a file created with O_EXCL next to the log.
// It only guards against other processes that honour the same convention.
type fileLock struct {
	path    string
	timeout time.Duration
}

// acquire blocks until the lock file can be created, ctx is done, or the
// timeout elapses (ErrLocked). The returned func releases the lock.
func (l *fileLock) acquire(ctx context.Context) (func(), error) {
	deadline := time.Now().Add(l.timeout)

	if err := os.MkdirAll(filepath.Dir(l.path), defaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() {
				os.Remove(l.path)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if l.timeout > 0 && time.Now().After(deadline) {
			return nil, fmt.Errorf("%w (%s)", core.ErrLocked, l.path)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}
