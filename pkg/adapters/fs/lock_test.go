package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/actionlog/pkg/core"
)

func TestFileLock(t *testing.T) {
	t.Run("Acquire And Release", func(t *testing.T) {
		l := &fileLock{path: filepath.Join(t.TempDir(), "log.json.lock"), timeout: time.Second}

		unlock, err := l.acquire(context.Background())
		require.NoError(t, err)
		_, err = os.Stat(l.path)
		assert.NoError(t, err, "lock file should exist while held")

		unlock()
		_, err = os.Stat(l.path)
		assert.True(t, os.IsNotExist(err), "lock file should be removed on release")
	})

	t.Run("Times Out When Held", func(t *testing.T) {
		l := &fileLock{path: filepath.Join(t.TempDir(), "log.json.lock"), timeout: 50 * time.Millisecond}
		unlock, err := l.acquire(context.Background())
		require.NoError(t, err)
		defer unlock()

		_, err = l.acquire(context.Background())
		assert.True(t, errors.Is(err, core.ErrLocked), "expected ErrLocked, got %v", err)
	})

	t.Run("Honours Context", func(t *testing.T) {
		l := &fileLock{path: filepath.Join(t.TempDir(), "log.json.lock"), timeout: time.Minute}
		unlock, err := l.acquire(context.Background())
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		_, err = l.acquire(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRepository_LockingBlocksConcurrentRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "action_log.json")
	repo := NewRepository(Config{Path: path, Locking: true, LockTimeout: 50 * time.Millisecond})
	ctx := context.Background()

	_, err := repo.Append(ctx, "one", nil)
	require.NoError(t, err)

	// Simulate another process holding the lock.
	require.NoError(t, os.WriteFile(path+LockSuffix, []byte("1\n"), 0644))

	err = repo.Update(ctx, 1, "X", nil)
	assert.ErrorIs(t, err, core.ErrLocked)

	require.NoError(t, os.Remove(path+LockSuffix))
	assert.NoError(t, repo.Update(ctx, 1, "X", nil))
}
