package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/actionlog/pkg/core"
)

// Watch follows the log file and emits an EventAppend per completed line and an
// EventRewrite whenever the file was replaced or shrank. The channel is
// closed when ctx is done.
//
// The parent directory is watched rather than the file itself, because
// rewrites replace the file by rename.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	dir := filepath.Dir(r.Path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 16)
	t := &tailer{
		repo:    r,
		target:  filepath.Clean(r.Path),
		watcher: watcher,
		events:  events,
	}
	if lines, err := t.completeLines(); err == nil {
		t.seen = len(lines)
	}

	r.setWatcherActive(true)
	lifecycle.Go(ctx, t.run, lifecycle.WithErrorHandler(func(err error) {
		r.logger.Error("watcher failed", "path", r.Path, "error", err)
	}))

	return events, nil
}

type tailer struct {
	repo    *Repository
	target  string
	watcher *fsnotify.Watcher
	events  chan<- core.Event
	seen    int
}

func (t *tailer) run(ctx context.Context) error {
	defer close(t.events)
	defer t.repo.setWatcherActive(false)
	defer t.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-t.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != t.target {
				continue
			}
			t.sync(ctx, event)

		case err, ok := <-t.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			t.repo.logger.Error("fsnotify error", "error", err)
		}
	}
}

// sync compares the file with the last seen line count and emits the difference.
func (t *tailer) sync(ctx context.Context, event fsnotify.Event) {
	t.repo.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	lines, err := t.completeLines()
	if err != nil {
		if t.seen > 0 {
			t.seen = 0
			t.send(ctx, core.Event{Type: core.EventRewrite, Count: 0})
		}
		return
	}

	n := len(lines)
	replaced := event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
	if n < t.seen || (replaced && t.seen > 0) {
		t.seen = n
		t.send(ctx, core.Event{Type: core.EventRewrite, Count: n})
		return
	}

	for i := t.seen; i < n; i++ {
		entry, err := t.repo.decode(i+1, lines[i])
		if err != nil {
			t.repo.logger.Warn("skipping undecodable line", "error", err)
			continue
		}
		t.send(ctx, core.Event{Type: core.EventAppend, ID: i + 1, Entry: entry, Count: n})
	}
	t.seen = n
}

// completeLines returns the newline-terminated lines of the log. A trailing
// line still being written is left for a later event.
func (t *tailer) completeLines() ([][]byte, error) {
	data, err := os.ReadFile(t.repo.Path)
	if err != nil {
		return nil, err
	}
	return splitLines(data[:bytes.LastIndexByte(data, '\n')+1]), nil
}

func (t *tailer) send(ctx context.Context, e core.Event) {
	select {
	case t.events <- e:
	case <-ctx.Done():
	}
}
