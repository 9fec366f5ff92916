package fs

import (
	"context"
	"os"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/actionlog/pkg/core"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	ArchivePath   string     `json:"archive_path"`
	Exists        bool       `json:"exists"`
	Entries       int        `json:"entries"`
	SizeBytes     int64      `json:"size_bytes"`
	Archived      int        `json:"archived"`
	Locking       bool       `json:"locking"`
	WatcherActive bool       `json:"watcher_active"`
	LastRewrite   *time.Time `json:"last_rewrite,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	state := RepositoryState{
		Path:        r.Path,
		ArchivePath: r.ArchivePath,
		Locking:     r.lock != nil,
	}

	if info, err := os.Stat(r.Path); err == nil {
		state.Exists = true
		state.SizeBytes = info.Size()
		state.Entries = r.Count(context.Background())
	}
	if data, err := os.ReadFile(r.ArchivePath); err == nil {
		state.Archived = len(splitLines(data))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	state.WatcherActive = r.watcherActive
	state.LastRewrite = r.lastRewrite

	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordRewrite() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastRewrite = &now
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
var _ core.LenientScanner = (*Repository)(nil)
