package platform

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/actionlog/pkg/adapters/fs"
	"github.com/aretw0/actionlog/pkg/core"
)

// New creates the Service for the log file at path.
//
//	svc, err := actionlog.New("./action_log.json", actionlog.WithLocking(true))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(repo), nil
}

// Init builds the repository for path without touching the disk.
// An empty path resolves to DefaultLogPath.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	if path == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log path %q: %w", path, err)
	}

	if o.logger != nil {
		o.logger.Debug("opening log", "path", abs, "locking", o.locking)
	}

	return fs.NewRepository(fs.Config{
		Path:        abs,
		ArchiveName: o.archiveName,
		Logger:      o.logger,
		Codec:       o.codec,
		Clock:       o.clock,
		Locking:     o.locking,
		LockTimeout: o.lockTimeout,
	}), nil
}
