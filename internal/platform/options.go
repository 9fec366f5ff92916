package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/actionlog/pkg/adapters/fs"
	"github.com/aretw0/actionlog/pkg/core"
)

// options holds the internal configuration for the actionlog service.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	codec       fs.Codec
	clock       func() time.Time
	archiveName string
	locking     bool
	lockTimeout time.Duration
}

// Option defines a functional option for configuring actionlog.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, the default file adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithCodec replaces the JSON Lines format of the file adapter.
func WithCodec(codec fs.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithClock overrides the time source used for timestamps and entry age.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithArchiveName sets the archive file name, resolved next to the log file.
func WithArchiveName(name string) Option {
	return func(o *options) {
		o.archiveName = name
	}
}

// WithLocking guards mutating operations with an advisory lock file.
// Only processes using the same convention are excluded.
func WithLocking(enabled bool) Option {
	return func(o *options) {
		o.locking = enabled
	}
}

// WithLockTimeout bounds how long an operation waits for the lock file.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}
