package actionlog

import (
	"log/slog"
	"time"

	"github.com/aretw0/actionlog/internal/platform"
	"github.com/aretw0/actionlog/pkg/adapters/fs"
	"github.com/aretw0/actionlog/pkg/core"
)

// --- Types ---

// Entry is a single logged action.
type Entry = core.Entry

// Item is an entry paired with its current line ID.
type Item = core.Item

// Filter selects entries during a scan.
type Filter = core.Filter

// Config is the user-facing configuration loaded from file and environment.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring actionlog.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithCodec replaces the line format of the file adapter.
func WithCodec(codec fs.Codec) Option {
	return platform.WithCodec(codec)
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithArchiveName sets the archive file name next to the log.
func WithArchiveName(name string) Option {
	return platform.WithArchiveName(name)
}

// WithLocking guards mutating operations with an advisory lock file.
func WithLocking(enabled bool) Option {
	return platform.WithLocking(enabled)
}

// WithLockTimeout bounds the wait for the lock file.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// --- Factory ---

// New creates a new actionlog Service for the log file at path.
// An empty path uses DefaultLogPath.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init builds the repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// NewFilter parses user-supplied filter criteria.
func NewFilter(date string, rangeDays *int, tags []string, keyword string) (Filter, error) {
	return core.NewFilter(date, rangeDays, tags, keyword)
}

// --- Configuration files ---

// LoadConfig resolves configuration from defaults, config file and environment.
func LoadConfig(configFile string) (Config, error) {
	return platform.LoadConfig(configFile)
}

// DefaultLogPath is where the log lives when nothing else is configured.
func DefaultLogPath() (string, error) {
	return platform.DefaultLogPath()
}
