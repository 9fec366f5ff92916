package fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/actionlog/pkg/core"
)

const (
	// DefaultArchiveName is the file, next to the log, that receives archived entries.
	DefaultArchiveName = "action_log_archive.json"

	// DefaultLockTimeout bounds how long a mutating operation waits for the advisory lock.
	DefaultLockTimeout = 5 * time.Second
)

// Repository implements core.Repository on a single line-oriented file.
//
// Each line holds one entry encoded by the Codec, and an entry's ID is its
// 1-based line number. Reads load the whole file; mutations other than append
// rewrite the whole file via a temp file and rename.
type Repository struct {
	Path        string
	ArchivePath string

	config Config
	codec  Codec
	lock   *fileLock
	logger *slog.Logger

	mu            sync.RWMutex
	watcherActive bool
	lastRewrite   *time.Time
}

// Config holds the configuration for the file repository.
type Config struct {
	// Path is the log file.
	Path string
	// ArchiveName is the archive file name, resolved in the log's directory.
	ArchiveName string
	// Logger receives debug traces. Nil discards them.
	Logger *slog.Logger
	// Codec overrides the line format. Nil means JSON Lines.
	Codec Codec
	// Clock overrides time.Now for timestamps and age computations.
	Clock func() time.Time
	// Locking guards mutating operations with an advisory lock file.
	Locking bool
	// LockTimeout bounds the wait for the lock. Zero means DefaultLockTimeout.
	LockTimeout time.Duration
}

// NewRepository creates a new file-backed repository. It touches nothing on disk.
func NewRepository(config Config) *Repository {
	if config.ArchiveName == "" {
		config.ArchiveName = DefaultArchiveName
	}
	if config.Codec == nil {
		config.Codec = NewJSONCodec()
	}
	if config.LockTimeout == 0 {
		config.LockTimeout = DefaultLockTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Repository{
		Path:        config.Path,
		ArchivePath: filepath.Join(filepath.Dir(config.Path), config.ArchiveName),
		config:      config,
		codec:       config.Codec,
		logger:      logger,
	}
	if config.Locking {
		r.lock = &fileLock{path: config.Path + LockSuffix, timeout: config.LockTimeout}
	}
	return r
}

// Append stores a new entry and returns its ID.
func (r *Repository) Append(ctx context.Context, content string, tags []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var id int
	err := r.withLock(ctx, func() error {
		entry := core.Entry{
			Timestamp: r.now(),
			Content:   content,
			Tags:      core.NormalizeTags(tags),
		}
		var err error
		id, err = r.appendEntry(entry)
		return err
	})
	return id, err
}

// Scan reads the whole log and returns the entries accepted by f, in file order.
// Any undecodable line fails the whole scan.
func (r *Repository) Scan(ctx context.Context, f core.Filter) ([]core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.readLines("scan")
	if err != nil {
		return nil, err
	}

	if f.Now == nil {
		f.Now = r.now
	}

	items := make([]core.Item, 0, len(lines))
	for i, line := range lines {
		entry, err := r.decode(i+1, line)
		if err != nil {
			return nil, err
		}
		if f.Match(entry) {
			items = append(items, core.Item{ID: i + 1, Entry: entry})
		}
	}

	r.logger.Debug("scanned log", "path", r.Path, "lines", len(lines), "matched", len(items))
	return items, nil
}

// ScanDecodable returns every entry that decodes, in file order, keeping
// positional IDs. Undecodable lines are skipped and counted in a warning.
func (r *Repository) ScanDecodable(ctx context.Context) ([]core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.readLines("scan")
	if err != nil {
		return nil, err
	}

	items := make([]core.Item, 0, len(lines))
	skipped := 0
	for i, line := range lines {
		entry, err := r.decode(i+1, line)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, core.Item{ID: i + 1, Entry: entry})
	}

	if skipped > 0 {
		r.logger.Warn("skipping undecodable lines", "path", r.Path, "skipped", skipped)
	}
	return items, nil
}

// Update rewrites entry id with new content, and new tags when tags is non-nil.
// All other lines are preserved byte for byte.
func (r *Repository) Update(ctx context.Context, id int, content string, tags []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.withLock(ctx, func() error {
		lines, err := r.readLines("update")
		if err != nil {
			return err
		}
		if err := validateID(id, len(lines)); err != nil {
			return err
		}
		entries, err := r.decodeAll(lines)
		if err != nil {
			return err
		}

		entry := entries[id-1]
		entry.Content = content
		if tags != nil {
			entry.Tags = core.NormalizeTags(tags)
		}
		lines[id-1] = r.codec.Encode(entry)

		r.logger.Debug("updating entry", "id", id, "tags_replaced", tags != nil)
		return r.rewrite("update", lines)
	})
}

// Delete removes the given IDs from the log.
//
// IDs are checked against the line count before anything is removed; invalid
// ones are skipped and reported. Lines are removed from the highest ID down
// so the result does not depend on the order of ids. Duplicates count once.
// When nothing is removed the file is left untouched.
func (r *Repository) Delete(ctx context.Context, ids []int) (core.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return core.DeleteResult{}, err
	}

	var result core.DeleteResult
	err := r.withLock(ctx, func() error {
		lines, err := r.readLines("delete")
		if err != nil {
			return err
		}
		if _, err := r.decodeAll(lines); err != nil {
			return err
		}

		targets, skipped := partitionIDs(ids, len(lines))
		result.Skipped = skipped

		for _, id := range targets {
			lines = append(lines[:id-1], lines[id:]...)
			result.Deleted++
		}

		if result.Deleted == 0 {
			return nil
		}

		r.logger.Debug("deleting entries", "ids", targets, "skipped", skipped)
		return r.rewrite("delete", lines)
	})
	return result, err
}

// Copy appends a new entry seeded from entry id. The copy gets the current
// time, the original tags, and content when given (else the original content).
func (r *Repository) Copy(ctx context.Context, id int, content *string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var newID int
	err := r.withLock(ctx, func() error {
		lines, err := r.readLines("copy")
		if err != nil {
			return err
		}
		if err := validateID(id, len(lines)); err != nil {
			return err
		}
		entries, err := r.decodeAll(lines)
		if err != nil {
			return err
		}

		orig := entries[id-1]
		entry := core.Entry{
			Timestamp: r.now(),
			Content:   orig.Content,
			Tags:      orig.Tags,
		}
		if content != nil {
			entry.Content = *content
		}

		newID, err = r.appendEntry(entry)
		return err
	})
	return newID, err
}

// Archive moves every entry whose local date is strictly before
// today - cutoffDays to the archive file and keeps the rest, both in order.
//
// Unlike Scan, lines that fail to decode do not abort archival: they are
// dropped from both files and counted in a warning.
func (r *Repository) Archive(ctx context.Context, cutoffDays int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var archivedCount int
	err := r.withLock(ctx, func() error {
		lines, err := r.readLines("archive")
		if err != nil {
			return err
		}

		cutoff := core.CalendarDate(r.now()).AddDate(0, 0, -cutoffDays)

		var archived, kept [][]byte
		dropped := 0
		for i, line := range lines {
			entry, err := r.decode(i+1, line)
			if err != nil {
				dropped++
				continue
			}
			if core.CalendarDate(entry.Timestamp).Before(cutoff) {
				archived = append(archived, line)
			} else {
				kept = append(kept, line)
			}
		}

		if dropped > 0 {
			r.logger.Warn("dropping undecodable lines during archive", "path", r.Path, "dropped", dropped)
		}
		if len(archived) == 0 && dropped == 0 {
			return nil
		}

		// Archive first: a failure in between duplicates entries instead of losing them.
		if len(archived) > 0 {
			if err := appendLines(r.ArchivePath, archived); err != nil {
				return &core.StorageError{Op: "archive", Path: r.ArchivePath, Err: err}
			}
		}
		if err := r.rewrite("archive", kept); err != nil {
			return err
		}

		archivedCount = len(archived)
		r.logger.Debug("archived entries", "archived", archivedCount, "kept", len(kept), "cutoff", cutoff.Format(core.DateLayout))
		return nil
	})
	return archivedCount, err
}

// Count returns the number of lines in the log, or 0 if it cannot be read.
func (r *Repository) Count(ctx context.Context) int {
	lines, err := r.readLines("count")
	if err != nil {
		return 0
	}
	return len(lines)
}

// --- Internal helpers ---

func (r *Repository) now() time.Time {
	if r.config.Clock != nil {
		return r.config.Clock().Truncate(time.Second)
	}
	return time.Now().Truncate(time.Second)
}

func (r *Repository) withLock(ctx context.Context, fn func() error) error {
	if r.lock == nil {
		return fn()
	}
	unlock, err := r.lock.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// appendEntry must be called with the lock held.
func (r *Repository) appendEntry(entry core.Entry) (int, error) {
	count := r.Count(context.Background())
	if err := appendLines(r.Path, [][]byte{r.codec.Encode(entry)}); err != nil {
		return 0, &core.StorageError{Op: "append", Path: r.Path, Err: err}
	}
	r.logger.Debug("appended entry", "path", r.Path, "id", count+1, "tags", entry.Tags)
	return count + 1, nil
}

func (r *Repository) readLines(op string) ([][]byte, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &core.StorageError{Op: op, Path: r.Path, Err: fmt.Errorf("%w: %w", core.ErrNotFound, err)}
		}
		return nil, &core.StorageError{Op: op, Path: r.Path, Err: err}
	}
	return splitLines(data), nil
}

func (r *Repository) rewrite(op string, lines [][]byte) error {
	if err := rewriteLines(r.Path, lines); err != nil {
		return &core.StorageError{Op: op, Path: r.Path, Err: err}
	}
	r.recordRewrite()
	return nil
}

func (r *Repository) decode(lineNo int, line []byte) (core.Entry, error) {
	entry, err := r.codec.Decode(line)
	if err != nil {
		return core.Entry{}, &core.DecodeError{Line: lineNo, Err: err}
	}
	return entry, nil
}

// decodeAll decodes every line, failing on the first that does not decode.
func (r *Repository) decodeAll(lines [][]byte) ([]core.Entry, error) {
	entries := make([]core.Entry, len(lines))
	for i, line := range lines {
		entry, err := r.decode(i+1, line)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}
	return entries, nil
}

// splitLines breaks file data into lines without their newline.
// A final newline does not start an extra line.
func splitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	return bytes.Split(data, []byte("\n"))
}

func validateID(id, count int) error {
	if id < 1 || id > count {
		return &core.InvalidIDError{ID: id, Count: count}
	}
	return nil
}

// partitionIDs de-duplicates ids and splits them into valid targets, sorted
// descending, and skipped IDs, sorted ascending.
func partitionIDs(ids []int, count int) (targets, skipped []int) {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if validateID(id, count) != nil {
			skipped = append(skipped, id)
			continue
		}
		targets = append(targets, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(targets)))
	sort.Ints(skipped)
	return targets, skipped
}
