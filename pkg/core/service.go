package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Service handles the business logic for log entries.
type Service struct {
	repo Repository
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Repository returns the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// Log records a new entry and returns its ID.
func (s *Service) Log(ctx context.Context, content string, tags []string) (int, error) {
	if strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}
	return s.repo.Append(ctx, content, tags)
}

// List returns the entries accepted by f, in log order.
func (s *Service) List(ctx context.Context, f Filter) ([]Item, error) {
	return s.repo.Scan(ctx, f)
}

// Edit replaces the content of an entry, and its tags when tags is non-nil.
func (s *Service) Edit(ctx context.Context, id int, content string, tags []string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	return s.repo.Update(ctx, id, content, tags)
}

// Delete removes a batch of entries.
func (s *Service) Delete(ctx context.Context, ids []int) (DeleteResult, error) {
	return s.repo.Delete(ctx, ids)
}

// Copy duplicates an entry under a new timestamp.
// A non-nil content replaces the original and must not be blank.
func (s *Service) Copy(ctx context.Context, id int, content *string) (int, error) {
	if content != nil && strings.TrimSpace(*content) == "" {
		return 0, ErrEmptyContent
	}
	return s.repo.Copy(ctx, id, content)
}

// Archive moves entries older than cutoffDays to the archive file.
func (s *Service) Archive(ctx context.Context, cutoffDays int) (int, error) {
	if cutoffDays < 0 {
		return 0, fmt.Errorf("%w: cutoff must not be negative, got %d", ErrInvalidRange, cutoffDays)
	}
	return s.repo.Archive(ctx, cutoffDays)
}

// Count returns the number of stored entries.
func (s *Service) Count(ctx context.Context) int {
	return s.repo.Count(ctx)
}

// TagCounts tallies tag usage across the whole log.
// A missing log yields no counts. Lines that do not decode are left out when
// the repository is a LenientScanner. When pattern is non-empty only tags
// matching the glob are reported.
func (s *Service) TagCounts(ctx context.Context, pattern string) ([]TagCount, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid tag pattern %q", pattern)
	}

	items, err := s.scanForReport(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []TagCount{}, nil
		}
		return nil, err
	}

	counts := CountTags(items)
	if pattern == "" {
		return counts, nil
	}

	out := counts[:0]
	for _, c := range counts {
		if ok, _ := doublestar.Match(pattern, c.Tag); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) scanForReport(ctx context.Context) ([]Item, error) {
	if ls, ok := s.repo.(LenientScanner); ok {
		return ls.ScanDecodable(ctx)
	}
	return s.repo.Scan(ctx, Filter{})
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}
