package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/actionlog/pkg/core"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test fallback/errors.
type MockRepository struct {
	entries []core.Entry
	missing bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) Append(ctx context.Context, content string, tags []string) (int, error) {
	m.missing = false
	m.entries = append(m.entries, core.Entry{Timestamp: time.Now(), Content: content, Tags: core.NormalizeTags(tags)})
	return len(m.entries), nil
}

func (m *MockRepository) Scan(ctx context.Context, f core.Filter) ([]core.Item, error) {
	if m.missing {
		return nil, &core.StorageError{Op: "scan", Path: "mock", Err: core.ErrNotFound}
	}
	var items []core.Item
	for i, e := range m.entries {
		if f.Match(e) {
			items = append(items, core.Item{ID: i + 1, Entry: e})
		}
	}
	return items, nil
}

func (m *MockRepository) Update(ctx context.Context, id int, content string, tags []string) error {
	if id < 1 || id > len(m.entries) {
		return &core.InvalidIDError{ID: id, Count: len(m.entries)}
	}
	m.entries[id-1].Content = content
	if tags != nil {
		m.entries[id-1].Tags = core.NormalizeTags(tags)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, ids []int) (core.DeleteResult, error) {
	return core.DeleteResult{}, errors.New("not implemented")
}

func (m *MockRepository) Copy(ctx context.Context, id int, content *string) (int, error) {
	return 0, errors.New("not implemented")
}

var archiveCalls int

func (m *MockRepository) Archive(ctx context.Context, cutoffDays int) (int, error) {
	archiveCalls++
	return 0, nil
}

func (m *MockRepository) Count(ctx context.Context) int { return len(m.entries) }

func TestService_LogAndList(t *testing.T) {
	service := core.NewService(NewMockRepository())
	ctx := context.TODO()

	id, err := service.Log(ctx, "content1", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = service.Log(ctx, "content2", nil)
	require.NoError(t, err)

	items, err := service.List(ctx, core.Filter{Tags: []string{"a"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "content1", items[0].Entry.Content)
	assert.Equal(t, 2, service.Count(ctx))
}

func TestService_LogRejectsEmptyContent(t *testing.T) {
	service := core.NewService(NewMockRepository())

	_, err := service.Log(context.TODO(), "   ", nil)
	assert.ErrorIs(t, err, core.ErrEmptyContent)
	assert.Equal(t, 0, service.Count(context.TODO()))
}

func TestService_ArchiveRejectsNegativeCutoff(t *testing.T) {
	service := core.NewService(NewMockRepository())
	before := archiveCalls

	_, err := service.Archive(context.TODO(), -1)
	assert.ErrorIs(t, err, core.ErrInvalidRange)
	assert.Equal(t, before, archiveCalls, "repository must not be called")

	_, err = service.Archive(context.TODO(), 0)
	assert.NoError(t, err)
}

func TestService_TagCounts(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	service.Log(ctx, "Log 1", []string{"work", "urgent"})
	service.Log(ctx, "Log 2", []string{"work", "meeting"})
	service.Log(ctx, "Log 3", []string{"rest", "work/remote"})

	counts, err := service.TagCounts(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, counts)
	assert.Equal(t, core.TagCount{Tag: "work", Count: 2}, counts[0])
	assert.Len(t, counts, 5)

	counts, err = service.TagCounts(ctx, "work*")
	require.NoError(t, err)
	assert.Equal(t, []core.TagCount{{Tag: "work", Count: 2}}, counts)

	counts, err = service.TagCounts(ctx, "work/**")
	require.NoError(t, err)
	assert.Equal(t, []core.TagCount{{Tag: "work/remote", Count: 1}}, counts)

	_, err = service.TagCounts(ctx, "[")
	assert.Error(t, err)
}

func TestService_TagCountsOnMissingLog(t *testing.T) {
	repo := NewMockRepository()
	repo.missing = true
	service := core.NewService(repo)

	counts, err := service.TagCounts(context.TODO(), "")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestService_EditKeepsTagsWhenNil(t *testing.T) {
	service := core.NewService(NewMockRepository())
	ctx := context.TODO()
	service.Log(ctx, "first", []string{"x"})

	require.NoError(t, service.Edit(ctx, 1, "changed", nil))
	items, _ := service.List(ctx, core.Filter{})
	assert.Equal(t, []string{"x"}, items[0].Entry.Tags)

	err := service.Edit(ctx, 9, "changed", nil)
	assert.ErrorIs(t, err, core.ErrInvalidID)
}

func TestService_Watch_Unsupported(t *testing.T) {
	service := core.NewService(NewMockRepository())

	_, err := service.Watch(context.TODO())
	require.Error(t, err)
	assert.Equal(t, "repository does not support watching", err.Error())
}

func TestService_State(t *testing.T) {
	service := core.NewService(NewMockRepository())

	state, ok := service.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.False(t, state.Watchable)
	assert.Equal(t, "service", service.ComponentType())

	empty, ok := core.NewService(nil).State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "unknown", empty.RepositoryType)
}

func TestService_EditAndCopyRejectEmptyContent(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()
	service.Log(ctx, "original", nil)

	err := service.Edit(ctx, 1, " \t", nil)
	assert.ErrorIs(t, err, core.ErrEmptyContent)
	assert.Equal(t, "original", repo.entries[0].Content)

	blank := ""
	_, err = service.Copy(ctx, 1, &blank)
	assert.ErrorIs(t, err, core.ErrEmptyContent)
	assert.Equal(t, 1, service.Count(ctx))
}

// lenientRepository fails strict scans, as a store with a corrupt line would,
// but can still list the entries that decode.
type lenientRepository struct {
	*MockRepository
}

func (l lenientRepository) Scan(ctx context.Context, f core.Filter) ([]core.Item, error) {
	return nil, &core.DecodeError{Line: 2, Err: errors.New("invalid character")}
}

func (l lenientRepository) ScanDecodable(ctx context.Context) ([]core.Item, error) {
	return l.MockRepository.Scan(ctx, core.Filter{})
}

func TestService_TagCountsSkipsUndecodableLines(t *testing.T) {
	repo := lenientRepository{NewMockRepository()}
	service := core.NewService(repo)
	ctx := context.TODO()
	service.Log(ctx, "good", []string{"work"})

	_, err := service.List(ctx, core.Filter{})
	var decErr *core.DecodeError
	require.ErrorAs(t, err, &decErr)

	counts, err := service.TagCounts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []core.TagCount{{Tag: "work", Count: 1}}, counts)
}
