package listing

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/cursor"
	"github.com/nrfta/videohub/models"
)

// MemoryStore is an in-memory Store with the same filter and keyset
// semantics as SQLStore. It backs handler and service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	comments []*models.CommentRow
	videos   []*models.VideoRow
	failWith error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddComments stores comment rows.
func (m *MemoryStore) AddComments(rows ...*models.CommentRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, rows...)
}

// AddVideos stores video rows.
func (m *MemoryStore) AddVideos(rows ...*models.VideoRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videos = append(m.videos, rows...)
}

// FailWith makes every read fail with err until called again with nil.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MemoryStore) Comments(f CommentsFilter) paging.Fetcher[*models.CommentRow] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []*models.CommentRow
	for _, c := range m.comments {
		if c.VideoID != f.VideoID {
			continue
		}
		if f.ParentID == "" && c.ParentID.Valid {
			continue
		}
		if f.ParentID != "" && (!c.ParentID.Valid || c.ParentID.String != f.ParentID) {
			continue
		}
		rows = append(rows, c)
	}
	return failing[*models.CommentRow](m.failWith, cursor.NewSliceFetcher(models.CommentRowKey, rows...))
}

func (m *MemoryStore) StudioVideos(f StudioFilter) paging.Fetcher[*models.Video] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []*models.Video
	for _, v := range m.videos {
		if v.UserID == f.OwnerID {
			rows = append(rows, toVideo(v))
		}
	}
	return failing[*models.Video](m.failWith, cursor.NewSliceFetcher(models.VideoKey, rows...))
}

func (m *MemoryStore) Search(f SearchFilter) paging.Fetcher[*models.VideoRow] {
	query := strings.ToLower(f.Query)
	return m.videoRows(func(v *models.VideoRow) bool {
		if !strings.Contains(strings.ToLower(v.Title), query) {
			return false
		}
		return f.CategoryID == "" || (v.CategoryID.Valid && v.CategoryID.String == f.CategoryID)
	})
}

func (m *MemoryStore) Suggestions(seed *models.Video) paging.Fetcher[*models.VideoRow] {
	return m.videoRows(func(v *models.VideoRow) bool {
		if v.ID == seed.ID {
			return false
		}
		return !seed.CategoryID.Valid || (v.CategoryID.Valid && v.CategoryID.String == seed.CategoryID.String)
	})
}

func (m *MemoryStore) videoRows(match func(*models.VideoRow) bool) paging.Fetcher[*models.VideoRow] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := slices.DeleteFunc(slices.Clone(m.videos), func(v *models.VideoRow) bool { return !match(v) })
	return failing[*models.VideoRow](m.failWith, cursor.NewSliceFetcher(models.VideoRowKey, rows...))
}

func (m *MemoryStore) FindVideo(ctx context.Context, id string) (*models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failWith != nil {
		return nil, paging.NewStoreError("find video", m.failWith)
	}
	if err := ctx.Err(); err != nil {
		return nil, paging.NewStoreError("find video", err)
	}
	for _, v := range m.videos {
		if v.ID == id {
			return toVideo(v), nil
		}
	}
	return nil, fmt.Errorf("video %s: %w", id, paging.ErrNotFound)
}

func toVideo(v *models.VideoRow) *models.Video {
	return &models.Video{
		ID:           v.ID,
		UserID:       v.UserID,
		CategoryID:   v.CategoryID,
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Visibility:   v.Visibility,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

type failingFetcher[T any] struct {
	paging.Fetcher[T]
	err error
}

func failing[T any](err error, f paging.Fetcher[T]) paging.Fetcher[T] {
	if err == nil {
		return f
	}
	return &failingFetcher[T]{Fetcher: f, err: err}
}

func (f *failingFetcher[T]) Fetch(context.Context, paging.FetchParams) ([]T, error) {
	return nil, paging.NewStoreError("fetch", f.err)
}

func (f *failingFetcher[T]) Count(context.Context, paging.FetchParams) (int64, error) {
	return 0, paging.NewStoreError("count", f.err)
}
