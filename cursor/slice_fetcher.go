package cursor

import (
	"context"
	"slices"
	"sync"

	paging "github.com/nrfta/videohub"
)

// SliceFetcher is an in-memory paging.Fetcher with the same keyset semantics
// as the SQL query builder. It backs tests and local fixtures.
type SliceFetcher[T any] struct {
	mu   sync.RWMutex
	rows []T
	key  KeyFunc[T]
}

// NewSliceFetcher returns a fetcher over rows. The rows need not be sorted.
func NewSliceFetcher[T any](key KeyFunc[T], rows ...T) *SliceFetcher[T] {
	return &SliceFetcher[T]{
		rows: slices.Clone(rows),
		key:  key,
	}
}

// Insert adds rows, simulating a concurrent writer.
func (f *SliceFetcher[T]) Insert(rows ...T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, rows...)
}

// Delete removes every row matching fn.
func (f *SliceFetcher[T]) Delete(fn func(T) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = slices.DeleteFunc(f.rows, fn)
}

// Fetch returns up to params.Limit rows strictly after params.Cursor,
// ordered by (sort DESC, id DESC).
func (f *SliceFetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, paging.NewStoreError("fetch", err)
	}

	f.mu.RLock()
	sorted := slices.Clone(f.rows)
	f.mu.RUnlock()

	slices.SortFunc(sorted, func(a, b T) int {
		return Compare(f.key(b), f.key(a))
	})

	out := make([]T, 0, params.Limit)
	for _, row := range sorted {
		if params.Limit > 0 && len(out) == params.Limit {
			break
		}
		if params.Cursor != nil && !Before(f.key(row), *params.Cursor) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// Count returns the number of rows, ignoring any cursor.
func (f *SliceFetcher[T]) Count(ctx context.Context, _ paging.FetchParams) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, paging.NewStoreError("count", err)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.rows)), nil
}
