// Package sqlboiler adapts sqlboiler queries to the keyset paging protocol.
//
// The package separates the ORM integration (Fetcher) from the keyset
// boundary (KeysetToQueryMods). Entity filters live in the query and count
// closures; the fetcher only appends the boundary, ordering and limit.
//
// Example usage:
//
//	fetcher := sqlboiler.NewFetcher(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.CommentRow, error) {
//	        return models.CommentRows(ctx, db, viewerID, append(filters, mods...)...)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Comments(append(filters, mods...)...).Count(ctx, db)
//	    },
//	    sqlboiler.KeysetToQueryMods,
//	)
package sqlboiler

import (
	"context"
	"fmt"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/videohub"
)

// QueryFunc executes a sqlboiler query and returns rows.
//
// Type parameter T is the model or projection type (e.g., *models.CommentRow).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a sqlboiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Fetcher implements paging.Fetcher[T] for sqlboiler queries.
type Fetcher[T any] struct {
	queryFunc   QueryFunc[T]
	countFunc   CountFunc
	queryModsFn func(paging.FetchParams) []qm.QueryMod
	op          string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	op string
}

// WithOp names the operation used in wrapped store errors, e.g. "comments".
func WithOp(op string) FetcherOption {
	return func(c *fetcherConfig) {
		c.op = op
	}
}

// NewFetcher creates a new sqlboiler fetcher.
//
// Parameters:
//   - queryFunc: executes the filtered query with the given mods
//   - countFunc: counts rows matching the filter; it receives no keyset mods
//   - queryModsFn: converts FetchParams to mods, normally KeysetToQueryMods
func NewFetcher[T any](
	queryFunc QueryFunc[T],
	countFunc CountFunc,
	queryModsFn func(paging.FetchParams) []qm.QueryMod,
	opts ...FetcherOption,
) paging.Fetcher[T] {
	cfg := &fetcherConfig{op: "list"}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Fetcher[T]{
		queryFunc:   queryFunc,
		countFunc:   countFunc,
		queryModsFn: queryModsFn,
		op:          cfg.op,
	}
}

// Fetch retrieves one batch using the keyset mods built from params.
func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	rows, err := f.queryFunc(ctx, f.queryModsFn(params)...)
	if err != nil {
		return nil, storeError(ctx, "fetch "+f.op, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Count returns the number of rows matching the filter. The cursor in params
// is ignored. A Fetcher built with a nil countFunc is a programmer error: the
// returned error is not a StoreError, so callers surface it as a 500.
func (f *Fetcher[T]) Count(ctx context.Context, _ paging.FetchParams) (int64, error) {
	if f.countFunc == nil {
		return 0, errors.New("sqlboiler: fetcher has no count function")
	}

	n, err := f.countFunc(ctx)
	if err != nil {
		return 0, storeError(ctx, "count "+f.op, err)
	}
	return n, nil
}

// storeError wraps a driver error. When the caller's context is done the
// context error is kept in the chain, since drivers report cancellation with
// their own error values.
func storeError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %v", ctxErr, err)
	}
	return paging.NewStoreError(op, err)
}
