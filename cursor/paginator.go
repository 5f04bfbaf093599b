package cursor

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	paging "github.com/nrfta/videohub"
)

// KeyFunc extracts the keyset position of a row. It must read the row's own
// sort and id columns, never a joined or aggregated value.
type KeyFunc[T any] func(T) paging.CursorPosition

// Paginator is the keyset paginator for one entity listing.
// It decodes the incoming cursor, asks the fetcher for one page plus a
// lookahead row, and assembles the result.
type Paginator[T any] struct {
	fetcher   paging.Fetcher[T]
	keyset    paging.Keyset
	key       KeyFunc[T]
	codec     paging.CursorCodec
	config    *paging.PageConfig
	withTotal bool
}

// Option configures a Paginator.
type Option func(*options)

type options struct {
	codec     paging.CursorCodec
	config    *paging.PageConfig
	withTotal bool
}

// WithPageConfig overrides the default page size policy.
func WithPageConfig(config *paging.PageConfig) Option {
	return func(o *options) {
		if config != nil {
			o.config = config
		}
	}
}

// WithCodec overrides the cursor codec.
func WithCodec(codec paging.CursorCodec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

// WithTotalCount makes every page carry a TotalCount from a separate count
// query over the same filter.
func WithTotalCount() Option {
	return func(o *options) {
		o.withTotal = true
	}
}

// New creates a keyset paginator.
//
// Example usage:
//
//	fetcher := sqlboiler.NewFetcher(queryFunc, countFunc, sqlboiler.KeysetToQueryMods)
//	paginator := cursor.New(fetcher, models.CommentKeyset, models.CommentRowKey,
//	    cursor.WithTotalCount(),
//	)
//	page, err := paginator.Paginate(ctx, pageArgs)
func New[T any](
	fetcher paging.Fetcher[T],
	keyset paging.Keyset,
	key KeyFunc[T],
	opts ...Option,
) *Paginator[T] {
	o := &options{
		codec:  NewCodec(),
		config: paging.NewPageConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Paginator[T]{
		fetcher:   fetcher,
		keyset:    keyset,
		key:       key,
		codec:     o.codec,
		config:    o.config,
		withTotal: o.withTotal,
	}
}

// Paginate fetches one page.
//
// The fetch asks for limit+1 rows; the extra row only decides HasNextPage
// and is never returned. A failed read is returned as an error and never
// turned into an empty page.
func (p *Paginator[T]) Paginate(ctx context.Context, args *paging.PageArgs) (*paging.Page[T], error) {
	params, err := p.BuildFetchParams(args)
	if err != nil {
		return nil, err
	}
	limit := params.Limit - 1

	start := time.Now()
	var (
		items []T
		total *int64
	)

	if p.withTotal {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			items, err = p.fetcher.Fetch(gctx, params)
			return err
		})
		g.Go(func() error {
			n, err := p.fetcher.Count(gctx, paging.FetchParams{Keyset: p.keyset})
			if err != nil {
				return err
			}
			total = &n
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		items, err = p.fetcher.Fetch(ctx, params)
		if err != nil {
			return nil, err
		}
	}

	examined := len(items)
	trimmed, next, hasNext := Assemble(items, limit, p.key)

	page := &paging.Page[T]{
		Items:       trimmed,
		HasNextPage: hasNext,
		TotalCount:  total,
		Metadata: paging.Metadata{
			QueryTimeMs:   time.Since(start).Milliseconds(),
			ItemsExamined: examined,
			Limit:         limit,
		},
	}
	if next != nil {
		encoded := p.codec.Encode(*next)
		page.NextCursor = &encoded
	}

	return page, nil
}

// BuildFetchParams resolves the effective limit and cursor for args and
// returns FetchParams with the N+1 lookahead applied.
func (p *Paginator[T]) BuildFetchParams(args *paging.PageArgs) (paging.FetchParams, error) {
	limit := p.config.EffectiveLimit(args)

	var pos *paging.CursorPosition
	if after := args.GetAfter(); after != nil && *after != "" {
		var err error
		pos, err = p.codec.Decode(*after)
		if err != nil {
			return paging.FetchParams{}, err
		}
	}

	return paging.FetchParams{
		Limit:  limit + 1,
		Cursor: pos,
		Keyset: p.keyset,
	}, nil
}

// Assemble turns an ordered batch into one page.
//
// items must already be ordered and bounded by the fetcher. If the batch is
// longer than limit, the surplus is trimmed, hasNext is true and next is the
// position of the last kept row. Otherwise the page is terminal and next is
// nil. The returned slice is never nil.
func Assemble[T any](items []T, limit int, key KeyFunc[T]) (page []T, next *paging.CursorPosition, hasNext bool) {
	if limit < 1 {
		limit = 1
	}

	hasNext = len(items) > limit
	if hasNext {
		items = items[:limit]
	}

	if items == nil {
		items = make([]T, 0)
	}

	if hasNext {
		pos := key(items[len(items)-1])
		next = &pos
	}

	return items, next, hasNext
}
