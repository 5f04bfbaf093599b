package paging

import "context"

// Paginator is the core interface for keyset pagination.
//
// Type parameter T is the item type being paginated (e.g., *models.CommentRow).
type Paginator[T any] interface {
	// Paginate executes one page fetch and returns the assembled page.
	// The PageArgs contain the page size (First) and cursor position (After).
	Paginate(ctx context.Context, args *PageArgs) (*Page[T], error)
}

// Page represents a single page of paginated results.
//
// Type parameter T is the item type being paginated.
type Page[T any] struct {
	// Items contains the rows for this page, newest first.
	Items []T `json:"items"`

	// NextCursor is the opaque cursor to request the following page.
	// It is nil on a terminal page.
	NextCursor *string `json:"nextCursor"`

	// HasNextPage reports whether at least one more row matched the filter
	// beyond this page at the time of the fetch.
	HasNextPage bool `json:"hasNextPage"`

	// TotalCount is only populated for entities that report it. It comes from
	// a separate count query and is a snapshot estimate, not a value that is
	// transactionally consistent with Items.
	TotalCount *int64 `json:"totalCount,omitempty"`

	// Metadata provides observability information about the fetch.
	Metadata Metadata `json:"-"`
}

// Metadata provides observability and debugging information about pagination execution.
type Metadata struct {
	// QueryTimeMs is the wall time spent waiting on the data store.
	QueryTimeMs int64

	// ItemsExamined is the number of rows fetched, including the lookahead row.
	ItemsExamined int

	// Limit is the effective page size after clamping.
	Limit int
}

// Fetcher abstracts the data store read for one entity.
// Filters are bound into the implementation; the paginator only supplies
// the keyset boundary, ordering and limit.
//
// Type parameter T is the read-model row type.
type Fetcher[T any] interface {
	// Fetch retrieves at most params.Limit rows ordered by
	// (sort DESC, id DESC) and strictly after params.Cursor.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the number of rows matching the filter, ignoring the cursor.
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// CursorCodec converts cursor positions to and from their opaque wire form.
type CursorCodec interface {
	Encode(pos CursorPosition) string
	Decode(cursor string) (*CursorPosition, error)
}
