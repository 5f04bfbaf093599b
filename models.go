package paging

import "time"

// CursorPosition is the decoded form of a pagination cursor: the sort value
// and tie-break identifier of the last row the client has seen.
//
// Example for sorting by (created_at DESC, id DESC):
//
//	CursorPosition{
//	    SortValue:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	    TieBreakID: "0b9c3f1e-5a7d-4c1e-9f0a-2d8e6b4a1c3f",
//	}
//
// This translates to: WHERE created_at < $1 OR (created_at = $1 AND id < $2)
type CursorPosition struct {
	SortValue  time.Time
	TieBreakID string
}

// Keyset names the columns an entity is ordered by. Rows are always sorted
// by SortColumn DESC, IDColumn DESC.
type Keyset struct {
	// Table qualifies the columns, e.g. "comments".
	Table string

	// SortColumn is the timestamp column, e.g. "created_at".
	SortColumn string

	// IDColumn is the unique tie-break column, usually "id".
	IDColumn string
}

// FetchParams contains everything a Fetcher needs to read one page.
type FetchParams struct {
	// Limit is the maximum number of rows to fetch. Paginators pass the
	// effective page size plus one lookahead row.
	Limit int

	// Cursor is the exclusive boundary. Nil means start from the newest row.
	Cursor *CursorPosition

	// Keyset identifies the ordering columns.
	Keyset Keyset
}
