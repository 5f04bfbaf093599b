// Package cursor implements keyset pagination over a (timestamp, uuid) key.
//
// Rows are always ordered newest first by the entity's sort timestamp, with
// the row id as a tie-breaker, so every (SortValue, TieBreakID) pair is
// unique and the order is total even when many rows share a timestamp.
//
// Cursor Format:
//
//	Cursors are unpadded base64url-encoded JSON objects with short keys:
//	{"t":"2024-01-01T00:00:00.000000000Z","i":"0b9c3f1e-5a7d-4c1e-9f0a-2d8e6b4a1c3f"}
//
//	The timestamp is always rendered in UTC with nine fractional digits, so
//	two encoded timestamps compare the same way as the instants they name.
//
// Consistency:
//
//	Pagination is stateless: the scroll position lives in the cursor held by
//	the client. Each page reflects the data store at the time of its own
//	fetch. Rows inserted ahead of a cursor are never returned by later pages
//	and rows deleted behind it simply disappear; there is no snapshot across
//	a full scroll.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	paging "github.com/nrfta/videohub"
)

// SortValueLayout is the fixed-precision layout used for the cursor timestamp.
const SortValueLayout = "2006-01-02T15:04:05.000000000Z07:00"

var encoding = base64.RawURLEncoding

type wireCursor struct {
	SortValue  string `json:"t"`
	TieBreakID string `json:"i"`
}

// Codec implements paging.CursorCodec with the package level Encode and Decode.
type Codec struct{}

// NewCodec returns the default cursor codec.
func NewCodec() paging.CursorCodec {
	return Codec{}
}

func (Codec) Encode(pos paging.CursorPosition) string { return Encode(pos) }

func (Codec) Decode(cursor string) (*paging.CursorPosition, error) { return Decode(cursor) }

// Encode converts a cursor position into its opaque wire form. It never fails.
func Encode(pos paging.CursorPosition) string {
	data, _ := json.Marshal(wireCursor{
		SortValue:  pos.SortValue.UTC().Format(SortValueLayout),
		TieBreakID: strings.ToLower(pos.TieBreakID),
	})
	return encoding.EncodeToString(data)
}

// Decode parses an opaque cursor. Any cursor that does not carry both a valid
// timestamp and a UUID shaped identifier is rejected with an error matching
// paging.ErrMalformedCursor.
func Decode(cursor string) (*paging.CursorPosition, error) {
	if cursor == "" {
		return nil, &paging.CursorError{Reason: "empty"}
	}

	data, err := encoding.DecodeString(cursor)
	if err != nil {
		return nil, &paging.CursorError{Reason: "not base64"}
	}

	var wire wireCursor
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &paging.CursorError{Reason: "not JSON"}
	}

	sortValue, err := time.Parse(time.RFC3339Nano, wire.SortValue)
	if err != nil {
		return nil, &paging.CursorError{Reason: "invalid timestamp"}
	}

	// uuid.Parse also accepts braces, urn and hyphenless forms; cursors only
	// ever carry the canonical 36 character form.
	if len(wire.TieBreakID) != 36 {
		return nil, &paging.CursorError{Reason: "invalid identifier"}
	}
	id, err := uuid.Parse(wire.TieBreakID)
	if err != nil {
		return nil, &paging.CursorError{Reason: "invalid identifier"}
	}

	return &paging.CursorPosition{
		SortValue:  sortValue.UTC(),
		TieBreakID: id.String(),
	}, nil
}

// Compare orders two positions the way rows are listed: it returns a
// negative number when a sorts before b in (SortValue, TieBreakID) order,
// zero when they are equal and a positive number otherwise.
func Compare(a, b paging.CursorPosition) int {
	if c := a.SortValue.Compare(b.SortValue); c != 0 {
		return c
	}
	return strings.Compare(strings.ToLower(a.TieBreakID), strings.ToLower(b.TieBreakID))
}

// Before reports whether row lies strictly past boundary in a newest-first
// listing, i.e. whether it belongs on a page requested with boundary as cursor.
func Before(row, boundary paging.CursorPosition) bool {
	return Compare(row, boundary) < 0
}
