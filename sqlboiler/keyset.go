package sqlboiler

import (
	"fmt"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"

	paging "github.com/nrfta/videohub"
)

// KeysetClause renders the exclusive keyset boundary for k:
//
//	("t"."sort" < ? OR ("t"."sort" = ? AND "t"."id" < ?))
//
// The sort value is bound twice, followed by the tie-break id.
func KeysetClause(k paging.Keyset) string {
	sort, id := keysetColumns(k)
	return fmt.Sprintf("(%s < ? OR (%s = ? AND %s < ?))", sort, sort, id)
}

// KeysetOrderBy renders the fixed "sort DESC, id DESC" ordering for k.
func KeysetOrderBy(k paging.Keyset) string {
	sort, id := keysetColumns(k)
	return fmt.Sprintf("%s DESC, %s DESC", sort, id)
}

// KeysetToQueryMods converts FetchParams into sqlboiler query mods.
//
// The conversion follows these rules:
//   - Cursor → qm.Where(KeysetClause, sort, sort, id), only when a cursor is present
//   - Limit → qm.Limit(n)
//   - Ordering → qm.OrderBy("sort DESC, id DESC"), always
//
// Filters are not part of params; callers add them to the query themselves.
// Requires a composite index on (sort DESC, id DESC) per entity to be cheap.
func KeysetToQueryMods(params paging.FetchParams) []qm.QueryMod {
	mods := []qm.QueryMod{}

	if params.Cursor != nil {
		mods = append(mods, qm.Where(
			KeysetClause(params.Keyset),
			params.Cursor.SortValue,
			params.Cursor.SortValue,
			params.Cursor.TieBreakID,
		))
	}

	mods = append(mods, qm.OrderBy(KeysetOrderBy(params.Keyset)))

	if params.Limit > 0 {
		mods = append(mods, qm.Limit(params.Limit))
	}

	return mods
}

func keysetColumns(k paging.Keyset) (sort, id string) {
	idColumn := k.IDColumn
	if idColumn == "" {
		idColumn = "id"
	}
	return quoteColumn(k.Table, k.SortColumn), quoteColumn(k.Table, idColumn)
}

func quoteColumn(table, column string) string {
	if table != "" {
		column = table + "." + column
	}
	return strmangle.IdentQuote('"', '"', column)
}
