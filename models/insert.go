package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"
)

// insertRow writes one row with every listed column bound.
func insertRow(ctx context.Context, exec boil.ContextExecutor, table string, cols []string, vals []interface{}, suffix string) error {
	query := fmt.Sprintf("INSERT INTO \"%s\" (\"%s\") VALUES (%s)%s",
		table,
		strings.Join(cols, "\",\""),
		strmangle.Placeholders(dialect.UseIndexPlaceholders, len(cols), 1, 1),
		suffix,
	)

	if boil.IsDebug(ctx) {
		writer := boil.DebugWriterFrom(ctx)
		fmt.Fprintln(writer, query)
		fmt.Fprintln(writer, vals)
	}

	if _, err := exec.ExecContext(ctx, query, vals...); err != nil {
		return errors.Wrapf(err, "models: unable to insert into %s", table)
	}
	return nil
}

// deleteRow deletes the rows matching every listed column and returns the
// number removed.
func deleteRow(ctx context.Context, exec boil.ContextExecutor, table string, cols []string, vals []interface{}) (int64, error) {
	where := make([]string, len(cols))
	for i, col := range cols {
		where[i] = fmt.Sprintf("\"%s\"=$%d", col, i+1)
	}
	query := fmt.Sprintf("DELETE FROM \"%s\" WHERE %s", table, strings.Join(where, " AND "))

	if boil.IsDebug(ctx) {
		writer := boil.DebugWriterFrom(ctx)
		fmt.Fprintln(writer, query)
		fmt.Fprintln(writer, vals)
	}

	result, err := exec.ExecContext(ctx, query, vals...)
	if err != nil {
		return 0, errors.Wrapf(err, "models: unable to delete from %s", table)
	}

	rowsAff, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(err, "models: failed to get rows affected by delete for %s", table)
	}
	return rowsAff, nil
}
