// Package models holds the table models and read-model projections of the
// video service, written in the shape sqlboiler generates: a query type per
// table built from query mods, Insert/Delete methods on the row structs and
// Find helpers by primary key.
package models

import (
	"context"
	_ "embed"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
)

var dialect = drivers.Dialect{
	LQ: 0x22,
	RQ: 0x22,

	UseIndexPlaceholders:    true,
	UseLastInsertID:         false,
	UseSchema:               false,
	UseDefaultKeyword:       true,
	UseAutoColumns:          false,
	UseTopClause:            false,
	UseOutputClause:         false,
	UseCaseWhenExistsClause: false,
}

// NewQuery initializes a new Query using the passed in QueryMods.
func NewQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)

	return q
}

//go:embed schema.sql
var schema string

// Schema returns the DDL for every table and keyset index.
func Schema() string {
	return schema
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, exec boil.ContextExecutor) error {
	if _, err := exec.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "models: unable to apply schema")
	}
	return nil
}
