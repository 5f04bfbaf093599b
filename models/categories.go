package models

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
)

// Category is an object representing the database table.
type Category struct {
	ID          string      `boil:"id" json:"id"`
	Name        string      `boil:"name" json:"name"`
	Description null.String `boil:"description" json:"description"`
	CreatedAt   time.Time   `boil:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `boil:"updated_at" json:"updatedAt"`
}

var categoryAllColumns = []string{"id", "name", "description", "created_at", "updated_at"}

// Insert a single record using an executor.
func (o *Category) Insert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("models: no categories provided for insertion")
	}

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	currTime := now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = currTime
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = currTime
	}

	return insertRow(ctx, exec, "categories", categoryAllColumns,
		[]interface{}{o.ID, o.Name, o.Description, o.CreatedAt, o.UpdatedAt}, "")
}
