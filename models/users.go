package models

import (
	"context"
	"time"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
)

// User is an object representing the database table.
type User struct {
	ID        string    `boil:"id" json:"id"`
	Name      string    `boil:"name" json:"name"`
	ImageURL  string    `boil:"image_url" json:"imageUrl"`
	CreatedAt time.Time `boil:"created_at" json:"createdAt"`
	UpdatedAt time.Time `boil:"updated_at" json:"updatedAt"`
}

var userAllColumns = []string{"id", "name", "image_url", "created_at", "updated_at"}

// Insert a single record using an executor. Zero ID and timestamps are filled in.
func (o *User) Insert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("models: no users provided for insertion")
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

	return insertRow(ctx, exec, "users", userAllColumns,
		[]interface{}{o.ID, o.Name, o.ImageURL, o.CreatedAt, o.UpdatedAt}, "")
}

// now is truncated to the store's microsecond precision so a row read back
// compares equal to the one inserted.
func now() time.Time {
	return time.Now().In(boil.GetLocation()).Truncate(time.Microsecond)
}
