package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
)

// Video visibility values.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// Video is an object representing the database table.
type Video struct {
	ID            string      `boil:"id" json:"id"`
	UserID        string      `boil:"user_id" json:"userId"`
	CategoryID    null.String `boil:"category_id" json:"categoryId"`
	Title         string      `boil:"title" json:"title"`
	Description   null.String `boil:"description" json:"description"`
	ThumbnailURL  null.String `boil:"thumbnail_url" json:"thumbnailUrl"`
	MuxStatus     null.String `boil:"mux_status" json:"muxStatus"`
	MuxPlaybackID null.String `boil:"mux_playback_id" json:"muxPlaybackId"`
	Duration      int         `boil:"duration" json:"duration"`
	Visibility    string      `boil:"visibility" json:"visibility"`
	CreatedAt     time.Time   `boil:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `boil:"updated_at" json:"updatedAt"`
}

var videoAllColumns = []string{
	"id", "user_id", "category_id", "title", "description", "thumbnail_url",
	"mux_status", "mux_playback_id", "duration", "visibility", "created_at", "updated_at",
}

type videoQuery struct {
	*queries.Query
}

// Videos retrieves all the records using an executor.
func Videos(mods ...qm.QueryMod) videoQuery {
	mods = append(mods, qm.From("\"videos\""))
	q := NewQuery(mods...)
	if len(queries.GetSelect(q)) == 0 {
		queries.SetSelect(q, []string{"\"videos\".*"})
	}

	return videoQuery{q}
}

// One returns a single video record from the query.
func (q videoQuery) One(ctx context.Context, exec boil.ContextExecutor) (*Video, error) {
	o := &Video{}

	queries.SetLimit(q.Query, 1)

	err := q.Bind(ctx, exec, o)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, errors.Wrap(err, "models: failed to execute a one query for videos")
	}

	return o, nil
}

// All returns all Video records from the query.
func (q videoQuery) All(ctx context.Context, exec boil.ContextExecutor) ([]*Video, error) {
	var o []*Video

	err := q.Bind(ctx, exec, &o)
	if err != nil {
		return nil, errors.Wrap(err, "models: failed to assign all query results to Video slice")
	}

	return o, nil
}

// Count returns the count of all Video records in the query.
func (q videoQuery) Count(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	var count int64

	queries.SetSelect(q.Query, nil)
	queries.SetCount(q.Query)

	err := q.Query.QueryRowContext(ctx, exec).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "models: failed to count videos rows")
	}

	return count, nil
}

// FindVideo retrieves a single record by ID with an executor.
func FindVideo(ctx context.Context, exec boil.ContextExecutor, iD string) (*Video, error) {
	return Videos(qm.Where("\"videos\".\"id\" = ?", iD)).One(ctx, exec)
}

// Insert a single record using an executor.
func (o *Video) Insert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("models: no videos provided for insertion")
	}

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Visibility == "" {
		o.Visibility = VisibilityPrivate
	}
	currTime := now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = currTime
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = currTime
	}

	return insertRow(ctx, exec, "videos", videoAllColumns, []interface{}{
		o.ID, o.UserID, o.CategoryID, o.Title, o.Description, o.ThumbnailURL,
		o.MuxStatus, o.MuxPlaybackID, o.Duration, o.Visibility, o.CreatedAt, o.UpdatedAt,
	}, "")
}
