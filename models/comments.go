package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
)

// Comment is an object representing the database table.
type Comment struct {
	ID        string      `boil:"id" json:"id"`
	ParentID  null.String `boil:"parent_id" json:"parentId"`
	UserID    string      `boil:"user_id" json:"userId"`
	VideoID   string      `boil:"video_id" json:"videoId"`
	Value     string      `boil:"value" json:"value"`
	CreatedAt time.Time   `boil:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `boil:"updated_at" json:"updatedAt"`
}

var commentAllColumns = []string{"id", "parent_id", "user_id", "video_id", "value", "created_at", "updated_at"}

type commentQuery struct {
	*queries.Query
}

// Comments retrieves all the records using an executor.
func Comments(mods ...qm.QueryMod) commentQuery {
	mods = append(mods, qm.From("\"comments\""))
	q := NewQuery(mods...)
	if len(queries.GetSelect(q)) == 0 {
		queries.SetSelect(q, []string{"\"comments\".*"})
	}

	return commentQuery{q}
}

// One returns a single comment record from the query.
func (q commentQuery) One(ctx context.Context, exec boil.ContextExecutor) (*Comment, error) {
	o := &Comment{}

	queries.SetLimit(q.Query, 1)

	err := q.Bind(ctx, exec, o)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, errors.Wrap(err, "models: failed to execute a one query for comments")
	}

	return o, nil
}

// All returns all Comment records from the query.
func (q commentQuery) All(ctx context.Context, exec boil.ContextExecutor) ([]*Comment, error) {
	var o []*Comment

	err := q.Bind(ctx, exec, &o)
	if err != nil {
		return nil, errors.Wrap(err, "models: failed to assign all query results to Comment slice")
	}

	return o, nil
}

// Count returns the count of all Comment records in the query.
func (q commentQuery) Count(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	var count int64

	queries.SetSelect(q.Query, nil)
	queries.SetCount(q.Query)

	err := q.Query.QueryRowContext(ctx, exec).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "models: failed to count comments rows")
	}

	return count, nil
}

// FindComment retrieves a single record by ID with an executor.
func FindComment(ctx context.Context, exec boil.ContextExecutor, iD string) (*Comment, error) {
	return Comments(qm.Where("\"comments\".\"id\" = ?", iD)).One(ctx, exec)
}

// Insert a single record using an executor.
func (o *Comment) Insert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("models: no comments provided for insertion")
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

	return insertRow(ctx, exec, "comments", commentAllColumns, []interface{}{
		o.ID, o.ParentID, o.UserID, o.VideoID, o.Value, o.CreatedAt, o.UpdatedAt,
	}, "")
}

// Delete deletes a single Comment record with an executor.
// Replies are removed by the foreign key cascade.
func (o *Comment) Delete(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	if o == nil {
		return 0, errors.New("models: no Comment provided for delete")
	}

	query := "DELETE FROM \"comments\" WHERE \"id\"=$1"

	if boil.IsDebug(ctx) {
		writer := boil.DebugWriterFrom(ctx)
		fmt.Fprintln(writer, query)
		fmt.Fprintln(writer, o.ID)
	}

	result, err := exec.ExecContext(ctx, query, o.ID)
	if err != nil {
		return 0, errors.Wrap(err, "models: unable to delete from comments")
	}

	rowsAff, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "models: failed to get rows affected by delete for comments")
	}

	return rowsAff, nil
}
