package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
)

// Reaction types.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// VideoView is an object representing the database table.
type VideoView struct {
	UserID    string    `boil:"user_id" json:"userId"`
	VideoID   string    `boil:"video_id" json:"videoId"`
	CreatedAt time.Time `boil:"created_at" json:"createdAt"`
}

// Insert records a view. A repeated view by the same user is ignored.
func (o *VideoView) Insert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("models: no video_views provided for insertion")
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now()
	}

	return insertRow(ctx, exec, "video_views",
		[]string{"user_id", "video_id", "created_at"},
		[]interface{}{o.UserID, o.VideoID, o.CreatedAt},
		" ON CONFLICT DO NOTHING",
	)
}

// VideoReaction is an object representing the database table.
type VideoReaction struct {
	UserID    string    `boil:"user_id" json:"userId"`
	VideoID   string    `boil:"video_id" json:"videoId"`
	Type      string    `boil:"type" json:"type"`
	CreatedAt time.Time `boil:"created_at" json:"createdAt"`
}

// Upsert sets the user's reaction to the video, replacing any previous one.
func (o *VideoReaction) Upsert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("models: no video_reactions provided for upsert")
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now()
	}

	return insertRow(ctx, exec, "video_reactions",
		[]string{"user_id", "video_id", "type", "created_at"},
		[]interface{}{o.UserID, o.VideoID, o.Type, o.CreatedAt},
		" ON CONFLICT (\"user_id\",\"video_id\") DO UPDATE SET \"type\" = EXCLUDED.\"type\"",
	)
}

// CommentReaction is an object representing the database table.
type CommentReaction struct {
	UserID    string    `boil:"user_id" json:"userId"`
	CommentID string    `boil:"comment_id" json:"commentId"`
	Type      string    `boil:"type" json:"type"`
	CreatedAt time.Time `boil:"created_at" json:"createdAt"`
}

// Upsert sets the user's reaction to the comment, replacing any previous one.
func (o *CommentReaction) Upsert(ctx context.Context, exec boil.ContextExecutor) error {
	if o == nil {
		return errors.New("models: no comment_reactions provided for upsert")
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now()
	}

	return insertRow(ctx, exec, "comment_reactions",
		[]string{"user_id", "comment_id", "type", "created_at"},
		[]interface{}{o.UserID, o.CommentID, o.Type, o.CreatedAt},
		" ON CONFLICT (\"user_id\",\"comment_id\") DO UPDATE SET \"type\" = EXCLUDED.\"type\"",
	)
}

// Delete removes the user's reaction to the video, whatever its type.
func (o *VideoReaction) Delete(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	if o == nil {
		return 0, errors.New("models: no VideoReaction provided for delete")
	}
	return deleteRow(ctx, exec, "video_reactions",
		[]string{"user_id", "video_id"}, []interface{}{o.UserID, o.VideoID})
}

// FindVideoReaction retrieves the user's reaction to the video. It returns
// sql.ErrNoRows when the user has not reacted.
func FindVideoReaction(ctx context.Context, exec boil.ContextExecutor, userID, videoID string) (*VideoReaction, error) {
	o := &VideoReaction{}
	err := findOne(ctx, exec, o, "video_reactions",
		qm.Where("\"video_reactions\".\"user_id\" = ?", userID),
		qm.Where("\"video_reactions\".\"video_id\" = ?", videoID),
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes the user's reaction to the comment, whatever its type.
func (o *CommentReaction) Delete(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	if o == nil {
		return 0, errors.New("models: no CommentReaction provided for delete")
	}
	return deleteRow(ctx, exec, "comment_reactions",
		[]string{"user_id", "comment_id"}, []interface{}{o.UserID, o.CommentID})
}

// FindCommentReaction retrieves the user's reaction to the comment. It
// returns sql.ErrNoRows when the user has not reacted.
func FindCommentReaction(ctx context.Context, exec boil.ContextExecutor, userID, commentID string) (*CommentReaction, error) {
	o := &CommentReaction{}
	err := findOne(ctx, exec, o, "comment_reactions",
		qm.Where("\"comment_reactions\".\"user_id\" = ?", userID),
		qm.Where("\"comment_reactions\".\"comment_id\" = ?", commentID),
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func findOne(ctx context.Context, exec boil.ContextExecutor, o interface{}, table string, mods ...qm.QueryMod) error {
	mods = append(mods, qm.From("\""+table+"\""))
	q := NewQuery(mods...)
	queries.SetSelect(q, []string{"\"" + table + "\".*"})
	queries.SetLimit(q, 1)

	if err := q.Bind(ctx, exec, o); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return errors.Wrapf(err, "models: failed to execute a one query for %s", table)
	}
	return nil
}
