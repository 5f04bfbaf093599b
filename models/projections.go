package models

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/videohub"
)

// Keysets of the listed entities. Comments scroll by creation time, videos
// by their last update.
var (
	CommentKeyset = paging.Keyset{Table: "comments", SortColumn: "created_at", IDColumn: "id"}
	VideoKeyset   = paging.Keyset{Table: "videos", SortColumn: "updated_at", IDColumn: "id"}
)

// CommentRow is a comment decorated with its author, reaction and reply
// counts and the requesting viewer's own reaction.
type CommentRow struct {
	ID             string      `boil:"id" json:"id"`
	ParentID       null.String `boil:"parent_id" json:"parentId"`
	UserID         string      `boil:"user_id" json:"userId"`
	VideoID        string      `boil:"video_id" json:"videoId"`
	Value          string      `boil:"value" json:"value"`
	CreatedAt      time.Time   `boil:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `boil:"updated_at" json:"updatedAt"`
	AuthorName     string      `boil:"author_name" json:"authorName"`
	AuthorImageURL string      `boil:"author_image_url" json:"authorImageUrl"`
	LikeCount      int64       `boil:"like_count" json:"likeCount"`
	DislikeCount   int64       `boil:"dislike_count" json:"dislikeCount"`
	ReplyCount     int64       `boil:"reply_count" json:"replyCount"`
	ViewerReaction null.String `boil:"viewer_reaction" json:"viewerReaction"`
}

// CommentRowKey returns the keyset position of a comment row.
func CommentRowKey(r *CommentRow) paging.CursorPosition {
	return paging.CursorPosition{SortValue: r.CreatedAt, TieBreakID: r.ID}
}

var commentRowSelect = []string{
	`"comments"."id"`,
	`"comments"."parent_id"`,
	`"comments"."user_id"`,
	`"comments"."video_id"`,
	`"comments"."value"`,
	`"comments"."created_at"`,
	`"comments"."updated_at"`,
	`"users"."name" AS "author_name"`,
	`"users"."image_url" AS "author_image_url"`,
	`(SELECT count(*) FROM "comment_reactions" AS "r" WHERE "r"."comment_id" = "comments"."id" AND "r"."type" = 'like') AS "like_count"`,
	`(SELECT count(*) FROM "comment_reactions" AS "r" WHERE "r"."comment_id" = "comments"."id" AND "r"."type" = 'dislike') AS "dislike_count"`,
	`(SELECT count(*) FROM "comments" AS "replies" WHERE "replies"."parent_id" = "comments"."id") AS "reply_count"`,
}

// CommentRows returns all comment rows matching mods. viewerID selects whose
// reaction is reported; an empty viewer reports none.
func CommentRows(ctx context.Context, exec boil.ContextExecutor, viewerID string, mods ...qm.QueryMod) ([]*CommentRow, error) {
	sel := append([]string{}, commentRowSelect...)
	mods = append(mods,
		qm.From("\"comments\""),
		qm.InnerJoin(`"users" ON "users"."id" = "comments"."user_id"`),
	)
	if viewerID != "" {
		sel = append(sel, `"viewer_reactions"."type" AS "viewer_reaction"`)
		mods = append(mods, qm.LeftOuterJoin(
			`"comment_reactions" AS "viewer_reactions" ON "viewer_reactions"."comment_id" = "comments"."id" AND "viewer_reactions"."user_id" = ?`,
			viewerID,
		))
	} else {
		sel = append(sel, `NULL::text AS "viewer_reaction"`)
	}

	q := NewQuery(mods...)
	queries.SetSelect(q, sel)

	var o []*CommentRow
	if err := q.Bind(ctx, exec, &o); err != nil {
		return nil, errors.Wrap(err, "models: failed to assign all query results to CommentRow slice")
	}
	return o, nil
}

// VideoRow is a video decorated with its author and view and reaction counts.
type VideoRow struct {
	ID             string      `boil:"id" json:"id"`
	UserID         string      `boil:"user_id" json:"userId"`
	CategoryID     null.String `boil:"category_id" json:"categoryId"`
	Title          string      `boil:"title" json:"title"`
	Description    null.String `boil:"description" json:"description"`
	ThumbnailURL   null.String `boil:"thumbnail_url" json:"thumbnailUrl"`
	Duration       int         `boil:"duration" json:"duration"`
	Visibility     string      `boil:"visibility" json:"visibility"`
	CreatedAt      time.Time   `boil:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `boil:"updated_at" json:"updatedAt"`
	AuthorName     string      `boil:"author_name" json:"authorName"`
	AuthorImageURL string      `boil:"author_image_url" json:"authorImageUrl"`
	ViewCount      int64       `boil:"view_count" json:"viewCount"`
	LikeCount      int64       `boil:"like_count" json:"likeCount"`
	DislikeCount   int64       `boil:"dislike_count" json:"dislikeCount"`
}

// VideoRowKey returns the keyset position of a video row.
func VideoRowKey(r *VideoRow) paging.CursorPosition {
	return paging.CursorPosition{SortValue: r.UpdatedAt, TieBreakID: r.ID}
}

// VideoKey returns the keyset position of a video.
func VideoKey(v *Video) paging.CursorPosition {
	return paging.CursorPosition{SortValue: v.UpdatedAt, TieBreakID: v.ID}
}

var videoRowSelect = []string{
	`"videos"."id"`,
	`"videos"."user_id"`,
	`"videos"."category_id"`,
	`"videos"."title"`,
	`"videos"."description"`,
	`"videos"."thumbnail_url"`,
	`"videos"."duration"`,
	`"videos"."visibility"`,
	`"videos"."created_at"`,
	`"videos"."updated_at"`,
	`"users"."name" AS "author_name"`,
	`"users"."image_url" AS "author_image_url"`,
	`(SELECT count(*) FROM "video_views" AS "v" WHERE "v"."video_id" = "videos"."id") AS "view_count"`,
	`(SELECT count(*) FROM "video_reactions" AS "r" WHERE "r"."video_id" = "videos"."id" AND "r"."type" = 'like') AS "like_count"`,
	`(SELECT count(*) FROM "video_reactions" AS "r" WHERE "r"."video_id" = "videos"."id" AND "r"."type" = 'dislike') AS "dislike_count"`,
}

// VideoRows returns all video rows matching mods.
func VideoRows(ctx context.Context, exec boil.ContextExecutor, mods ...qm.QueryMod) ([]*VideoRow, error) {
	mods = append(mods,
		qm.From("\"videos\""),
		qm.InnerJoin(`"users" ON "users"."id" = "videos"."user_id"`),
	)

	q := NewQuery(mods...)
	queries.SetSelect(q, videoRowSelect)

	var o []*VideoRow
	if err := q.Bind(ctx, exec, &o); err != nil {
		return nil, errors.Wrap(err, "models: failed to assign all query results to VideoRow slice")
	}
	return o, nil
}
