package listing

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/models"
	"github.com/nrfta/videohub/sqlboiler"
)

// Store builds the fetcher of each listing with its filter bound in.
type Store interface {
	Comments(f CommentsFilter) paging.Fetcher[*models.CommentRow]
	StudioVideos(f StudioFilter) paging.Fetcher[*models.Video]
	Search(f SearchFilter) paging.Fetcher[*models.VideoRow]
	Suggestions(seed *models.Video) paging.Fetcher[*models.VideoRow]

	// FindVideo returns paging.ErrNotFound for an unknown id.
	FindVideo(ctx context.Context, id string) (*models.Video, error)
}

// SQLStore is the Postgres Store.
type SQLStore struct {
	exec boil.ContextExecutor
}

// NewSQLStore returns a Store reading through exec.
func NewSQLStore(exec boil.ContextExecutor) *SQLStore {
	return &SQLStore{exec: exec}
}

func (s *SQLStore) Comments(f CommentsFilter) paging.Fetcher[*models.CommentRow] {
	filters := []qm.QueryMod{qm.Where(`"comments"."video_id" = ?`, f.VideoID)}
	if f.ParentID == "" {
		filters = append(filters, qm.Where(`"comments"."parent_id" IS NULL`))
	} else {
		filters = append(filters, qm.Where(`"comments"."parent_id" = ?`, f.ParentID))
	}

	return sqlboiler.NewFetcher(
		func(ctx context.Context, mods ...qm.QueryMod) ([]*models.CommentRow, error) {
			return models.CommentRows(ctx, s.exec, f.ViewerID, slices.Concat(filters, mods)...)
		},
		func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
			return models.Comments(slices.Concat(filters, mods)...).Count(ctx, s.exec)
		},
		sqlboiler.KeysetToQueryMods,
		sqlboiler.WithOp("comments"),
	)
}

func (s *SQLStore) StudioVideos(f StudioFilter) paging.Fetcher[*models.Video] {
	filters := []qm.QueryMod{qm.Where(`"videos"."user_id" = ?`, f.OwnerID)}

	return sqlboiler.NewFetcher(
		func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Video, error) {
			return models.Videos(slices.Concat(filters, mods)...).All(ctx, s.exec)
		},
		func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
			return models.Videos(slices.Concat(filters, mods)...).Count(ctx, s.exec)
		},
		sqlboiler.KeysetToQueryMods,
		sqlboiler.WithOp("studio videos"),
	)
}

func (s *SQLStore) Search(f SearchFilter) paging.Fetcher[*models.VideoRow] {
	var filters []qm.QueryMod
	if f.Query != "" {
		filters = append(filters, qm.Where(`"videos"."title" ILIKE ? ESCAPE '\'`, "%"+EscapeLike(f.Query)+"%"))
	}
	if f.CategoryID != "" {
		filters = append(filters, qm.Where(`"videos"."category_id" = ?`, f.CategoryID))
	}
	return s.videoRows(filters, "search")
}

func (s *SQLStore) Suggestions(seed *models.Video) paging.Fetcher[*models.VideoRow] {
	filters := []qm.QueryMod{qm.Where(`"videos"."id" <> ?`, seed.ID)}
	if seed.CategoryID.Valid {
		filters = append(filters, qm.Where(`"videos"."category_id" = ?`, seed.CategoryID.String))
	}
	return s.videoRows(filters, "suggestions")
}

func (s *SQLStore) videoRows(filters []qm.QueryMod, op string) paging.Fetcher[*models.VideoRow] {
	return sqlboiler.NewFetcher(
		func(ctx context.Context, mods ...qm.QueryMod) ([]*models.VideoRow, error) {
			return models.VideoRows(ctx, s.exec, slices.Concat(filters, mods)...)
		},
		func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
			return models.Videos(slices.Concat(filters, mods)...).Count(ctx, s.exec)
		},
		sqlboiler.KeysetToQueryMods,
		sqlboiler.WithOp(op),
	)
}

func (s *SQLStore) FindVideo(ctx context.Context, id string) (*models.Video, error) {
	video, err := models.FindVideo(ctx, s.exec, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("video %s: %w", id, paging.ErrNotFound)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, paging.NewStoreError("find video", err)
	}
	return video, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE metacharacters in s so it matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
