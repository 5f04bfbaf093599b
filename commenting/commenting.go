// Package commenting is the comment write path: posting a comment or reply
// and removing one's own comment. Writes invalidate the cached totals of
// the listings they change.
package commenting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/friendsofgo/errors"
	"github.com/rs/zerolog"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/countcache"
	"github.com/nrfta/videohub/models"
	"github.com/nrfta/videohub/validation"
)

// CreateInput is a new comment. A non-empty ParentID makes it a reply.
type CreateInput struct {
	UserID   string `json:"userId" validate:"required,uuid"`
	VideoID  string `json:"videoId" validate:"required,uuid"`
	ParentID string `json:"parentId" validate:"omitempty,uuid"`
	Value    string `json:"value" validate:"required,max=5000"`
}

// RemoveInput names a comment to remove on behalf of its author.
type RemoveInput struct {
	UserID    string `json:"userId" validate:"required,uuid"`
	CommentID string `json:"commentId" validate:"required,uuid"`
}

// Service writes comments.
type Service struct {
	exec     boil.ContextExecutor
	counts   countcache.Cache
	log      zerolog.Logger
	validate *validation.Validator
}

// NewService returns a Service writing through exec. A nil counts disables
// invalidation.
func NewService(exec boil.ContextExecutor, counts countcache.Cache, log zerolog.Logger) *Service {
	if counts == nil {
		counts = countcache.Noop{}
	}
	return &Service{
		exec:     exec,
		counts:   counts,
		log:      log,
		validate: validation.New(),
	}
}

// Create posts a comment. Replies must target an existing top-level comment
// on the same video: an unknown parent is paging.ErrNotFound and a reply to
// a reply is paging.ErrInvalidArgument.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Comment, error) {
	if err := s.validate.Struct(&in); err != nil {
		return nil, err
	}

	if _, err := models.FindVideo(ctx, s.exec, in.VideoID); err != nil {
		return nil, lookupError("video", in.VideoID, err)
	}

	comment := &models.Comment{
		UserID:  in.UserID,
		VideoID: in.VideoID,
		Value:   in.Value,
	}

	if in.ParentID != "" {
		parent, err := models.FindComment(ctx, s.exec, in.ParentID)
		if err != nil {
			return nil, lookupError("comment", in.ParentID, err)
		}
		if parent.ParentID.Valid {
			return nil, validation.Field("parentId", "Replies cannot be nested.")
		}
		if parent.VideoID != in.VideoID {
			return nil, validation.Field("parentId", "The parent comment belongs to another video.")
		}
		comment.ParentID = null.StringFrom(parent.ID)
	}

	if err := comment.Insert(ctx, s.exec); err != nil {
		return nil, paging.NewStoreError("create comment", err)
	}

	s.invalidate(ctx, countcache.CommentsKey(in.VideoID, in.ParentID))
	s.log.Info().
		Str("comment_id", comment.ID).
		Str("video_id", comment.VideoID).
		Bool("reply", comment.ParentID.Valid).
		Msg("comment created")
	return comment, nil
}

// Remove deletes a comment and its replies. Comments that do not exist and
// comments by another user are both paging.ErrNotFound.
func (s *Service) Remove(ctx context.Context, in RemoveInput) (*models.Comment, error) {
	if err := s.validate.Struct(&in); err != nil {
		return nil, err
	}

	comment, err := models.FindComment(ctx, s.exec, in.CommentID)
	if err != nil {
		return nil, lookupError("comment", in.CommentID, err)
	}
	if comment.UserID != in.UserID {
		return nil, fmt.Errorf("comment %s: %w", in.CommentID, paging.ErrNotFound)
	}

	if _, err := comment.Delete(ctx, s.exec); err != nil {
		return nil, paging.NewStoreError("remove comment", err)
	}

	keys := []string{countcache.CommentsKey(comment.VideoID, comment.ParentID.String)}
	if !comment.ParentID.Valid {
		keys = append(keys, countcache.CommentsKey(comment.VideoID, comment.ID))
	}
	s.invalidate(ctx, keys...)

	s.log.Info().Str("comment_id", comment.ID).Msg("comment removed")
	return comment, nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.counts.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("count cache invalidation failed")
	}
}

func lookupError(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, paging.ErrNotFound)
	}
	return paging.NewStoreError("find "+kind, err)
}
