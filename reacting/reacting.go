// Package reacting records likes, dislikes and views. Reactions toggle:
// repeating the current reaction removes it and the opposite one replaces
// it. A user views a video at most once.
package reacting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/friendsofgo/errors"
	"github.com/rs/zerolog"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/models"
	"github.com/nrfta/videohub/validation"
)

// CommentInput names a comment reacted to by a user.
type CommentInput struct {
	UserID    string `json:"userId" validate:"required,uuid"`
	CommentID string `json:"commentId" validate:"required,uuid"`
}

// VideoInput names a video reacted to or viewed by a user.
type VideoInput struct {
	UserID  string `json:"userId" validate:"required,uuid"`
	VideoID string `json:"videoId" validate:"required,uuid"`
}

// Reaction is the user's reaction once a toggle is applied. Type is null
// when the toggle removed it.
type Reaction struct {
	UserID    string      `json:"userId"`
	CommentID string      `json:"commentId,omitempty"`
	VideoID   string      `json:"videoId,omitempty"`
	Type      null.String `json:"type"`
}

// Next returns the reaction a user holds after requesting requested while
// holding current. An empty result means no reaction.
func Next(current, requested string) string {
	if current == requested {
		return ""
	}
	return requested
}

// Service writes reactions and views.
type Service struct {
	exec     boil.ContextExecutor
	log      zerolog.Logger
	validate *validation.Validator
}

// NewService returns a Service writing through exec.
func NewService(exec boil.ContextExecutor, log zerolog.Logger) *Service {
	return &Service{
		exec:     exec,
		log:      log,
		validate: validation.New(),
	}
}

// LikeComment toggles the user's like on a comment.
func (s *Service) LikeComment(ctx context.Context, in CommentInput) (*Reaction, error) {
	return s.reactToComment(ctx, in, models.ReactionLike)
}

// DislikeComment toggles the user's dislike on a comment.
func (s *Service) DislikeComment(ctx context.Context, in CommentInput) (*Reaction, error) {
	return s.reactToComment(ctx, in, models.ReactionDislike)
}

// LikeVideo toggles the user's like on a video.
func (s *Service) LikeVideo(ctx context.Context, in VideoInput) (*Reaction, error) {
	return s.reactToVideo(ctx, in, models.ReactionLike)
}

// DislikeVideo toggles the user's dislike on a video.
func (s *Service) DislikeVideo(ctx context.Context, in VideoInput) (*Reaction, error) {
	return s.reactToVideo(ctx, in, models.ReactionDislike)
}

// RecordView counts the user's view of a video. Repeated views are ignored.
func (s *Service) RecordView(ctx context.Context, in VideoInput) (*models.VideoView, error) {
	if err := s.validate.Struct(&in); err != nil {
		return nil, err
	}
	if _, err := models.FindVideo(ctx, s.exec, in.VideoID); err != nil {
		return nil, lookupError("video", in.VideoID, err)
	}

	view := &models.VideoView{UserID: in.UserID, VideoID: in.VideoID}
	if err := view.Insert(ctx, s.exec); err != nil {
		return nil, paging.NewStoreError("record view", err)
	}
	return view, nil
}

func (s *Service) reactToComment(ctx context.Context, in CommentInput, requested string) (*Reaction, error) {
	if err := s.validate.Struct(&in); err != nil {
		return nil, err
	}
	if _, err := models.FindComment(ctx, s.exec, in.CommentID); err != nil {
		return nil, lookupError("comment", in.CommentID, err)
	}

	current := ""
	existing, err := models.FindCommentReaction(ctx, s.exec, in.UserID, in.CommentID)
	switch {
	case err == nil:
		current = existing.Type
	case !errors.Is(err, sql.ErrNoRows):
		return nil, paging.NewStoreError("find comment reaction", err)
	}

	row := &models.CommentReaction{UserID: in.UserID, CommentID: in.CommentID, Type: requested}
	next := Next(current, requested)
	if next == "" {
		_, err = row.Delete(ctx, s.exec)
	} else {
		err = row.Upsert(ctx, s.exec)
	}
	if err != nil {
		return nil, paging.NewStoreError("react to comment", err)
	}

	s.log.Info().
		Str("comment_id", in.CommentID).
		Str("from", current).
		Str("to", next).
		Msg("comment reaction toggled")
	return &Reaction{UserID: in.UserID, CommentID: in.CommentID, Type: null.NewString(next, next != "")}, nil
}

func (s *Service) reactToVideo(ctx context.Context, in VideoInput, requested string) (*Reaction, error) {
	if err := s.validate.Struct(&in); err != nil {
		return nil, err
	}
	if _, err := models.FindVideo(ctx, s.exec, in.VideoID); err != nil {
		return nil, lookupError("video", in.VideoID, err)
	}

	current := ""
	existing, err := models.FindVideoReaction(ctx, s.exec, in.UserID, in.VideoID)
	switch {
	case err == nil:
		current = existing.Type
	case !errors.Is(err, sql.ErrNoRows):
		return nil, paging.NewStoreError("find video reaction", err)
	}

	row := &models.VideoReaction{UserID: in.UserID, VideoID: in.VideoID, Type: requested}
	next := Next(current, requested)
	if next == "" {
		_, err = row.Delete(ctx, s.exec)
	} else {
		err = row.Upsert(ctx, s.exec)
	}
	if err != nil {
		return nil, paging.NewStoreError("react to video", err)
	}

	s.log.Info().
		Str("video_id", in.VideoID).
		Str("from", current).
		Str("to", next).
		Msg("video reaction toggled")
	return &Reaction{UserID: in.UserID, VideoID: in.VideoID, Type: null.NewString(next, next != "")}, nil
}

func lookupError(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, paging.ErrNotFound)
	}
	return paging.NewStoreError("find "+kind, err)
}
