package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/commenting"
	"github.com/nrfta/videohub/listing"
	"github.com/nrfta/videohub/models"
	"github.com/nrfta/videohub/reacting"
)

// CommentWriter is the comment write path.
type CommentWriter interface {
	Create(ctx context.Context, in commenting.CreateInput) (*models.Comment, error)
	Remove(ctx context.Context, in commenting.RemoveInput) (*models.Comment, error)
}

// parsePageArgs reads the limit and cursor query parameters. A limit that is
// not an integer is rejected; any integer is clamped by the listing.
func parsePageArgs(r *http.Request) (*paging.PageArgs, error) {
	q := r.URL.Query()

	var first *int
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: limit must be an integer", paging.ErrInvalidArgument)
		}
		first = &n
	}

	return paging.NewPageArgs(first, q.Get("cursor")), nil
}

// listHandler adapts one listing call to HTTP.
func listHandler[T any](call func(r *http.Request, args *paging.PageArgs) (*paging.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, err := parsePageArgs(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		page, err := call(r, args)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, page)
	}
}

func viewer(r *http.Request) string {
	id, _ := UserID(r.Context())
	return id
}

// ListComments handles GET /videos/{videoID}/comments.
func ListComments(svc *listing.Service) http.HandlerFunc {
	return listHandler(func(r *http.Request, args *paging.PageArgs) (*paging.Page[*models.CommentRow], error) {
		return svc.Comments(r.Context(), listing.CommentsFilter{
			VideoID:  chi.URLParam(r, "videoID"),
			ViewerID: viewer(r),
		}, args)
	})
}

// ListReplies handles GET /videos/{videoID}/comments/{commentID}/replies.
func ListReplies(svc *listing.Service) http.HandlerFunc {
	return listHandler(func(r *http.Request, args *paging.PageArgs) (*paging.Page[*models.CommentRow], error) {
		return svc.Replies(r.Context(), listing.CommentsFilter{
			VideoID:  chi.URLParam(r, "videoID"),
			ParentID: chi.URLParam(r, "commentID"),
			ViewerID: viewer(r),
		}, args)
	})
}

// ListStudioVideos handles GET /studio/videos for the signed-in creator.
func ListStudioVideos(svc *listing.Service) http.HandlerFunc {
	return listHandler(func(r *http.Request, args *paging.PageArgs) (*paging.Page[*models.Video], error) {
		return svc.StudioVideos(r.Context(), listing.StudioFilter{OwnerID: viewer(r)}, args)
	})
}

// Search handles GET /search?q=&categoryId=.
func Search(svc *listing.Service) http.HandlerFunc {
	return listHandler(func(r *http.Request, args *paging.PageArgs) (*paging.Page[*models.VideoRow], error) {
		return svc.Search(r.Context(), listing.SearchFilter{
			Query:      r.URL.Query().Get("q"),
			CategoryID: r.URL.Query().Get("categoryId"),
		}, args)
	})
}

// ListSuggestions handles GET /videos/{videoID}/suggestions.
func ListSuggestions(svc *listing.Service) http.HandlerFunc {
	return listHandler(func(r *http.Request, args *paging.PageArgs) (*paging.Page[*models.VideoRow], error) {
		return svc.Suggestions(r.Context(), listing.SuggestionsFilter{VideoID: chi.URLParam(r, "videoID")}, args)
	})
}

// ListPage handles GET /pages/{entity}, the generic listing endpoint. The
// owner of a studio listing is always the requesting user, so a signed-out
// studio request is unauthorized.
func ListPage(svc *listing.Service) http.HandlerFunc {
	return listHandler(func(r *http.Request, args *paging.PageArgs) (*paging.Page[any], error) {
		entity, err := listing.ParseEntityType(chi.URLParam(r, "entity"))
		if err != nil {
			return nil, err
		}
		if _, ok := UserID(r.Context()); !ok && entity == listing.EntityStudioVideos {
			return nil, ErrUnauthorized
		}

		q := r.URL.Query()
		return svc.ListPage(r.Context(), entity, listing.Filter{
			VideoID:    q.Get("videoId"),
			ParentID:   q.Get("parentId"),
			ViewerID:   viewer(r),
			OwnerID:    viewer(r),
			Query:      q.Get("q"),
			CategoryID: q.Get("categoryId"),
		}, args)
	})
}

type createCommentBody struct {
	Value    string `json:"value"`
	ParentID string `json:"parentId"`
}

// CreateComment handles POST /videos/{videoID}/comments.
func CreateComment(svc CommentWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCommentBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid JSON body", paging.ErrInvalidArgument))
			return
		}

		comment, err := svc.Create(r.Context(), commenting.CreateInput{
			UserID:   viewer(r),
			VideoID:  chi.URLParam(r, "videoID"),
			ParentID: body.ParentID,
			Value:    body.Value,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, comment)
	}
}

// RemoveComment handles DELETE /comments/{commentID}.
func RemoveComment(svc CommentWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := svc.Remove(r.Context(), commenting.RemoveInput{
			UserID:    viewer(r),
			CommentID: chi.URLParam(r, "commentID"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, comment)
	}
}

// ReactionWriter is the reaction and view write path.
type ReactionWriter interface {
	LikeComment(ctx context.Context, in reacting.CommentInput) (*reacting.Reaction, error)
	DislikeComment(ctx context.Context, in reacting.CommentInput) (*reacting.Reaction, error)
	LikeVideo(ctx context.Context, in reacting.VideoInput) (*reacting.Reaction, error)
	DislikeVideo(ctx context.Context, in reacting.VideoInput) (*reacting.Reaction, error)
	RecordView(ctx context.Context, in reacting.VideoInput) (*models.VideoView, error)
}

// ReactToComment handles POST /comments/{commentID}/like and /dislike.
func ReactToComment(toggle func(context.Context, reacting.CommentInput) (*reacting.Reaction, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reaction, err := toggle(r.Context(), reacting.CommentInput{
			UserID:    viewer(r),
			CommentID: chi.URLParam(r, "commentID"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, reaction)
	}
}

// ReactToVideo handles POST /videos/{videoID}/like and /dislike.
func ReactToVideo(toggle func(context.Context, reacting.VideoInput) (*reacting.Reaction, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reaction, err := toggle(r.Context(), reacting.VideoInput{
			UserID:  viewer(r),
			VideoID: chi.URLParam(r, "videoID"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, reaction)
	}
}

// RecordView handles POST /videos/{videoID}/views.
func RecordView(svc ReactionWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.RecordView(r.Context(), reacting.VideoInput{
			UserID:  viewer(r),
			VideoID: chi.URLParam(r, "videoID"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, view)
	}
}
