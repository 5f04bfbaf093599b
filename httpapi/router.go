// Package httpapi exposes the listings and the comment write path over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/nrfta/videohub/listing"
)

// RouterDependencies holds all dependencies for the HTTP router.
type RouterDependencies struct {
	Listing  *listing.Service
	Comments CommentWriter

	// Reactions serves the like, dislike and view routes when set.
	Reactions ReactionWriter
	Logger   zerolog.Logger

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Ping reports data store health for /health when set.
	Ping func(ctx context.Context) error

	// RequestTimeout bounds every request; zero disables it.
	RequestTimeout time.Duration
}

// NewRouter creates the HTTP router.
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(hlog.NewHandler(deps.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimw.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}
	r.Use(Identity)

	r.Get("/health", health(deps.Ping))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Get("/search", Search(deps.Listing))
	r.Get("/pages/{entity}", ListPage(deps.Listing))

	r.Route("/videos/{videoID}", func(r chi.Router) {
		r.Get("/comments", ListComments(deps.Listing))
		r.Get("/comments/{commentID}/replies", ListReplies(deps.Listing))
		r.Get("/suggestions", ListSuggestions(deps.Listing))

		r.With(RequireUser).Post("/comments", CreateComment(deps.Comments))
		if deps.Reactions != nil {
			r.With(RequireUser).Post("/like", ReactToVideo(deps.Reactions.LikeVideo))
			r.With(RequireUser).Post("/dislike", ReactToVideo(deps.Reactions.DislikeVideo))
			r.With(RequireUser).Post("/views", RecordView(deps.Reactions))
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/studio/videos", ListStudioVideos(deps.Listing))
		r.Delete("/comments/{commentID}", RemoveComment(deps.Comments))

		if deps.Reactions != nil {
			r.Post("/comments/{commentID}/like", ReactToComment(deps.Reactions.LikeComment))
			r.Post("/comments/{commentID}/dislike", ReactToComment(deps.Reactions.DislikeComment))
		}
	})

	return r
}

func health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("health check failed")
				writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
