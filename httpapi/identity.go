package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// UserIDHeader carries the authenticated user id, set by the auth proxy in
// front of the service.
const UserIDHeader = "X-User-Id"

type ctxKey string

const ctxUserID ctxKey = "user_id"

// WithUserID returns a context carrying the requesting user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

// UserID returns the requesting user, if any.
func UserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserID).(string)
	return v, ok && v != ""
}

// Identity reads the user id header into the request context. A malformed
// id is rejected rather than treated as anonymous.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: malformed %s", ErrUnauthorized, UserIDHeader))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id.String())))
	})
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			writeError(w, r, ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
