package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	paging "github.com/nrfta/videohub"
	"github.com/nrfta/videohub/validation"
)

// ErrUnauthorized is returned for requests that need a signed-in user.
var ErrUnauthorized = errors.New("sign in required")

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, paging.ErrMalformedCursor),
		errors.Is(err, paging.ErrInvalidLimit),
		errors.Is(err, paging.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, paging.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, paging.ErrDataStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, paging.ErrMalformedCursor):
		return "malformed_cursor"
	case errors.Is(err, paging.ErrInvalidLimit):
		return "invalid_limit"
	case errors.Is(err, paging.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, paging.ErrNotFound):
		return "not_found"
	case errors.Is(err, paging.ErrDataStoreUnavailable):
		return "data_store_unavailable"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := errorBody{Error: errorCode(err), Message: err.Error()}

	var verr *validation.Error
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}

	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("request failed")
		if status == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", "1")
		}
		if status == http.StatusInternalServerError {
			body.Message = "internal error"
		}
	}

	writeJSON(w, r, status, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("response encoding failed")
	}
}
