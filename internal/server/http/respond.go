// Package http exposes the JSON API: auth flows, profile pictures, and the
// health endpoint.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/flowspace/internal/common"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForError maps the sentinel taxonomy to HTTP status codes in one
// place. Every token failure collapses to 401 so the response does not leak
// which check rejected it.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrTokenSignatureInvalid),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	detail := err.Error()
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
		// signin failures keep their undifferentiated message; every token
		// failure collapses to one
		if !errors.Is(err, common.ErrorInvalidCredentials) {
			detail = "not authenticated"
		}
	}
	if status == http.StatusInternalServerError {
		detail = "internal server error"
	}

	writeJSON(w, status, errorResponse{Detail: detail})
}
