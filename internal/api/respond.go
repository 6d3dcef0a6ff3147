package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/calmstack/taskdeck/internal/backup"
	"github.com/calmstack/taskdeck/internal/redact"
	"github.com/calmstack/taskdeck/internal/reminder"
	"github.com/calmstack/taskdeck/internal/store"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err, "path", r.URL.Path)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{Error: message})
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// so handlers do not leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrListNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, reminder.ErrScanInProgress):
		return http.StatusConflict

	case errors.Is(err, backup.ErrNotConfigured),
		errors.Is(err, backup.ErrDisabled):
		return http.StatusPreconditionFailed

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrListNotFound):
		return "List not found"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, reminder.ErrScanInProgress):
		return "A reminder scan is already in progress"
	case errors.Is(err, backup.ErrNotConfigured):
		return "WebDAV backup is not configured"
	case errors.Is(err, backup.ErrDisabled):
		return "WebDAV backup is disabled"
	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError is the common tail of a failed handler: log the
// redacted error, send the sanitized message.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "path", r.URL.Path, "method", r.Method, "error", redact.Error(err))
	} else {
		log.Debug("request rejected", "path", r.URL.Path, "method", r.Method, "status", status, "error", redact.Error(err))
	}
	RespondWithError(w, r, status, GetSafeErrorMessage(err))
}
