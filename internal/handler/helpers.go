// Package handler contains the HTTP handlers. Handlers parse input, call a
// service and translate domain errors onto the wire; business rules live one
// layer down.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"lempek/internal/domain"
	"lempek/internal/httputil"
)

// handleError maps a domain error onto an HTTP status and writes an RFC 7807
// body. Every failure response carries an error_id that is also attached to
// the server-side log line, so a client report can be matched to the full
// detail without exposing internals (storage paths in particular) on the wire.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorID := uuid.NewString()

	status, detail := classify(err)

	logLevel := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	logger.Log(r.Context(), logLevel, "request failed",
		"error", err,
		"error_id", errorID,
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
	)

	httputil.RespondErrorWithExtras(w, status, detail, map[string]interface{}{
		"error_id": errorID,
	})
}

func classify(err error) (int, string) {
	var validationErrs validation.Errors

	switch {
	case errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, validationErrs.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		// Storage, database and partial failures share one opaque body;
		// the logged detail carries the specifics.
		return http.StatusInternalServerError, "internal server error"
	}
}

// optionalID reads a query parameter as a nullable folder reference
func optionalID(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}
