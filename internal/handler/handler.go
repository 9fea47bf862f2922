package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cart-bundler/internal/middleware"
	"cart-bundler/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies. Cart snapshots are small.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, error code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("error", code).
		Str("message", message).
		Int("status", status).
		Str("request_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// writeServiceError maps a service error onto an HTTP status. Errors that are
// not domain errors are reported as internal errors without their details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	message := domainErr.Message
	if domainErr.Err != nil {
		message = domainErr.Error()
	}
	writeError(w, r, statusFor(domainErr.Code), domainErr.Code, message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField, model.ErrCodeInvalidBundleID:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCatalog, model.ErrCodeInvalidDiscountConfig:
		return http.StatusUnprocessableEntity
	case model.ErrCodeBundleNotFound:
		return http.StatusNotFound
	case model.ErrCodeStoreDisabled:
		return http.StatusServiceUnavailable
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) {
	writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
}
