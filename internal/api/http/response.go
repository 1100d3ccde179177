package http

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/security"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type messageResponse struct {
	Message string `json:"message"`
}

// errorMessages are the user facing texts a handler uses for the generic failure kinds.
type errorMessages struct {
	invalidID string
	notFound  string
	failure   string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return domain.Invalid("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Invalid("invalid JSON body")
	}
	return nil
}

// writeError maps err to a status code and a message. Store and unexpected errors are
// logged with their detail and answered with msgs.failure only.
func writeError(w http.ResponseWriter, r *http.Request, err error, msgs errorMessages) {
	status, msg := classify(err, msgs)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		logger.Get().DebugContext(r.Context(), "Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeMessage(w, status, msg)
}

func classify(err error, msgs errorMessages) (int, string) {
	var missing *domain.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest, missing.Error()
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusBadRequest, orDefault(msgs.invalidID, "Invalid ID")
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, orDefault(msgs.notFound, "Not found")
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadRequest, "Book not available."
	case errors.Is(err, domain.ErrAlreadyBorrowed):
		return http.StatusBadRequest, "You have already borrowed this book."
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, security.ErrMissingToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		return http.StatusUnauthorized, "unauthorized access"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, security.ErrIdentityMismatch):
		return http.StatusForbidden, "forbidden access"
	default:
		return http.StatusInternalServerError, orDefault(msgs.failure, "Internal server error")
	}
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
