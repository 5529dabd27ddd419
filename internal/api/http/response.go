package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
)

// Response is the envelope of every successful reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorDetail describes one offending field of a rejected request.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func Success(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func writeErrorResponse(w http.ResponseWriter, status int, kind domain.ErrorKind, message string, details ...ErrorDetail) {
	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   string(kind),
		Details: details,
	})
}

func BadRequest(w http.ResponseWriter, message string, details ...ErrorDetail) {
	writeErrorResponse(w, http.StatusBadRequest, domain.ErrValidation, message, details...)
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeErrorResponse(w, http.StatusUnauthorized, domain.ErrAuthentication, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	writeErrorResponse(w, http.StatusForbidden, domain.ErrAuthorization, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL", message)
}

// ValidationFailed writes a 422 with per-field details.
func ValidationFailed(w http.ResponseWriter, details []ErrorDetail) {
	writeErrorResponse(w, http.StatusUnprocessableEntity, domain.ErrValidation, "Validation failed", details...)
}

// StatusFor maps a domain error kind to an HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict, domain.ErrInvalidState:
		return http.StatusConflict
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrAuthentication:
		return http.StatusUnauthorized
	case domain.ErrAuthorization:
		return http.StatusForbidden
	case domain.ErrExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err. Domain errors keep their message; anything else is
// logged and hidden behind a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		ValidationFailed(w, verr.Details)
		return
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		logger.ErrorContext(r.Context(), "Unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}
	if de.Kind == domain.ErrExternalService {
		logger.WarnContext(r.Context(), "External service error", "error", err)
	}
	writeErrorResponse(w, StatusFor(de.Kind), de.Kind, de.Message)
}
