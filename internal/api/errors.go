package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// Client-facing messages.
const (
	MessageValidationFailed = "Validation failed"
	MessageInvalidRequest   = "Invalid request format"
	MessageInvalidTaskID    = "Invalid task ID"
	MessageUnexpectedError  = "An unexpected error occurred"
)

// ErrInvalidRequest marks a request whose body or query could not be parsed.
var ErrInvalidRequest = errors.New("invalid request")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MessageUnexpectedError
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Task not found"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return MessageValidationFailed

	case errors.Is(err, domain.ErrInvalidID):
		return MessageInvalidTaskID

	case errors.Is(err, ErrInvalidRequest):
		return MessageInvalidRequest

	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"

	default:
		return MessageUnexpectedError
	}
}

// HandleAPIError writes the error response for err exactly once.
// A non-empty message replaces the default safe message for client errors;
// server errors always use the generic message. Validation failures carry
// their per-property violations.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)

	safeMessage := GetSafeErrorMessage(err)
	if message != "" && status < http.StatusInternalServerError {
		safeMessage = message
	}

	var opts []shared.ResponseOption
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		opts = append(opts, shared.WithFieldErrors(fieldErrorsToResponse(verrs)))
	}
	if status == http.StatusNotFound {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, safeMessage, err, opts...)
}

// fieldErrorsToResponse converts validation violations to their wire form,
// preserving their order.
func fieldErrorsToResponse(verrs domain.ValidationErrors) []shared.FieldErrorResponse {
	out := make([]shared.FieldErrorResponse, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, shared.FieldErrorResponse{
			Property: fe.Property,
			Error:    fe.Message,
		})
	}
	return out
}
