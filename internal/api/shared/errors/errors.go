package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeVersionConflict  ErrorCode = "version_conflict"
	ErrCodeConstraint       ErrorCode = "constraint_violation"
	ErrCodeImmutable        ErrorCode = "immutable"
	ErrCodeTooManyRequests  ErrorCode = "too_many_requests"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Response is the body of every error response: {"error": {...}}
type Response struct {
	Error *APIError `json:"error"`
}

func newError(code ErrorCode, message string, details ...string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newError(ErrCodeBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(ErrCodeNotFound, message, details...)
}

func NewValidationError(details ...string) *APIError {
	return newError(ErrCodeValidationFailed, "Validation failed", details...)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(ErrCodeUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newError(ErrCodeForbidden, message, details...)
}

func NewTooManyRequestsError(message string, details ...string) *APIError {
	return newError(ErrCodeTooManyRequests, message, details...)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(ErrCodeInternalError, message, details...)
}

// FromError maps a domain error onto an HTTP status and API error. Unknown
// errors become a 500 without leaking their text.
func FromError(err error) (int, *APIError) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return statusOf(apiErr.Code), apiErr
	}

	var details []string
	var constraintErr *store.ConstraintError
	if errors.As(err, &constraintErr) && constraintErr.Constraint != "" {
		details = append(details, constraintErr.Constraint)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, NewNotFoundError("Resource not found", details...)
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, NewForbiddenError("Permission denied", details...)
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, newError(ErrCodeVersionConflict, "Record was modified concurrently", details...)
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, newError(ErrCodeConflict, "Record already exists", details...)
	case errors.Is(err, domain.ErrImmutable):
		return http.StatusConflict, newError(ErrCodeImmutable, "Record can no longer be changed", details...)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrSelfDelegation):
		return http.StatusBadRequest, NewValidationError(err.Error())
	case errors.Is(err, domain.ErrConstraintViolation),
		errors.Is(err, domain.ErrDependencyCycle),
		errors.Is(err, domain.ErrUnbalancedEntry),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusUnprocessableEntity, newError(ErrCodeConstraint, err.Error(), details...)
	}

	return http.StatusInternalServerError, NewInternalError("Internal server error")
}

func statusOf(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict, ErrCodeVersionConflict, ErrCodeImmutable:
		return http.StatusConflict
	case ErrCodeConstraint:
		return http.StatusUnprocessableEntity
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
