package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Eras256/FlowFi/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeTooLarge         ErrorCode = "payload_too_large"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeServiceError  ErrorCode = "service_error"
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

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewServiceError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromError maps an error returned by the executor to its HTTP status and API error
func FromError(err error) (int, *APIError) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return http.StatusBadRequest, apiErr
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, NewNotFoundError("Invoice not found", err.Error())
	case errors.Is(err, domain.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge, &APIError{Code: ErrCodeTooLarge, Message: "Document too large", Details: err.Error()}
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidInvoice):
		return http.StatusBadRequest, NewValidationError(err.Error())
	case errors.Is(err, domain.ErrInvoiceAlreadyExists),
		errors.Is(err, domain.ErrAlreadyFunded),
		errors.Is(err, domain.ErrSelfFunding),
		errors.Is(err, domain.ErrWorkflowBusy),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, NewConflictError("Conflict", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, NewDatabaseError("Invoice store unavailable", err.Error())
	case errors.Is(err, domain.ErrRelayRejected),
		errors.Is(err, domain.ErrRelayUnavailable):
		return http.StatusBadGateway, NewServiceError("Deploy relay failed", err.Error())
	default:
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}
}
