package model

import "strings"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string        `json:"error"`
	Message       string        `json:"message"`
	Errors        []string      `json:"errors,omitempty"`
	Submitted     *OrderRequest `json:"submitted,omitempty"`
	CorrelationID string        `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeInvalidForm     = "INVALID_FORM"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeOrderNotFound   = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOrderNotFound = NewDomainError(ErrCodeOrderNotFound, "Order not found")
)

// ValidationError collects every rule an order request violates.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) add(msg string) {
	e.Errors = append(e.Errors, msg)
}

func (e *ValidationError) empty() bool {
	return len(e.Errors) == 0
}
