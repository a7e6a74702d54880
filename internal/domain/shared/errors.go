package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// NewValidationError creates a validation error with field context
func NewValidationError(field, message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", fmt.Sprintf("%s: %s", field, message))
}

// NewAuthenticationError creates an authentication error
func NewAuthenticationError(message string) *DomainError {
	return NewDomainError("UNAUTHORIZED", message)
}

// NewAuthorizationError creates an authorization error
func NewAuthorizationError(message string) *DomainError {
	return NewDomainError("FORBIDDEN", message)
}

// NewNotFoundError creates a not-found error for a named resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource))
}

// NewIllegalStateTransitionError creates an error for an invalid lifecycle transition
func NewIllegalStateTransitionError(from, to string) *DomainError {
	return NewDomainError("ILLEGAL_STATE_TRANSITION", fmt.Sprintf("Cannot transition from %s to %s", from, to))
}

// NewUnsupportedFormatError creates an error for an unknown export format
func NewUnsupportedFormatError(format string) *DomainError {
	return NewDomainError("UNSUPPORTED_FORMAT", fmt.Sprintf("Unsupported export format: %s", format))
}
