package shared

import "fmt"

// DomainError represents a domain-level error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
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
	ErrNotFound      = &DomainError{Code: "NOT_FOUND", Message: "resource not found"}
	ErrAlreadyExists = &DomainError{Code: "ALREADY_EXISTS", Message: "resource already exists"}
	ErrInvalidInput  = &DomainError{Code: "VALIDATION_ERROR", Message: "invalid input"}
	ErrUnauthorized  = &DomainError{Code: "UNAUTHORIZED", Message: "unauthorized"}
	ErrForbidden     = &DomainError{Code: "FORBIDDEN", Message: "forbidden"}
	ErrConflict      = &DomainError{Code: "CONFLICT", Message: "conflict"}
	ErrInvalidState  = &DomainError{Code: "INVALID_STATE", Message: "invalid state for this operation"}
)
