package shared

import (
	"errors"
	"fmt"
)

// Error codes used across the catalog engine
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeDuplicateCode       = "DUPLICATE_CODE"
	CodeGenerationExhausted = "GENERATION_EXHAUSTED"
	CodeInvalidPayload      = "INVALID_PAYLOAD"
	CodeDanglingReference   = "DANGLING_REFERENCE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
// errors.Is(err, ErrNotFound) therefore matches every NOT_FOUND error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION_ERROR with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError creates a NOT_FOUND error for the given resource and id
func NewNotFoundError(resource, id string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %q not found", resource, id))
}

// Common domain errors
var (
	ErrValidation          = NewDomainError(CodeValidation, "Invalid input provided")
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateCode       = NewDomainError(CodeDuplicateCode, "Code is already in use")
	ErrGenerationExhausted = NewDomainError(CodeGenerationExhausted, "No free code could be generated")
	ErrInvalidPayload      = NewDomainError(CodeInvalidPayload, "Invalid encoding payload")
	ErrDanglingReference   = NewDomainError(CodeDanglingReference, "Record references a missing branch")
)

// ErrorCode extracts the DomainError code from err, or "" if err carries none
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
