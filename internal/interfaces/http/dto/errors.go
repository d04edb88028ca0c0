package dto

import (
	"net/http"

	"github.com/erp/skucatalog/internal/domain/shared"
)

// Transport-level error codes. Domain failures keep their DomainError code.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeInvalidJSON is used when the request body cannot be decoded
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeRouteNotFound is used for unmatched routes
	ErrCodeRouteNotFound = "ROUTE_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:          http.StatusBadRequest,
	shared.CodeInvalidPayload:      http.StatusBadRequest,
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodeDuplicateCode:       http.StatusConflict,
	shared.CodeGenerationExhausted: http.StatusUnprocessableEntity,

	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRouteNotFound:   http.StatusNotFound,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code; unknown codes map to 500
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
