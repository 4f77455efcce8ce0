package dto

import "net/http"

// Error codes surfaced by the API. Domain error codes pass through
// unchanged so clients can match on the same identifiers the domain uses.
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "UNKNOWN_ERROR"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"

	// ErrCodeValidation mirrors the domain's validation code
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnitConversion is raised when a physical count cannot convert
	ErrCodeUnitConversion = "UNIT_CONVERSION_ERROR"
	// ErrCodePeriodClose is raised for period lifecycle violations
	ErrCodePeriodClose = "PERIOD_CLOSE_ERROR"
	// ErrCodeDataIntegrity is raised for corrupted lifecycle stamps
	ErrCodeDataIntegrity = "DATA_INTEGRITY_ERROR"
	// ErrCodeConcurrency is raised when a concurrent approval loses the guard
	ErrCodeConcurrency = "CONCURRENCY_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	// Malformed input -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeUnitConversion: http.StatusUnprocessableEntity,
	ErrCodePeriodClose:    http.StatusUnprocessableEntity,

	// Conflicting state -> 409 Conflict
	ErrCodeDataIntegrity: http.StatusConflict,
	ErrCodeConcurrency:   http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
