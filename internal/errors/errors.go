// Package errors provides custom error types for the financial health API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WrapWithMessage combines Wrap and WithMessage: the client sees message,
// the logs see internal.
func WrapWithMessage(sentinel *AppError, message string, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized      = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidShareToken = &AppError{Code: "INVALID_SHARE_TOKEN", Message: "Share link is invalid or has expired", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Ingestion errors.
var (
	ErrFileRequired      = &AppError{Code: "FILE_REQUIRED", Message: "A transaction file is required", StatusCode: http.StatusBadRequest}
	ErrUnsupportedFormat = &AppError{Code: "UNSUPPORTED_FORMAT", Message: "Unsupported file format", StatusCode: http.StatusBadRequest}
	ErrFileUnreadable    = &AppError{Code: "FILE_UNREADABLE", Message: "The transaction file could not be read", StatusCode: http.StatusBadRequest}
)

// Analysis errors.
var (
	ErrInvalidSchema     = &AppError{Code: "INVALID_SCHEMA", Message: "Transaction table is missing required columns", StatusCode: http.StatusBadRequest}
	ErrAggregationFailed = &AppError{Code: "AGGREGATION_FAILED", Message: "Financial analysis pipeline failed", StatusCode: http.StatusInternalServerError}
	ErrMissingMetric     = &AppError{Code: "MISSING_METRIC", Message: "Required financial metrics are missing", StatusCode: http.StatusInternalServerError}
	// ErrPayloadMissingMetric is ErrMissingMetric for metrics a client supplied.
	ErrPayloadMissingMetric = &AppError{Code: "MISSING_METRIC", Message: "Required financial metrics are missing", StatusCode: http.StatusBadRequest}
)

// Record errors.
var (
	ErrAnalysisNotFound = &AppError{Code: "ANALYSIS_NOT_FOUND", Message: "Analysis not found", StatusCode: http.StatusNotFound}
)
