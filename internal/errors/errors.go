package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUpstream indicates the user service rejected the request
	// (non-2xx status). Message carries the server-provided text verbatim
	// when the response body included one.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeUnavailable indicates a transport-level failure reaching the
	// user service (connection refused, DNS, broken body).
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use
// with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// StatusCode is the upstream HTTP status for upstream errors (optional)
	StatusCode int
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Upstream creates an error for a request the user service rejected.
// message is the server-provided text (verbatim) or a caller-chosen fallback.
func Upstream(statusCode int, message string) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: message, StatusCode: statusCode}
}

// Unavailable wraps a transport-level failure reaching the user service.
func Unavailable(err error) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: "user service unreachable", Cause: err}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsUpstream checks if an error is an Upstream error.
func IsUpstream(err error) bool { return isCode(err, ErrCodeUpstream) }

// IsUnavailable checks if an error is an Unavailable error.
func IsUnavailable(err error) bool { return isCode(err, ErrCodeUnavailable) }

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// UserMessage returns the text that should be shown to the end user for err.
// Upstream rejections surface the server message verbatim; everything else
// (transport failures included) falls back to the provided generic message.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeUpstream && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
