package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrReferential
	ErrGeneration
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusUnprocessableEntity
	case ErrReferential:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

// Referential signals an operation against a record whose referenced
// parent does not exist, e.g. a note for an unknown patient.
func Referential(message string) *AppError {
	return &AppError{
		Code:    ErrReferential,
		Message: message,
	}
}

// Generation wraps a provider failure behind a single opaque condition.
// Callers only learn that generation failed; the cause rides along for logs.
func Generation(err error) *AppError {
	return &AppError{
		Code:    ErrGeneration,
		Message: "failed to generate patient summary",
		Err:     err,
	}
}

// IsNotFound reports whether err is a not-found application error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrNotFound
}

// IsReferential reports whether err is a referential application error.
func IsReferential(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrReferential
}
