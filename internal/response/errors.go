package response

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error codes
const (
	ErrCodeStorage      = "STORAGE_ERROR"
	ErrCodeImageIO      = "IMAGE_IO_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// AppError is an error carrying a code for the presentation layer.
// Details holds the offending field for validation errors.
type AppError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError without an underlying cause
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewStorageError wraps an entity store failure
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeStorage, Message: message, Err: err}
}

// NewImageIOError wraps an image file failure
func NewImageIOError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeImageIO, Message: message, Err: err}
}

// NewValidationError reports an invalid field
func NewValidationError(message, field string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Details: field}
}

// NewNotFoundError reports a missing resource
func NewNotFoundError(message, details string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Details: details}
}

// NewUnauthorizedError reports a failed credential check
func NewUnauthorizedError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message, Err: err}
}

// IsCode reports whether err is an AppError with the given code
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// FromStorage maps a repository error to an AppError.
// A missing record becomes NOT_FOUND, anything else STORAGE_ERROR.
func FromStorage(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Code: ErrCodeNotFound, Message: message, Err: err}
	}
	return NewStorageError(message, err)
}

// HTTPStatus maps an error code to an HTTP status code
func HTTPStatus(code string) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
