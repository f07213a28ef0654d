package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidArgument    Kind = "invalid_argument"
	KindFailedPrecondition Kind = "failed_precondition"
	KindPermissionDenied   Kind = "permission_denied"
	KindUnauthorized       Kind = "unauthorized"
	KindInternal           Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindPermissionDenied, Message: "You do not have permission to perform this action."}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidArgument, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid username or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
	ErrInvalidAction      = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidArgument, Message: "Invalid action parameter."}
	ErrInvalidPage        = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Invalid page."}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
	}
}

// NewValidationError joins field errors into a single "(field) message" string.
func NewValidationError(fieldErrors []FieldError) *AppError {
	lines := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		lines = append(lines, fmt.Sprintf("(%s) %s", fe.Field, fe.Message))
	}
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidArgument,
		Message: strings.Join(lines, "\n"),
		Errors:  fieldErrors,
	}
}

// NewFieldError is shorthand for a validation error on a single field.
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewNotFoundErrorf creates a not found error from a format string.
func NewNotFoundErrorf(format string, args ...any) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidArgument,
		Message: message,
	}
}

// NewFailedPreconditionError is returned when an operation is valid but the
// entity is not in a state that allows it.
func NewFailedPreconditionError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindFailedPrecondition,
		Message: message,
	}
}

// NewForbiddenError creates a permission denied error with a custom message
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Kind:    KindPermissionDenied,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf reports the kind of err, KindInternal for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool           { return KindOf(err) == KindNotFound }
func IsInvalidArgument(err error) bool    { return KindOf(err) == KindInvalidArgument }
func IsFailedPrecondition(err error) bool { return KindOf(err) == KindFailedPrecondition }
func IsPermissionDenied(err error) bool   { return KindOf(err) == KindPermissionDenied }

// GetAppError converts an error to AppError. Unknown errors become a generic
// 500 so driver or provider details never reach the client.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindInvalidArgument
	case http.StatusForbidden:
		return KindPermissionDenied
	case http.StatusUnauthorized:
		return KindUnauthorized
	default:
		return KindInternal
	}
}
