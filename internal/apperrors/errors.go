package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource
// (closed period, locked ledger, already committed cursor).
var ErrConflict = errors.New("state conflict")

// ErrConfiguration indicates an invalid option was supplied to an operation, such as an
// unknown role or activity filter.
var ErrConfiguration = errors.New("invalid configuration")

// AppError carries a status-like code and a message alongside the underlying error.
// Repositories use it to decorate storage failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap lets errors.Is/As reach the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}
