package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource,
// e.g. a stock reversal that would take on-hand quantity below zero.
var ErrConflict = errors.New("resource state conflict")

// ErrUnauthorized indicates that no authenticated user is attached to the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the user is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrUnbalancedEntry indicates that a journal entry's debits and credits do not match.
var ErrUnbalancedEntry = errors.New("journal entry is unbalanced")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause so errors.Is keeps working through AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError returns an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewUnbalancedEntryError reports the debit and credit totals of a rejected entry.
func NewUnbalancedEntryError(debits, credits string) *AppError {
	return NewAppError(http.StatusBadRequest,
		fmt.Sprintf("debits %s do not equal credits %s", debits, credits), ErrUnbalancedEntry)
}
