package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound     = NewError(ErrCodeNotFound, "task not found")
	ErrReminderNotFound = NewError(ErrCodeNotFound, "reminder not found")
	ErrCategoryNotFound = NewError(ErrCodeNotFound, "category not found")
	ErrAccountNotFound  = NewError(ErrCodeNotFound, "account not found")
	ErrSettingsNotFound = NewError(ErrCodeNotFound, "notification settings not found")
	ErrSessionNotFound  = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")

	ErrEmptyName       = NewError(ErrCodeInvalid, "name cannot be empty")
	ErrNilCategory     = NewError(ErrCodeInvalid, "category cannot be nil")
	ErrInvalidPriority = NewError(ErrCodeInvalid, "unknown priority")
	ErrNoDeadline      = NewError(ErrCodeInvalid, "task has no deadline")
	ErrNoReminderTime  = NewError(ErrCodeInvalid, "reminder time is required")

	ErrInvalidReminderOffset = NewError(ErrCodeInvalid, "reminder offset must be positive")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
