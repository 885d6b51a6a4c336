package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies an error category that is safe to show to clients.
type Code string

const (
	CodeProtocol       Code = "PROTOCOL_ERROR"
	CodeUnauthorized   Code = "UNAUTHORIZED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodeConflict       Code = "CONFLICT"
	CodeInvalidCommand Code = "INVALID_COMMAND"
	CodeInternal       Code = "INTERNAL"
)

// Error is the domain error type. Message is returned to the client as-is,
// Cause is only ever logged.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and client-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf is New with formatting.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Sentinels for errors.Is comparisons. Only the code is compared.
var (
	ErrProtocol       = New(CodeProtocol, "")
	ErrUnauthorized   = New(CodeUnauthorized, "")
	ErrForbidden      = New(CodeForbidden, "")
	ErrValidation     = New(CodeValidation, "")
	ErrNotFound       = New(CodeNotFound, "")
	ErrConflict       = New(CodeConflict, "")
	ErrInvalidCommand = New(CodeInvalidCommand, "")
	ErrInternal       = New(CodeInternal, "")
)

// NotFound reports a missing record of the named entity, e.g. "Club not found".
func NotFound(entity string) *Error {
	return Newf(CodeNotFound, "%s not found", entity)
}

// MissingFields reports absent required request fields for a command.
func MissingFields(command string, fields ...string) *Error {
	if len(fields) == 0 {
		return Newf(CodeValidation, "Missing required fields for %s", command)
	}
	return Newf(CodeValidation, "Missing required fields for %s: %v", command, fields)
}

// CodeOf extracts the code of a domain error, or CodeInternal for anything else.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// As returns the domain error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
