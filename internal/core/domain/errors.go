package domain

import (
	"errors"
	"fmt"
)

// DomainError represents an nvram error with a structured error code.
//
// Codes identify the error kind; two errors with the same code match with
// errors.Is regardless of message or details.
type DomainError struct {
	Code    string // Error code (e.g., "NV-DATA-4220")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: fmt.Sprintf(format, args...),
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
// It returns "" for other errors.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

var (
	// ErrInvalidArgument covers malformed backends, empty section names,
	// dual-section requests on single-section formats and invalid entries.
	ErrInvalidArgument = NewDomainError("NV-ARG-4000", "invalid argument")

	// ErrNotFound indicates the requested key is not present.
	ErrNotFound = NewDomainError("NV-KEY-4040", "key not found")

	// ErrCorruptData indicates stored content does not follow the format grammar.
	ErrCorruptData = NewDomainError("NV-DATA-4220", "data corrupted")

	// ErrIO wraps a storage backend failure.
	ErrIO = NewDomainError("NV-IO-5000", "storage i/o error")

	// ErrOutOfMemory indicates a buffer would exceed the configured section limit.
	ErrOutOfMemory = NewDomainError("NV-MEM-5070", "out of memory")
)
