package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryValue    Category = "value"
	CategoryProtocol Category = "protocol"
	CategoryStorage  Category = "storage"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// VangoError is a structured error with a registered code, an explanation and
// an optional fix suggestion.
type VangoError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, value, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VangoError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VangoError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
func (e *VangoError) Is(target error) bool {
	t, ok := target.(*VangoError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *VangoError) WithDetail(d string) *VangoError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted explanation to the error.
func (e *VangoError) WithDetailf(format string, args ...any) *VangoError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VangoError) WithSuggestion(s string) *VangoError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *VangoError) Wrap(err error) *VangoError {
	e.Wrapped = err
	return e
}

// New creates a VangoError from a registered error code.
func New(code string) *VangoError {
	template, ok := registry[code]
	if !ok {
		return &VangoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VangoError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new VangoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VangoError {
	return &VangoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VangoError.
func FromError(err error, code string) *VangoError {
	if err == nil {
		return nil
	}
	var ve *VangoError
	if stderrors.As(err, &ve) {
		return ve
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, carries code.
func HasCode(err error, code string) bool {
	var ve *VangoError
	for err != nil {
		if stderrors.As(err, &ve) {
			if ve.Code == code {
				return true
			}
			err = ve.Wrapped
			continue
		}
		return false
	}
	return false
}
