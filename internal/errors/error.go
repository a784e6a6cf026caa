package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig    Category = "config"
	CategoryRoutes    Category = "routes"
	CategoryDiscovery Category = "discovery"
	CategoryCodegen   Category = "codegen"
	CategoryOutput    Category = "output"
	CategoryCLI       Category = "cli"
)

// Re-exported from cockroachdb/errors.
var (
	Is    = crdb.Is
	As    = crdb.As
	Wrapf = crdb.Wrapf
)

// Location points at the input that caused an error.
type Location struct {
	// File is the file the error refers to.
	File string

	// Node is a path to the offending element inside the file,
	// e.g. "routes[0].routes[2]".
	Node string
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Node != "" {
		return fmt.Sprintf("%s (%s)", l.File, l.Node)
	}
	return l.File
}

// Error is a structured error with a code, location and suggestion.
type Error struct {
	// Code is a unique error identifier (e.g., "E150").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the input location that caused the error.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Recoverable reports whether retrying without changing inputs may succeed.
	Recoverable bool

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds an input location to the error.
func (e *Error) WithLocation(file, node string) *Error {
	e.Location = &Location{File: file, Node: node}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap attaches err as the cause, recording a stack trace.
func (e *Error) Wrap(err error) *Error {
	if err != nil {
		e.Wrapped = crdb.WithStackDepth(err, 1)
	}
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:        code,
		Category:    template.Category,
		Message:     template.Message,
		Detail:      template.Detail,
		Recoverable: template.Recoverable,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
// An err that already contains an *Error is returned as that *Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if crdb.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// IsRecoverable reports whether err contains a recoverable *Error.
func IsRecoverable(err error) bool {
	var e *Error
	if crdb.As(err, &e) {
		return e.Recoverable
	}
	return false
}
