package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrInitialization indicates a component failed to start.
	ErrInitialization = errors.New("initialization failed")
)

// Severity says whether an error stops the application.
type Severity int

const (
	// SeverityWarning errors are logged and the frame loop continues.
	SeverityWarning Severity = iota
	// SeverityFatal errors end Run.
	SeverityFatal
)

func (s Severity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}
	return "warning"
}

// Error is an error raised by one component during one operation.
type Error struct {
	Component string // e.g. "keymap", "journal", "backend"
	Op        string // e.g. "reload", "save"
	Severity  Severity
	Err       error
}

// NewError creates a warning-level Error.
func NewError(component, op string, err error) *Error {
	return &Error{Component: component, Op: op, Err: err}
}

// Fatal returns a copy of the error marked fatal.
func (e *Error) Fatal() *Error {
	if e == nil {
		return nil
	}
	c := *e
	c.Severity = SeverityFatal
	return &c
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Component
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsFatal reports whether err, or an Error it wraps, is fatal.
func IsFatal(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Severity == SeverityFatal
	}
	return false
}

// RecoveredPanicError wraps a panic recovered in the frame loop.
type RecoveredPanicError struct {
	Value any
	Stack string
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorList collects errors from shutting down several components.
// It is not safe for concurrent use.
type ErrorList struct {
	errors []error
}

// Add adds an error to the list. Nil errors are ignored.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errors = append(e.errors, err)
	}
}

// Len returns the number of errors.
func (e *ErrorList) Len() int {
	return len(e.errors)
}

// Errors returns a copy of the collected errors.
func (e *ErrorList) Errors() []error {
	if e == nil || len(e.errors) == 0 {
		return nil
	}
	return append([]error(nil), e.errors...)
}

func (e *ErrorList) Error() string {
	switch {
	case e == nil || len(e.errors) == 0:
		return ""
	case len(e.errors) == 1:
		return e.errors[0].Error()
	default:
		return fmt.Sprintf("%d errors: first: %v", len(e.errors), e.errors[0])
	}
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.Errors()
}

// AsError returns nil if the list is empty, otherwise the list itself.
func (e *ErrorList) AsError() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}
