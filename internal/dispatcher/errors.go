package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrNilTable indicates the dispatcher was created without a table.
	ErrNilTable = errors.New("dispatcher: nil binding table")

	// ErrPanic indicates a handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)

// PanicError describes a recovered handler panic.
type PanicError struct {
	// Action is the name of the action whose handler panicked.
	Action string

	// Value is the recovered value.
	Value any

	// Stack is the goroutine stack at the point of recovery.
	Stack []byte
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic for %s: %v", e.Action, e.Value)
}

// Unwrap returns ErrPanic.
func (e *PanicError) Unwrap() error {
	return ErrPanic
}
