package keymap

import (
	"errors"
	"fmt"
)

// Errors returned by catalog and table operations.
var (
	// ErrDuplicateAction indicates two catalog entries share a stable name.
	ErrDuplicateAction = errors.New("duplicate action name")

	// ErrUnknownAction indicates a name that is not in the catalog.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownContext indicates an action refers to an unregistered context.
	ErrUnknownContext = errors.New("unknown context")

	// ErrUnknownHandler indicates a handler was bound to an ID no action uses.
	ErrUnknownHandler = errors.New("no action for handler")

	// ErrInvalidSlot indicates a slot outside PRIMARY..SECONDARY.
	ErrInvalidSlot = errors.New("invalid binding slot")

	// ErrUnboundInput indicates an assignment with no physical input. Use
	// Table.Remove to clear a binding instead.
	ErrUnboundInput = errors.New("cannot assign an unbound input")

	// ErrInvalidModifier indicates a binding modifier that is not a
	// modifier key.
	ErrInvalidModifier = errors.New("invalid modifier key")
)

// ConflictKind categorizes a rejected assignment.
type ConflictKind uint8

const (
	// ConflictFixed means the assignment would displace, or targets, a
	// binding that can never change. Shown to the user as "reserved".
	ConflictFixed ConflictKind = iota

	// ConflictSameAction means another slot of the same action already
	// holds the combination. Treated as a silent no-op.
	ConflictSameAction
)

// String returns a string representation of the conflict kind.
func (k ConflictKind) String() string {
	switch k {
	case ConflictFixed:
		return "fixed"
	case ConflictSameAction:
		return "same-action"
	default:
		return "unknown"
	}
}

// ConflictError is returned by Table.Assign when the assignment was
// rejected. The table is unchanged when it is returned.
type ConflictError struct {
	// Kind categorizes the rejection.
	Kind ConflictKind
	// Action is the name of the action being assigned.
	Action string
	// Combo is the requested combination.
	Combo Combo
	// Holder is the binding that blocked the assignment, if any.
	Holder *Binding
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	prefix := ""
	if e.Action != "" {
		prefix = e.Action + ": "
	}
	switch {
	case e.Kind == ConflictFixed && e.Holder != nil:
		return fmt.Sprintf("%s%s is reserved by %s", prefix, e.Combo, e.Holder.Action.Name)
	case e.Kind == ConflictFixed:
		return fmt.Sprintf("%scannot be reassigned", prefix)
	case e.Holder != nil:
		return fmt.Sprintf("%s%s already bound to %s slot", prefix, e.Combo, e.Holder.Slot)
	}
	return fmt.Sprintf("%s%s conflict on %s", prefix, e.Kind, e.Combo)
}

// IsConflict reports whether err is a ConflictError of the given kind.
func IsConflict(err error, kind ConflictKind) bool {
	var ce *ConflictError
	return errors.As(err, &ce) && ce.Kind == kind
}

// IOErrorKind categorizes a persistence failure.
type IOErrorKind uint8

const (
	// IONotFound means the keymap file does not exist. Expected on first
	// run; callers fall back to defaults.
	IONotFound IOErrorKind = iota

	// IOCorrupt means the file or a single record could not be parsed.
	IOCorrupt

	// IOWrite means the keymap could not be written.
	IOWrite
)

// String returns a string representation of the IO error kind.
func (k IOErrorKind) String() string {
	switch k {
	case IONotFound:
		return "not found"
	case IOCorrupt:
		return "corrupt"
	case IOWrite:
		return "write failed"
	default:
		return "unknown"
	}
}

// IOError describes a keymap persistence failure.
type IOError struct {
	// Kind categorizes the failure.
	Kind IOErrorKind
	// Path is the file involved, empty for readers and writers.
	Path string
	// Record is the 1-based record index for IOCorrupt on a single record,
	// zero when the whole file is affected.
	Record int
	// Line and Column locate a syntax error, when known.
	Line, Column int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	where := e.Path
	if where == "" {
		where = "keymap"
	}
	switch {
	case e.Record > 0:
		return fmt.Sprintf("%s: record %d %s: %v", where, e.Record, e.Kind, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s: %s at line %d, column %d: %v", where, e.Kind, e.Line, e.Column, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", where, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", where, e.Kind)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an IOError of kind IONotFound.
func IsNotFound(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe) && ioe.Kind == IONotFound
}
