package remap

import (
	"fmt"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
	"github.com/dshills/rebind/internal/input/mouse"
)

// OutcomeCallback is called when a capture session ends.
type OutcomeCallback func(Outcome)

// Editor drives capture sessions for a table. At most one session is open
// at a time; selecting another binding replaces it.
//
// Editor belongs to the main loop and is not safe for concurrent use.
type Editor struct {
	table   *keymap.Table
	catalog *keymap.Catalog

	current *Session

	// callbacks are notified when a session ends.
	callbacks []OutcomeCallback
	selected  []func(*Session)
}

// NewEditor creates an editor for a table.
func NewEditor(table *keymap.Table, catalog *keymap.Catalog) *Editor {
	return &Editor{table: table, catalog: catalog}
}

// OnOutcome registers a callback for finished sessions.
func (e *Editor) OnOutcome(cb OutcomeCallback) {
	e.callbacks = append(e.callbacks, cb)
}

// OnSelect registers a callback for newly opened sessions. It runs after
// any previous session has been cancelled.
func (e *Editor) OnSelect(cb func(*Session)) {
	e.selected = append(e.selected, cb)
}

// Select opens a session for the named action slot. A session already in
// progress is cancelled first.
func (e *Editor) Select(name string, slot keymap.Slot) (*Session, error) {
	a, ok := e.catalog.LookupByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", keymap.ErrUnknownAction, name)
	}

	s, err := NewSession(e.table, a, slot)
	if err != nil {
		return nil, err
	}

	e.Cancel()
	s.onDone = e.finished
	e.current = s
	for _, cb := range e.selected {
		cb(s)
	}
	return s, nil
}

// Current returns the open session, or nil.
func (e *Editor) Current() *Session {
	return e.current
}

// Waiting reports whether a session is waiting for input.
func (e *Editor) Waiting() bool {
	return e.current != nil
}

// Cancel closes the open session without a capture.
func (e *Editor) Cancel() {
	if e.current != nil {
		e.current.Cancel()
	}
}

// OnCaptured forwards a captured combination to the open session. It
// returns false only when no session is open.
func (e *Editor) OnCaptured(mod key.Key, in input.Source) bool {
	if e.current == nil {
		return false
	}
	return e.current.OnCaptured(mod, in)
}

// Scan looks for a freshly pressed input in state and, if one is found
// while a session is open, captures it. Modifier keys alone never complete
// a capture; the first held modifier in alt, ctrl, shift, meta order is
// recorded with the key. Keyboard keys are checked before mouse buttons.
func (e *Editor) Scan(state input.State) bool {
	if e.current == nil {
		return false
	}

	in, ok := pressedInput(state)
	if !ok {
		return false
	}
	return e.OnCaptured(heldModifier(state), in)
}

func (e *Editor) finished(out Outcome) {
	e.current = nil
	for _, cb := range e.callbacks {
		cb(out)
	}
}

// captureModifiers is the order in which held modifiers are considered.
var captureModifiers = []key.Key{key.KeyLAlt, key.KeyLCtrl, key.KeyLShift, key.KeyLMeta}

func heldModifier(state input.State) key.Key {
	for _, m := range captureModifiers {
		if input.ModifierDown(state, m) {
			return m
		}
	}
	return key.KeyNone
}

func pressedInput(state input.State) (input.Source, bool) {
	for k := key.KeyNone + 1; k < key.KeyMaxScan; k++ {
		if k.IsModifier() {
			continue
		}
		if src := input.Key(k); state.Pressed(src) {
			return src, true
		}
	}
	for b := mouse.ButtonNone + 1; b < mouse.ButtonCount; b++ {
		if src := input.Mouse(b); state.Pressed(src) {
			return src, true
		}
	}
	return input.Unbound, false
}
