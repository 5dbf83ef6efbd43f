package remap

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
)

// Capture errors.
var (
	// ErrNotAssignable means the selected action cannot be remapped.
	ErrNotAssignable = errors.New("remap: action is not assignable")

	// ErrNoSession means a capture arrived while nothing was selected.
	ErrNoSession = errors.New("remap: no capture in progress")
)

// Outcome describes how a capture session ended.
type Outcome struct {
	// SessionID identifies the session. Journal entries written for the
	// same capture share it.
	SessionID uuid.UUID

	// Action and Slot are the binding being edited.
	Action string
	Slot   keymap.Slot

	// Combo is what was captured. Previous is what the slot held before.
	Combo    keymap.Combo
	Previous keymap.Combo

	// Cleared lists bindings that lost their combo to this assignment.
	Cleared []*keymap.Binding

	// Cancelled is set when the session ended without a capture.
	Cancelled bool

	// Err is the assignment error, typically a *keymap.ConflictError.
	Err error

	Started  time.Time
	Finished time.Time
}

// Applied reports whether the capture changed the table.
func (o Outcome) Applied() bool {
	return !o.Cancelled && o.Err == nil
}

// Reserved reports whether the capture was rejected because the combo
// belongs to a fixed binding.
func (o Outcome) Reserved() bool {
	return keymap.IsConflict(o.Err, keymap.ConflictFixed)
}

// Session is one "press a key for this binding" interaction.
type Session struct {
	id      uuid.UUID
	table   *keymap.Table
	action  *keymap.Action
	slot    keymap.Slot
	started time.Time

	done    bool
	outcome Outcome
	onDone  func(Outcome)
}

// NewSession starts capturing input for one action slot. Only assignable
// actions can be selected.
func NewSession(table *keymap.Table, a *keymap.Action, slot keymap.Slot) (*Session, error) {
	if a.Status != keymap.StatusAssignable || table.Contexts().IsAlwaysActive(a.Context) {
		return nil, fmt.Errorf("%w: %s", ErrNotAssignable, a.Name)
	}
	if slot >= keymap.SlotCount {
		return nil, fmt.Errorf("%w: %d", keymap.ErrInvalidSlot, slot)
	}
	return &Session{
		id:      uuid.New(),
		table:   table,
		action:  a,
		slot:    slot,
		started: time.Now(),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Action returns the action being edited.
func (s *Session) Action() *keymap.Action {
	return s.action
}

// Slot returns the slot being edited.
func (s *Session) Slot() keymap.Slot {
	return s.slot
}

// Done reports whether the session has ended.
func (s *Session) Done() bool {
	return s.done
}

// Outcome returns how the session ended. It is the zero value while the
// session is still waiting.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// OnCaptured assigns the captured combination to the selected slot. The
// activation rule is taken from the action's defaults. It always returns
// true: the session closes whether the assignment succeeded or was
// rejected.
func (s *Session) OnCaptured(mod key.Key, in input.Source) bool {
	if s.done {
		return true
	}

	out := s.newOutcome()
	if prev, ok := s.table.Get(s.action, s.slot); ok {
		out.Previous = prev.Combo
	} else {
		out.Previous = keymap.Combo{Input: input.Unbound}
	}

	unsubscribe := s.table.Subscribe(func(c keymap.Change) {
		if c.Kind == keymap.ChangeCleared {
			out.Cleared = append(out.Cleared, c.Binding)
		}
	})
	b, err := s.table.Assign(s.action, s.slot, mod, in, s.action.RuleFor(in))
	unsubscribe()

	if err != nil {
		out.Err = err
		out.Combo = keymap.NewCombo(mod, in, s.action.RuleFor(in))
		out.Cleared = nil
	} else {
		out.Combo = b.Combo
	}

	s.finish(out)
	return true
}

// Cancel ends the session without touching the table.
func (s *Session) Cancel() {
	if s.done {
		return
	}
	out := s.newOutcome()
	out.Cancelled = true
	s.finish(out)
}

func (s *Session) newOutcome() Outcome {
	return Outcome{
		SessionID: s.id,
		Action:    s.action.Name,
		Slot:      s.slot,
		Started:   s.started,
	}
}

func (s *Session) finish(out Outcome) {
	out.Finished = time.Now()
	s.outcome = out
	s.done = true
	if s.onDone != nil {
		s.onDone(out)
	}
}
