package keymap

import (
	"fmt"
	"iter"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
)

// Handler is the capability invoked when a binding fires.
type Handler interface {
	Invoke()
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func()

// Invoke calls f.
func (f HandlerFunc) Invoke() {
	f()
}

// Default is one catalog-declared binding of an action.
type Default struct {
	Slot  Slot
	Combo Combo
}

// Action is a bindable capability. Actions are immutable once added to a
// Catalog except for the handler, which is bound at startup.
type Action struct {
	// Name is the stable identifier used in saved keymaps.
	Name string

	// DisplayName is the human readable label.
	DisplayName string

	// Context is the owning input context.
	Context ContextID

	// Status is copied to every binding created for the action.
	Status Status

	// HandlerID identifies the handler implementation. Several actions
	// may share one handler. Defaults to Name.
	HandlerID string

	// Defaults lists the catalog bindings in slot order.
	Defaults []Default

	// Unlisted actions work normally but are left out of user listings.
	Unlisted bool

	handler Handler
	index   int
}

// Handler returns the bound handler, or nil if none has been bound.
func (a *Action) Handler() Handler {
	return a.handler
}

// Invoke calls the bound handler. It reports false when no handler is bound.
func (a *Action) Invoke() bool {
	if a.handler == nil {
		return false
	}
	a.handler.Invoke()
	return true
}

// Index returns the insertion position of the action in its catalog.
func (a *Action) Index() int {
	return a.index
}

// DefaultFor returns the catalog default for a slot.
func (a *Action) DefaultFor(slot Slot) (Combo, bool) {
	for _, d := range a.Defaults {
		if d.Slot == slot {
			return d.Combo, true
		}
	}
	return Combo{}, false
}

// RuleFor picks the activation rule for a newly captured input: the rule of
// the default that uses the same input, else the primary default's rule,
// else RulePressed.
func (a *Action) RuleFor(in input.Source) Rule {
	for _, d := range a.Defaults {
		if d.Combo.Input == in {
			return d.Combo.Rule
		}
	}
	if c, ok := a.DefaultFor(SlotPrimary); ok {
		return c.Rule
	}
	return RulePressed
}

// IsListed reports whether the action should appear in user listings.
func (a *Action) IsListed() bool {
	return !a.Unlisted && a.Status != StatusHidden && a.Status != StatusDebugOnly
}

// Catalog is the append-only table of all bindable actions. It is built once
// at startup and read-only afterwards apart from handler binding.
type Catalog struct {
	actions   []*Action
	byName    map[string]*Action
	byHandler map[string][]*Action
}

// NewCatalog builds a catalog from the given actions, keeping their order.
// Names must be unique and every default must use a valid slot.
func NewCatalog(actions ...Action) (*Catalog, error) {
	c := &Catalog{
		actions:   make([]*Action, 0, len(actions)),
		byName:    make(map[string]*Action, len(actions)),
		byHandler: make(map[string][]*Action, len(actions)),
	}
	for i := range actions {
		a := actions[i]
		if a.Name == "" {
			return nil, fmt.Errorf("action %d: empty name", i)
		}
		if _, exists := c.byName[a.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAction, a.Name)
		}
		if a.HandlerID == "" {
			a.HandlerID = a.Name
		}
		if a.DisplayName == "" {
			a.DisplayName = a.Name
		}
		seen := make(map[Slot]bool, len(a.Defaults))
		defaults := make([]Default, 0, len(a.Defaults))
		for _, d := range a.Defaults {
			if d.Slot >= SlotCount {
				return nil, fmt.Errorf("action %s: %w: %d", a.Name, ErrInvalidSlot, d.Slot)
			}
			if seen[d.Slot] {
				return nil, fmt.Errorf("action %s: duplicate default for %s slot", a.Name, d.Slot)
			}
			if d.Combo.Modifier != key.KeyNone && !d.Combo.Modifier.IsModifier() {
				return nil, fmt.Errorf("action %s: %w: %s", a.Name, ErrInvalidModifier, d.Combo.Modifier.Name())
			}
			seen[d.Slot] = true
			defaults = append(defaults, Default{
				Slot:  d.Slot,
				Combo: NewCombo(d.Combo.Modifier, d.Combo.Input, d.Combo.Rule),
			})
		}
		a.Defaults = defaults
		a.index = i

		ptr := &a
		c.actions = append(c.actions, ptr)
		c.byName[a.Name] = ptr
		c.byHandler[a.HandlerID] = append(c.byHandler[a.HandlerID], ptr)
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on error. Use only for
// statically known action tables.
func MustCatalog(actions ...Action) *Catalog {
	c, err := NewCatalog(actions...)
	if err != nil {
		panic("keymap: " + err.Error())
	}
	return c
}

// Bind attaches a handler to every action using the given handler ID.
func (c *Catalog) Bind(handlerID string, h Handler) error {
	actions, ok := c.byHandler[handlerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandler, handlerID)
	}
	for _, a := range actions {
		a.handler = h
	}
	return nil
}

// BindFunc is shorthand for Bind with a HandlerFunc.
func (c *Catalog) BindFunc(handlerID string, fn func()) error {
	return c.Bind(handlerID, HandlerFunc(fn))
}

// LookupByName resolves a stable action name.
func (c *Catalog) LookupByName(name string) (*Action, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// LookupByHandler returns the first action, in catalog order, that uses the
// given handler ID.
func (c *Catalog) LookupByHandler(handlerID string) (*Action, bool) {
	actions := c.byHandler[handlerID]
	if len(actions) == 0 {
		return nil, false
	}
	return actions[0], true
}

// All returns every action in insertion order. The sequence can be ranged
// over any number of times.
func (c *Catalog) All() iter.Seq[*Action] {
	return func(yield func(*Action) bool) {
		for _, a := range c.actions {
			if !yield(a) {
				return
			}
		}
	}
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	return len(c.actions)
}

// Unbound returns the handler IDs that have no handler attached, in
// catalog order.
func (c *Catalog) Unbound() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, a := range c.actions {
		if a.handler == nil && !seen[a.HandlerID] {
			seen[a.HandlerID] = true
			ids = append(ids, a.HandlerID)
		}
	}
	return ids
}
