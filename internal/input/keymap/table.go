package keymap

import (
	"fmt"
	"iter"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
)

// ChangeKind describes a table mutation.
type ChangeKind uint8

const (
	// ChangeAssigned means a binding received a new combo.
	ChangeAssigned ChangeKind = iota
	// ChangeCleared means a binding was set to unbound.
	ChangeCleared
	// ChangeReset means the whole table was reset to catalog defaults.
	ChangeReset
	// ChangeLoaded means the table was overlaid from a saved keymap.
	ChangeLoaded
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAssigned:
		return "assigned"
	case ChangeCleared:
		return "cleared"
	case ChangeReset:
		return "reset"
	case ChangeLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Change is delivered to table subscribers after each mutation.
type Change struct {
	Kind ChangeKind

	// Binding is the affected binding. Nil for ChangeReset and ChangeLoaded.
	Binding *Binding

	// Previous is the binding's combo before the change.
	Previous Combo

	// Cause is the binding whose assignment cleared this one, if any.
	Cause *Binding
}

type slotKey struct {
	action *Action
	slot   Slot
}

// Table is the mutable set of bindings. Bindings are stored in an arena
// keyed by (action, slot) and are never removed; clearing writes the
// unbound combo in place.
//
// Table is not safe for concurrent use. It is owned by the main loop.
type Table struct {
	contexts *ContextRegistry
	bindings []*Binding
	index    map[slotKey]*Binding

	version   uint64
	observers map[int]func(Change)
	nextObs   int
}

// NewTable creates an empty table using the given contexts for conflict
// resolution. A nil registry uses DefaultContexts.
func NewTable(contexts *ContextRegistry) *Table {
	if contexts == nil {
		contexts = DefaultContexts()
	}
	return &Table{
		contexts:  contexts,
		index:     make(map[slotKey]*Binding),
		observers: make(map[int]func(Change)),
	}
}

// NewDefaultTable creates a table populated with the catalog defaults.
func NewDefaultTable(catalog *Catalog, contexts *ContextRegistry) *Table {
	t := NewTable(contexts)
	t.PopulateDefaults(catalog)
	return t
}

// Contexts returns the registry used by the table.
func (t *Table) Contexts() *ContextRegistry {
	return t.contexts
}

// Version increases on every mutation. Consumers that cache a derived order
// compare it to decide when to rebuild.
func (t *Table) Version() uint64 {
	return t.version
}

// Len returns the number of bindings, bound or not.
func (t *Table) Len() int {
	return len(t.bindings)
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (t *Table) Subscribe(fn func(Change)) func() {
	id := t.nextObs
	t.nextObs++
	t.observers[id] = fn
	return func() {
		delete(t.observers, id)
	}
}

func (t *Table) notify(c Change) {
	for _, fn := range t.observers {
		fn(c)
	}
}

func (t *Table) touch() {
	t.version++
}

// PopulateDefaults creates a binding for every catalog default whose
// (action, slot) has no binding yet. Existing bindings are left alone, so
// calling it again is a no-op. It returns the number of bindings created.
func (t *Table) PopulateDefaults(catalog *Catalog) int {
	created := 0
	for a := range catalog.All() {
		for _, d := range a.Defaults {
			if _, ok := t.index[slotKey{a, d.Slot}]; ok {
				continue
			}
			t.create(a, d.Slot, d.Combo)
			created++
		}
	}
	if created > 0 {
		t.touch()
	}
	return created
}

func (t *Table) create(a *Action, slot Slot, combo Combo) *Binding {
	b := &Binding{
		Action: a,
		Slot:   slot,
		Combo:  combo,
		Status: a.Status,
		seq:    len(t.bindings),
	}
	t.bindings = append(t.bindings, b)
	t.index[slotKey{a, slot}] = b
	return b
}

// Get returns the binding for (action, slot).
func (t *Table) Get(a *Action, slot Slot) (*Binding, bool) {
	b, ok := t.index[slotKey{a, slot}]
	return b, ok
}

// Lookup returns the binding for an action name and slot.
func (t *Table) Lookup(name string, slot Slot) (*Binding, bool) {
	for _, b := range t.bindings {
		if b.Action.Name == name && b.Slot == slot {
			return b, true
		}
	}
	return nil, false
}

// ForAction returns the bindings of an action in slot order.
func (t *Table) ForAction(a *Action) []*Binding {
	var out []*Binding
	for slot := SlotPrimary; slot < SlotCount; slot++ {
		if b, ok := t.index[slotKey{a, slot}]; ok {
			out = append(out, b)
		}
	}
	return out
}

// All returns every binding in creation order.
func (t *Table) All() iter.Seq[*Binding] {
	return func(yield func(*Binding) bool) {
		for _, b := range t.bindings {
			if !yield(b) {
				return
			}
		}
	}
}

// Bindings returns a copy of the bindings in creation order.
func (t *Table) Bindings() []*Binding {
	out := make([]*Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Find returns the first bound binding using exactly (mod, in) in the given
// slot, or in any slot for SlotAny.
func (t *Table) Find(mod key.Key, in input.Source, slot Slot) (*Binding, bool) {
	for _, b := range t.bindings {
		if !b.IsBound() || !b.Combo.Matches(mod, in) {
			continue
		}
		if slot == SlotAny || b.Slot == slot {
			return b, true
		}
	}
	return nil, false
}

// isFixed reports whether b can never be displaced or reassigned.
func (t *Table) isFixed(b *Binding) bool {
	return b.Status.IsAlwaysActive() || t.contexts.IsAlwaysActive(b.Context())
}

// collides reports whether b holds (mod, in) for conflict purposes.
// Exclusive bindings own their input under every modifier.
func (t *Table) collides(b *Binding, mod key.Key, in input.Source) bool {
	if b.Status == StatusAlwaysActiveExclusive {
		return b.Combo.Input == in
	}
	return b.Combo.Matches(mod, in)
}

func (t *Table) conflicts(mod key.Key, in input.Source, ctx ContextID, skip *Binding) iter.Seq[*Binding] {
	return func(yield func(*Binding) bool) {
		if !in.IsBound() {
			return
		}
		for _, b := range t.bindings {
			if b == skip || !b.IsBound() {
				continue
			}
			if b.Status == StatusDebugOnly || b.Status == StatusHidden {
				continue
			}
			if !t.collides(b, mod, in) || !t.contexts.Overlaps(b.Context(), ctx) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

// FindConflicting yields every bound binding that uses (mod, in) in a
// context that can be active together with ctx. Debug-only and hidden
// bindings never conflict.
func (t *Table) FindConflicting(mod key.Key, in input.Source, ctx ContextID) iter.Seq[*Binding] {
	return t.conflicts(key.Canonical(mod), in, ctx, nil)
}

// RemoveConflicting clears every binding FindConflicting reports. If any of
// them is fixed nothing is cleared and a ConflictFixed error is returned.
// The cleared bindings are returned for user feedback.
func (t *Table) RemoveConflicting(mod key.Key, in input.Source, ctx ContextID) ([]*Binding, error) {
	return t.removeConflicting(key.Canonical(mod), in, ctx, nil)
}

func (t *Table) removeConflicting(mod key.Key, in input.Source, ctx ContextID, target *Binding) ([]*Binding, error) {
	var losers []*Binding
	for b := range t.conflicts(mod, in, ctx, target) {
		if t.isFixed(b) {
			ce := &ConflictError{
				Kind:   ConflictFixed,
				Combo:  NewCombo(mod, in, RulePressed),
				Holder: b,
			}
			if target != nil {
				ce.Action = target.Action.Name
			}
			return nil, ce
		}
		losers = append(losers, b)
	}
	for _, b := range losers {
		prev := b.Combo
		b.Combo = unboundCombo
		t.notify(Change{Kind: ChangeCleared, Binding: b, Previous: prev, Cause: target})
	}
	if len(losers) > 0 {
		t.touch()
	}
	return losers, nil
}

// Assign binds (mod, in, rule) to the given action slot, clearing any
// assignable bindings it collides with. On error the table is unchanged:
//
//   - ConflictFixed when the target is not assignable or a fixed binding
//     holds the input
//   - ConflictSameAction when another slot of the same action already holds
//     the combination
//   - ErrUnboundInput, ErrInvalidSlot or ErrInvalidModifier for bad
//     arguments
func (t *Table) Assign(a *Action, slot Slot, mod key.Key, in input.Source, rule Rule) (*Binding, error) {
	if slot >= SlotCount {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if !in.IsBound() {
		return nil, ErrUnboundInput
	}
	if mod != key.KeyNone && !mod.IsModifier() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModifier, mod.Name())
	}

	if !t.contexts.Has(a.Context) {
		return nil, fmt.Errorf("%w: %q (action %s)", ErrUnknownContext, a.Context, a.Name)
	}

	combo := NewCombo(mod, in, rule)

	if a.Status != StatusAssignable || t.contexts.IsAlwaysActive(a.Context) {
		return nil, &ConflictError{Kind: ConflictFixed, Action: a.Name, Combo: combo}
	}

	target := t.index[slotKey{a, slot}]
	for other := SlotPrimary; other < SlotCount; other++ {
		if other == slot {
			continue
		}
		if b, ok := t.index[slotKey{a, other}]; ok && b.IsBound() && b.Combo.Matches(combo.Modifier, in) {
			return nil, &ConflictError{Kind: ConflictSameAction, Action: a.Name, Combo: combo, Holder: b}
		}
	}

	if target == nil {
		// The target is created after conflict checks so a rejected
		// assignment leaves no trace.
		for b := range t.conflicts(combo.Modifier, in, a.Context, nil) {
			if t.isFixed(b) {
				return nil, &ConflictError{Kind: ConflictFixed, Action: a.Name, Combo: combo, Holder: b}
			}
		}
		target = t.create(a, slot, unboundCombo)
	}

	if _, err := t.removeConflicting(combo.Modifier, in, a.Context, target); err != nil {
		return nil, err
	}

	prev := target.Combo
	target.Combo = combo
	t.touch()
	t.notify(Change{Kind: ChangeAssigned, Binding: target, Previous: prev})
	return target, nil
}

// AssignByName is Assign for an action resolved through the catalog.
func (t *Table) AssignByName(catalog *Catalog, name string, slot Slot, mod key.Key, in input.Source, rule Rule) (*Binding, error) {
	a, ok := catalog.LookupByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return t.Assign(a, slot, mod, in, rule)
}

// Remove clears a binding without reassigning it. Fixed bindings cannot be
// cleared and yield a ConflictFixed error.
func (t *Table) Remove(b *Binding) error {
	if t.isFixed(b) {
		return &ConflictError{Kind: ConflictFixed, Action: b.Action.Name, Combo: b.Combo}
	}
	if !b.IsBound() {
		return nil
	}
	prev := b.Combo
	b.Combo = unboundCombo
	t.touch()
	t.notify(Change{Kind: ChangeCleared, Binding: b, Previous: prev})
	return nil
}

// ResetToDefaults returns every binding to its catalog default. Slots
// without a default become unbound. Missing defaults are recreated.
func (t *Table) ResetToDefaults(catalog *Catalog) {
	for _, b := range t.bindings {
		if def, ok := b.Action.DefaultFor(b.Slot); ok {
			b.Combo = def
		} else {
			b.Combo = unboundCombo
		}
	}
	t.PopulateDefaults(catalog)
	t.touch()
	t.notify(Change{Kind: ChangeReset})
}

// overlay writes a combo directly, bypassing conflict resolution. Used when
// restoring a saved keymap whose records were already consistent.
func (t *Table) overlay(a *Action, slot Slot, combo Combo) *Binding {
	b, ok := t.index[slotKey{a, slot}]
	if !ok {
		b = t.create(a, slot, combo)
	} else {
		b.Combo = combo
	}
	t.touch()
	return b
}

// Clone returns an independent copy of the table without subscribers.
func (t *Table) Clone() *Table {
	c := NewTable(t.contexts)
	for _, b := range t.bindings {
		nb := *b
		c.bindings = append(c.bindings, &nb)
		c.index[slotKey{nb.Action, nb.Slot}] = &nb
	}
	c.version = t.version
	return c
}

// Diff returns the bindings of t whose combo differs from the catalog
// default, in creation order.
func (t *Table) Diff() []*Binding {
	var out []*Binding
	for _, b := range t.bindings {
		if !b.IsDefault() {
			out = append(out, b)
		}
	}
	return out
}
