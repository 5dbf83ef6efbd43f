package keymap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
)

// Slot is one of the independent binding channels of an action.
type Slot uint8

const (
	// SlotPrimary is the main binding shown first in the UI.
	SlotPrimary Slot = iota
	// SlotSecondary is the alternate binding, often a mouse equivalent.
	SlotSecondary

	// SlotCount is the number of slots per action.
	SlotCount

	// SlotAny matches every slot in Table.Find.
	SlotAny Slot = 0xff
)

// String returns the name used for the slot in saved keymaps.
func (s Slot) String() string {
	switch s {
	case SlotPrimary:
		return "primary"
	case SlotSecondary:
		return "secondary"
	case SlotAny:
		return "any"
	default:
		return fmt.Sprintf("slot_%d", s)
	}
}

// SlotFromName parses a saved slot name. The second result is false for
// unknown names, in which case SlotPrimary is returned.
func SlotFromName(name string) (Slot, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "primary":
		return SlotPrimary, true
	case "secondary":
		return SlotSecondary, true
	}
	return SlotPrimary, false
}

// Rule states when, relative to the input's transition, a binding fires.
type Rule uint8

const (
	// RulePressed fires on the frame the input goes down.
	RulePressed Rule = iota
	// RuleDown fires every frame the input is held.
	RuleDown
	// RuleReleased fires on the frame the input goes up.
	RuleReleased
)

// String returns the name used for the rule in saved keymaps.
func (r Rule) String() string {
	switch r {
	case RulePressed:
		return "pressed"
	case RuleDown:
		return "down"
	case RuleReleased:
		return "released"
	default:
		return fmt.Sprintf("rule_%d", r)
	}
}

// RuleFromName parses a saved rule name.
func RuleFromName(name string) (Rule, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pressed", "press", "on_press":
		return RulePressed, true
	case "down", "hold", "on_hold":
		return RuleDown, true
	case "released", "release", "on_release":
		return RuleReleased, true
	}
	return RulePressed, false
}

// Status controls whether a binding can be remapped and when it is evaluated.
type Status uint8

const (
	// StatusAssignable bindings are user-remappable and take part in
	// conflict resolution.
	StatusAssignable Status = iota

	// StatusAlwaysActiveSilent bindings can never be remapped or displaced
	// and are evaluated in every context.
	StatusAlwaysActiveSilent

	// StatusAlwaysActiveExclusive bindings behave like silent ones and also
	// own their input outright: no other binding may use it with any
	// modifier.
	StatusAlwaysActiveExclusive

	// StatusDebugOnly bindings are evaluated only while debug mode is
	// active for their context.
	StatusDebugOnly

	// StatusHidden bindings are kept for compatibility but never shown or
	// evaluated.
	StatusHidden
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusAssignable:
		return "assignable"
	case StatusAlwaysActiveSilent:
		return "always-active"
	case StatusAlwaysActiveExclusive:
		return "always-active-exclusive"
	case StatusDebugOnly:
		return "debug-only"
	case StatusHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// IsAlwaysActive reports whether the status is one of the fixed kinds.
func (s Status) IsAlwaysActive() bool {
	return s == StatusAlwaysActiveSilent || s == StatusAlwaysActiveExclusive
}

// Combo is the physical trigger of a binding: an optional modifier key, an
// input and an activation rule.
type Combo struct {
	// Modifier is key.KeyNone or a canonical (left-hand) modifier key.
	Modifier key.Key
	// Input is the triggering key or button; input.Unbound when cleared.
	Input input.Source
	// Rule is when the combo fires.
	Rule Rule
}

// NewCombo builds a combo, canonicalizing the modifier. Wheel inputs are
// forced to RulePressed because the wheel has no held state.
func NewCombo(mod key.Key, in input.Source, rule Rule) Combo {
	if in.IsWheel() {
		rule = RulePressed
	}
	return Combo{Modifier: key.Canonical(mod), Input: in, Rule: rule}
}

// Press is shorthand for an unmodified key combo firing on press.
func Press(k key.Key) Combo {
	return NewCombo(key.KeyNone, input.Key(k), RulePressed)
}

// Hold is shorthand for an unmodified key combo firing while held.
func Hold(k key.Key) Combo {
	return NewCombo(key.KeyNone, input.Key(k), RuleDown)
}

// With is shorthand for a modifier+key combo firing on press.
func With(mod, k key.Key) Combo {
	return NewCombo(mod, input.Key(k), RulePressed)
}

// unboundCombo is the value of a cleared binding.
var unboundCombo = Combo{Input: input.Unbound}

// IsBound reports whether the combo has a real input.
func (c Combo) IsBound() bool {
	return c.Input.IsBound()
}

// Matches reports whether the combo uses the given modifier and input.
// The rule is not compared: two bindings on the same keys conflict no
// matter when they fire.
func (c Combo) Matches(mod key.Key, in input.Source) bool {
	return c.Modifier == key.Canonical(mod) && c.Input == in
}

// String returns a display form like "Ctrl+1" or "Wheel Up".
func (c Combo) String() string {
	if !c.IsBound() {
		return input.Unbound.String()
	}
	if c.Modifier == key.KeyNone {
		return c.Input.String()
	}
	return c.Modifier.String() + "+" + c.Input.String()
}

// Binding is the live association between one (action, slot) pair and a
// combo. Bindings are never removed from a Table; clearing one writes the
// unbound combo in place so (action, slot) identity is stable.
type Binding struct {
	// Action is the catalog entry this binding triggers.
	Action *Action

	// Slot is the binding channel within the action.
	Slot Slot

	// Combo is the current trigger.
	Combo Combo

	// Status is copied from the action when the binding is created.
	Status Status

	// LastFired is set by the dispatcher each time the binding fires.
	LastFired time.Time

	// seq is the creation order, used as the final sort tie-break.
	seq int
}

// IsBound reports whether the binding currently has an input.
func (b *Binding) IsBound() bool {
	return b.Combo.IsBound()
}

// Context returns the owning context of the binding's action.
func (b *Binding) Context() ContextID {
	return b.Action.Context
}

// HasModifier reports whether the binding requires a modifier key.
func (b *Binding) HasModifier() bool {
	return b.Combo.Modifier != key.KeyNone
}

// IsDefault reports whether the binding equals the action's catalog
// default for its slot. A slot without a default is "default" when unbound.
func (b *Binding) IsDefault() bool {
	def, ok := b.Action.DefaultFor(b.Slot)
	if !ok {
		return !b.IsBound()
	}
	return b.Combo == def
}

// Seq returns the creation order of the binding within its table.
func (b *Binding) Seq() int {
	return b.seq
}

// String returns a short description like "ToggleRadar[primary]=Shift+F7".
func (b *Binding) String() string {
	return fmt.Sprintf("%s[%s]=%s", b.Action.Name, b.Slot, b.Combo)
}

// BindingGroup collects bindings of one context for display.
type BindingGroup struct {
	Context  ContextID
	Bindings []*Binding
}

// GroupByContext groups bindings by their action's context, keeping the
// first-seen order of contexts and of bindings within each group.
func GroupByContext(bindings []*Binding) []BindingGroup {
	groupMap := make(map[ContextID][]*Binding)
	order := make([]ContextID, 0)

	for _, b := range bindings {
		ctx := b.Context()
		if _, exists := groupMap[ctx]; !exists {
			order = append(order, ctx)
		}
		groupMap[ctx] = append(groupMap[ctx], b)
	}

	result := make([]BindingGroup, 0, len(order))
	for _, ctx := range order {
		result = append(result, BindingGroup{
			Context:  ctx,
			Bindings: groupMap[ctx],
		})
	}
	return result
}
