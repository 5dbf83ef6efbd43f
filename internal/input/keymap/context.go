package keymap

import (
	"fmt"
	"slices"
)

// ContextID identifies an input context.
type ContextID string

// Built-in contexts.
const (
	ContextAlwaysActive      ContextID = "always_active"
	ContextBackground        ContextID = "background"
	ContextGameplay          ContextID = "gameplay"
	ContextRadar             ContextID = "radar"
	ContextDebugMisc         ContextID = "debug_misc"
	ContextDebugLevelEditor  ContextID = "debug_level_editor"
	ContextDebugHasSelection ContextID = "debug_has_selection"
)

// Context is a named scope that gates which bindings may fire.
type Context struct {
	// ID is the stable identifier.
	ID ContextID

	// Name is the display name.
	Name string

	// AlwaysActive contexts are live in every state and overlap every
	// other context. Their bindings can never be displaced.
	AlwaysActive bool

	// Priority orders contexts for display and dispatch. Higher wins.
	Priority int

	// Debug contexts are only live while debug mode is enabled for them.
	Debug bool

	// Excludes lists contexts that are never active at the same time as
	// this one. Bindings in mutually exclusive contexts do not conflict.
	Excludes []ContextID
}

// ContextRegistry is the static table of input contexts.
type ContextRegistry struct {
	contexts map[ContextID]Context
	order    []ContextID
}

// NewContextRegistry builds a registry. IDs must be unique.
func NewContextRegistry(contexts ...Context) (*ContextRegistry, error) {
	r := &ContextRegistry{
		contexts: make(map[ContextID]Context, len(contexts)),
		order:    make([]ContextID, 0, len(contexts)),
	}
	for _, ctx := range contexts {
		if ctx.ID == "" {
			return nil, fmt.Errorf("context with empty id")
		}
		if _, exists := r.contexts[ctx.ID]; exists {
			return nil, fmt.Errorf("duplicate context %q", ctx.ID)
		}
		if ctx.Name == "" {
			ctx.Name = string(ctx.ID)
		}
		r.contexts[ctx.ID] = ctx
		r.order = append(r.order, ctx.ID)
	}
	return r, nil
}

// DefaultContexts returns the built-in context registry. The radar context
// is only live while the pointer is over the radar and then takes precedence
// over gameplay, so the two may share inputs.
func DefaultContexts() *ContextRegistry {
	r, err := NewContextRegistry(
		Context{ID: ContextAlwaysActive, Name: "Always Active", AlwaysActive: true, Priority: 100},
		Context{ID: ContextDebugHasSelection, Name: "Debug (Selection)", Priority: 60, Debug: true},
		Context{ID: ContextDebugLevelEditor, Name: "Level Editor", Priority: 50, Debug: true},
		Context{ID: ContextDebugMisc, Name: "Debug", Priority: 40, Debug: true},
		Context{ID: ContextRadar, Name: "Radar", Priority: 30, Excludes: []ContextID{ContextGameplay}},
		Context{ID: ContextGameplay, Name: "Gameplay", Priority: 20},
		Context{ID: ContextBackground, Name: "Background", Priority: 10},
	)
	if err != nil {
		panic("keymap: " + err.Error())
	}
	return r
}

// Get returns the context with the given ID.
func (r *ContextRegistry) Get(id ContextID) (Context, bool) {
	ctx, ok := r.contexts[id]
	return ctx, ok
}

// IsAlwaysActive reports whether the context is always active. Unknown
// contexts are not.
func (r *ContextRegistry) IsAlwaysActive(id ContextID) bool {
	return r.contexts[id].AlwaysActive
}

// IsDebug reports whether the context is gated by debug mode.
func (r *ContextRegistry) IsDebug(id ContextID) bool {
	return r.contexts[id].Debug
}

// Priority returns the priority of a context, zero for unknown contexts.
func (r *ContextRegistry) Priority(id ContextID) int {
	return r.contexts[id].Priority
}

// Overlaps reports whether bindings in a and b could be live at the same
// time. A context overlaps itself and always-active contexts overlap
// everything. Other pairs overlap unless either excludes the other.
func (r *ContextRegistry) Overlaps(a, b ContextID) bool {
	if a == b {
		return true
	}
	ca, cb := r.contexts[a], r.contexts[b]
	if ca.AlwaysActive || cb.AlwaysActive {
		return true
	}
	if slices.Contains(ca.Excludes, b) || slices.Contains(cb.Excludes, a) {
		return false
	}
	return true
}

// Has reports whether the context is registered.
func (r *ContextRegistry) Has(id ContextID) bool {
	_, ok := r.contexts[id]
	return ok
}

// Check reports the first catalog action whose context is not registered.
// Such an action would have no priority and overlap everything.
func (r *ContextRegistry) Check(catalog *Catalog) error {
	for a := range catalog.All() {
		if !r.Has(a.Context) {
			return fmt.Errorf("%w: %q (action %s)", ErrUnknownContext, a.Context, a.Name)
		}
	}
	return nil
}

// All returns the contexts in registration order.
func (r *ContextRegistry) All() []Context {
	out := make([]Context, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.contexts[id])
	}
	return out
}
