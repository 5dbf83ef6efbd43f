package dispatcher

import (
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
)

// AnyKeyHook is notified of every non-modifier key pressed in a frame,
// bound or not. It is how script callbacks learn about raw key presses.
type AnyKeyHook interface {
	// AnyKeyPressed receives the held modifier (KeyNone if none) and the
	// pressed key.
	AnyKeyPressed(mod key.Key, k key.Key)
}

// FireHook is notified after a binding's handler has run.
type FireHook interface {
	// Fired receives the binding that fired.
	Fired(b *keymap.Binding)
}

// AnyKeyFunc is a function adapter for AnyKeyHook.
type AnyKeyFunc func(mod key.Key, k key.Key)

// AnyKeyPressed implements AnyKeyHook.
func (f AnyKeyFunc) AnyKeyPressed(mod key.Key, k key.Key) {
	f(mod, k)
}

// FireFunc is a function adapter for FireHook.
type FireFunc func(b *keymap.Binding)

// Fired implements FireHook.
func (f FireFunc) Fired(b *keymap.Binding) {
	f(b)
}
