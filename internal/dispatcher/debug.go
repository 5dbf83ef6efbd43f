package dispatcher

import (
	"slices"

	"github.com/dshills/rebind/internal/input/keymap"
)

// DebugFlags decides whether debug-only bindings are live. The dispatcher
// asks once per debug-only binding per frame.
type DebugFlags interface {
	DebugModeActiveFor(ctx keymap.ContextID) bool
}

// DebugFunc is a function adapter for DebugFlags.
type DebugFunc func(ctx keymap.ContextID) bool

// DebugModeActiveFor implements DebugFlags.
func (f DebugFunc) DebugModeActiveFor(ctx keymap.ContextID) bool {
	return f(ctx)
}

type noDebug struct{}

func (noDebug) DebugModeActiveFor(keymap.ContextID) bool { return false }

// NoDebug keeps every debug-only binding inert.
var NoDebug DebugFlags = noDebug{}

// MaxPlayers is the number of player slots tracked by PlayerDebugFlags.
const MaxPlayers = 11

// PlayerDebugFlags enables debug mappings only when every allocated player
// has asked for them, so one player cannot use debug keys in a multiplayer
// game without the others agreeing. On top of that each debug context can
// be switched on and off (the level editor only while it is open, the
// selection context only while something is selected).
type PlayerDebugFlags struct {
	wanted    [MaxPlayers]bool
	allocated [MaxPlayers]bool
	active    bool
	disabled  map[keymap.ContextID]bool
}

// NewPlayerDebugFlags creates flags with player 0 allocated and nobody
// asking for debug mode. The level editor and selection contexts start
// disabled.
func NewPlayerDebugFlags() *PlayerDebugFlags {
	f := &PlayerDebugFlags{
		disabled: map[keymap.ContextID]bool{
			keymap.ContextDebugLevelEditor:  true,
			keymap.ContextDebugHasSelection: true,
		},
	}
	f.allocated[0] = true
	f.update()
	return f
}

// SetAllocated marks a player slot as occupied or free.
func (f *PlayerDebugFlags) SetAllocated(player int, allocated bool) {
	if player < 0 || player >= MaxPlayers {
		return
	}
	f.allocated[player] = allocated
	f.update()
}

// SetWanted records whether a player asked for debug mappings.
func (f *PlayerDebugFlags) SetWanted(player int, want bool) {
	if player < 0 || player >= MaxPlayers {
		return
	}
	f.wanted[player] = want
	f.update()
}

// Wanted reports whether a player asked for debug mappings.
func (f *PlayerDebugFlags) Wanted(player int) bool {
	if player < 0 || player >= MaxPlayers {
		return false
	}
	return f.wanted[player]
}

// Players returns the allocated players whose wish equals want, in slot
// order. It backs messages like "players 1, 3 want debug mode".
func (f *PlayerDebugFlags) Players(want bool) []int {
	var out []int
	for n := range MaxPlayers {
		if f.allocated[n] && f.wanted[n] == want {
			out = append(out, n)
		}
	}
	return out
}

// SetContextEnabled switches debug bindings of one context on or off.
func (f *PlayerDebugFlags) SetContextEnabled(ctx keymap.ContextID, enabled bool) {
	if enabled {
		delete(f.disabled, ctx)
		return
	}
	f.disabled[ctx] = true
}

// Active reports whether all allocated players agreed to debug mode.
func (f *PlayerDebugFlags) Active() bool {
	return f.active
}

// DebugModeActiveFor implements DebugFlags.
func (f *PlayerDebugFlags) DebugModeActiveFor(ctx keymap.ContextID) bool {
	return f.active && !f.disabled[ctx]
}

// DisabledContexts returns the contexts currently switched off, sorted.
func (f *PlayerDebugFlags) DisabledContexts() []keymap.ContextID {
	out := make([]keymap.ContextID, 0, len(f.disabled))
	for id := range f.disabled {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (f *PlayerDebugFlags) update() {
	f.active = true
	for n := range MaxPlayers {
		f.active = f.active && (f.wanted[n] || !f.allocated[n])
	}
}
