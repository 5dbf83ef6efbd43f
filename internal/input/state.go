package input

import (
	"slices"

	"github.com/dshills/rebind/internal/input/key"
)

// State answers per-frame questions about physical inputs. Implementations
// report on input that has already been polled; they never block.
type State interface {
	// Pressed is true only on the frame the input went from up to down.
	Pressed(src Source) bool

	// Down is true on every frame the input is held.
	Down(src Source) bool

	// Released is true only on the frame the input went from down to up.
	Released(src Source) bool
}

// ModifierDown reports whether the modifier key mod, or its other-side
// twin, is held. KeyNone is always satisfied.
func ModifierDown(s State, mod key.Key) bool {
	if mod == key.KeyNone {
		return true
	}
	if s.Down(Key(mod)) {
		return true
	}
	if alt := key.Alternate(mod); alt != key.KeyNone {
		return s.Down(Key(alt))
	}
	return false
}

// AnyModifierDown reports whether any shift, ctrl, alt or meta key is held.
func AnyModifierDown(s State) bool {
	for _, k := range key.ModifierKeys {
		if s.Down(Key(k)) {
			return true
		}
	}
	return false
}

// Tracker is the polled input state for one frame. The owner feeds raw
// transitions with Press and Release and calls BeginFrame once per frame
// before dispatching.
//
// A release arriving in the same frame as its press is held back one frame
// so every press is observed as Down at least once. A press arriving after
// such a held-back release cancels it, so the input stays down. Wheel
// notches and Tap are released automatically at the next BeginFrame.
//
// Tracker is not safe for concurrent use; it belongs to the main loop.
type Tracker struct {
	down     map[Source]bool
	pressed  map[Source]bool
	released map[Source]bool
	deferred []Source
	// releasing marks inputs whose physical release is in deferred.
	releasing map[Source]bool
	metrics   *Metrics
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		down:      make(map[Source]bool),
		pressed:   make(map[Source]bool),
		released:  make(map[Source]bool),
		releasing: make(map[Source]bool),
	}
}

// SetMetrics attaches a metrics recorder. A nil value disables recording.
func (t *Tracker) SetMetrics(m *Metrics) {
	t.metrics = m
}

// BeginFrame ends the previous frame: edge flags are cleared and deferred
// releases are applied.
func (t *Tracker) BeginFrame() {
	clear(t.pressed)
	clear(t.released)
	clear(t.releasing)

	pending := t.deferred
	t.deferred = nil
	for _, src := range pending {
		t.release(src)
	}
}

// Press records src going down. Repeated presses while held are ignored,
// so terminal key repeat does not produce fresh press edges.
func (t *Tracker) Press(src Source) {
	if !src.IsBound() {
		return
	}
	t.record(src)
	if t.down[src] {
		if src.IsWheel() {
			t.pressed[src] = true
		}
		if t.releasing[src] {
			delete(t.releasing, src)
			t.deferred = slices.DeleteFunc(t.deferred, func(s Source) bool { return s == src })
		}
		return
	}
	t.down[src] = true
	t.pressed[src] = true
	if src.IsWheel() {
		t.deferred = append(t.deferred, src)
	}
}

// Release records src going up.
func (t *Tracker) Release(src Source) {
	if !t.down[src] {
		return
	}
	if t.pressed[src] {
		if !t.releasing[src] {
			t.releasing[src] = true
			t.deferred = append(t.deferred, src)
		}
		return
	}
	t.release(src)
}

// Tap presses src now and releases it at the next BeginFrame. Backends
// that only report key presses use it.
func (t *Tracker) Tap(src Source) {
	wasDown := t.down[src]
	t.Press(src)
	if !wasDown && !src.IsWheel() && t.down[src] {
		t.deferred = append(t.deferred, src)
	}
}

// Reset drops all held state, e.g. when the window loses focus.
func (t *Tracker) Reset() {
	clear(t.down)
	clear(t.pressed)
	clear(t.released)
	clear(t.releasing)
	t.deferred = nil
}

func (t *Tracker) release(src Source) {
	if !t.down[src] {
		return
	}
	delete(t.down, src)
	t.released[src] = true
}

func (t *Tracker) record(src Source) {
	if t.metrics == nil {
		return
	}
	if src.Kind == KindMouse {
		t.metrics.RecordMouseEvent()
	} else {
		t.metrics.RecordKeyEvent()
	}
}

// Pressed implements State.
func (t *Tracker) Pressed(src Source) bool {
	return t.pressed[src]
}

// Down implements State.
func (t *Tracker) Down(src Source) bool {
	return t.down[src]
}

// Released implements State.
func (t *Tracker) Released(src Source) bool {
	return t.released[src]
}
