package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

// Kind identifies which physical device a Source belongs to.
type Kind uint8

const (
	// KindKeyboard is a keyboard key; Code holds a key.Key.
	KindKeyboard Kind = iota
	// KindMouse is a mouse button or wheel notch; Code holds a mouse.Button.
	KindMouse
)

// String returns the name used for the kind in saved keymaps.
func (k Kind) String() string {
	switch k {
	case KindKeyboard:
		return "default"
	case KindMouse:
		return "mouse_key"
	default:
		return fmt.Sprintf("kind_%d", k)
	}
}

// KindFromName parses a saved source kind. The second result is false for
// unknown names, in which case KindKeyboard is returned.
func KindFromName(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "default", "key", "keyboard":
		return KindKeyboard, true
	case "mouse_key", "mouse":
		return KindMouse, true
	}
	return KindKeyboard, false
}

// Source is one physical input: a keyboard key or a mouse button.
// It is a comparable value and can be used directly as a map key.
type Source struct {
	Kind Kind
	Code uint16
}

// Unbound is the sentinel input of a cleared binding.
var Unbound = Source{Kind: KindKeyboard, Code: uint16(key.KeyMaxScan)}

// ErrUnknownInput is returned when an input name cannot be resolved.
var ErrUnknownInput = errors.New("unknown input")

// Key returns the Source for a keyboard key.
func Key(k key.Key) Source {
	return Source{Kind: KindKeyboard, Code: uint16(k)}
}

// Mouse returns the Source for a mouse button.
func Mouse(b mouse.Button) Source {
	return Source{Kind: KindMouse, Code: uint16(b)}
}

// Equal reports whether s and other are the same physical input.
func (s Source) Equal(other Source) bool {
	return s == other
}

// Hash returns a dense integer identity for the source.
func (s Source) Hash() uint32 {
	return uint32(s.Kind)<<16 | uint32(s.Code)
}

// AsKey returns the keyboard key if s is a keyboard source.
func (s Source) AsKey() (key.Key, bool) {
	if s.Kind != KindKeyboard {
		return key.KeyNone, false
	}
	return key.Key(s.Code), true
}

// AsMouse returns the mouse button if s is a mouse source.
func (s Source) AsMouse() (mouse.Button, bool) {
	if s.Kind != KindMouse {
		return mouse.ButtonNone, false
	}
	return mouse.Button(s.Code), true
}

// Is reports whether s is the keyboard key k.
func (s Source) Is(k key.Key) bool {
	return s.Kind == KindKeyboard && key.Key(s.Code) == k
}

// IsBound reports whether s refers to a real input. The Unbound sentinel
// and the zero Source are both unbound.
func (s Source) IsBound() bool {
	switch s.Kind {
	case KindKeyboard:
		return key.Key(s.Code).IsValid()
	case KindMouse:
		return mouse.Button(s.Code).IsValid()
	}
	return false
}

// IsWheel reports whether s is a mouse wheel notch.
func (s Source) IsWheel() bool {
	b, ok := s.AsMouse()
	return ok && b.IsWheel()
}

// Name returns the stable identifier of the input within its kind,
// e.g. "f7" or "wheel_up".
func (s Source) Name() string {
	if !s.IsBound() {
		return key.KeyMaxScan.Name()
	}
	if b, ok := s.AsMouse(); ok {
		return b.String()
	}
	return key.Key(s.Code).Name()
}

// String returns a display label like "F7" or "Wheel Up".
func (s Source) String() string {
	if !s.IsBound() {
		return key.KeyMaxScan.String()
	}
	if b, ok := s.AsMouse(); ok {
		return b.Label()
	}
	return key.Key(s.Code).String()
}

// ParseSource resolves a (kind, name) pair as written in a saved keymap.
// The name "unbound" yields the Unbound sentinel for either kind.
func ParseSource(kind Kind, name string) (Source, error) {
	if strings.EqualFold(strings.TrimSpace(name), key.KeyMaxScan.Name()) {
		return Unbound, nil
	}
	switch kind {
	case KindKeyboard:
		k := key.KeyFromName(name)
		if !k.IsValid() {
			return Unbound, fmt.Errorf("%w: key %q", ErrUnknownInput, name)
		}
		return Key(k), nil
	case KindMouse:
		b := mouse.ButtonFromName(name)
		if !b.IsValid() {
			return Unbound, fmt.Errorf("%w: mouse button %q", ErrUnknownInput, name)
		}
		return Mouse(b), nil
	}
	return Unbound, fmt.Errorf("%w: kind %v", ErrUnknownInput, kind)
}

// ParseInput resolves a single name, trying keyboard keys first and then
// mouse buttons. It is used for user-typed inputs such as "f7" or
// "wheel_up". A "mouse:" prefix forces a mouse button, as in "mouse:left".
func ParseInput(name string) (Source, error) {
	if rest, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(name)), "mouse:"); ok {
		return ParseSource(KindMouse, rest)
	}
	if src, err := ParseSource(KindKeyboard, name); err == nil {
		return src, nil
	}
	if src, err := ParseSource(KindMouse, name); err == nil {
		return src, nil
	}
	return Unbound, fmt.Errorf("%w: %q", ErrUnknownInput, name)
}
