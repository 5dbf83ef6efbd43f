package key

import "strings"

// Modifier is a set of modifier families (shift, ctrl, alt, meta),
// independent of which side of the keyboard the key was on.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates either Shift key.
	ModShift Modifier = 1 << (iota - 1)

	// ModCtrl indicates either Control key.
	ModCtrl

	// ModAlt indicates either Alt key.
	ModAlt

	// ModMeta indicates either Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// Keys returns the left and right physical keys of a single modifier
// family. It returns KeyNone twice for an empty or combined set.
func (m Modifier) Keys() (left, right Key) {
	switch m {
	case ModShift:
		return KeyLShift, KeyRShift
	case ModCtrl:
		return KeyLCtrl, KeyRCtrl
	case ModAlt:
		return KeyLAlt, KeyRAlt
	case ModMeta:
		return KeyLMeta, KeyRMeta
	}
	return KeyNone, KeyNone
}

// Family returns the modifier family a modifier key belongs to, or ModNone
// for keys that are not modifiers.
func (k Key) Family() Modifier {
	switch k {
	case KeyLShift, KeyRShift:
		return ModShift
	case KeyLCtrl, KeyRCtrl:
		return ModCtrl
	case KeyLAlt, KeyRAlt:
		return ModAlt
	case KeyLMeta, KeyRMeta:
		return ModMeta
	}
	return ModNone
}

// Canonical maps a right-hand modifier key to its left-hand twin. Any
// other key is returned unchanged. Stored bindings only ever hold the
// canonical form, so RCtrl+1 and LCtrl+1 are the same binding.
func Canonical(k Key) Key {
	if fam := k.Family(); fam != ModNone {
		left, _ := fam.Keys()
		return left
	}
	return k
}

// Alternate returns the other-side twin of a modifier key (LCtrl <-> RCtrl),
// or KeyNone when k is not a modifier.
func Alternate(k Key) Key {
	left, right := k.Family().Keys()
	switch k {
	case left:
		return right
	case right:
		return left
	}
	return KeyNone
}

// ModifierKeys lists every physical modifier key in canonical-first order.
var ModifierKeys = []Key{
	KeyLShift, KeyRShift,
	KeyLCtrl, KeyRCtrl,
	KeyLAlt, KeyRAlt,
	KeyLMeta, KeyRMeta,
}
