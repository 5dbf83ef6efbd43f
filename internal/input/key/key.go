package key

import (
	"fmt"
	"strings"
)

// Key is a physical keyboard key, identified by position rather than by the
// character it produces. Layout-dependent text input is not handled here.
type Key uint16

const (
	// KeyNone is the absence of a key. As a binding modifier it means
	// "no modifier required".
	KeyNone Key = iota

	// Editing and control keys
	KeyEscape
	KeyReturn
	KeyTab
	KeyBackspace
	KeySpace
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Lock and system keys
	KeyPause
	KeyPrintScreen
	KeyScrollLock
	KeyNumLock
	KeyCapsLock

	// Digit row
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Punctuation
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyBackquote
	KeyComma
	KeyFullStop
	KeySlash

	// Keypad
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPPlus
	KeyKPMinus
	KeyKPStar
	KeyKPSlash
	KeyKPFullStop
	KeyKPEnter

	// Modifier keys. Left and right variants are distinct physical keys;
	// bindings only ever store the left one (see Canonical).
	KeyLShift
	KeyRShift
	KeyLCtrl
	KeyRCtrl
	KeyLAlt
	KeyRAlt
	KeyLMeta
	KeyRMeta

	// KeyMaxScan is one past the last real key. An input bound to it is
	// considered cleared.
	KeyMaxScan
)

// keyInfo holds the stable lowercase name (used in saved files) and the
// display label for every key, indexed by Key.
var keyInfo = [...]struct {
	name    string
	display string
}{
	KeyNone:         {"none", "None"},
	KeyEscape:       {"escape", "Esc"},
	KeyReturn:       {"return", "Return"},
	KeyTab:          {"tab", "Tab"},
	KeyBackspace:    {"backspace", "Backspace"},
	KeySpace:        {"space", "Space"},
	KeyInsert:       {"insert", "Insert"},
	KeyDelete:       {"delete", "Delete"},
	KeyHome:         {"home", "Home"},
	KeyEnd:          {"end", "End"},
	KeyPageUp:       {"pageup", "PageUp"},
	KeyPageDown:     {"pagedown", "PageDown"},
	KeyUp:           {"up", "Up"},
	KeyDown:         {"down", "Down"},
	KeyLeft:         {"left", "Left"},
	KeyRight:        {"right", "Right"},
	KeyF1:           {"f1", "F1"},
	KeyF2:           {"f2", "F2"},
	KeyF3:           {"f3", "F3"},
	KeyF4:           {"f4", "F4"},
	KeyF5:           {"f5", "F5"},
	KeyF6:           {"f6", "F6"},
	KeyF7:           {"f7", "F7"},
	KeyF8:           {"f8", "F8"},
	KeyF9:           {"f9", "F9"},
	KeyF10:          {"f10", "F10"},
	KeyF11:          {"f11", "F11"},
	KeyF12:          {"f12", "F12"},
	KeyPause:        {"pause", "Pause"},
	KeyPrintScreen:  {"printscreen", "PrintScreen"},
	KeyScrollLock:   {"scrolllock", "ScrollLock"},
	KeyNumLock:      {"numlock", "NumLock"},
	KeyCapsLock:     {"capslock", "CapsLock"},
	Key0:            {"0", "0"},
	Key1:            {"1", "1"},
	Key2:            {"2", "2"},
	Key3:            {"3", "3"},
	Key4:            {"4", "4"},
	Key5:            {"5", "5"},
	Key6:            {"6", "6"},
	Key7:            {"7", "7"},
	Key8:            {"8", "8"},
	Key9:            {"9", "9"},
	KeyA:            {"a", "A"},
	KeyB:            {"b", "B"},
	KeyC:            {"c", "C"},
	KeyD:            {"d", "D"},
	KeyE:            {"e", "E"},
	KeyF:            {"f", "F"},
	KeyG:            {"g", "G"},
	KeyH:            {"h", "H"},
	KeyI:            {"i", "I"},
	KeyJ:            {"j", "J"},
	KeyK:            {"k", "K"},
	KeyL:            {"l", "L"},
	KeyM:            {"m", "M"},
	KeyN:            {"n", "N"},
	KeyO:            {"o", "O"},
	KeyP:            {"p", "P"},
	KeyQ:            {"q", "Q"},
	KeyR:            {"r", "R"},
	KeyS:            {"s", "S"},
	KeyT:            {"t", "T"},
	KeyU:            {"u", "U"},
	KeyV:            {"v", "V"},
	KeyW:            {"w", "W"},
	KeyX:            {"x", "X"},
	KeyY:            {"y", "Y"},
	KeyZ:            {"z", "Z"},
	KeyMinus:        {"minus", "-"},
	KeyEquals:       {"equals", "="},
	KeyLeftBracket:  {"leftbracket", "["},
	KeyRightBracket: {"rightbracket", "]"},
	KeyBackslash:    {"backslash", "\\"},
	KeySemicolon:    {"semicolon", ";"},
	KeyQuote:        {"quote", "'"},
	KeyBackquote:    {"backquote", "`"},
	KeyComma:        {"comma", ","},
	KeyFullStop:     {"fullstop", "."},
	KeySlash:        {"slash", "/"},
	KeyKP0:          {"kp_0", "KP 0"},
	KeyKP1:          {"kp_1", "KP 1"},
	KeyKP2:          {"kp_2", "KP 2"},
	KeyKP3:          {"kp_3", "KP 3"},
	KeyKP4:          {"kp_4", "KP 4"},
	KeyKP5:          {"kp_5", "KP 5"},
	KeyKP6:          {"kp_6", "KP 6"},
	KeyKP7:          {"kp_7", "KP 7"},
	KeyKP8:          {"kp_8", "KP 8"},
	KeyKP9:          {"kp_9", "KP 9"},
	KeyKPPlus:       {"kp_plus", "KP +"},
	KeyKPMinus:      {"kp_minus", "KP -"},
	KeyKPStar:       {"kp_star", "KP *"},
	KeyKPSlash:      {"kp_slash", "KP /"},
	KeyKPFullStop:   {"kp_fullstop", "KP ."},
	KeyKPEnter:      {"kp_enter", "KP Enter"},
	KeyLShift:       {"lshift", "Shift"},
	KeyRShift:       {"rshift", "RShift"},
	KeyLCtrl:        {"lctrl", "Ctrl"},
	KeyRCtrl:        {"rctrl", "RCtrl"},
	KeyLAlt:         {"lalt", "Alt"},
	KeyRAlt:         {"ralt", "RAlt"},
	KeyLMeta:        {"lmeta", "Meta"},
	KeyRMeta:        {"rmeta", "RMeta"},
	KeyMaxScan:      {"unbound", "---"},
}

// String returns the display label for the key, e.g. "F7" or "KP +".
func (k Key) String() string {
	if int(k) < len(keyInfo) {
		return keyInfo[k].display
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Name returns the stable lowercase identifier used in saved keymaps.
func (k Key) Name() string {
	if int(k) < len(keyInfo) {
		return keyInfo[k].name
	}
	return fmt.Sprintf("key_%d", k)
}

// IsValid reports whether k is a real, bindable key.
func (k Key) IsValid() bool {
	return k > KeyNone && k < KeyMaxScan
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKP0 && k <= KeyKPEnter
}

// IsLetter returns true for A-Z.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true for the digit row keys 0-9.
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

// IsModifier returns true for the shift, ctrl, alt and meta keys on
// either side of the keyboard.
func (k Key) IsModifier() bool {
	return k >= KeyLShift && k <= KeyRMeta
}

// Digit returns the digit key for n (0-9).
func Digit(n int) Key {
	if n < 0 || n > 9 {
		return KeyNone
	}
	return Key0 + Key(n)
}

// Letter returns the letter key for r ('a'-'z' or 'A'-'Z').
func Letter(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	}
	return KeyNone
}

// keyNameMap maps key names and aliases (lowercase) to Key values.
var keyNameMap = func() map[string]Key {
	m := make(map[string]Key, len(keyInfo)+32)
	for k := KeyNone; k <= KeyMaxScan; k++ {
		m[keyInfo[k].name] = k
	}
	aliases := map[string]Key{
		"esc":        KeyEscape,
		"enter":      KeyReturn,
		"cr":         KeyReturn,
		"bs":         KeyBackspace,
		"del":        KeyDelete,
		"ins":        KeyInsert,
		"pgup":       KeyPageUp,
		"pgdn":       KeyPageDown,
		"uparrow":    KeyUp,
		"downarrow":  KeyDown,
		"leftarrow":  KeyLeft,
		"rightarrow": KeyRight,
		"period":     KeyFullStop,
		"dot":        KeyFullStop,
		"grave":      KeyBackquote,
		"kpenter":    KeyKPEnter,
		"kp_add":     KeyKPPlus,
		"kp_sub":     KeyKPMinus,
		"kp_mul":     KeyKPStar,
		"kp_div":     KeyKPSlash,
		"shift":      KeyLShift,
		"ctrl":       KeyLCtrl,
		"control":    KeyLCtrl,
		"alt":        KeyLAlt,
		"option":     KeyLAlt,
		"meta":       KeyLMeta,
		"cmd":        KeyLMeta,
		"super":      KeyLMeta,
		"win":        KeyLMeta,
		"maxscan":    KeyMaxScan,
	}
	for name, k := range aliases {
		m[name] = k
	}
	return m
}()

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}
