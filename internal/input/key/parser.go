package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Chord is a key optionally qualified by one held modifier key.
type Chord struct {
	// Modifier is KeyNone or a canonical modifier key (KeyLCtrl, ...).
	Modifier Key

	// Key is the key that triggers the chord.
	Key Key
}

// String returns a display form like "Ctrl+F7" or "F7".
func (c Chord) String() string {
	if c.Modifier == KeyNone {
		return c.Key.String()
	}
	return c.Modifier.String() + "+" + c.Key.String()
}

// Spec returns the parseable lowercase form like "lctrl+f7".
func (c Chord) Spec() string {
	if c.Modifier == KeyNone {
		return c.Key.Name()
	}
	return c.Modifier.Name() + "+" + c.Key.Name()
}

// Parse parses a chord specification.
//
// Supported formats:
//   - Single key: "a", "F7", "kp_plus", "Return"
//   - With one modifier: "Ctrl+1", "lshift+f7", "RAlt+Return"
//   - Vim-style: "<C-1>", "<A-CR>", "<S-F7>"
//
// Right-hand modifiers are canonicalized to the left-hand key.
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	// Check for Vim-style <...> notation
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	// "+" on its own (or as the key of a chord) is not a key name here;
	// the keypad plus is spelled kp_plus.
	if i := strings.LastIndex(spec, "+"); i > 0 {
		return parseChord(spec[:i], spec[i+1:])
	}

	return parseChord("", spec)
}

// parseVimStyle parses Vim-style notation like "C-s", "A-CR", "F7".
func parseVimStyle(inner string) (Chord, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Chord{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	if len(parts) > 2 {
		return Chord{}, fmt.Errorf("%w: only one modifier allowed in %q", ErrInvalidSpec, inner)
	}
	if len(parts) == 1 {
		return parseChord("", parts[0])
	}

	var mod string
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "c":
		mod = "lctrl"
	case "a":
		mod = "lalt"
	case "s":
		mod = "lshift"
	case "m", "d":
		mod = "lmeta"
	default:
		return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, parts[0])
	}
	return parseChord(mod, parts[1])
}

func parseChord(modPart, keyPart string) (Chord, error) {
	var c Chord

	modPart = strings.TrimSpace(modPart)
	if modPart != "" && !strings.EqualFold(modPart, "none") {
		mod := KeyFromName(modPart)
		if !mod.IsModifier() {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, modPart)
		}
		c.Modifier = Canonical(mod)
	}

	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, ErrInvalidSpec
	}
	k := KeyFromName(keyPart)
	if k == KeyNone {
		return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	c.Key = k
	return c, nil
}

// MustParse parses a chord specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// ParseModifier parses a modifier key name, accepting "none" and "" as
// KeyNone. The result is canonical.
func ParseModifier(name string) (Key, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "none") {
		return KeyNone, nil
	}
	k := KeyFromName(name)
	if !k.IsModifier() {
		return KeyNone, fmt.Errorf("%w: %q is not a modifier key", ErrInvalidSpec, name)
	}
	return Canonical(k), nil
}
