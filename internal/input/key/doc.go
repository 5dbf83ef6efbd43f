// Package key defines physical keyboard keys and modifier handling for the
// input system.
//
// This package defines the fundamental keyboard types:
//
//   - Key: a physical key code (letters, digits, keypad, function keys and
//     the left/right modifier keys), plus the KeyMaxScan "unbound" sentinel
//   - Modifier: a set of modifier families (Shift, Ctrl, Alt, Meta)
//   - Chord: a key optionally qualified by one held modifier key
//
// # Modifier Canonicalization
//
// Left and right modifier keys are interchangeable when matching a binding.
// Bindings store only the left-hand key; Canonical maps RCtrl to LCtrl and so
// on, and Alternate gives the twin to test when checking whether a modifier
// is held.
//
// # Key Specifications
//
// Chord specifications can be written as:
//
//   - Simple keys: "a", "F7", "Return", "kp_plus"
//   - With a modifier: "Ctrl+1", "lshift+f7", "RAlt+Return"
//   - Vim-style: "<C-1>", "<A-CR>"
//
// Key.Name gives the stable lowercase identifier used in saved files;
// Key.String gives a display label.
package key
