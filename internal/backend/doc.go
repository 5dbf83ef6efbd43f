// Package backend reads keyboard and mouse input from a terminal and feeds
// it to an input.Tracker once per frame.
//
// Terminals report key presses but never key releases, so every key is
// recorded as a tap: pressed this frame and released at the start of the
// next. Held-key bindings therefore see a terminal key as down for one
// frame per repeat. Modifier keys are never reported on their own; they
// arrive as a mask on the key event and are tapped alongside it.
//
// Mouse buttons do have release events. The backend keeps the last button
// mask and turns mask changes into presses and releases.
package backend
