// Package input provides the physical input layer of the remapping engine.
//
// A Source names one physical input, either a keyboard key or a mouse
// button, as a small comparable value. State is the per-frame query surface
// the dispatcher uses:
//
//   - Pressed: true exactly on the frame the input goes down
//   - Down: true every frame the input is held
//   - Released: true exactly on the frame the input goes up
//
// # Tracker
//
// Tracker is the in-memory State fed by a backend. Call BeginFrame once per
// frame, then Press/Release/Tap for every raw transition collected since the
// previous frame:
//
//	tracker.BeginFrame()
//	for _, ev := range events {
//	    tracker.Press(input.Key(ev.Key))
//	}
//	dispatcher.Frame(tracker)
//
// Mouse wheel notches are pressed and released within a single frame; a
// binding on the wheel can therefore only ever fire on press.
//
// # Sub-packages
//
//   - key: keyboard key codes, modifier canonicalization, chord parsing
//   - mouse: mouse buttons and wheel
//   - keymap: action catalog, contexts, binding table, persistence
package input
