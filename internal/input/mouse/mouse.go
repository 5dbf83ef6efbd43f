package mouse

import (
	"strings"

	"github.com/dshills/rebind/internal/input/key"
)

// Button represents a mouse button. Wheel movement is modelled as two
// extra buttons that are pressed and released within one frame.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonX1 is the first extra button (usually "back").
	ButtonX1
	// ButtonX2 is the second extra button (usually "forward").
	ButtonX2
	// ButtonWheelUp indicates the wheel moved up one notch.
	ButtonWheelUp
	// ButtonWheelDown indicates the wheel moved down one notch.
	ButtonWheelDown

	// ButtonCount is the number of defined buttons.
	ButtonCount
)

var buttonNames = [...]string{
	ButtonNone:      "none",
	ButtonLeft:      "left",
	ButtonMiddle:    "middle",
	ButtonRight:     "right",
	ButtonX1:        "x1",
	ButtonX2:        "x2",
	ButtonWheelUp:   "wheel_up",
	ButtonWheelDown: "wheel_down",
}

// String returns the stable lowercase name of the button.
func (b Button) String() string {
	if b < ButtonCount {
		return buttonNames[b]
	}
	return "none"
}

// Label returns a display label like "Mouse Left" or "Wheel Up".
func (b Button) Label() string {
	switch b {
	case ButtonWheelUp:
		return "Wheel Up"
	case ButtonWheelDown:
		return "Wheel Down"
	case ButtonNone:
		return "None"
	}
	return "Mouse " + strings.ToUpper(b.String()[:1]) + b.String()[1:]
}

// IsWheel returns true if this is a wheel notch rather than a real button.
// Wheel bindings only ever fire on press; they have no held state.
func (b Button) IsWheel() bool {
	return b == ButtonWheelUp || b == ButtonWheelDown
}

// IsValid reports whether b is a real, bindable button.
func (b Button) IsValid() bool {
	return b > ButtonNone && b < ButtonCount
}

// buttonAliases accepts the names older keymap files used.
var buttonAliases = map[string]Button{
	"lmb":         ButtonLeft,
	"mmb":         ButtonMiddle,
	"rmb":         ButtonRight,
	"back":        ButtonX1,
	"forward":     ButtonX2,
	"wup":         ButtonWheelUp,
	"wdn":         ButtonWheelDown,
	"mouse_wup":   ButtonWheelUp,
	"mouse_wdn":   ButtonWheelDown,
	"scroll-up":   ButtonWheelUp,
	"scroll-down": ButtonWheelDown,
}

// ButtonFromName returns the Button for a name (case-insensitive), or
// ButtonNone if the name is not recognized.
func ButtonFromName(name string) Button {
	name = strings.ToLower(strings.TrimSpace(name))
	for b := ButtonLeft; b < ButtonCount; b++ {
		if buttonNames[b] == name {
			return b
		}
	}
	return buttonAliases[name]
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	default:
		return "none"
	}
}

// Event is a raw mouse button event as delivered by a backend.
type Event struct {
	Button    Button
	Action    Action
	X, Y      int
	Modifiers key.Modifier
}
