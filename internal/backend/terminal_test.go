package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

func TestConvertRune(t *testing.T) {
	tests := []struct {
		r       rune
		want    key.Key
		shifted bool
		ok      bool
	}{
		{'a', key.KeyA, false, true},
		{'Z', key.KeyZ, true, true},
		{'7', key.Key7, false, true},
		{'&', key.Key7, true, true},
		{' ', key.KeySpace, false, true},
		{'?', key.KeySlash, true, true},
		{'é', key.KeyNone, false, false},
	}
	for _, tt := range tests {
		k, shifted, ok := convertRune(tt.r)
		if k != tt.want || shifted != tt.shifted || ok != tt.ok {
			t.Errorf("convertRune(%q) = %v, %v, %v; want %v, %v, %v",
				tt.r, k, shifted, ok, tt.want, tt.shifted, tt.ok)
		}
	}
}

func TestModifierKeys(t *testing.T) {
	got := modifierKeys(tcell.ModShift | tcell.ModCtrl)
	assert.Equal(t, []key.Key{key.KeyLCtrl, key.KeyLShift}, got)
	assert.Empty(t, modifierKeys(tcell.ModNone))
}

func TestApplyKey(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""))
	tracker := input.NewTracker()

	tracker.BeginFrame()
	assert.True(t, term.Apply(tracker, tcell.NewEventKey(tcell.KeyF7, 0, tcell.ModShift)))
	assert.True(t, tracker.Pressed(input.Key(key.KeyF7)))
	assert.True(t, tracker.Down(input.Key(key.KeyLShift)))

	// Taps are released at the next frame.
	tracker.BeginFrame()
	assert.False(t, tracker.Down(input.Key(key.KeyF7)))
	assert.True(t, tracker.Released(input.Key(key.KeyF7)))

	tracker.BeginFrame()
	assert.True(t, term.Apply(tracker, tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone)))
	assert.True(t, tracker.Pressed(input.Key(key.KeyQ)))
	assert.True(t, tracker.Down(input.Key(key.KeyLShift)))

	tracker.BeginFrame()
	assert.True(t, term.Apply(tracker, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	assert.True(t, tracker.Pressed(input.Key(key.KeyReturn)))

	tracker.BeginFrame()
	assert.False(t, term.Apply(tracker, tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)))
	assert.Equal(t, 1, term.Ignored())
}

func TestApplyInterrupt(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""))
	tracker := input.NewTracker()

	assert.False(t, term.Interrupted())
	term.Apply(tracker, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	assert.True(t, term.Interrupted())
	assert.True(t, tracker.Down(input.Key(key.KeyLCtrl)))
	assert.True(t, tracker.Down(input.Key(key.KeyC)))
}

func TestApplyMouse(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""))
	tracker := input.NewTracker()
	left := input.Mouse(mouse.ButtonLeft)

	tracker.BeginFrame()
	assert.True(t, term.Apply(tracker, tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone)))
	assert.True(t, tracker.Pressed(left))

	// Held across frames until the mask clears.
	tracker.BeginFrame()
	assert.False(t, term.Apply(tracker, tcell.NewEventMouse(2, 1, tcell.ButtonPrimary, tcell.ModNone)))
	assert.True(t, tracker.Down(left))
	assert.False(t, tracker.Pressed(left))

	tracker.BeginFrame()
	assert.True(t, term.Apply(tracker, tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone)))
	assert.True(t, tracker.Released(left))

	tracker.BeginFrame()
	assert.True(t, term.Apply(tracker, tcell.NewEventMouse(2, 1, tcell.WheelUp, tcell.ModNone)))
	assert.True(t, tracker.Pressed(input.Mouse(mouse.ButtonWheelUp)))
	tracker.BeginFrame()
	assert.False(t, tracker.Down(input.Mouse(mouse.ButtonWheelUp)))
}

func TestApplyFocusLost(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen(""))
	tracker := input.NewTracker()

	term.Apply(tracker, tcell.NewEventMouse(0, 0, tcell.ButtonSecondary, tcell.ModNone))
	require.True(t, tracker.Down(input.Mouse(mouse.ButtonRight)))

	term.Apply(tracker, tcell.NewEventFocus(false))
	assert.False(t, tracker.Down(input.Mouse(mouse.ButtonRight)))
}

func TestDrainSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(screen)

	_, err := term.Drain(input.NewTracker())
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, term.Init())
	defer term.Shutdown()

	screen.InjectKey(tcell.KeyF3, 0, tcell.ModNone)

	tracker := input.NewTracker()
	deadline := time.Now().Add(2 * time.Second)
	for !tracker.Pressed(input.Key(key.KeyF3)) {
		require.True(t, time.Now().Before(deadline), "key event never drained")
		time.Sleep(5 * time.Millisecond)
		tracker.BeginFrame()
		_, err := term.Drain(tracker)
		require.NoError(t, err)
	}
}
