package keymap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		entry(ContextAlwaysActive, StatusAlwaysActiveSilent, "OpenPauseMenu", "Open Pause Menu", Press(key.KeyEscape)),
		entry(ContextAlwaysActive, StatusAlwaysActiveExclusive, "ChooseManufacture", "Manufacture", Press(key.KeyF1)),
		entry(ContextGameplay, StatusAssignable, "MoveCameraUp", "Move Camera Up", Hold(key.KeyUp)),
		entry(ContextGameplay, StatusAssignable, "SelectGroup1", "Select Group 1", With(key.KeyLCtrl, key.Key1)),
		entry(ContextGameplay, StatusAssignable, "AssignGroup1", "Assign Group 1", With(key.KeyLShift, key.Key1)),
		entry(ContextGameplay, StatusAssignable, "ToggleRadar", "Toggle Radar", Press(key.KeyF7)),
		entry(ContextGameplay, StatusAssignable, "ZoomIn", "Zoom In", Hold(key.KeyKPPlus), wheel(mouse.ButtonWheelUp)),
		entry(ContextRadar, StatusAssignable, "RadarZoomIn", "Zoom Radar In", Press(key.KeyEquals), wheel(mouse.ButtonWheelUp)),
		entry(ContextBackground, StatusAssignable, "ShowMappings", "Show Mappings"),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleGodMode", "Toggle God Mode", With(key.KeyLCtrl, key.KeyG)),
		entry(ContextDebugMisc, StatusHidden, "FrameRate", "Show Frame Rate", With(key.KeyLCtrl, key.KeyY)),
	)
	require.NoError(t, err)
	return c
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Warn(msg string, args ...any) {
	l.messages = append(l.messages, fmt.Sprintf(msg, args...))
}

func mustAction(t *testing.T, c *Catalog, name string) *Action {
	t.Helper()
	a, ok := c.LookupByName(name)
	require.True(t, ok, "action %s", name)
	return a
}

func mustBinding(t *testing.T, tbl *Table, c *Catalog, name string, slot Slot) *Binding {
	t.Helper()
	b, ok := tbl.Get(mustAction(t, c, name), slot)
	require.True(t, ok, "binding %s[%s]", name, slot)
	return b
}

// snapshot captures every binding's combo keyed by action and slot.
func snapshot(tbl *Table) map[string]Combo {
	m := make(map[string]Combo, tbl.Len())
	for b := range tbl.All() {
		m[fmt.Sprintf("%s/%s", b.Action.Name, b.Slot)] = b.Combo
	}
	return m
}

// persisted is snapshot restricted to assignable bindings. Unbound slots
// without a default are left out since they are indistinguishable from
// missing ones.
func persisted(tbl *Table) map[string]Combo {
	m := make(map[string]Combo)
	for b := range tbl.All() {
		if b.Status != StatusAssignable {
			continue
		}
		if _, hasDefault := b.Action.DefaultFor(b.Slot); hasDefault || b.IsBound() {
			m[fmt.Sprintf("%s/%s", b.Action.Name, b.Slot)] = b.Combo
		}
	}
	return m
}
