package keymap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(
		entry(ContextGameplay, StatusAssignable, "A", "A", Press(key.KeyA)),
		entry(ContextGameplay, StatusAssignable, "A", "Again", Press(key.KeyB)),
	)
	assert.ErrorIs(t, err, ErrDuplicateAction)
}

func TestNewCatalogValidatesDefaults(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{"empty name", Action{Context: ContextGameplay}},
		{"slot out of range", Action{Name: "A", Defaults: []Default{{Slot: SlotCount, Combo: Press(key.KeyA)}}}},
		{"duplicate slot", Action{Name: "A", Defaults: []Default{{Slot: SlotPrimary, Combo: Press(key.KeyA)}, {Slot: SlotPrimary, Combo: Press(key.KeyB)}}}},
		{"modifier not a modifier key", Action{Name: "A", Defaults: []Default{{Slot: SlotPrimary, Combo: Combo{Modifier: key.KeyQ, Input: input.Key(key.KeyA)}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.action)
			assert.Error(t, err)
		})
	}
}

func TestCatalogNormalizesDefaults(t *testing.T) {
	c, err := NewCatalog(Action{
		Name: "Zoom",
		Defaults: []Default{
			{Slot: SlotPrimary, Combo: Combo{Modifier: key.KeyRShift, Input: input.Key(key.KeyZ), Rule: RuleDown}},
			{Slot: SlotSecondary, Combo: Combo{Input: input.Mouse(mouse.ButtonWheelUp), Rule: RuleDown}},
		},
	})
	require.NoError(t, err)

	a := mustAction(t, c, "Zoom")
	assert.Equal(t, "Zoom", a.DisplayName)
	assert.Equal(t, "Zoom", a.HandlerID)

	primary, ok := a.DefaultFor(SlotPrimary)
	require.True(t, ok)
	assert.Equal(t, key.KeyLShift, primary.Modifier)

	secondary, ok := a.DefaultFor(SlotSecondary)
	require.True(t, ok)
	assert.Equal(t, RulePressed, secondary.Rule)
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog(t)

	a, ok := c.LookupByName("ToggleRadar")
	require.True(t, ok)
	assert.Equal(t, "Toggle Radar", a.DisplayName)

	_, ok = c.LookupByName("NoSuchAction")
	assert.False(t, ok)

	byHandler, ok := c.LookupByHandler("ToggleRadar")
	require.True(t, ok)
	assert.Same(t, a, byHandler)

	_, ok = c.LookupByHandler("nope")
	assert.False(t, ok)
}

func TestCatalogAllIsRestartable(t *testing.T) {
	c := testCatalog(t)

	first := slices.Collect(c.All())
	second := slices.Collect(c.All())
	require.Len(t, first, c.Len())
	assert.Equal(t, first, second)
	assert.Equal(t, "OpenPauseMenu", first[0].Name)
	for i, a := range first {
		assert.Equal(t, i, a.Index())
	}

	count := 0
	for range c.All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestCatalogBindSharedHandler(t *testing.T) {
	c, err := NewCatalog(
		Action{Name: "CameraUp", HandlerID: "ScrollCamera"},
		Action{Name: "CameraDown", HandlerID: "ScrollCamera"},
		Action{Name: "Other"},
	)
	require.NoError(t, err)

	calls := 0
	require.NoError(t, c.BindFunc("ScrollCamera", func() { calls++ }))
	assert.ErrorIs(t, c.Bind("Missing", HandlerFunc(func() {})), ErrUnknownHandler)

	up := mustAction(t, c, "CameraUp")
	down := mustAction(t, c, "CameraDown")
	assert.True(t, up.Invoke())
	assert.True(t, down.Invoke())
	assert.Equal(t, 2, calls)
	assert.False(t, mustAction(t, c, "Other").Invoke())

	first, ok := c.LookupByHandler("ScrollCamera")
	require.True(t, ok)
	assert.Same(t, up, first)
	assert.Equal(t, []string{"Other"}, c.Unbound())
}

func TestActionRuleFor(t *testing.T) {
	c := testCatalog(t)
	zoom := mustAction(t, c, "ZoomIn")

	assert.Equal(t, RuleDown, zoom.RuleFor(input.Key(key.KeyKPPlus)))
	assert.Equal(t, RulePressed, zoom.RuleFor(input.Mouse(mouse.ButtonWheelUp)))
	assert.Equal(t, RuleDown, zoom.RuleFor(input.Key(key.KeyQ)))
	assert.Equal(t, RulePressed, mustAction(t, c, "ShowMappings").RuleFor(input.Key(key.KeyQ)))
}

func TestContextRegistry(t *testing.T) {
	r := DefaultContexts()

	assert.True(t, r.IsAlwaysActive(ContextAlwaysActive))
	assert.False(t, r.IsAlwaysActive(ContextGameplay))
	assert.False(t, r.IsAlwaysActive("unknown"))
	assert.True(t, r.IsDebug(ContextDebugLevelEditor))
	assert.Greater(t, r.Priority(ContextRadar), r.Priority(ContextGameplay))

	tests := []struct {
		a, b ContextID
		want bool
	}{
		{ContextGameplay, ContextGameplay, true},
		{ContextGameplay, ContextBackground, true},
		{ContextAlwaysActive, ContextRadar, true},
		{ContextRadar, ContextGameplay, false},
		{ContextGameplay, ContextRadar, false},
		{ContextRadar, ContextBackground, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Overlaps(tt.a, tt.b), "%s/%s", tt.a, tt.b)
	}

	ctx, ok := r.Get(ContextRadar)
	require.True(t, ok)
	assert.Equal(t, "Radar", ctx.Name)
	assert.Len(t, r.All(), 7)
}

func TestContextRegistryCheck(t *testing.T) {
	contexts := DefaultContexts()
	require.NoError(t, contexts.Check(testCatalog(t)))
	require.NoError(t, contexts.Check(DefaultCatalog()))

	stray, err := NewCatalog(
		entry(ContextGameplay, StatusAssignable, "Fine", "Fine", Press(key.KeyA)),
		entry(ContextID("minimap"), StatusAssignable, "MinimapPing", "Ping", Press(key.KeyB)),
	)
	require.NoError(t, err)
	err = contexts.Check(stray)
	assert.ErrorIs(t, err, ErrUnknownContext)
	assert.Contains(t, err.Error(), "MinimapPing")

	tbl := NewDefaultTable(stray, contexts)
	_, err = tbl.Assign(mustAction(t, stray, "MinimapPing"), SlotPrimary, key.KeyNone, input.Key(key.KeyC), RulePressed)
	assert.ErrorIs(t, err, ErrUnknownContext)
	assert.Equal(t, Press(key.KeyB), mustBinding(t, tbl, stray, "MinimapPing", SlotPrimary).Combo)
}

func TestContextRegistryAlwaysActiveIgnoresExcludes(t *testing.T) {
	r, err := NewContextRegistry(
		Context{ID: "menu", Excludes: []ContextID{"global"}},
		Context{ID: "global", AlwaysActive: true},
	)
	require.NoError(t, err)
	assert.True(t, r.Overlaps("menu", "global"))

	_, err = NewContextRegistry(Context{ID: "a"}, Context{ID: "a"})
	assert.Error(t, err)
}

func TestSlotRuleNames(t *testing.T) {
	for _, slot := range []Slot{SlotPrimary, SlotSecondary} {
		got, ok := SlotFromName(slot.String())
		assert.True(t, ok)
		assert.Equal(t, slot, got)
	}
	got, ok := SlotFromName("third")
	assert.False(t, ok)
	assert.Equal(t, SlotPrimary, got)

	for _, rule := range []Rule{RulePressed, RuleDown, RuleReleased} {
		got, ok := RuleFromName(rule.String())
		assert.True(t, ok)
		assert.Equal(t, rule, got)
	}
}

func TestComboString(t *testing.T) {
	assert.Equal(t, "Ctrl+1", With(key.KeyRCtrl, key.Key1).String())
	assert.Equal(t, "Wheel Up", wheel(mouse.ButtonWheelUp).String())
	assert.Equal(t, "---", unboundCombo.String())
}

func TestGroupByContext(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)

	groups := GroupByContext(tbl.Bindings())
	require.NotEmpty(t, groups)
	assert.Equal(t, ContextAlwaysActive, groups[0].Context)
	assert.Len(t, groups[0].Bindings, 2)
}
