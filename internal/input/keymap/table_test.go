package keymap

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

func TestPopulateDefaultsIdempotent(t *testing.T) {
	c := testCatalog(t)
	tbl := NewTable(nil)

	created := tbl.PopulateDefaults(c)
	assert.Equal(t, 12, created)
	once := snapshot(tbl)
	version := tbl.Version()

	assert.Zero(t, tbl.PopulateDefaults(c))
	assert.Equal(t, once, snapshot(tbl))
	assert.Equal(t, version, tbl.Version())
}

func TestPopulateDefaultsKeepsExisting(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	radar := mustAction(t, c, "ToggleRadar")

	_, err := tbl.Assign(radar, SlotPrimary, key.KeyNone, input.Key(key.KeyF6), RulePressed)
	require.NoError(t, err)

	tbl.PopulateDefaults(c)
	b := mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary)
	assert.Equal(t, input.Key(key.KeyF6), b.Combo.Input)
}

func TestAssignReplacesInPlace(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	before := mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary)
	version := tbl.Version()

	b, err := tbl.Assign(before.Action, SlotPrimary, key.KeyNone, input.Key(key.KeyF6), RulePressed)
	require.NoError(t, err)
	assert.Same(t, before, b)
	assert.Equal(t, Press(key.KeyF6), b.Combo)
	assert.Greater(t, tbl.Version(), version)
	assert.False(t, b.IsDefault())
}

func TestAssignAlwaysActiveInvariance(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name  string
		mod   key.Key
		input input.Source
	}{
		{"silent binding input", key.KeyNone, input.Key(key.KeyEscape)},
		{"exclusive binding input", key.KeyNone, input.Key(key.KeyF1)},
		{"exclusive binding under modifier", key.KeyLCtrl, input.Key(key.KeyF1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewDefaultTable(c, nil)
			before := snapshot(tbl)
			version := tbl.Version()

			_, err := tbl.Assign(mustAction(t, c, "MoveCameraUp"), SlotPrimary, tt.mod, tt.input, RuleDown)
			require.Error(t, err)
			assert.True(t, IsConflict(err, ConflictFixed))

			var ce *ConflictError
			require.ErrorAs(t, err, &ce)
			require.NotNil(t, ce.Holder)
			assert.True(t, ce.Holder.Status.IsAlwaysActive())

			assert.Equal(t, before, snapshot(tbl))
			assert.Equal(t, version, tbl.Version())
		})
	}
}

func TestAssignSilentUnderOtherModifierAllowed(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)

	// Only exclusive bindings own their input under every modifier.
	b, err := tbl.Assign(mustAction(t, c, "ShowMappings"), SlotPrimary, key.KeyLShift, input.Key(key.KeyEscape), RulePressed)
	require.NoError(t, err)
	assert.Equal(t, With(key.KeyLShift, key.KeyEscape), b.Combo)
	assert.True(t, mustBinding(t, tbl, c, "OpenPauseMenu", SlotPrimary).IsBound())
}

func TestAssignRejectsFixedTarget(t *testing.T) {
	c := testCatalog(t)

	for _, name := range []string{"OpenPauseMenu", "ChooseManufacture", "ToggleGodMode", "FrameRate"} {
		t.Run(name, func(t *testing.T) {
			tbl := NewDefaultTable(c, nil)
			before := snapshot(tbl)

			_, err := tbl.Assign(mustAction(t, c, name), SlotPrimary, key.KeyNone, input.Key(key.KeyF12), RulePressed)
			assert.True(t, IsConflict(err, ConflictFixed))
			assert.Equal(t, before, snapshot(tbl))
		})
	}
}

func TestModifiersDistinguishBindings(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	sel := mustAction(t, c, "SelectGroup1")
	asg := mustAction(t, c, "AssignGroup1")

	_, err := tbl.Assign(sel, SlotPrimary, key.KeyLCtrl, input.Key(key.Key1), RulePressed)
	require.NoError(t, err)
	_, err = tbl.Assign(asg, SlotPrimary, key.KeyLShift, input.Key(key.Key1), RulePressed)
	require.NoError(t, err)

	assert.True(t, mustBinding(t, tbl, c, "SelectGroup1", SlotPrimary).IsBound())
	assert.True(t, mustBinding(t, tbl, c, "AssignGroup1", SlotPrimary).IsBound())

	conflicts := slices.Collect(tbl.FindConflicting(key.KeyLCtrl, input.Key(key.Key1), ContextBackground))
	require.Len(t, conflicts, 1)
	assert.Equal(t, "SelectGroup1", conflicts[0].Action.Name)
}

func TestAssignConflictClearing(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	a := mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary)
	show := mustAction(t, c, "ShowMappings")
	require.NoError(t, tbl.Remove(a))
	assert.False(t, a.IsBound())

	var changes []Change
	unsubscribe := tbl.Subscribe(func(ch Change) { changes = append(changes, ch) })
	defer unsubscribe()

	_, err := tbl.Assign(a.Action, SlotPrimary, key.KeyNone, input.Key(key.KeyF9), RulePressed)
	require.NoError(t, err)
	b, err := tbl.Assign(show, SlotPrimary, key.KeyNone, input.Key(key.KeyF9), RulePressed)
	require.NoError(t, err)

	assert.False(t, a.IsBound())
	assert.Equal(t, Press(key.KeyF9), b.Combo)

	require.Len(t, changes, 3)
	assert.Equal(t, ChangeAssigned, changes[0].Kind)
	assert.Equal(t, ChangeCleared, changes[1].Kind)
	assert.Same(t, a, changes[1].Binding)
	assert.Same(t, b, changes[1].Cause)
	assert.Equal(t, Press(key.KeyF9), changes[1].Previous)
	assert.Equal(t, ChangeAssigned, changes[2].Kind)
	assert.Same(t, b, changes[2].Binding)
}

func TestAssignCreatesMissingSlot(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	show := mustAction(t, c, "ShowMappings")

	_, ok := tbl.Get(show, SlotSecondary)
	require.False(t, ok)

	b, err := tbl.Assign(show, SlotSecondary, key.KeyNone, input.Key(key.KeyM), RulePressed)
	require.NoError(t, err)
	got, ok := tbl.Get(show, SlotSecondary)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestAssignFixedLeavesNoNewSlot(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	show := mustAction(t, c, "ShowMappings")
	n := tbl.Len()

	_, err := tbl.Assign(show, SlotSecondary, key.KeyNone, input.Key(key.KeyEscape), RulePressed)
	assert.True(t, IsConflict(err, ConflictFixed))
	assert.Equal(t, n, tbl.Len())
}

func TestAssignSameActionOtherSlot(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	zoom := mustAction(t, c, "RadarZoomIn")
	before := snapshot(tbl)

	_, err := tbl.Assign(zoom, SlotSecondary, key.KeyNone, input.Key(key.KeyEquals), RulePressed)
	require.Error(t, err)
	assert.True(t, IsConflict(err, ConflictSameAction))
	assert.Equal(t, before, snapshot(tbl))
}

func TestAssignSameSlotSameComboIsNoConflict(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	radar := mustAction(t, c, "ToggleRadar")

	_, err := tbl.Assign(radar, SlotPrimary, key.KeyNone, input.Key(key.KeyF7), RulePressed)
	assert.NoError(t, err)
	assert.True(t, mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary).IsDefault())
}

func TestAssignInvalidArguments(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	radar := mustAction(t, c, "ToggleRadar")

	_, err := tbl.Assign(radar, SlotPrimary, key.KeyNone, input.Unbound, RulePressed)
	assert.ErrorIs(t, err, ErrUnboundInput)

	_, err = tbl.Assign(radar, SlotCount, key.KeyNone, input.Key(key.KeyF6), RulePressed)
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = tbl.Assign(radar, SlotPrimary, key.KeyA, input.Key(key.KeyF6), RulePressed)
	assert.ErrorIs(t, err, ErrInvalidModifier)
}

func TestAssignCanonicalizesModifier(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	radar := mustAction(t, c, "ToggleRadar")

	b, err := tbl.Assign(radar, SlotPrimary, key.KeyRCtrl, input.Key(key.KeyR), RulePressed)
	require.NoError(t, err)
	assert.Equal(t, key.KeyLCtrl, b.Combo.Modifier)

	found, ok := tbl.Find(key.KeyRCtrl, input.Key(key.KeyR), SlotAny)
	require.True(t, ok)
	assert.Same(t, b, found)
}

func TestAssignWheelForcesPressed(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	radar := mustAction(t, c, "ToggleRadar")

	b, err := tbl.Assign(radar, SlotSecondary, key.KeyNone, input.Mouse(mouse.ButtonWheelDown), RuleDown)
	require.NoError(t, err)
	assert.Equal(t, RulePressed, b.Combo.Rule)
}

func TestDebugAndHiddenBindingsDoNotConflict(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	radar := mustAction(t, c, "ToggleRadar")

	_, err := tbl.Assign(radar, SlotPrimary, key.KeyLCtrl, input.Key(key.KeyG), RulePressed)
	require.NoError(t, err)
	assert.True(t, mustBinding(t, tbl, c, "ToggleGodMode", SlotPrimary).IsBound())

	_, err = tbl.Assign(radar, SlotPrimary, key.KeyLCtrl, input.Key(key.KeyY), RulePressed)
	require.NoError(t, err)
	assert.True(t, mustBinding(t, tbl, c, "FrameRate", SlotPrimary).IsBound())
}

func TestExcludedContextsShareInputs(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)

	// Both wheel-up defaults survive; radar excludes gameplay.
	assert.True(t, mustBinding(t, tbl, c, "ZoomIn", SlotSecondary).IsBound())
	assert.True(t, mustBinding(t, tbl, c, "RadarZoomIn", SlotSecondary).IsBound())

	conflicts := slices.Collect(tbl.FindConflicting(key.KeyNone, input.Mouse(mouse.ButtonWheelUp), ContextGameplay))
	require.Len(t, conflicts, 1)
	assert.Equal(t, "ZoomIn", conflicts[0].Action.Name)

	_, err := tbl.Assign(mustAction(t, c, "RadarZoomIn"), SlotPrimary, key.KeyNone, input.Key(key.KeyKPPlus), RulePressed)
	require.NoError(t, err)
	assert.True(t, mustBinding(t, tbl, c, "ZoomIn", SlotPrimary).IsBound())
}

func TestRemoveConflicting(t *testing.T) {
	c := testCatalog(t)

	t.Run("clears assignable", func(t *testing.T) {
		tbl := NewDefaultTable(c, nil)
		cleared, err := tbl.RemoveConflicting(key.KeyNone, input.Key(key.KeyF7), ContextBackground)
		require.NoError(t, err)
		require.Len(t, cleared, 1)
		assert.Equal(t, "ToggleRadar", cleared[0].Action.Name)
		assert.False(t, cleared[0].IsBound())
	})

	t.Run("fixed aborts whole operation", func(t *testing.T) {
		tbl := NewDefaultTable(c, nil)
		before := snapshot(tbl)
		cleared, err := tbl.RemoveConflicting(key.KeyNone, input.Key(key.KeyEscape), ContextGameplay)
		assert.Nil(t, cleared)
		assert.True(t, IsConflict(err, ConflictFixed))
		assert.Equal(t, before, snapshot(tbl))
	})

	t.Run("unbound input has no conflicts", func(t *testing.T) {
		tbl := NewDefaultTable(c, nil)
		require.NoError(t, tbl.Remove(mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary)))
		assert.Empty(t, slices.Collect(tbl.FindConflicting(key.KeyNone, input.Unbound, ContextGameplay)))
	})
}

func TestFind(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)

	b, ok := tbl.Find(key.KeyNone, input.Mouse(mouse.ButtonWheelUp), SlotSecondary)
	require.True(t, ok)
	assert.Equal(t, "ZoomIn", b.Action.Name)

	_, ok = tbl.Find(key.KeyNone, input.Mouse(mouse.ButtonWheelUp), SlotPrimary)
	assert.False(t, ok)

	_, ok = tbl.Find(key.KeyLAlt, input.Key(key.Key1), SlotAny)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)

	err := tbl.Remove(mustBinding(t, tbl, c, "OpenPauseMenu", SlotPrimary))
	assert.True(t, IsConflict(err, ConflictFixed))

	radar := mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary)
	require.NoError(t, tbl.Remove(radar))
	assert.False(t, radar.IsBound())
	assert.Equal(t, input.Unbound, radar.Combo.Input)

	version := tbl.Version()
	require.NoError(t, tbl.Remove(radar))
	assert.Equal(t, version, tbl.Version())
}

func TestResetToDefaults(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	defaults := snapshot(tbl)

	show := mustAction(t, c, "ShowMappings")
	_, err := tbl.Assign(show, SlotPrimary, key.KeyNone, input.Key(key.KeyF7), RulePressed)
	require.NoError(t, err)
	require.NoError(t, tbl.Remove(mustBinding(t, tbl, c, "SelectGroup1", SlotPrimary)))

	var kinds []ChangeKind
	tbl.Subscribe(func(ch Change) { kinds = append(kinds, ch.Kind) })
	tbl.ResetToDefaults(c)

	assert.Equal(t, []ChangeKind{ChangeReset}, kinds)
	after := snapshot(tbl)
	for k, v := range defaults {
		assert.Equal(t, v, after[k], k)
	}
	b := mustBinding(t, tbl, c, "ShowMappings", SlotPrimary)
	assert.False(t, b.IsBound())
	assert.Empty(t, tbl.Diff())
}

func TestSubscribeUnsubscribe(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)

	calls := 0
	unsubscribe := tbl.Subscribe(func(Change) { calls++ })
	require.NoError(t, tbl.Remove(mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary)))
	unsubscribe()
	require.NoError(t, tbl.Remove(mustBinding(t, tbl, c, "MoveCameraUp", SlotPrimary)))
	assert.Equal(t, 1, calls)
}

func TestClone(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)
	clone := tbl.Clone()

	require.NoError(t, clone.Remove(mustBinding(t, clone, c, "ToggleRadar", SlotPrimary)))
	assert.True(t, mustBinding(t, tbl, c, "ToggleRadar", SlotPrimary).IsBound())
}

func TestConflictErrorMessages(t *testing.T) {
	c := testCatalog(t)
	tbl := NewDefaultTable(c, nil)

	_, err := tbl.Assign(mustAction(t, c, "MoveCameraUp"), SlotPrimary, key.KeyNone, input.Key(key.KeyEscape), RulePressed)
	assert.EqualError(t, err, "MoveCameraUp: Esc is reserved by OpenPauseMenu")

	var ce *ConflictError
	assert.False(t, errors.As(ErrUnboundInput, &ce))
}
