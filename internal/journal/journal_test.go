package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
	"github.com/dshills/rebind/internal/remap"
)

func testSetup(t *testing.T) (*Journal, *keymap.Catalog, *keymap.Table, *remap.Editor) {
	t.Helper()

	catalog, err := keymap.NewCatalog(
		keymap.Action{Name: "OpenPauseMenu", Context: keymap.ContextAlwaysActive, Status: keymap.StatusAlwaysActiveSilent,
			Defaults: []keymap.Default{{Slot: keymap.SlotPrimary, Combo: keymap.Press(key.KeyEscape)}}},
		keymap.Action{Name: "QuickSave", Context: keymap.ContextGameplay, Status: keymap.StatusAssignable,
			Defaults: []keymap.Default{{Slot: keymap.SlotPrimary, Combo: keymap.Press(key.KeyF7)}}},
		keymap.Action{Name: "ToggleRadar", Context: keymap.ContextGameplay, Status: keymap.StatusAssignable,
			Defaults: []keymap.Default{{Slot: keymap.SlotPrimary, Combo: keymap.With(key.KeyLShift, key.KeyF7)}}},
	)
	require.NoError(t, err)
	table := keymap.NewDefaultTable(catalog, nil)

	j, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })

	detach := j.Attach(table)
	t.Cleanup(detach)

	editor := remap.NewEditor(table, catalog)
	j.Track(editor)
	return j, catalog, table, editor
}

func TestSessionCorrelation(t *testing.T) {
	j, _, _, editor := testSetup(t)

	s, err := editor.Select("ToggleRadar", keymap.SlotPrimary)
	require.NoError(t, err)
	editor.OnCaptured(key.KeyNone, input.Key(key.KeyF7))
	require.True(t, s.Outcome().Applied())

	sessions, err := j.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	rec := sessions[0]
	assert.Equal(t, s.ID(), rec.ID)
	assert.Equal(t, ResultApplied, rec.Result)
	assert.Equal(t, "ToggleRadar", rec.Action)
	assert.Equal(t, "primary", rec.Slot)
	assert.Equal(t, keymap.Press(key.KeyF7).String(), rec.Combo)
	assert.Equal(t, keymap.With(key.KeyLShift, key.KeyF7).String(), rec.Previous)

	changes, err := j.SessionChanges(s.ID())
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "cleared", changes[0].Kind)
	assert.Equal(t, "QuickSave", changes[0].Action)
	assert.Equal(t, "ToggleRadar", changes[0].Cause)
	assert.Equal(t, "assigned", changes[1].Kind)
	assert.Equal(t, "ToggleRadar", changes[1].Action)
	for _, c := range changes {
		assert.Equal(t, s.ID(), c.SessionID)
	}
}

func TestSessionResults(t *testing.T) {
	j, _, _, editor := testSetup(t)

	// Reserved by the always-active ESC binding.
	_, err := editor.Select("QuickSave", keymap.SlotPrimary)
	require.NoError(t, err)
	editor.OnCaptured(key.KeyNone, input.Key(key.KeyEscape))

	// Cancelled without input.
	_, err = editor.Select("QuickSave", keymap.SlotSecondary)
	require.NoError(t, err)
	editor.Cancel()

	sessions, err := j.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	results := map[string]bool{}
	for _, s := range sessions {
		results[s.Result] = true
	}
	assert.True(t, results[ResultReserved])
	assert.True(t, results[ResultCancelled])

	// Neither session changed the table.
	history, err := j.History(0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChangesOutsideSessions(t *testing.T) {
	j, _, table, _ := testSetup(t)

	b, ok := table.Lookup("QuickSave", keymap.SlotPrimary)
	require.True(t, ok)
	require.NoError(t, table.Remove(b))

	history, err := j.History(0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "cleared", history[0].Kind)
	assert.Equal(t, uuid.Nil, history[0].SessionID)
	assert.Equal(t, keymap.Press(key.KeyF7).String(), history[0].Previous)
	assert.Empty(t, history[0].Cause)
}

func TestHistoryQueries(t *testing.T) {
	j, catalog, table, editor := testSetup(t)

	for _, k := range []key.Key{key.KeyA, key.KeyB, key.KeyC} {
		_, err := editor.Select("QuickSave", keymap.SlotPrimary)
		require.NoError(t, err)
		editor.OnCaptured(key.KeyNone, input.Key(k))
	}
	_, err := editor.Select("ToggleRadar", keymap.SlotPrimary)
	require.NoError(t, err)
	editor.OnCaptured(key.KeyLCtrl, input.Key(key.KeyR))

	history, err := j.History(2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "ToggleRadar", history[0].Action)
	assert.Greater(t, history[0].ID, history[1].ID)

	forSave, err := j.HistoryFor("QuickSave", 0)
	require.NoError(t, err)
	assert.Len(t, forSave, 3)

	top, err := j.MostChanged(5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, ActionCount{Action: "QuickSave", Count: 3}, top[0])
	assert.Equal(t, ActionCount{Action: "ToggleRadar", Count: 1}, top[1])

	table.ResetToDefaults(catalog)
	history, err = j.History(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "reset", history[0].Kind)
	assert.Empty(t, history[0].Action)
}

func TestPrune(t *testing.T) {
	j, _, table, _ := testSetup(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return base }
	b, _ := table.Lookup("QuickSave", keymap.SlotPrimary)
	require.NoError(t, table.Remove(b))

	j.now = func() time.Time { return base.Add(48 * time.Hour) }
	b, _ = table.Lookup("ToggleRadar", keymap.SlotPrimary)
	require.NoError(t, table.Remove(b))

	n, err := j.Prune(base.Add(24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	history, err := j.History(0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "ToggleRadar", history[0].Action)
}

func TestOpenFileAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	_, err = j.History(0)
	assert.ErrorIs(t, err, ErrClosed)

	// Reopening an existing database keeps the schema.
	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()
	var version int
	require.NoError(t, j.DB().QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}
