package exchange

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
)

func testCatalog(t *testing.T) *keymap.Catalog {
	t.Helper()
	catalog, err := keymap.NewCatalog(
		keymap.Action{Name: "OpenPauseMenu", Context: keymap.ContextAlwaysActive, Status: keymap.StatusAlwaysActiveSilent,
			Defaults: []keymap.Default{{Slot: keymap.SlotPrimary, Combo: keymap.Press(key.KeyEscape)}}},
		keymap.Action{Name: "QuickSave", DisplayName: "Quick Save", Context: keymap.ContextGameplay, Status: keymap.StatusAssignable,
			Defaults: []keymap.Default{{Slot: keymap.SlotPrimary, Combo: keymap.Press(key.KeyF7)}}},
		keymap.Action{Name: "ToggleRadar", Context: keymap.ContextGameplay, Status: keymap.StatusAssignable,
			Defaults: []keymap.Default{{Slot: keymap.SlotPrimary, Combo: keymap.With(key.KeyLShift, key.KeyF7)}}},
		keymap.Action{Name: "CameraUp", Context: keymap.ContextGameplay, Status: keymap.StatusAssignable,
			Defaults: []keymap.Default{{Slot: keymap.SlotPrimary, Combo: keymap.Hold(key.KeyUp)}}},
	)
	require.NoError(t, err)
	return catalog
}

func editedTable(t *testing.T, catalog *keymap.Catalog) *keymap.Table {
	t.Helper()
	table := keymap.NewDefaultTable(catalog, nil)
	_, err := table.AssignByName(catalog, "ToggleRadar", keymap.SlotPrimary, key.KeyNone, input.Key(key.KeyF6), keymap.RulePressed)
	require.NoError(t, err)
	qs, ok := table.Lookup("QuickSave", keymap.SlotPrimary)
	require.True(t, ok)
	require.NoError(t, table.Remove(qs))
	return table
}

func assertEdited(t *testing.T, table *keymap.Table) {
	t.Helper()
	radar, ok := table.Lookup("ToggleRadar", keymap.SlotPrimary)
	require.True(t, ok)
	assert.Equal(t, keymap.Press(key.KeyF6), radar.Combo)
	qs, ok := table.Lookup("QuickSave", keymap.SlotPrimary)
	require.True(t, ok)
	assert.False(t, qs.IsBound())
}

func TestJSONRoundTrip(t *testing.T) {
	catalog := testCatalog(t)
	data, err := ExportJSON(editedTable(t, catalog), Options{})
	require.NoError(t, err)

	assert.Equal(t, FormatName, gjson.GetBytes(data, "format").String())
	assert.Equal(t, int64(FormatVersion), gjson.GetBytes(data, "version").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(data, "bindings.#").Int())

	fresh := keymap.NewDefaultTable(catalog, nil)
	report, err := ImportJSON(catalog, fresh, data)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Applied)
	assert.Empty(t, report.Skipped)
	assertEdited(t, fresh)
}

func TestExportJSONOptions(t *testing.T) {
	catalog := testCatalog(t)
	table := keymap.NewDefaultTable(catalog, nil)

	data, err := ExportJSON(table, Options{})
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(data, "bindings").IsArray())
	assert.Equal(t, int64(0), gjson.GetBytes(data, "bindings.#").Int())

	data, err = ExportJSON(table, Options{All: true})
	require.NoError(t, err)
	// The fixed ESC binding is never exported.
	assert.Equal(t, int64(3), gjson.GetBytes(data, "bindings.#").Int())
	assert.False(t, gjson.GetBytes(data, `bindings.#(action=="OpenPauseMenu")`).Exists())
}

func TestImportJSONDisplaces(t *testing.T) {
	catalog := testCatalog(t)
	table := keymap.NewDefaultTable(catalog, nil)

	doc := fmt.Sprintf(`{"bindings":[{"action":"ToggleRadar","input":%q}]}`, key.KeyF7.Name())
	report, err := ImportJSON(catalog, table, []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)
	require.Len(t, report.Cleared, 1)
	assert.Contains(t, report.Cleared[0], "QuickSave")

	radar, _ := table.Lookup("ToggleRadar", keymap.SlotPrimary)
	assert.Equal(t, keymap.Press(key.KeyF7), radar.Combo)
}

func TestImportRuleFromDefaults(t *testing.T) {
	catalog := testCatalog(t)
	table := keymap.NewDefaultTable(catalog, nil)

	doc := fmt.Sprintf(`{"bindings":[{"action":"CameraUp","slot":"secondary","input":%q}]}`, key.KeyW.Name())
	_, err := ImportJSON(catalog, table, []byte(doc))
	require.NoError(t, err)

	b, ok := table.Lookup("CameraUp", keymap.SlotSecondary)
	require.True(t, ok)
	assert.Equal(t, keymap.RuleDown, b.Combo.Rule)
}

func TestImportJSONSkipsBadRecords(t *testing.T) {
	catalog := testCatalog(t)
	table := keymap.NewDefaultTable(catalog, nil)
	before := table.Version()

	doc := fmt.Sprintf(`{"bindings":[
		{"action":"Nope","input":"a"},
		{"action":"QuickSave","input":%q},
		{"action":"QuickSave","input":5},
		7,
		{"action":"QuickSave"}
	]}`, key.KeyEscape.Name())

	report, err := ImportJSON(catalog, table, []byte(doc))
	require.NoError(t, err)
	assert.Zero(t, report.Applied)
	assert.Len(t, report.Skipped, 5)
	assert.Equal(t, before, table.Version())

	var fixed bool
	for _, e := range report.Skipped {
		if keymap.IsConflict(e, keymap.ConflictFixed) {
			fixed = true
		}
	}
	assert.True(t, fixed, "escape should be reported as reserved")
}

func TestImportJSONInvalid(t *testing.T) {
	catalog := testCatalog(t)
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"not json", `{"bindings": [`, ErrInvalidDocument},
		{"wrong format", `{"format":"other","bindings":[]}`, ErrInvalidDocument},
		{"newer version", `{"version":2,"bindings":[]}`, ErrUnsupported},
		{"bindings not array", `{"bindings":{}}`, ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportJSON(catalog, keymap.NewDefaultTable(catalog, nil), []byte(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	catalog := testCatalog(t)
	data, err := ExportYAML(editedTable(t, catalog), Options{})
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, FormatName, doc.Format)
	assert.Len(t, doc.Bindings, 2)

	fresh := keymap.NewDefaultTable(catalog, nil)
	report, err := ImportYAML(catalog, fresh, data)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Applied)
	assertEdited(t, fresh)

	_, err = ImportYAML(catalog, fresh, []byte("version: 9\n"))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = ImportYAML(catalog, fresh, []byte("bindings: [\n"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDumpCatalog(t *testing.T) {
	catalog := testCatalog(t)
	table := editedTable(t, catalog)

	data, err := DumpCatalog(catalog, table, false)
	require.NoError(t, err)

	var groups []CatalogContext
	require.NoError(t, yaml.Unmarshal(data, &groups))

	byName := map[string]CatalogEntry{}
	for _, g := range groups {
		assert.NotEmpty(t, g.Actions, g.ID)
		for _, e := range g.Actions {
			byName[e.Name] = e
		}
	}

	qs, ok := byName["QuickSave"]
	require.True(t, ok)
	assert.Equal(t, "Quick Save", qs.Display)
	assert.Equal(t, []string{"primary: " + keymap.Press(key.KeyF7).String()}, qs.Defaults)
	assert.Empty(t, qs.Current)
	assert.True(t, qs.Unhandled)

	radar := byName["ToggleRadar"]
	assert.Equal(t, []string{"primary: " + keymap.Press(key.KeyF6).String()}, radar.Current)
}
