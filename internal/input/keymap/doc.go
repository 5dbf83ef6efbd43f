// Package keymap holds the action catalog, the input contexts and the
// mutable binding table, together with conflict resolution and persistence.
//
// # Key Concepts
//
// Action: a bindable capability from the static Catalog, identified by a
// stable name and bound to a Handler at startup.
//
// Context: a scope gating when bindings may fire. Always-active contexts
// overlap every other context and their bindings can never be displaced.
//
// Binding: the current Combo (modifier, input, rule) of one action slot.
// A binding is never removed from its Table; clearing it stores the
// unbound input in place, so (action, slot) identity survives every edit.
//
// # Conflict Resolution
//
// Table.Assign enforces that no two assignable bindings in overlapping
// contexts share a (modifier, input) pair:
//  1. Targets that are not assignable are rejected with ConflictFixed
//  2. A combo already held by another slot of the same action is a
//     ConflictSameAction no-op
//  3. If any colliding binding is fixed the assignment fails with
//     ConflictFixed and nothing changes
//  4. Otherwise every colliding binding is cleared and the target updated
//
// Exclusive bindings (StatusAlwaysActiveExclusive) collide with their input
// under any modifier. Debug-only and hidden bindings never collide.
//
// # Persistence
//
// Save writes only assignable bindings that differ from the catalog
// defaults, as TOML [[binding]] tables. Loading rebuilds the defaults first
// and overlays each record, so always-active bindings are always restored
// from the catalog and a file edited by an older version still loads:
//
//	loader := keymap.NewLoader(keymap.DefaultCatalog(), nil)
//	table := loader.LoadOrDefault(path)
//
//	radar, _ := catalog.LookupByName("ToggleRadar")
//	if _, err := table.Assign(radar, keymap.SlotPrimary, key.KeyNone, input.Key(key.KeyF6), keymap.RulePressed); err != nil {
//	    if keymap.IsConflict(err, keymap.ConflictFixed) {
//	        // "that combination is reserved"
//	    }
//	}
//	err := keymap.SaveFile(path, table)
package keymap
