// Package exchange imports and exports keymaps for sharing between
// players.
//
// Shared documents use the same record fields as the keymap file but are
// applied differently: a saved keymap is restored verbatim, while an
// imported document is replayed as a sequence of assignments through the
// table's conflict resolution, so it can never displace a fixed binding.
//
// JSON documents are built with sjson and read leniently with gjson; YAML
// documents and the catalog reference dump use yaml.v3.
package exchange
