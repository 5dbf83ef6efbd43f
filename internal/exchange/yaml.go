package exchange

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dshills/rebind/internal/input/keymap"
)

// Document is the YAML form of a shared keymap.
type Document struct {
	Format   string   `yaml:"format"`
	Version  int      `yaml:"version"`
	Bindings []Record `yaml:"bindings"`
}

// ExportYAML writes the table's bindings as a YAML document.
func ExportYAML(t *keymap.Table, opts Options) ([]byte, error) {
	doc := Document{
		Format:   FormatName,
		Version:  FormatVersion,
		Bindings: records(t, opts),
	}
	if doc.Bindings == nil {
		doc.Bindings = []Record{}
	}
	return yaml.Marshal(doc)
}

// ImportYAML applies a YAML document to the table.
func ImportYAML(catalog *keymap.Catalog, t *keymap.Table, data []byte) (Report, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Format != "" && doc.Format != FormatName {
		return Report{}, fmt.Errorf("%w: format %q", ErrInvalidDocument, doc.Format)
	}
	if doc.Version > FormatVersion {
		return Report{}, fmt.Errorf("%w: %d", ErrUnsupported, doc.Version)
	}
	return apply(catalog, t, number(doc.Bindings)), nil
}

// CatalogEntry describes one action in a catalog dump.
type CatalogEntry struct {
	Name      string   `yaml:"name"`
	Display   string   `yaml:"display,omitempty"`
	Status    string   `yaml:"status"`
	Defaults  []string `yaml:"defaults,omitempty"`
	Current   []string `yaml:"current,omitempty"`
	Unhandled bool     `yaml:"unhandled,omitempty"`
}

// CatalogContext groups catalog entries by context.
type CatalogContext struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Priority int            `yaml:"priority"`
	Actions  []CatalogEntry `yaml:"actions"`
}

// DumpCatalog renders every action, grouped by context in registry order,
// with its default and current combos. Unlisted, hidden and debug actions
// are included only when all is set.
func DumpCatalog(catalog *keymap.Catalog, t *keymap.Table, all bool) ([]byte, error) {
	contexts := t.Contexts()
	groups := make(map[keymap.ContextID]*CatalogContext)
	var order []*CatalogContext
	for _, c := range contexts.All() {
		g := &CatalogContext{ID: string(c.ID), Name: c.Name, Priority: c.Priority}
		groups[c.ID] = g
		order = append(order, g)
	}

	for a := range catalog.All() {
		if !all && !a.IsListed() {
			continue
		}
		g, ok := groups[a.Context]
		if !ok {
			continue
		}
		e := CatalogEntry{
			Name:      a.Name,
			Display:   a.DisplayName,
			Status:    a.Status.String(),
			Unhandled: a.Handler() == nil,
		}
		for _, d := range a.Defaults {
			e.Defaults = append(e.Defaults, d.Slot.String()+": "+d.Combo.String())
		}
		for _, b := range t.ForAction(a) {
			if b.IsBound() {
				e.Current = append(e.Current, b.Slot.String()+": "+b.Combo.String())
			}
		}
		g.Actions = append(g.Actions, e)
	}

	var out []CatalogContext
	for _, g := range order {
		if len(g.Actions) > 0 {
			out = append(out, *g)
		}
	}
	return yaml.Marshal(out)
}
