package exchange

import (
	"errors"
	"fmt"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
)

// FormatName identifies shared keymap documents.
const FormatName = "rebind-keymap"

// FormatVersion is the document version written by this package.
const FormatVersion = 1

// Errors returned when reading shared documents.
var (
	ErrInvalidDocument = errors.New("invalid keymap document")
	ErrUnsupported     = errors.New("unsupported keymap document version")
)

// Record is one binding in a shared document. Field names match the
// keymap file format.
type Record struct {
	Action   string `yaml:"action" json:"action"`
	Slot     string `yaml:"slot" json:"slot"`
	Modifier string `yaml:"modifier" json:"modifier"`
	Source   string `yaml:"source" json:"source"`
	Input    string `yaml:"input" json:"input"`
	Rule     string `yaml:"rule" json:"rule"`
}

// Report summarizes an import.
type Report struct {
	// Applied counts records written to the table.
	Applied int
	// Cleared lists bindings displaced by imported records.
	Cleared []string
	// Skipped holds one error per record that could not be applied.
	Skipped []error
}

// Options selects what an export contains.
type Options struct {
	// All includes bindings equal to their defaults. By default only
	// changed bindings are written.
	All bool
}

// numbered is a record with its 1-based position in the source document.
type numbered struct {
	n   int
	rec Record
}

func number(recs []Record) []numbered {
	out := make([]numbered, len(recs))
	for i, r := range recs {
		out[i] = numbered{n: i + 1, rec: r}
	}
	return out
}

// records collects the assignable bindings to export.
func records(t *keymap.Table, opts Options) []Record {
	var out []Record
	for b := range t.All() {
		if b.Status != keymap.StatusAssignable {
			continue
		}
		if !opts.All && b.IsDefault() {
			continue
		}
		out = append(out, toRecord(b))
	}
	return out
}

func toRecord(b *keymap.Binding) Record {
	mod := "none"
	if b.Combo.Modifier != key.KeyNone {
		mod = b.Combo.Modifier.Name()
	}
	return Record{
		Action:   b.Action.Name,
		Slot:     b.Slot.String(),
		Modifier: mod,
		Source:   b.Combo.Input.Kind.String(),
		Input:    b.Combo.Input.Name(),
		Rule:     b.Combo.Rule.String(),
	}
}

// apply writes records through normal conflict resolution. Unlike loading
// a saved keymap, an import is a sequence of user edits: a record may
// displace existing bindings, and records that collide with fixed
// bindings are skipped.
func apply(catalog *keymap.Catalog, t *keymap.Table, recs []numbered) Report {
	var report Report

	unsubscribe := t.Subscribe(func(c keymap.Change) {
		if c.Kind == keymap.ChangeCleared && c.Cause != nil {
			report.Cleared = append(report.Cleared, c.Binding.String())
		}
	})
	defer unsubscribe()

	for _, r := range recs {
		if err := applyRecord(catalog, t, r.rec); err != nil {
			report.Skipped = append(report.Skipped, fmt.Errorf("record %d: %w", r.n, err))
			continue
		}
		report.Applied++
	}
	return report
}

func applyRecord(catalog *keymap.Catalog, t *keymap.Table, rec Record) error {
	if rec.Action == "" {
		return errors.New("missing action")
	}
	a, ok := catalog.LookupByName(rec.Action)
	if !ok {
		return fmt.Errorf("%w: %q", keymap.ErrUnknownAction, rec.Action)
	}

	slot := keymap.SlotPrimary
	if rec.Slot != "" {
		if slot, ok = keymap.SlotFromName(rec.Slot); !ok {
			return fmt.Errorf("%s: %w: %q", a.Name, keymap.ErrInvalidSlot, rec.Slot)
		}
	}

	kind := input.KindKeyboard
	if rec.Source != "" {
		if kind, ok = input.KindFromName(rec.Source); !ok {
			return fmt.Errorf("%s: unknown source %q", a.Name, rec.Source)
		}
	}
	in, err := input.ParseSource(kind, rec.Input)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name, err)
	}

	if !in.IsBound() {
		b, ok := t.Get(a, slot)
		if !ok {
			return nil
		}
		return t.Remove(b)
	}

	mod, err := key.ParseModifier(rec.Modifier)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name, err)
	}

	rule := a.RuleFor(in)
	if rec.Rule != "" {
		if rule, ok = keymap.RuleFromName(rec.Rule); !ok {
			return fmt.Errorf("%s: unknown rule %q", a.Name, rec.Rule)
		}
	}

	_, err = t.Assign(a, slot, mod, in, rule)
	return err
}
