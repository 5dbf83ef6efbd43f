package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
)

// Logger receives warnings about records skipped while loading.
// *app.Logger satisfies it.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// fileHeader is written at the top of every saved keymap.
const fileHeader = "# rebind keymap. Only bindings that differ from the defaults are listed.\n\n"

// Loader reads and writes keymap files. A keymap file holds one [[binding]]
// table per non-default binding:
//
//	[[binding]]
//	action = "ToggleRadar"
//	slot = "primary"
//	modifier = "none"
//	source = "default"
//	input = "f6"
//	rule = "pressed"
//
// Unknown fields are ignored.
type Loader struct {
	catalog  *Catalog
	contexts *ContextRegistry
	logger   Logger
}

// NewLoader creates a loader resolving actions through catalog. A nil
// registry uses DefaultContexts.
func NewLoader(catalog *Catalog, contexts *ContextRegistry) *Loader {
	if contexts == nil {
		contexts = DefaultContexts()
	}
	return &Loader{
		catalog:  catalog,
		contexts: contexts,
		logger:   nopLogger{},
	}
}

// SetLogger sets where skipped-record warnings go.
func (l *Loader) SetLogger(lg Logger) {
	if lg == nil {
		lg = nopLogger{}
	}
	l.logger = lg
}

// Report summarizes an overlay.
type Report struct {
	// Applied is the number of records written to the table.
	Applied int
	// Skipped holds one error per record that was ignored.
	Skipped []error
}

// record is the on-disk form of a binding.
type record struct {
	Action   string `toml:"action"`
	Slot     string `toml:"slot"`
	Modifier string `toml:"modifier"`
	Source   string `toml:"source"`
	Input    string `toml:"input"`
	Rule     string `toml:"rule"`
}

type keymapFile struct {
	Binding []record `toml:"binding"`
}

// rawFile decodes records loosely so one bad record cannot fail the file.
type rawFile struct {
	Binding []map[string]any `toml:"binding"`
}

// Save writes every assignable binding that differs from its catalog
// default. Cleared bindings are written with input "unbound". Fixed,
// debug-only and hidden bindings are never written.
func Save(w io.Writer, t *Table) error {
	var f keymapFile
	for b := range t.All() {
		if b.Status != StatusAssignable || b.IsDefault() {
			continue
		}
		f.Binding = append(f.Binding, toRecord(b))
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return &IOError{Kind: IOWrite, Err: fmt.Errorf("encoding keymap: %w", err)}
	}
	if _, err := io.WriteString(w, fileHeader); err != nil {
		return &IOError{Kind: IOWrite, Err: err}
	}
	if _, err := w.Write(data); err != nil {
		return &IOError{Kind: IOWrite, Err: err}
	}
	return nil
}

func toRecord(b *Binding) record {
	mod := "none"
	if b.Combo.Modifier != key.KeyNone {
		mod = b.Combo.Modifier.Name()
	}
	return record{
		Action:   b.Action.Name,
		Slot:     b.Slot.String(),
		Modifier: mod,
		Source:   b.Combo.Input.Kind.String(),
		Input:    b.Combo.Input.Name(),
		Rule:     b.Combo.Rule.String(),
	}
}

// SaveFile writes the keymap to path, creating parent directories. The file
// is replaced atomically.
func SaveFile(path string, t *Table) error {
	var buf bytes.Buffer
	if err := Save(&buf, t); err != nil {
		var ioe *IOError
		if errors.As(err, &ioe) {
			ioe.Path = path
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &IOError{Kind: IOWrite, Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".keymap-*.toml")
	if err != nil {
		return &IOError{Kind: IOWrite, Path: path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Kind: IOWrite, Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Kind: IOWrite, Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Kind: IOWrite, Path: path, Err: err}
	}
	return nil
}

// Load builds a table from the catalog defaults overlaid with the records
// read from r. Malformed records and unknown actions are skipped with a
// warning. A syntax error in the file as a whole yields an IOCorrupt error.
func (l *Loader) Load(r io.Reader) (*Table, error) {
	t := NewDefaultTable(l.catalog, l.contexts)
	if _, err := l.LoadInto(t, r); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadFile is Load for a file. A missing file yields an IONotFound error.
func (l *Loader) LoadFile(path string) (*Table, error) {
	data, err := readKeymap(path)
	if err != nil {
		return nil, err
	}
	t, err := l.Load(bytes.NewReader(data))
	return t, withPath(err, path)
}

// LoadOrDefault loads path, falling back to the catalog defaults when the
// file is missing or unreadable. Failures other than a missing file are
// logged.
func (l *Loader) LoadOrDefault(path string) *Table {
	t, err := l.LoadFile(path)
	if err == nil {
		return t
	}
	if !IsNotFound(err) {
		l.logger.Warn("keymap %s unusable, using defaults: %v", path, err)
	}
	return NewDefaultTable(l.catalog, l.contexts)
}

// LoadInto replaces the contents of an existing table with the defaults
// overlaid by the records in r. The table is left untouched if the file
// cannot be parsed at all. Subscribers receive a single ChangeLoaded.
func (l *Loader) LoadInto(t *Table, r io.Reader) (Report, error) {
	var report Report

	data, err := io.ReadAll(r)
	if err != nil {
		return report, &IOError{Kind: IOCorrupt, Err: err}
	}
	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		ioe := &IOError{Kind: IOCorrupt, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			ioe.Line, ioe.Column = derr.Position()
		}
		return report, ioe
	}

	// Defaults are restored silently; the overlay is announced once.
	observers := t.observers
	t.observers = map[int]func(Change){}
	t.ResetToDefaults(l.catalog)
	t.observers = observers

	for i, fields := range raw.Binding {
		if err := l.apply(t, fields); err != nil {
			err = &IOError{Kind: IOCorrupt, Record: i + 1, Err: err}
			l.logger.Warn("skipping keymap record: %v", err)
			report.Skipped = append(report.Skipped, err)
			continue
		}
		report.Applied++
	}

	t.touch()
	t.notify(Change{Kind: ChangeLoaded})
	return report, nil
}

// LoadFileInto is LoadInto for a file.
func (l *Loader) LoadFileInto(t *Table, path string) (Report, error) {
	data, err := readKeymap(path)
	if err != nil {
		return Report{}, err
	}
	report, err := l.LoadInto(t, bytes.NewReader(data))
	return report, withPath(err, path)
}

func readKeymap(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &IOError{Kind: IONotFound, Path: path, Err: err}
		}
		return nil, &IOError{Kind: IOCorrupt, Path: path, Err: err}
	}
	return data, nil
}

func withPath(err error, path string) error {
	var ioe *IOError
	if errors.As(err, &ioe) && ioe.Path == "" {
		ioe.Path = path
	}
	return err
}

// apply resolves one raw record and writes it to the table.
func (l *Loader) apply(t *Table, fields map[string]any) error {
	rec, err := decodeRecord(fields)
	if err != nil {
		return err
	}

	a, ok := l.catalog.LookupByName(rec.Action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, rec.Action)
	}
	if a.Status != StatusAssignable {
		return fmt.Errorf("action %s is not assignable", a.Name)
	}

	slot := SlotPrimary
	if rec.Slot != "" {
		var known bool
		if slot, known = SlotFromName(rec.Slot); !known {
			l.logger.Warn("keymap: %s has unknown slot %q, using primary", a.Name, rec.Slot)
		}
	}

	kind := input.KindKeyboard
	if rec.Source != "" {
		var known bool
		if kind, known = input.KindFromName(rec.Source); !known {
			l.logger.Warn("keymap: %s has unknown source %q, using keyboard", a.Name, rec.Source)
		}
	}

	in, err := input.ParseSource(kind, rec.Input)
	if err != nil {
		return fmt.Errorf("action %s: %w", a.Name, err)
	}

	if !in.IsBound() {
		t.overlay(a, slot, unboundCombo)
		return nil
	}

	mod, err := key.ParseModifier(rec.Modifier)
	if err != nil {
		return fmt.Errorf("action %s: %w", a.Name, err)
	}

	rule := RulePressed
	if rec.Rule != "" {
		var known bool
		if rule, known = RuleFromName(rec.Rule); !known {
			l.logger.Warn("keymap: %s has unknown rule %q, using pressed", a.Name, rec.Rule)
		}
	}

	combo := NewCombo(mod, in, rule)
	for b := range t.conflicts(combo.Modifier, in, a.Context, nil) {
		if t.isFixed(b) {
			return fmt.Errorf("action %s: %s is reserved by %s", a.Name, combo, b.Action.Name)
		}
	}
	t.overlay(a, slot, combo)
	return nil
}

// decodeRecord extracts the string fields of a record. Missing fields are
// left empty; fields of the wrong type make the record malformed.
func decodeRecord(fields map[string]any) (record, error) {
	var rec record
	targets := map[string]*string{
		"action":   &rec.Action,
		"slot":     &rec.Slot,
		"modifier": &rec.Modifier,
		"source":   &rec.Source,
		"input":    &rec.Input,
		"rule":     &rec.Rule,
	}
	for name, dst := range targets {
		v, ok := fields[name]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return rec, fmt.Errorf("field %s: expected string, got %T", name, v)
		}
		*dst = s
	}
	if rec.Action == "" {
		return rec, errors.New("missing action")
	}
	if rec.Input == "" {
		return rec, errors.New("missing input")
	}
	return rec, nil
}
