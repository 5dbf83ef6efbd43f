package exchange

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/rebind/internal/input/keymap"
)

// ExportJSON writes the table's bindings as a shared JSON document:
//
//	{"format":"rebind-keymap","version":1,"bindings":[{"action":...}]}
func ExportJSON(t *keymap.Table, opts Options) ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	if doc, err = sjson.SetBytes(doc, "format", FormatName); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "version", FormatVersion); err != nil {
		return nil, err
	}
	// An empty export still carries the array.
	if doc, err = sjson.SetRawBytes(doc, "bindings", []byte(`[]`)); err != nil {
		return nil, err
	}
	for _, rec := range records(t, opts) {
		if doc, err = sjson.SetBytes(doc, "bindings.-1", rec); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", rec.Action, err)
		}
	}
	return doc, nil
}

// ImportJSON applies a shared JSON document to the table. Records are read
// leniently: missing fields take defaults and fields of the wrong type
// make only that record fail.
func ImportJSON(catalog *keymap.Catalog, t *keymap.Table, data []byte) (Report, error) {
	if !gjson.ValidBytes(data) {
		return Report{}, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}

	head := gjson.GetManyBytes(data, "format", "version", "bindings")
	if head[0].Exists() && head[0].String() != FormatName {
		return Report{}, fmt.Errorf("%w: format %q", ErrInvalidDocument, head[0].String())
	}
	if v := head[1].Int(); v > FormatVersion {
		return Report{}, fmt.Errorf("%w: %d", ErrUnsupported, v)
	}
	if !head[2].IsArray() {
		return Report{}, fmt.Errorf("%w: bindings must be an array", ErrInvalidDocument)
	}

	var (
		recs    []numbered
		skipped []error
	)
	for i, item := range head[2].Array() {
		rec, err := decodeJSONRecord(item)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		recs = append(recs, numbered{n: i + 1, rec: rec})
	}

	report := apply(catalog, t, recs)
	report.Skipped = append(skipped, report.Skipped...)
	return report, nil
}

func decodeJSONRecord(item gjson.Result) (Record, error) {
	if !item.IsObject() {
		return Record{}, fmt.Errorf("expected object, got %s", item.Type)
	}

	var rec Record
	fields := []struct {
		name string
		dst  *string
	}{
		{"action", &rec.Action},
		{"slot", &rec.Slot},
		{"modifier", &rec.Modifier},
		{"source", &rec.Source},
		{"input", &rec.Input},
		{"rule", &rec.Rule},
	}
	for _, f := range fields {
		v := item.Get(f.name)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.String {
			return Record{}, fmt.Errorf("field %s: expected string, got %s", f.name, v.Type)
		}
		*f.dst = v.Str
	}
	if rec.Action == "" {
		return Record{}, fmt.Errorf("missing action")
	}
	if rec.Input == "" {
		return Record{}, fmt.Errorf("%s: missing input", rec.Action)
	}
	return rec, nil
}
