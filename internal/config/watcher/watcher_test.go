package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in     fsnotify.Op
		want   Operation
		wantOK bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	a := filepath.Join(dir, "keymap.toml")
	b := filepath.Join(dir, "config.toml")

	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error = %v", err)
	}
	if err := w.Watch(a); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("second Watch(a) error = %v, want ErrAlreadyWatching", err)
	}
	if !w.IsWatching(a) {
		t.Error("IsWatching(a) = false")
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch(a) error = %v", err)
	}
	if w.dirs[dir] != 1 {
		t.Errorf("directory refcount = %d, want 1", w.dirs[dir])
	}
	if err := w.Unwatch(a); !errors.Is(err, ErrNotWatching) {
		t.Errorf("second Unwatch(a) error = %v, want ErrNotWatching", err)
	}

	if err := w.Watch(filepath.Join(dir, "missing", "x.toml")); err == nil {
		t.Error("Watch in a missing directory should fail")
	}
}

func TestWatcher_OnChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "keymap.toml")
	other := filepath.Join(dir, "other.toml")

	w, err := New(WithDebounce(75 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	events := make(chan Event, 8)
	w.OnChange(func(e Event) { events <- e })

	if err := w.Watch(target); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("[bindings]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case e := <-events:
		if e.Path != target {
			t.Errorf("event path = %q, want %q", e.Path, target)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event delivered")
	}

	// The burst collapses into one event.
	select {
	case e := <-events:
		t.Errorf("unexpected extra event %+v", e)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch(t.TempDir()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Watch after Close error = %v, want ErrWatcherClosed", err)
	}
	if _, ok := <-w.Errors(); ok {
		t.Error("Errors channel should be closed")
	}
}
