package notify

import (
	"testing"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSet, "set"},
		{ChangeDelete, "delete"},
		{ChangeReload, "reload"},
		{ChangeType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("ChangeType(%d).String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()

	var received []Change
	n.Subscribe(func(c Change) { received = append(received, c) })

	n.NotifySet("log.level", "info", "debug", "test")
	n.NotifyDelete("script.path", "/x.lua", "test")

	if len(received) != 2 {
		t.Fatalf("received %d changes, want 2", len(received))
	}
	if received[0].Path != "log.level" || received[0].NewValue != "debug" || received[0].Type != ChangeSet {
		t.Errorf("unexpected first change %+v", received[0])
	}
	if received[1].Type != ChangeDelete || received[1].OldValue != "/x.lua" {
		t.Errorf("unexpected second change %+v", received[1])
	}
}

func TestNotifier_SubscribePath(t *testing.T) {
	n := New()

	var logChanges, levelChanges int
	n.SubscribePath("log", func(Change) { logChanges++ })
	n.SubscribePath("log.level", func(Change) { levelChanges++ })

	n.NotifySet("log.level", "info", "warn", "test")
	n.NotifySet("log.file", "", "/tmp/x.log", "test")
	n.NotifySet("logger.x", nil, 1, "test")
	n.NotifySet("keymap.path", "a", "b", "test")

	if logChanges != 2 {
		t.Errorf("log observer got %d changes, want 2", logChanges)
	}
	if levelChanges != 1 {
		t.Errorf("log.level observer got %d changes, want 1", levelChanges)
	}

	n.NotifyReload("test")
	if logChanges != 3 || levelChanges != 2 {
		t.Errorf("reload should reach every observer, got %d/%d", logChanges, levelChanges)
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	n := New()

	count := 0
	sub := n.SubscribePath("keymap", func(Change) { count++ })
	global := n.Subscribe(func(Change) { count++ })

	n.NotifySet("keymap.watch", false, true, "test")
	sub.Unsubscribe()
	global.Unsubscribe()
	n.NotifySet("keymap.watch", true, false, "test")

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if len(n.subs) != 0 {
		t.Errorf("%d subscribers left after unsubscribe", len(n.subs))
	}
	sub.Unsubscribe()
}

func TestBatch(t *testing.T) {
	n := New()

	var paths []string
	n.Subscribe(func(c Change) { paths = append(paths, c.Path) })

	b := n.NewBatch()
	b.Set("log.level", "info", "debug", "file")
	b.Delete("script.path", "/a.lua", "file")
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if len(paths) != 0 {
		t.Error("batched changes delivered before Commit")
	}

	b.Commit()
	if b.Len() != 0 {
		t.Error("Commit should empty the batch")
	}
	if len(paths) != 2 || paths[0] != "log.level" || paths[1] != "script.path" {
		t.Errorf("paths = %v", paths)
	}
}

func TestNotifier_Order(t *testing.T) {
	n := New()

	var order []string
	n.SubscribePath("frame", func(Change) { order = append(order, "frame") })
	n.Subscribe(func(Change) { order = append(order, "all") })
	n.SubscribePath("frame.rate", func(Change) { order = append(order, "rate") })

	n.NotifySet("frame.rate", 60, 30, "test")
	want := []string{"frame", "all", "rate"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestIsParentPath(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"log", "log.level", true},
		{"", "log", true},
		{"log", "log", false},
		{"log", "logger.level", false},
		{"log.level", "log", false},
	}
	for _, tt := range tests {
		if got := isParentPath(tt.parent, tt.child); got != tt.want {
			t.Errorf("isParentPath(%q, %q) = %v, want %v", tt.parent, tt.child, got, tt.want)
		}
	}
}
