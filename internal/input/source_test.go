package input

import (
	"errors"
	"testing"

	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

func TestSourceEquality(t *testing.T) {
	a := Key(key.KeyF7)
	b := Key(key.KeyF7)
	c := Mouse(mouse.Button(key.KeyF7))

	if !a.Equal(b) {
		t.Error("same key sources should be equal")
	}
	if a.Equal(c) {
		t.Error("keyboard and mouse sources with the same code should differ")
	}
	if a.Hash() == c.Hash() {
		t.Error("keyboard and mouse sources should hash differently")
	}

	set := map[Source]bool{a: true}
	if !set[b] {
		t.Error("Source should be usable as a map key")
	}
}

func TestSourceIsBound(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want bool
	}{
		{"unbound", Unbound, false},
		{"zero", Source{}, false},
		{"key", Key(key.KeyA), true},
		{"mouse", Mouse(mouse.ButtonLeft), true},
		{"mouse none", Mouse(mouse.ButtonNone), false},
	}

	for _, tt := range tests {
		if got := tt.src.IsBound(); got != tt.want {
			t.Errorf("%s: IsBound() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSourceAccessors(t *testing.T) {
	k, ok := Key(key.KeyEscape).AsKey()
	if !ok || k != key.KeyEscape {
		t.Errorf("AsKey() = %v, %v", k, ok)
	}
	if _, ok := Key(key.KeyEscape).AsMouse(); ok {
		t.Error("AsMouse() on keyboard source should fail")
	}
	if !Mouse(mouse.ButtonWheelUp).IsWheel() {
		t.Error("wheel up should be a wheel source")
	}
	if Mouse(mouse.ButtonLeft).IsWheel() {
		t.Error("left button is not a wheel source")
	}
	if !Key(key.KeyTab).Is(key.KeyTab) {
		t.Error("Is(KeyTab) should be true")
	}
}

func TestSourceNames(t *testing.T) {
	tests := []struct {
		src     Source
		name    string
		display string
	}{
		{Key(key.KeyF7), "f7", "F7"},
		{Mouse(mouse.ButtonWheelDown), "wheel_down", "Wheel Down"},
		{Unbound, "unbound", "---"},
	}

	for _, tt := range tests {
		if got := tt.src.Name(); got != tt.name {
			t.Errorf("Name() = %q, want %q", got, tt.name)
		}
		if got := tt.src.String(); got != tt.display {
			t.Errorf("String() = %q, want %q", got, tt.display)
		}
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		kind    Kind
		name    string
		want    Source
		wantErr bool
	}{
		{KindKeyboard, "f6", Key(key.KeyF6), false},
		{KindKeyboard, "unbound", Unbound, false},
		{KindMouse, "wheel_up", Mouse(mouse.ButtonWheelUp), false},
		{KindMouse, "UNBOUND", Unbound, false},
		{KindKeyboard, "wheel_up", Unbound, true},
		{KindMouse, "f6", Unbound, true},
	}

	for _, tt := range tests {
		got, err := ParseSource(tt.kind, tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSource(%v, %q) error = %v, wantErr %v", tt.kind, tt.name, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownInput) {
			t.Errorf("ParseSource(%v, %q) error = %v, want ErrUnknownInput", tt.kind, tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParseSource(%v, %q) = %v, want %v", tt.kind, tt.name, got, tt.want)
		}
	}
}

func TestParseInput(t *testing.T) {
	if got, err := ParseInput("wheel_down"); err != nil || got != Mouse(mouse.ButtonWheelDown) {
		t.Errorf("ParseInput(wheel_down) = %v, %v", got, err)
	}
	if got, err := ParseInput("left"); err != nil || got != Key(key.KeyLeft) {
		t.Errorf("ParseInput(left) = %v, %v", got, err)
	}
	if got, err := ParseInput("mouse:left"); err != nil || got != Mouse(mouse.ButtonLeft) {
		t.Errorf("ParseInput(mouse:left) = %v, %v", got, err)
	}
	if _, err := ParseInput("nope"); err == nil {
		t.Error("ParseInput(nope) should fail")
	}
}

func TestKindFromName(t *testing.T) {
	if k, ok := KindFromName("mouse_key"); !ok || k != KindMouse {
		t.Errorf("KindFromName(mouse_key) = %v, %v", k, ok)
	}
	if k, ok := KindFromName("default"); !ok || k != KindKeyboard {
		t.Errorf("KindFromName(default) = %v, %v", k, ok)
	}
	if k, ok := KindFromName("joystick"); ok || k != KindKeyboard {
		t.Errorf("KindFromName(joystick) = %v, %v, want fallback to keyboard", k, ok)
	}
}
