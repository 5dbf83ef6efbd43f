package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Esc"},
		{KeyReturn, "Return"},
		{KeyF7, "F7"},
		{KeyA, "A"},
		{Key1, "1"},
		{KeyMinus, "-"},
		{KeyKPPlus, "KP +"},
		{KeyLCtrl, "Ctrl"},
		{KeyMaxScan, "---"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyNameRoundTrip(t *testing.T) {
	for k := KeyNone; k <= KeyMaxScan; k++ {
		name := k.Name()
		if name == "" {
			t.Errorf("Key(%d) has no name", k)
			continue
		}
		if got := KeyFromName(name); got != k {
			t.Errorf("KeyFromName(%q) = %v, want %v", name, got, k)
		}
	}
}

func TestKeyFromNameAliases(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"ESC", KeyEscape},
		{"Enter", KeyReturn},
		{"UpArrow", KeyUp},
		{"ctrl", KeyLCtrl},
		{"period", KeyFullStop},
		{"KPENTER", KeyKPEnter},
		{"  f12 ", KeyF12},
		{"nonsense", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyPredicates(t *testing.T) {
	tests := []struct {
		key      Key
		valid    bool
		function bool
		modifier bool
		keypad   bool
	}{
		{KeyNone, false, false, false, false},
		{KeyMaxScan, false, false, false, false},
		{KeyF1, true, true, false, false},
		{KeyF12, true, true, false, false},
		{KeyRCtrl, true, false, true, false},
		{KeyKPEnter, true, false, false, true},
		{KeyA, true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.Name(), func(t *testing.T) {
			if got := tt.key.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.key.IsFunctionKey(); got != tt.function {
				t.Errorf("IsFunctionKey() = %v, want %v", got, tt.function)
			}
			if got := tt.key.IsModifier(); got != tt.modifier {
				t.Errorf("IsModifier() = %v, want %v", got, tt.modifier)
			}
			if got := tt.key.IsKeypadKey(); got != tt.keypad {
				t.Errorf("IsKeypadKey() = %v, want %v", got, tt.keypad)
			}
		})
	}
}

func TestDigitAndLetter(t *testing.T) {
	if got := Digit(0); got != Key0 {
		t.Errorf("Digit(0) = %v, want 0", got)
	}
	if got := Digit(9); got != Key9 {
		t.Errorf("Digit(9) = %v, want 9", got)
	}
	if got := Digit(10); got != KeyNone {
		t.Errorf("Digit(10) = %v, want None", got)
	}
	if got := Letter('q'); got != KeyQ {
		t.Errorf("Letter('q') = %v, want Q", got)
	}
	if got := Letter('Z'); got != KeyZ {
		t.Errorf("Letter('Z') = %v, want Z", got)
	}
	if got := Letter('!'); got != KeyNone {
		t.Errorf("Letter('!') = %v, want None", got)
	}
}
