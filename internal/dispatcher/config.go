package dispatcher

import "github.com/dshills/rebind/internal/input/keymap"

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables per-action fire counts and handler timing.
	EnableMetrics bool

	// RecoverFromPanic wraps handler invocation in panic recovery. A
	// panicking handler still consumes its input.
	RecoverFromPanic bool

	// ScanAnyKey enables the "any key pressed" scan after the binding
	// pass. It only runs when at least one AnyKeyHook is registered.
	ScanAnyKey bool

	// InactiveContexts lists contexts that start switched off. Radar
	// bindings only apply while the pointer is over the radar.
	InactiveContexts []keymap.ContextID
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		ScanAnyKey:       true,
		InactiveContexts: []keymap.ContextID{keymap.ContextRadar},
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithAnyKeyScan returns a copy of the config with the any-key scan set.
func (c Config) WithAnyKeyScan(enabled bool) Config {
	c.ScanAnyKey = enabled
	return c
}

// WithInactiveContexts returns a copy of the config with the given
// contexts starting inactive.
func (c Config) WithInactiveContexts(ids ...keymap.ContextID) Config {
	c.InactiveContexts = append([]keymap.ContextID(nil), ids...)
	return c
}
