package dispatcher

import (
	"cmp"
	"runtime"
	"slices"
	"time"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
)

// Dispatcher evaluates a binding table against polled input once per frame
// and invokes the handlers of the bindings that activate.
//
// Dispatcher is owned by the main loop and is not safe for concurrent use.
// Metrics may be read from other goroutines.
type Dispatcher struct {
	table  *keymap.Table
	config Config

	// Evaluation order, rebuilt when the table version moves.
	sorted        []*keymap.Binding
	sortedVersion uint64
	sortedValid   bool

	// Per-frame scratch sets.
	consumed map[input.Source]bool
	reserved map[input.Source]bool

	inactive map[keymap.ContextID]bool
	debug    DebugFlags

	anyKeyHooks []AnyKeyHook
	fireHooks   []FireHook

	lastInput    input.Source
	lastModifier key.Key

	metrics      *Metrics
	frameMetrics *input.Metrics
	logger       keymap.Logger
}

// New creates a dispatcher for a table.
func New(table *keymap.Table, config Config) (*Dispatcher, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	d := &Dispatcher{
		table:     table,
		config:    config,
		consumed:  make(map[input.Source]bool),
		reserved:  make(map[input.Source]bool),
		inactive:  make(map[keymap.ContextID]bool),
		debug:     NoDebug,
		lastInput: input.Unbound,
		logger:    nopLogger{},
	}
	for _, id := range config.InactiveContexts {
		d.inactive[id] = true
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d, nil
}

// NewWithDefaults creates a dispatcher with DefaultConfig.
func NewWithDefaults(table *keymap.Table) (*Dispatcher, error) {
	return New(table, DefaultConfig())
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// SetLogger sets where recovered panics are reported.
func (d *Dispatcher) SetLogger(l keymap.Logger) {
	if l == nil {
		l = nopLogger{}
	}
	d.logger = l
}

// SetDebugFlags sets the debug mode source. Nil disables debug bindings.
func (d *Dispatcher) SetDebugFlags(f DebugFlags) {
	if f == nil {
		f = NoDebug
	}
	d.debug = f
}

// SetFrameMetrics attaches input metrics that receive frame timings.
func (d *Dispatcher) SetFrameMetrics(m *input.Metrics) {
	d.frameMetrics = m
}

// Metrics returns the dispatcher metrics, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Table returns the table being dispatched.
func (d *Dispatcher) Table() *keymap.Table {
	return d.table
}

// AddAnyKeyHook registers a hook for the any-key scan.
func (d *Dispatcher) AddAnyKeyHook(h AnyKeyHook) {
	d.anyKeyHooks = append(d.anyKeyHooks, h)
}

// AddFireHook registers a hook called after each handler runs.
func (d *Dispatcher) AddFireHook(h FireHook) {
	d.fireHooks = append(d.fireHooks, h)
}

// SetContextActive switches a context on or off. Always-active contexts
// cannot be switched off.
func (d *Dispatcher) SetContextActive(id keymap.ContextID, active bool) {
	if active {
		delete(d.inactive, id)
		return
	}
	d.inactive[id] = true
}

// ContextActive reports whether bindings of a context are evaluated.
func (d *Dispatcher) ContextActive(id keymap.ContextID) bool {
	if d.table.Contexts().IsAlwaysActive(id) {
		return true
	}
	return !d.inactive[id]
}

// LastFiredInput returns the input of the most recently fired binding, or
// input.Unbound if nothing has fired yet.
func (d *Dispatcher) LastFiredInput() input.Source {
	return d.lastInput
}

// LastModifierKey returns the modifier of the most recently fired binding
// that required one, or KeyNone.
func (d *Dispatcher) LastModifierKey() key.Key {
	return d.lastModifier
}

// Order returns the current evaluation order. Unbound and hidden bindings
// are not part of it.
func (d *Dispatcher) Order() []*keymap.Binding {
	d.resort()
	return slices.Clone(d.sorted)
}

// Frame runs one evaluation pass over state and returns how many handlers
// fired. Each physical input fires at most one handler per frame.
func (d *Dispatcher) Frame(state input.State) int {
	startTime := time.Now()

	d.resort()
	clear(d.consumed)
	clear(d.reserved)

	// Exclusive bindings own their input under every modifier.
	for _, b := range d.sorted {
		if b.Status == keymap.StatusAlwaysActiveExclusive && d.live(b) {
			d.reserved[b.Combo.Input] = true
		}
	}

	fired := 0
	for _, b := range d.sorted {
		if !d.live(b) {
			continue
		}
		in := b.Combo.Input
		if d.consumed[in] {
			continue
		}
		if d.reserved[in] && b.Status != keymap.StatusAlwaysActiveExclusive {
			continue
		}
		if b.Action.Handler() == nil {
			continue
		}
		if !activated(state, b.Combo) {
			continue
		}

		if b.HasModifier() {
			d.lastModifier = b.Combo.Modifier
		}
		d.lastInput = in
		d.consumed[in] = true
		d.fire(b)
		fired++
	}

	if d.config.ScanAnyKey && len(d.anyKeyHooks) > 0 {
		d.scanAnyKey(state)
	}

	if d.frameMetrics != nil {
		d.frameMetrics.RecordFrame(time.Since(startTime), fired)
	}
	return fired
}

// resort rebuilds the evaluation order when the table has changed. Bindings
// with a modifier come first so a modifier combo consumes its key before
// the plain binding of the same key is tested. Within each half, higher
// context priority goes first, then creation order.
func (d *Dispatcher) resort() {
	if d.sortedValid && d.sortedVersion == d.table.Version() {
		return
	}

	contexts := d.table.Contexts()
	d.sorted = d.sorted[:0]
	for b := range d.table.All() {
		if b.IsBound() && b.Status != keymap.StatusHidden {
			d.sorted = append(d.sorted, b)
		}
	}

	slices.SortStableFunc(d.sorted, func(a, b *keymap.Binding) int {
		if a.HasModifier() != b.HasModifier() {
			if a.HasModifier() {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(contexts.Priority(b.Context()), contexts.Priority(a.Context())); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq(), b.Seq())
	})

	d.sortedVersion = d.table.Version()
	d.sortedValid = true
}

// live reports whether b takes part in this frame at all.
func (d *Dispatcher) live(b *keymap.Binding) bool {
	switch {
	case !b.IsBound(), b.Status == keymap.StatusHidden:
		return false
	case b.Status == keymap.StatusDebugOnly && !d.debug.DebugModeActiveFor(b.Context()):
		return false
	case b.Status.IsAlwaysActive():
		return true
	}
	return d.ContextActive(b.Context())
}

func activated(state input.State, c keymap.Combo) bool {
	var hit bool
	switch c.Rule {
	case keymap.RulePressed:
		hit = state.Pressed(c.Input)
	case keymap.RuleDown:
		hit = state.Down(c.Input)
	case keymap.RuleReleased:
		hit = state.Released(c.Input)
	}
	return hit && input.ModifierDown(state, c.Modifier)
}

func (d *Dispatcher) fire(b *keymap.Binding) {
	startTime := time.Now()

	var perr *PanicError
	if d.config.RecoverFromPanic {
		perr = d.invokeWithRecovery(b)
	} else {
		b.Action.Invoke()
	}
	b.LastFired = startTime

	if d.metrics != nil {
		d.metrics.RecordFire(b.Action.Name, time.Since(startTime))
		if perr != nil {
			d.metrics.RecordPanic(b.Action.Name)
		}
	}
	if perr != nil {
		d.logger.Warn("dispatcher: %v\n%s", perr, perr.Stack)
	}

	for _, h := range d.fireHooks {
		h.Fired(b)
	}
}

// invokeWithRecovery runs the handler and converts a panic into an error.
func (d *Dispatcher) invokeWithRecovery(b *keymap.Binding) (perr *PanicError) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			perr = &PanicError{Action: b.Action.Name, Value: r, Stack: stack[:n]}
		}
	}()

	b.Action.Invoke()
	return nil
}

// scanAnyKey reports every pressed non-modifier key, bound or not, along
// with the first modifier held.
func (d *Dispatcher) scanAnyKey(state input.State) {
	mod := key.KeyNone
	for _, m := range key.ModifierKeys {
		if state.Down(input.Key(m)) {
			mod = key.Canonical(m)
			break
		}
	}

	for k := key.KeyNone + 1; k < key.KeyMaxScan; k++ {
		if k.IsModifier() || !state.Pressed(input.Key(k)) {
			continue
		}
		for _, h := range d.anyKeyHooks {
			h.AnyKeyPressed(mod, k)
		}
	}
}
