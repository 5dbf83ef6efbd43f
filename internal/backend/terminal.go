package backend

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

// DefaultQueueSize is the number of terminal events buffered between
// frames.
const DefaultQueueSize = 256

// ErrNotStarted is returned when input is read before Init.
var ErrNotStarted = errors.New("backend: terminal not initialized")

// Terminal reads input from a tcell screen.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event

	mu      sync.Mutex
	started bool
	quit    chan struct{}
	wg      sync.WaitGroup

	// Owned by the frame loop.
	buttons     tcell.ButtonMask
	interrupted bool
	ignored     int

	metrics *input.Metrics
}

// NewTerminal creates a backend on the process terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a backend on an existing screen, such as a
// simulation screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		events: make(chan tcell.Event, DefaultQueueSize),
	}
}

// SetMetrics records events dropped on a full queue. Call it before Init.
func (t *Terminal) SetMetrics(m *input.Metrics) {
	t.metrics = m
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Init initializes the screen, enables mouse reporting and starts reading
// events.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()

	t.quit = make(chan struct{})
	t.started = true
	t.wg.Add(1)
	go t.poll()
	return nil
}

// Shutdown stops reading events and restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	close(t.quit)
	t.mu.Unlock()

	// Fini makes PollEvent return nil, which ends the poll goroutine.
	t.screen.Fini()
	t.wg.Wait()
}

func (t *Terminal) poll() {
	defer t.wg.Done()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		default:
			if t.metrics != nil {
				t.metrics.RecordDroppedEvent()
			}
		}
	}
}

// Interrupted reports whether Ctrl+C has been read. Raw terminal mode
// delivers it as a key instead of a signal.
func (t *Terminal) Interrupted() bool {
	return t.interrupted
}

// Ignored returns the number of key events that had no physical key.
func (t *Terminal) Ignored() int {
	return t.ignored
}

// Drain applies every queued event to the tracker and returns how many
// were applied. It never blocks; call it once per frame after
// tracker.BeginFrame.
func (t *Terminal) Drain(tracker *input.Tracker) (int, error) {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if !started {
		return 0, ErrNotStarted
	}

	n := 0
	for {
		select {
		case ev := <-t.events:
			if t.Apply(tracker, ev) {
				n++
			}
		default:
			return n, nil
		}
	}
}

// Apply converts a single event and records it on the tracker. It reports
// whether the event produced any input.
func (t *Terminal) Apply(tracker *input.Tracker, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC {
			t.interrupted = true
		}
		k, mods, ok := convertKey(e)
		if !ok {
			t.ignored++
			return false
		}
		for _, m := range modifierKeys(mods) {
			tracker.Tap(input.Key(m))
		}
		tracker.Tap(input.Key(k))
		return true

	case *tcell.EventMouse:
		return t.applyMouse(tracker, e)

	case *tcell.EventFocus:
		if !e.Focused {
			tracker.Reset()
			t.buttons = tcell.ButtonNone
		}
		return false

	default:
		return false
	}
}

func (t *Terminal) applyMouse(tracker *input.Tracker, e *tcell.EventMouse) bool {
	mask := e.Buttons()
	prev := t.buttons
	applied := false

	for _, bm := range buttonMap {
		now := mask&bm.mask != 0
		was := prev&bm.mask != 0
		switch {
		case now && !was:
			tracker.Press(input.Mouse(bm.button))
			applied = true
		case !now && was:
			tracker.Release(input.Mouse(bm.button))
			applied = true
		}
	}
	// Wheel notches arrive as separate events, each one a press.
	for _, wm := range wheelMap {
		if mask&wm.mask != 0 {
			tracker.Press(input.Mouse(wm.button))
			applied = true
		}
	}

	t.buttons = mask &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	if applied {
		for _, m := range modifierKeys(e.Modifiers()) {
			tracker.Tap(input.Key(m))
		}
	}
	return applied
}

type buttonMapping struct {
	mask   tcell.ButtonMask
	button mouse.Button
}

var buttonMap = []buttonMapping{
	{tcell.ButtonPrimary, mouse.ButtonLeft},
	{tcell.ButtonMiddle, mouse.ButtonMiddle},
	{tcell.ButtonSecondary, mouse.ButtonRight},
	{tcell.Button4, mouse.ButtonX1},
	{tcell.Button5, mouse.ButtonX2},
}

var wheelMap = []buttonMapping{
	{tcell.WheelUp, mouse.ButtonWheelUp},
	{tcell.WheelDown, mouse.ButtonWheelDown},
}

// modifierKeys converts a tcell modifier mask to the left-hand modifier
// keys, which is how bindings store them.
func modifierKeys(m tcell.ModMask) []key.Key {
	var keys []key.Key
	if m&tcell.ModCtrl != 0 {
		keys = append(keys, key.KeyLCtrl)
	}
	if m&tcell.ModAlt != 0 {
		keys = append(keys, key.KeyLAlt)
	}
	if m&tcell.ModShift != 0 {
		keys = append(keys, key.KeyLShift)
	}
	if m&tcell.ModMeta != 0 {
		keys = append(keys, key.KeyLMeta)
	}
	return keys
}

// convertKey maps a tcell key event to a physical key and the modifiers
// held with it. Control letters and shifted characters carry their
// modifier in the key itself, so it is added to the mask here.
func convertKey(e *tcell.EventKey) (key.Key, tcell.ModMask, bool) {
	mods := e.Modifiers()

	switch e.Key() {
	case tcell.KeyRune:
		k, shifted, ok := convertRune(e.Rune())
		if shifted {
			mods |= tcell.ModShift
		}
		return k, mods, ok
	case tcell.KeyEscape:
		return key.KeyEscape, mods, true
	case tcell.KeyEnter:
		return key.KeyReturn, mods, true
	case tcell.KeyTab:
		return key.KeyTab, mods, true
	case tcell.KeyBacktab:
		return key.KeyTab, mods | tcell.ModShift, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace, mods, true
	case tcell.KeyDelete:
		return key.KeyDelete, mods, true
	case tcell.KeyInsert:
		return key.KeyInsert, mods, true
	case tcell.KeyHome:
		return key.KeyHome, mods, true
	case tcell.KeyEnd:
		return key.KeyEnd, mods, true
	case tcell.KeyPgUp:
		return key.KeyPageUp, mods, true
	case tcell.KeyPgDn:
		return key.KeyPageDown, mods, true
	case tcell.KeyUp:
		return key.KeyUp, mods, true
	case tcell.KeyDown:
		return key.KeyDown, mods, true
	case tcell.KeyLeft:
		return key.KeyLeft, mods, true
	case tcell.KeyRight:
		return key.KeyRight, mods, true
	case tcell.KeyPause:
		return key.KeyPause, mods, true
	case tcell.KeyPrint:
		return key.KeyPrintScreen, mods, true
	case tcell.KeyCtrlSpace:
		return key.KeySpace, mods | tcell.ModCtrl, true
	}

	if k := e.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.KeyF1 + key.Key(k-tcell.KeyF1), mods, true
	}
	if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.KeyA + key.Key(k-tcell.KeyCtrlA), mods | tcell.ModCtrl, true
	}
	return key.KeyNone, mods, false
}

// punctuation maps unshifted and shifted characters to their key on a US
// layout.
var punctuation = map[rune]struct {
	k       key.Key
	shifted bool
}{
	' ': {key.KeySpace, false},
	'-': {key.KeyMinus, false}, '_': {key.KeyMinus, true},
	'=': {key.KeyEquals, false}, '+': {key.KeyEquals, true},
	'[': {key.KeyLeftBracket, false}, '{': {key.KeyLeftBracket, true},
	']': {key.KeyRightBracket, false}, '}': {key.KeyRightBracket, true},
	'\\': {key.KeyBackslash, false}, '|': {key.KeyBackslash, true},
	';': {key.KeySemicolon, false}, ':': {key.KeySemicolon, true},
	'\'': {key.KeyQuote, false}, '"': {key.KeyQuote, true},
	'`': {key.KeyBackquote, false}, '~': {key.KeyBackquote, true},
	',': {key.KeyComma, false}, '<': {key.KeyComma, true},
	'.': {key.KeyFullStop, false}, '>': {key.KeyFullStop, true},
	'/': {key.KeySlash, false}, '?': {key.KeySlash, true},
	'!': {key.Key1, true}, '@': {key.Key2, true}, '#': {key.Key3, true},
	'$': {key.Key4, true}, '%': {key.Key5, true}, '^': {key.Key6, true},
	'&': {key.Key7, true}, '*': {key.Key8, true}, '(': {key.Key9, true},
	')': {key.Key0, true},
}

func convertRune(r rune) (key.Key, bool, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return key.KeyA + key.Key(r-'a'), false, true
	case r >= 'A' && r <= 'Z':
		return key.KeyA + key.Key(r-'A'), true, true
	case r >= '0' && r <= '9':
		return key.Key0 + key.Key(r-'0'), false, true
	}
	if p, ok := punctuation[r]; ok {
		return p.k, p.shifted, true
	}
	// Other characters have no fixed physical position.
	return key.KeyNone, false, false
}
