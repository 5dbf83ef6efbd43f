// Package app wires the remapping engine into a running program: it loads
// configuration and the saved keymap, binds action handlers, runs the
// per-frame dispatch loop over a terminal backend and keeps the keymap,
// journal and script hooks in step while the player remaps.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/rebind/internal/config"
	"github.com/dshills/rebind/internal/config/notify"
	"github.com/dshills/rebind/internal/config/watcher"
	"github.com/dshills/rebind/internal/dispatcher"
	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/keymap"
	"github.com/dshills/rebind/internal/journal"
	"github.com/dshills/rebind/internal/remap"
	"github.com/dshills/rebind/internal/script"
)

// Backend supplies input to the frame loop. *backend.Terminal implements
// it.
type Backend interface {
	Init() error
	Shutdown()
	// Drain applies all queued input to the tracker without blocking.
	Drain(*input.Tracker) (int, error)
	// Interrupted reports whether the user asked to quit.
	Interrupted() bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultPath.
	ConfigPath string

	// KeymapPath overrides keymap.path from the configuration.
	KeymapPath string

	// LogLevel overrides log.level from the configuration.
	LogLevel string

	// LogOutput receives log lines when log.file is not set. Defaults to
	// os.Stderr.
	LogOutput io.Writer

	// NoScript skips loading the Lua hook script.
	NoScript bool

	// NoJournal disables the binding change journal.
	NoJournal bool

	// Remap opens a capture session for "Action" or "Action:secondary"
	// as soon as the loop starts.
	Remap string
}

// Application owns every engine component. All of them are driven from
// the goroutine that calls Run; background watchers hand work over with
// post.
type Application struct {
	opts   Options
	logger *Logger

	configs *config.Manager
	cfg     *config.Config
	subs    []*notify.Subscription
	logFile *os.File

	catalog    *keymap.Catalog
	contexts   *keymap.ContextRegistry
	loader     *keymap.Loader
	table      *keymap.Table
	dispatcher *dispatcher.Dispatcher
	debugFlags *dispatcher.PlayerDebugFlags
	tracker    *input.Tracker
	metrics    *input.Metrics
	editor     *remap.Editor

	levelEditor     bool
	contextSwitches []contextSwitch

	journal       *journal.Journal
	detachJournal func()
	script        *script.Host
	keymapWatch   *watcher.Watcher

	// lastSave is when the keymap file was last written by us, so the
	// watcher event caused by our own save is not reloaded.
	lastSave atomic.Int64

	frameRate atomic.Int64
	tasks     chan func()
	running   atomic.Bool
	closeOnce sync.Once
}

type contextSwitch struct {
	id keymap.ContextID
	on bool
}

// New creates an application and initializes every component. Close
// must be called on the result.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:  opts,
		tasks: make(chan func(), 64),
	}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", app.initConfig},
		{"logger", app.initLogger},
		{"keymap", app.initKeymap},
		{"dispatcher", app.initDispatcher},
		{"remap", app.initEditor},
		{"journal", app.initJournal},
		{"script", app.initScript},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInitialization, s.name, err)
		}
	}
	app.subscribeConfig()
	return nil
}

func (app *Application) initConfig() error {
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	m, err := config.NewManager(path)
	if err != nil {
		return err
	}
	app.configs = m
	app.cfg = m.Config()
	if app.opts.KeymapPath != "" {
		app.cfg.Keymap.Path = app.opts.KeymapPath
	}
	if app.opts.LogLevel != "" {
		app.cfg.Log.Level = app.opts.LogLevel
	}
	app.frameRate.Store(int64(app.cfg.Frame.Rate))
	return nil
}

func (app *Application) initLogger() error {
	out := app.opts.LogOutput
	if app.cfg.Log.File != "" {
		f, err := OpenLogFile(app.cfg.Log.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.cfg.Log.Level),
		Output: out,
		Prefix: "rebind",
	})
	app.configs.OnError(func(err error) {
		app.logger.WithComponent("config").Warn("reload failed, keeping previous settings: %v", err)
	})
	return nil
}

func (app *Application) initKeymap() error {
	app.catalog = keymap.DefaultCatalog()
	app.contexts = keymap.DefaultContexts()
	if err := app.contexts.Check(app.catalog); err != nil {
		return err
	}
	app.loader = keymap.NewLoader(app.catalog, app.contexts)
	app.loader.SetLogger(app.logger.WithComponent("keymap"))
	app.table = app.loader.LoadOrDefault(app.cfg.Keymap.Path)
	app.bindHandlers()
	app.logger.Info("keymap %s: %d bindings", app.cfg.Keymap.Path, app.table.Len())
	return nil
}

func (app *Application) initDispatcher() error {
	d, err := dispatcher.New(app.table, dispatcher.DefaultConfig().WithMetrics())
	if err != nil {
		return err
	}
	d.SetLogger(app.logger.WithComponent("dispatcher"))

	app.debugFlags = dispatcher.NewPlayerDebugFlags()
	app.applyDebugPlayers(app.cfg.Debug.Players)
	d.SetDebugFlags(app.debugFlags)

	app.metrics = input.NewMetrics()
	app.tracker = input.NewTracker()
	app.tracker.SetMetrics(app.metrics)
	d.SetFrameMetrics(app.metrics)

	app.dispatcher = d
	return nil
}

func (app *Application) initEditor() error {
	app.editor = remap.NewEditor(app.table, app.catalog)
	app.editor.OnOutcome(app.onOutcome)
	return nil
}

func (app *Application) initJournal() error {
	if app.opts.NoJournal || !app.cfg.Journal.Enabled {
		return nil
	}
	j, err := journal.Open(app.cfg.Journal.Path)
	if err != nil {
		// History is optional; the engine runs without it.
		app.logger.WithComponent("journal").Warn("disabled: %v", err)
		return nil
	}
	j.SetLogger(app.logger.WithComponent("journal"))
	app.detachJournal = j.Attach(app.table)
	j.Track(app.editor)
	app.journal = j
	return nil
}

func (app *Application) initScript() error {
	if app.opts.NoScript {
		return nil
	}
	h := script.NewHost(app.catalog, app.table, app.logger.WithComponent("script"))
	if err := h.LoadFile(app.cfg.Script.Path); err != nil {
		h.Close()
		app.logger.WithComponent("script").Warn("not loaded: %v", err)
		return nil
	}
	app.dispatcher.AddAnyKeyHook(h)
	app.dispatcher.AddFireHook(h)
	app.script = h
	return nil
}

// subscribeConfig applies settings that can change while running.
func (app *Application) subscribeConfig() {
	n := app.configs.Notifier()
	app.subs = append(app.subs,
		n.SubscribePath("log.level", func(c notify.Change) {
			if s, ok := c.NewValue.(string); ok {
				app.logger.SetLevel(ParseLogLevel(s))
			}
		}),
		n.SubscribePath("frame.rate", func(notify.Change) {
			app.frameRate.Store(int64(app.configs.Config().Frame.Rate))
		}),
		n.SubscribePath("debug.players", func(notify.Change) {
			players := app.configs.Config().Debug.Players
			app.post(func() { app.applyDebugPlayers(players) })
		}),
	)
}

// applyDebugPlayers marks the listed players allocated and asking for
// debug mode. Player 0 is the local player and always allocated.
func (app *Application) applyDebugPlayers(players []int) {
	for n := range dispatcher.MaxPlayers {
		app.debugFlags.SetWanted(n, false)
		app.debugFlags.SetAllocated(n, n == 0)
	}
	for _, p := range players {
		app.debugFlags.SetAllocated(p, true)
		app.debugFlags.SetWanted(p, true)
	}
	if app.debugFlags.Active() {
		app.logger.Info("debug mappings enabled for players %v", app.debugFlags.Players(true))
	}
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Catalog returns the action catalog.
func (app *Application) Catalog() *keymap.Catalog {
	return app.catalog
}

// Table returns the live binding table.
func (app *Application) Table() *keymap.Table {
	return app.table
}

// Dispatcher returns the frame dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Editor returns the remap editor.
func (app *Application) Editor() *remap.Editor {
	return app.editor
}

// Journal returns the change journal, or nil when disabled.
func (app *Application) Journal() *journal.Journal {
	return app.journal
}

// Metrics returns the input and frame metrics.
func (app *Application) Metrics() *input.Metrics {
	return app.metrics
}

// post schedules fn on the frame loop. It may be called from any
// goroutine; work posted when the queue is full is dropped with a warning.
func (app *Application) post(fn func()) {
	select {
	case app.tasks <- fn:
	default:
		if app.logger != nil {
			app.logger.Warn("task queue full, dropping work")
		}
	}
}

// Close releases every component. It is safe to call more than once.
func (app *Application) Close() error {
	var errs ErrorList
	app.closeOnce.Do(func() {
		for _, s := range app.subs {
			s.Unsubscribe()
		}
		if app.keymapWatch != nil {
			errs.Add(app.keymapWatch.Close())
		}
		if app.configs != nil {
			errs.Add(app.configs.Close())
		}
		if app.script != nil {
			errs.Add(app.script.Close())
		}
		if app.detachJournal != nil {
			app.detachJournal()
		}
		if app.journal != nil {
			errs.Add(app.journal.Close())
		}
		if app.logFile != nil {
			errs.Add(app.logFile.Close())
		}
	})
	return errs.AsError()
}

func (app *Application) markSaved() {
	app.lastSave.Store(time.Now().UnixNano())
}

func (app *Application) savedRecently(at time.Time, within time.Duration) bool {
	last := app.lastSave.Load()
	return last != 0 && at.Sub(time.Unix(0, last)) < within
}

var errNoKeymapPath = errors.New("no keymap path configured")
