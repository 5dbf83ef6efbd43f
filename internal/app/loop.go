package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dshills/rebind/internal/config/watcher"
	"github.com/dshills/rebind/internal/input/keymap"
	"github.com/dshills/rebind/internal/remap"
)

// selfSaveWindow is how long after our own save a keymap file event is
// assumed to be that save.
const selfSaveWindow = time.Second

// Run initializes the backend and runs the frame loop until ctx is
// cancelled or the backend reports an interrupt. A normal exit returns
// nil.
func (app *Application) Run(ctx context.Context, b Backend) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return NewError("backend", "init", err).Fatal()
	}
	defer b.Shutdown()

	app.startWatching()
	if app.opts.Remap != "" {
		if _, err := app.StartRemap(app.opts.Remap); err != nil {
			return err
		}
	}

	rate := app.frameRate.Load()
	ticker := time.NewTicker(frameInterval(rate))
	defer ticker.Stop()

	app.logger.Info("running at %d frames per second", rate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-app.tasks:
			fn()
		case <-ticker.C:
			if err := app.frame(b); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				if IsFatal(err) {
					return err
				}
				app.logger.Error("%v", err)
			}
			if r := app.frameRate.Load(); r != rate {
				rate = r
				ticker.Reset(frameInterval(rate))
			}
		}
	}
}

func frameInterval(rate int64) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// frame runs one tick: input is drained into the tracker, then either the
// open capture session or the dispatcher consumes it. Handler panics are
// recovered by the dispatcher; anything else that panics here is turned
// into an error so the loop survives.
func (app *Application) frame(b Backend) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	app.applyContextSwitches()
	app.tracker.BeginFrame()
	if _, err := b.Drain(app.tracker); err != nil {
		return NewError("backend", "drain", err).Fatal()
	}
	if b.Interrupted() {
		return ErrQuit
	}

	if app.editor.Waiting() {
		app.editor.Scan(app.tracker)
		return nil
	}
	app.dispatcher.Frame(app.tracker)
	return nil
}

// switchContext queues a context activity change for the start of the
// next frame, so a handler never changes the state the rest of the
// current pass is judged by.
func (app *Application) switchContext(id keymap.ContextID, on bool) {
	app.contextSwitches = append(app.contextSwitches, contextSwitch{id, on})
}

func (app *Application) applyContextSwitches() {
	for _, cs := range app.contextSwitches {
		app.dispatcher.SetContextActive(cs.id, cs.on)
	}
	app.contextSwitches = app.contextSwitches[:0]
}

// contextActive reports whether id will be active next frame, counting
// queued switches.
func (app *Application) contextActive(id keymap.ContextID) bool {
	for i := len(app.contextSwitches) - 1; i >= 0; i-- {
		if app.contextSwitches[i].id == id {
			return app.contextSwitches[i].on
		}
	}
	return app.dispatcher.ContextActive(id)
}

// startWatching begins hot reload of the configuration and keymap files.
// Failures only disable reloading.
func (app *Application) startWatching() {
	if !app.cfg.Keymap.Watch {
		return
	}
	if err := app.configs.Watch(); err != nil {
		app.logger.WithComponent("config").Warn("not watching: %v", err)
	}

	w, err := watcher.New()
	if err != nil {
		app.logger.WithComponent("keymap").Warn("not watching: %v", err)
		return
	}
	if err := w.Watch(app.cfg.Keymap.Path); err != nil {
		w.Close()
		app.logger.WithComponent("keymap").Warn("not watching %s: %v", app.cfg.Keymap.Path, err)
		return
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.Remove || app.savedRecently(ev.Time, selfSaveWindow) {
			return
		}
		app.post(app.reloadKeymap)
	})
	app.keymapWatch = w
}

// reloadKeymap rereads the keymap file into the live table. A file that
// cannot be parsed leaves the table as it was.
func (app *Application) reloadKeymap() {
	log := app.logger.WithComponent("keymap")
	if app.editor.Waiting() {
		app.editor.Cancel()
	}
	report, err := app.loader.LoadFileInto(app.table, app.cfg.Keymap.Path)
	if err != nil {
		log.Warn("reload failed, keeping current bindings: %v", err)
		return
	}
	log.Info("reloaded %s: %d applied, %d skipped", app.cfg.Keymap.Path, report.Applied, len(report.Skipped))
}

// SaveKeymap writes the table to the configured keymap path.
func (app *Application) SaveKeymap() error {
	path := app.cfg.Keymap.Path
	if path == "" {
		return NewError("keymap", "save", errNoKeymapPath)
	}
	app.markSaved()
	if err := keymap.SaveFile(path, app.table); err != nil {
		return NewError("keymap", "save", err)
	}
	return nil
}

// StartRemap opens a capture session. spec is an action name optionally
// followed by ":primary" or ":secondary".
func (app *Application) StartRemap(spec string) (*remap.Session, error) {
	name, slotName, _ := strings.Cut(spec, ":")
	slot := keymap.SlotPrimary
	if slotName != "" {
		var ok bool
		if slot, ok = keymap.SlotFromName(slotName); !ok {
			return nil, fmt.Errorf("%w: %q", keymap.ErrInvalidSlot, slotName)
		}
	}
	s, err := app.editor.Select(name, slot)
	if err != nil {
		return nil, err
	}
	app.logger.Info("press a key for %s [%s]", s.Action().Name, s.Slot())
	return s, nil
}

// onOutcome reports a finished capture and persists applied changes.
func (app *Application) onOutcome(o remap.Outcome) {
	log := app.logger.WithComponent("remap").WithField("session", o.SessionID)
	switch {
	case o.Cancelled:
		log.Info("%s [%s]: cancelled", o.Action, o.Slot)
		return
	case keymap.IsConflict(o.Err, keymap.ConflictSameAction):
		log.Debug("%s [%s]: already bound to %s", o.Action, o.Slot, o.Combo)
		return
	case o.Reserved():
		log.Warn("%s [%s]: %s is reserved", o.Action, o.Slot, o.Combo)
		return
	case !o.Applied():
		log.Warn("%s [%s]: %v", o.Action, o.Slot, o.Err)
		return
	}

	log.Info("%s [%s] = %s", o.Action, o.Slot, o.Combo)
	for _, c := range o.Cleared {
		log.Info("cleared %s", c)
	}
	if err := app.SaveKeymap(); err != nil {
		log.Error("%v", err)
	}
}
