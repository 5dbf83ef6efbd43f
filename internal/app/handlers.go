package app

import (
	"github.com/dshills/rebind/internal/input/keymap"
)

// bindHandlers gives every catalog action a handler. Most only log; the
// few that affect the engine itself get real behaviour. Scripts may
// rebind any of them later.
func (app *Application) bindHandlers() {
	log := app.logger.WithComponent("action")
	for a := range app.catalog.All() {
		name := a.Name
		if err := app.catalog.BindFunc(a.HandlerID, func() {
			log.Debug("%s", name)
		}); err != nil {
			app.logger.Error("binding %s: %v", name, err)
		}
	}

	special := map[string]func(){
		"ToggleRadar":         app.toggleRadar,
		"ToggleDebugMappings": app.toggleDebugMappings,
		"ToggleLevelEditor":   app.toggleLevelEditor,
		"FrameRate":           app.logFrameStats,
	}
	for name, fn := range special {
		a, ok := app.catalog.LookupByName(name)
		if !ok {
			continue
		}
		if err := app.catalog.BindFunc(a.HandlerID, fn); err != nil {
			app.logger.Error("binding %s: %v", name, err)
		}
	}
}

// toggleRadar switches the radar context from the next frame on. Without
// a pointer over a radar widget this is how radar bindings are reached.
func (app *Application) toggleRadar() {
	on := !app.contextActive(keymap.ContextRadar)
	app.switchContext(keymap.ContextRadar, on)
	app.logger.Info("radar context %s", onOff(on))
}

// toggleDebugMappings flips the local player's debug request. Debug
// bindings only go live once every allocated player has asked.
func (app *Application) toggleDebugMappings() {
	want := !app.debugFlags.Wanted(0)
	app.debugFlags.SetWanted(0, want)
	if app.debugFlags.Active() {
		app.logger.Info("debug mappings %s", onOff(true))
		return
	}
	if waiting := app.debugFlags.Players(false); len(waiting) > 0 {
		app.logger.Info("debug mappings off, waiting on players %v", waiting)
	}
}

func (app *Application) toggleLevelEditor() {
	on := !app.levelEditor
	app.levelEditor = on
	app.debugFlags.SetContextEnabled(keymap.ContextDebugLevelEditor, on)
	app.logger.Info("level editor %s", onOff(on))
}

func (app *Application) logFrameStats() {
	s := app.metrics.Snapshot()
	app.logger.Info("frames=%d fired=%d avg=%s p99=%s peak=%s dropped=%d",
		s.FramesTotal, s.FiredTotal, s.AvgFrameLatency, s.P99FrameLatency, s.PeakFrameLatency, s.DroppedEvents)
	if m := app.dispatcher.Metrics(); m != nil {
		for _, am := range m.TopActions(5) {
			app.logger.Info("  %s fired %d times", am.Name, am.FireCount)
		}
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
