package script

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
)

// ModuleName is the global table scripts use to register hooks.
const ModuleName = "rebind"

// Host runs a user hook script. The script registers callbacks through the
// rebind table:
//
//	rebind.on_any_key(function(mod, key) ... end)
//	rebind.on_fired(function(action, slot, combo) ... end)
//	rebind.on_cleared(function(action, slot, old, cause) ... end)
//	rebind.bind("QuickSave", function() ... end)
//	rebind.binding("QuickSave", "primary")  -- "F7" or nil
//	rebind.log("message")
//
// Key and modifier arguments are key names as used in keymap files; mod is
// nil when no modifier is held. Errors raised by callbacks are logged and
// do not stop later callbacks.
type Host struct {
	state   *State
	catalog *keymap.Catalog
	table   *keymap.Table
	logger  Logger

	anyKey  []*lua.LFunction
	fired   []*lua.LFunction
	cleared []*lua.LFunction

	unsubscribe func()
}

// Logger receives script output at Info and hook failures at Warn.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// NewHost creates a host whose scripts can see catalog and table. Table
// changes are observed until Close.
func NewHost(catalog *keymap.Catalog, table *keymap.Table, logger Logger, opts ...StateOption) *Host {
	if logger == nil {
		logger = nopLogger{}
	}
	h := &Host{
		catalog: catalog,
		table:   table,
		logger:  logger,
	}

	opts = append([]StateOption{WithOutput(func(s string) { h.logger.Info("script: %s", s) })}, opts...)
	h.state = NewState(opts...)
	h.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"on_any_key": h.register(&h.anyKey),
		"on_fired":   h.register(&h.fired),
		"on_cleared": h.register(&h.cleared),
		"bind":       h.luaBind,
		"binding":    h.luaBinding,
		"log":        h.luaLog,
	})

	if table != nil {
		h.unsubscribe = table.Subscribe(h.tableChanged)
	}
	return h
}

// LoadFile runs the script at path. A missing file is not an error and
// leaves the host without hooks.
func (h *Host) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// LoadString runs a chunk of Lua code.
func (h *Host) LoadString(code string) error {
	return h.state.DoString(code)
}

// HookCount returns the number of registered callbacks.
func (h *Host) HookCount() int {
	return len(h.anyKey) + len(h.fired) + len(h.cleared)
}

// State returns the underlying Lua state.
func (h *Host) State() *State {
	return h.state
}

// AnyKeyPressed forwards a raw key press to on_any_key callbacks.
func (h *Host) AnyKeyPressed(mod key.Key, k key.Key) {
	if len(h.anyKey) == 0 {
		return
	}
	var modArg lua.LValue = lua.LNil
	if mod != key.KeyNone {
		modArg = lua.LString(mod.Name())
	}
	h.call("on_any_key", h.anyKey, modArg, lua.LString(k.Name()))
}

// Fired forwards a fired binding to on_fired callbacks.
func (h *Host) Fired(b *keymap.Binding) {
	if len(h.fired) == 0 {
		return
	}
	h.call("on_fired", h.fired,
		lua.LString(b.Action.Name), lua.LString(b.Slot.String()), lua.LString(b.Combo.String()))
}

// tableChanged forwards bindings cleared by conflict resolution or by the
// user to on_cleared callbacks.
func (h *Host) tableChanged(c keymap.Change) {
	if c.Kind != keymap.ChangeCleared || len(h.cleared) == 0 {
		return
	}
	var cause lua.LValue = lua.LNil
	if c.Cause != nil {
		cause = lua.LString(c.Cause.Action.Name)
	}
	h.call("on_cleared", h.cleared,
		lua.LString(c.Binding.Action.Name), lua.LString(c.Binding.Slot.String()),
		lua.LString(c.Previous.String()), cause)
}

func (h *Host) call(hook string, fns []*lua.LFunction, args ...lua.LValue) {
	for _, fn := range fns {
		if err := h.state.CallFunction(fn, args...); err != nil {
			h.logger.Warn("script %s hook failed: %v", hook, err)
		}
	}
}

// Close detaches from the table and releases the Lua state.
func (h *Host) Close() error {
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	return h.state.Close()
}

func (h *Host) register(list *[]*lua.LFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		*list = append(*list, L.CheckFunction(1))
		return 0
	}
}

// luaBind attaches a Lua function as the handler of an action. Every
// action sharing the handler ID gets the function.
func (h *Host) luaBind(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	a, ok := h.catalog.LookupByName(name)
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown action %q", name))
		return 0
	}
	err := h.catalog.BindFunc(a.HandlerID, func() {
		if err := h.state.CallFunction(fn); err != nil {
			h.logger.Warn("script handler for %s failed: %v", name, err)
		}
	})
	if err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) luaBinding(L *lua.LState) int {
	name := L.CheckString(1)
	slotName := L.OptString(2, keymap.SlotPrimary.String())

	slot, ok := keymap.SlotFromName(slotName)
	if !ok {
		L.ArgError(2, fmt.Sprintf("unknown slot %q", slotName))
		return 0
	}
	if h.table == nil {
		L.Push(lua.LNil)
		return 1
	}
	b, ok := h.table.Lookup(name, slot)
	if !ok || !b.IsBound() {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(b.Combo.String()))
	return 1
}

func (h *Host) luaLog(L *lua.LState) int {
	h.logger.Info("script: %s", L.CheckString(1))
	return 0
}
