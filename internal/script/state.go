package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single script call. Hooks run inside the frame,
// so a runaway script must not stall input handling.
const DefaultTimeout = 50 * time.Millisecond

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a call exceeds its time budget.
	ErrTimeout = errors.New("lua execution timeout")
)

// State wraps gopher-lua with a restricted standard library and per-call
// timeouts.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls
// from Go; in practice every call comes from the main loop.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	output  func(string)
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the time budget of each call. Zero disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithOutput redirects print to fn.
func WithOutput(fn func(string)) StateOption {
	return func(s *State) {
		s.output = fn
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultTimeout,
		output:  func(string) {},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.installPrint()
	return s
}

// openSafeLibraries opens base, table, string and math only. io, os,
// debug and package stay closed; the loaders that read files are removed.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installPrint replaces print with one that writes to the configured output.
func (s *State) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		s.output(strings.Join(parts, "\t"))
		return 0
	}))
}

// DoFile executes a Lua file. The top-level chunk gets the same timeout as
// a hook call.
func (s *State) DoFile(path string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// CallFunction calls fn with args, discarding any results.
func (s *State) CallFunction(fn *lua.LFunction, args ...lua.LValue) error {
	return s.run(func(L *lua.LState) error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	})
}

// run executes fn under the lock with the timeout installed and panic
// recovery.
func (s *State) run(fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
		defer func() {
			if err != nil && ctx.Err() != nil {
				err = fmt.Errorf("%w: %v", ErrTimeout, err)
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn(s.L)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.SetGlobal(name, value)
	}
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// RegisterModule installs funcs as a global table.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.SetGlobal(name, s.L.SetFuncs(s.L.NewTable(), funcs))
	}
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.Close()
		s.closed = true
	}
	return nil
}
