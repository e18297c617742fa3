package rules

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Script hosts Lua-defined actions. A rule table references them by the
// name of the global function the script defines.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes
// invocations from Go code. Replacement application is single-threaded
// anyway, so contention is not expected.
type Script struct {
	mu   sync.Mutex
	L    *lua.LState
	path string
}

// LoadScript loads a Lua file into a sandboxed state. Only the base,
// table, string, and math libraries are opened; file and process access
// is unavailable to scripts.
func LoadScript(path string) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

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

	// Loaders would reopen the door the sandbox closed.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading action script %s: %w", path, err)
	}

	return &Script{L: L, path: path}, nil
}

// Path returns the script file path.
func (s *Script) Path() string { return s.path }

// Close releases the Lua state.
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.L != nil {
		s.L.Close()
		s.L = nil
	}
}

// Action implements Actions. The named global must be a Lua function.
func (s *Script) Action(name string) (Action, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.L == nil {
		return nil, false
	}
	if _, ok := s.L.GetGlobal(name).(*lua.LFunction); !ok {
		return nil, false
	}
	return &luaAction{script: s, name: name}, true
}

// luaAction calls a Lua function with (source, previous) and inserts the
// returned string. A nil return is a no-op.
type luaAction struct {
	script *Script
	name   string
}

// Name implements Action.
func (a *luaAction) Name() string { return a.name }

// Invoke implements Action.
func (a *luaAction) Invoke(ap Applier, source rune) error {
	s := a.script
	s.mu.Lock()
	if s.L == nil {
		s.mu.Unlock()
		return fmt.Errorf("action %s: script closed", a.name)
	}

	fn, ok := s.L.GetGlobal(a.name).(*lua.LFunction)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("action %s: %w", a.name, ErrNoAction)
	}

	err := s.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(string(source)), lua.LString(ap.Previous(16)))
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("action %s: %w", a.name, err)
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)
	s.mu.Unlock()

	text, ok := ret.(lua.LString)
	if !ok {
		return nil
	}
	return ap.Insert(string(text))
}
