package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scrollmux/internal/surface"
	"github.com/dshills/scrollmux/internal/tracker"
)

// Hook function names looked up in the script's globals.
const (
	hookScroll = "on_scroll"
	hookResize = "on_resize"
)

// Engine runs a user script's scroll and resize hooks. The Lua state is
// single-threaded; calls are serialized.
type Engine struct {
	mu     sync.Mutex
	state  *lua.LState
	path   string
	closed bool
}

// NewEngine loads the script at path and returns an engine ready to
// dispatch hooks.
func NewEngine(path string) (*Engine, error) {
	state := lua.NewState()
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return &Engine{state: state, path: path}, nil
}

// Path returns the loaded script path.
func (e *Engine) Path() string {
	return e.path
}

// OnScroll invokes the script's on_scroll hook with the frame state.
// A script without the hook is a no-op.
func (e *Engine) OnScroll(frame tracker.Frame) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	tbl := e.state.NewTable()
	e.state.SetField(tbl, "width", lua.LNumber(frame.Width))
	e.state.SetField(tbl, "height", lua.LNumber(frame.Height))
	e.state.SetField(tbl, "scroll_left", lua.LNumber(frame.ScrollLeft))
	e.state.SetField(tbl, "scroll_top", lua.LNumber(frame.ScrollTop))
	e.state.SetField(tbl, "is_scrolling", lua.LBool(frame.IsScrolling))

	return e.call(hookScroll, tbl)
}

// OnResize invokes the script's on_resize hook with the new dimensions.
// A script without the hook is a no-op.
func (e *Engine) OnResize(size surface.Size) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	tbl := e.state.NewTable()
	e.state.SetField(tbl, "width", lua.LNumber(size.Width))
	e.state.SetField(tbl, "height", lua.LNumber(size.Height))

	return e.call(hookResize, tbl)
}

// call invokes a global hook function if the script defines one.
// Callers hold e.mu.
func (e *Engine) call(name string, arg lua.LValue) error {
	fn := e.state.GetGlobal(name)
	if fn == lua.LNil {
		return nil
	}

	err := e.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, arg)
	if err != nil {
		return fmt.Errorf("script hook %s: %w", name, err)
	}
	return nil
}

// Close shuts the Lua state down. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}
