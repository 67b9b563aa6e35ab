package formatter

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/fieldkit/internal/engine/text"
)

// ErrNoFormatFunction is returned when a Lua script does not define a
// global format function.
var ErrNoFormatFunction = errors.New("lua script does not define format()")

// Lua is a user-scriptable formatter. The script defines a global
//
//	function format(old, new) ... end
//
// receiving the previous and proposed text and returning the text to
// commit (or nil to accept the proposed text unchanged). Script errors
// never break typing: the proposed value passes through untouched.
//
// Lua runs on the UI thread only; the state is not shared.
type Lua struct {
	state *lua.LState
	fn    *lua.LFunction
}

// NewLua compiles a Lua formatter script.
func NewLua(script string) (*Lua, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading lua formatter: %w", err)
	}
	fn, ok := L.GetGlobal("format").(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoFormatFunction
	}
	return &Lua{state: L, fn: fn}, nil
}

// Format implements Formatter.
func (l *Lua) Format(old, proposed text.EditingValue) text.EditingValue {
	err := l.state.CallByParam(lua.P{
		Fn:      l.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(old.Text), lua.LString(proposed.Text))
	if err != nil {
		return proposed
	}
	ret := l.state.Get(-1)
	l.state.Pop(1)

	out, ok := ret.(lua.LString)
	if !ok {
		return proposed
	}
	if string(out) == proposed.Text {
		return proposed
	}
	return rewriteText(proposed, string(out))
}

// Close releases the Lua state.
func (l *Lua) Close() {
	l.state.Close()
}
