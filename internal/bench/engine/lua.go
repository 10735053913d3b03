package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
	"github.com/DjordjeVuckovic/callbench/internal/bench/callback"
	"github.com/DjordjeVuckovic/callbench/internal/types/value"
	lua "github.com/yuin/gopher-lua"
)

const luaChunkName = "benchmark"

type LuaInterpreter struct {
	state *lua.LState
}

func NewLuaInterpreter() *LuaInterpreter {
	return &LuaInterpreter{state: lua.NewState()}
}

func (l *LuaInterpreter) Kind() Kind { return Lua }

func (l *LuaInterpreter) Bind(reg *callback.Registry) error {
	if l.state == nil {
		return apperr.NewRegistration("", fmt.Errorf("interpreter is closed"))
	}
	for _, cb := range reg.All() {
		if existing := l.state.GetGlobal(cb.Name); existing != lua.LNil {
			return apperr.NewRegistration(cb.Name, fmt.Errorf("global already defined as %s", existing.Type()))
		}
		l.state.SetGlobal(cb.Name, l.state.NewFunction(luaCallback(cb)))
	}
	return nil
}

// luaCallback checks every argument is a number; anything else raises a Lua
// argument error inside the calling script.
func luaCallback(cb callback.Callback) lua.LGFunction {
	return func(L *lua.LState) int {
		args := make([]float64, cb.Arity)
		for i := range args {
			args[i] = float64(L.CheckNumber(i + 1))
		}
		L.Push(lua.LNumber(cb.Fn(args)))
		return 1
	}
}

func (l *LuaInterpreter) Eval(ctx context.Context, src string) (value.Value, error) {
	if l.state == nil {
		return value.Value{}, apperr.NewScript(string(Lua), fmt.Errorf("interpreter is closed"))
	}

	// A context switches the VM to a loop that polls it per instruction;
	// only pay for that when the context can actually be cancelled.
	if ctx.Done() != nil {
		l.state.SetContext(ctx)
		defer l.state.RemoveContext()
	}

	fn, err := l.state.Load(strings.NewReader(src), luaChunkName)
	if err != nil {
		return value.Value{}, apperr.NewScript(string(Lua), err)
	}

	top := l.state.GetTop()
	l.state.Push(fn)
	if err := l.state.PCall(0, 1, nil); err != nil {
		l.state.SetTop(top)
		return value.Value{}, apperr.NewScript(string(Lua), err)
	}
	ret := l.state.Get(-1)
	l.state.SetTop(top)

	return fromLua(ret), nil
}

func (l *LuaInterpreter) Expr(expr string) string {
	return "return " + expr
}

func (l *LuaInterpreter) Close() error {
	if l.state != nil {
		l.state.Close()
		l.state = nil
	}
	return nil
}

// fromLua converts a Lua value. Tables become records keyed by their string
// keys; array slots and other key types are not part of any result shape.
func fromLua(lv lua.LValue) value.Value {
	switch v := lv.(type) {
	case lua.LNumber:
		return value.Float(float64(v))
	case lua.LString:
		return value.Text(string(v))
	case lua.LBool:
		return value.Bool(bool(v))
	case *lua.LNilType:
		return value.Nil()
	case *lua.LTable:
		fields := make(map[string]value.Value)
		v.ForEach(func(key, val lua.LValue) {
			if k, ok := key.(lua.LString); ok {
				fields[string(k)] = fromLua(val)
			}
		})
		return value.Record(fields).Named(lua.LTTable.String())
	default:
		return value.Other(lv.Type().String())
	}
}
