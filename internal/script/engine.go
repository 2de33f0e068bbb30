// Package script hosts the optional Lua hooks that tune event rewards.
// A missing script file or hook function falls back to the built-in
// formulas, so scripting stays strictly additive.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only
// (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads the hook file.
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	log.Debug("loaded lua script", zap.String("file", path))
	return &Engine{vm: vm, log: log}, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// ScaleReward calls the Lua scale_reward hook with the event category,
// difficulty and built-in exp/rep, and returns the adjusted pair. Any
// missing hook, call error or malformed result keeps the built-ins.
func (e *Engine) ScaleReward(etype string, difficulty, exp, rep int) (int, int) {
	fn := e.vm.GetGlobal("scale_reward")
	if fn == lua.LNil {
		return exp, rep
	}

	t := e.vm.NewTable()
	t.RawSetString("etype", lua.LString(etype))
	t.RawSetString("difficulty", lua.LNumber(difficulty))
	t.RawSetString("exp", lua.LNumber(exp))
	t.RawSetString("rep", lua.LNumber(rep))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua scale_reward error", zap.Error(err))
		return exp, rep
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua scale_reward returned non-table")
		return exp, rep
	}

	outExp, outRep := exp, rep
	if v := rt.RawGetString("exp"); v != lua.LNil {
		outExp = int(lua.LVAsNumber(v))
	}
	if v := rt.RawGetString("rep"); v != lua.LNil {
		outRep = int(lua.LVAsNumber(v))
	}
	return outExp, outRep
}
