package lua

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/input/keymap"
)

var _ keymap.ConditionEvaluator = (*Evaluator)(nil)

// Evaluator evaluates keymap conditions as Lua expressions. Before each
// evaluation the cursor context is published as globals:
//
//	inMath, inText, inArgument, inOptional, inCommandName, inDelimiter,
//	hasSelection                      booleans
//	command, commandName, context     strings ("frac", "fraction", "argument")
//	argIndex, depth, selStart, selEnd numbers
//	text                              the document
//
// A condition such as `inMath and command == "frac" and argIndex == 1` is
// compiled once and cached.
type Evaluator struct {
	state *State
	cache map[string]*lua.LFunction
}

// NewEvaluator creates an evaluator with its own sandboxed state.
func NewEvaluator(opts ...StateOption) *Evaluator {
	return &Evaluator{
		state: NewState(opts...),
		cache: make(map[string]*lua.LFunction),
	}
}

// LoadScript runs code in the evaluator's state so conditions can call the
// functions it defines.
func (e *Evaluator) LoadScript(code string) error {
	if err := e.state.DoString(code); err != nil {
		return fmt.Errorf("loading condition script: %w", err)
	}
	return nil
}

// Evaluate implements keymap.ConditionEvaluator. An empty condition holds.
func (e *Evaluator) Evaluate(condition string, ctx command.Context) (bool, error) {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return true, nil
	}

	s := e.state
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStateClosed
	}

	fn, err := e.compile(condition)
	if err != nil {
		return false, err
	}
	publish(s.L, ctx)

	var result lua.LValue = lua.LNil
	err = s.run(func() error {
		if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
			return err
		}
		result = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrConditionFailed, condition, err)
	}
	return lua.LVAsBool(result), nil
}

// compile returns the cached function for condition. The caller holds the
// state lock.
func (e *Evaluator) compile(condition string) (*lua.LFunction, error) {
	if fn, ok := e.cache[condition]; ok {
		return fn, nil
	}
	fn, err := e.state.L.LoadString("return " + condition)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCondition, condition, err)
	}
	e.cache[condition] = fn
	return fn, nil
}

// Close releases the Lua state.
func (e *Evaluator) Close() error {
	return e.state.Close()
}

func publish(L *lua.LState, ctx command.Context) {
	c := ctx.Cursor
	bools := map[string]bool{
		"inMath":        ctx.InMath(),
		"inText":        c.Kind == position.ContextText,
		"inArgument":    c.InArgument(),
		"inOptional":    c.Kind == position.ContextOptional,
		"inCommandName": c.Kind == position.ContextCommandName,
		"inDelimiter":   c.Kind == position.ContextDelimiter,
		"hasSelection":  ctx.HasSelection(),
	}
	for name, v := range bools {
		L.SetGlobal(name, lua.LBool(v))
	}
	L.SetGlobal("command", lua.LString(c.Identifier))
	L.SetGlobal("commandName", lua.LString(c.CommandName))
	L.SetGlobal("context", lua.LString(c.Kind.String()))
	L.SetGlobal("argIndex", lua.LNumber(c.ArgIndex))
	L.SetGlobal("depth", lua.LNumber(c.Depth))
	L.SetGlobal("selStart", lua.LNumber(ctx.Selection.Start()))
	L.SetGlobal("selEnd", lua.LNumber(ctx.Selection.End()))
	L.SetGlobal("text", lua.LString(ctx.Text))
}
