package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine/position"
)

// ConditionEvaluator evaluates binding conditions against the cursor
// context.
type ConditionEvaluator interface {
	Evaluate(condition string, ctx command.Context) (bool, error)
}

// ConditionFunc adapts a function to a ConditionEvaluator.
type ConditionFunc func(condition string, ctx command.Context) (bool, error)

// Evaluate implements ConditionEvaluator.
func (f ConditionFunc) Evaluate(condition string, ctx command.Context) (bool, error) {
	return f(condition, ctx)
}

// BuiltinEvaluator evaluates a small expression language:
//
//	inMath, inText, inArgument, inOptional, inCommandName, inDelimiter,
//	hasSelection, true, false
//	command == frac, commandName != fraction, argIndex == 1, depth == 2,
//	context == math
//	!expr, expr && expr, expr || expr
//
// || binds looser than &&; there are no parentheses.
type BuiltinEvaluator struct{}

// Evaluate implements ConditionEvaluator. Both sides of && and || are
// always evaluated so unknown names are reported.
func (e BuiltinEvaluator) Evaluate(condition string, ctx command.Context) (bool, error) {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return true, nil
	}
	return e.eval(condition, ctx)
}

func (e BuiltinEvaluator) eval(expr string, ctx command.Context) (bool, error) {
	if left, right, ok := strings.Cut(expr, "||"); ok {
		l, lerr := e.eval(strings.TrimSpace(left), ctx)
		r, rerr := e.eval(strings.TrimSpace(right), ctx)
		return l || r, errors.Join(lerr, rerr)
	}
	if left, right, ok := strings.Cut(expr, "&&"); ok {
		l, lerr := e.eval(strings.TrimSpace(left), ctx)
		r, rerr := e.eval(strings.TrimSpace(right), ctx)
		return l && r, errors.Join(lerr, rerr)
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false, ErrInvalidCondition
	}
	// "!=" must be tested before the negation prefix.
	if left, right, ok := strings.Cut(expr, "!="); ok {
		v, err := variable(strings.TrimSpace(left), ctx)
		return err == nil && v != strings.TrimSpace(right), err
	}
	if strings.HasPrefix(expr, "!") {
		v, err := e.eval(expr[1:], ctx)
		return !v, err
	}
	if left, right, ok := strings.Cut(expr, "=="); ok {
		v, err := variable(strings.TrimSpace(left), ctx)
		return err == nil && v == strings.TrimSpace(right), err
	}
	return flag(expr, ctx)
}

func flag(name string, ctx command.Context) (bool, error) {
	switch name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "inMath":
		return ctx.InMath(), nil
	case "inText":
		return ctx.Cursor.Kind == position.ContextText, nil
	case "inArgument":
		return ctx.Cursor.InArgument(), nil
	case "inOptional":
		return ctx.Cursor.Kind == position.ContextOptional, nil
	case "inCommandName":
		return ctx.Cursor.Kind == position.ContextCommandName, nil
	case "inDelimiter":
		return ctx.Cursor.Kind == position.ContextDelimiter, nil
	case "hasSelection":
		return ctx.HasSelection(), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCondition, name)
	}
}

func variable(name string, ctx command.Context) (string, error) {
	switch name {
	case "command":
		return ctx.Cursor.Identifier, nil
	case "commandName":
		return ctx.Cursor.CommandName, nil
	case "context":
		return ctx.Cursor.Kind.String(), nil
	case "argIndex":
		return strconv.Itoa(ctx.Cursor.ArgIndex), nil
	case "depth":
		return strconv.Itoa(ctx.Cursor.Depth), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCondition, name)
	}
}
