package lua

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine/cursor"
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/input/key"
	"github.com/dshills/mathmark/internal/input/keymap"
)

func contextAt(t *testing.T, text string, sel cursor.Selection) command.Context {
	t.Helper()
	r, err := command.NewDefaultRegistry(command.Defaults{})
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	return command.Context{
		Text:      text,
		Selection: sel,
		Cursor:    position.NewAnalyzer(r).Analyze(text).Context(sel.Head),
	}
}

func TestEvaluate(t *testing.T) {
	const frac = `ab $\frac{x}{y}$`
	tests := []struct {
		name      string
		condition string
		sel       cursor.Selection
		want      bool
	}{
		{"empty", "", cursor.At(0), true},
		{"in math", "inMath", cursor.At(4), true},
		{"text", "not inMath and inText", cursor.At(1), true},
		{"denominator", `command == "frac" and argIndex == 1`, cursor.At(13), true},
		{"numerator", `command == "frac" and argIndex == 1`, cursor.At(10), false},
		{"command name", `commandName == "fraction"`, cursor.At(10), true},
		{"context", `context == "argument" and depth == 1`, cursor.At(10), true},
		{"selection", "hasSelection and selEnd - selStart == 2", cursor.NewSelection(0, 2), true},
		{"string library", `string.find(text, "frac", 1, true) ~= nil`, cursor.At(0), true},
		{"nil is false", "undefinedGlobal", cursor.At(0), false},
	}

	e := NewEvaluator()
	defer e.Close()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(tt.condition, contextAt(t, frac, tt.sel))
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.condition, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %t, want %t", tt.condition, got, tt.want)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	err := e.LoadScript(`
function inDenominator()
  return command == "frac" and argIndex == 1
end
`)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	got, err := e.Evaluate("inDenominator()", contextAt(t, `$\frac{a}{b}$`, cursor.At(10)))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got {
		t.Error("inDenominator() = false, want true")
	}
}

func TestSandbox(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	got, err := e.Evaluate("os == nil and io == nil and load == nil and dofile == nil and require == nil", contextAt(t, "", cursor.At(0)))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got {
		t.Error("unsafe globals are reachable")
	}
}

func TestEvaluateErrors(t *testing.T) {
	e := NewEvaluator(WithExecutionTimeout(50 * time.Millisecond))
	defer e.Close()
	ctx := contextAt(t, "", cursor.At(0))

	if _, err := e.Evaluate("inMath and", ctx); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("syntax error = %v, want ErrInvalidCondition", err)
	}
	if _, err := e.Evaluate(`error("boom")`, ctx); !errors.Is(err, ErrConditionFailed) {
		t.Errorf("runtime error = %v, want ErrConditionFailed", err)
	}

	if err := e.LoadScript("function spin() while true do end end"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if _, err := e.Evaluate("spin()", ctx); !errors.Is(err, ErrConditionFailed) {
		t.Errorf("endless loop = %v, want ErrConditionFailed", err)
	}

	e.Close()
	if _, err := e.Evaluate("true", ctx); !errors.Is(err, ErrStateClosed) {
		t.Errorf("after Close = %v, want ErrStateClosed", err)
	}
}

func TestKeymapIntegration(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	r := keymap.NewRegistry()
	r.SetConditionEvaluator(e)
	err := r.Register(keymap.NewKeymap("lua").
		AddBinding(keymap.NewBinding("Alt+X", "vec").WithWhen(`inMath and command ~= "frac"`)).
		AddBinding(keymap.NewBinding("Alt+X", "hat").WithWhen("not inMath")))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	ms, err := r.Lookup(key.MustParse("Alt+X"), contextAt(t, "a $b$", cursor.At(3)))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(ms) != 1 || ms[0].Command != "vec" {
		t.Errorf("matches = %+v, want vec", ms)
	}
}
