package keymap

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine/cursor"
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/input/key"
)

func contextAt(t *testing.T, text string, index int) command.Context {
	t.Helper()
	r, err := command.NewDefaultRegistry(command.Defaults{})
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	return command.Context{
		Text:      text,
		Selection: cursor.At(index),
		Cursor:    position.NewAnalyzer(r).Analyze(text).Context(index),
	}
}

func TestBuiltinEvaluator(t *testing.T) {
	const frac = `ab $\frac{x}{y}$`
	tests := []struct {
		name      string
		condition string
		text      string
		index     int
		want      bool
	}{
		{"empty", "", "ab", 0, true},
		{"in math", "inMath", frac, 4, true},
		{"not in math", "!inMath", frac, 1, true},
		{"in text", "inText", frac, 1, true},
		{"in argument", "inArgument", frac, 10, true},
		{"command equals", "command == frac", frac, 10, true},
		{"command name", "commandName == fraction", frac, 10, true},
		{"command not equals", "command != sqrt", frac, 10, true},
		{"arg index", "argIndex == 1", frac, 13, true},
		{"depth", "depth == 1", frac, 13, true},
		{"context", "context == math", frac, 4, true},
		{"and", "inMath && inArgument", frac, 4, false},
		{"or", "inArgument || inText", frac, 1, true},
		{"and binds tighter", "false && true || true", frac, 1, true},
		{"negated and", "!inMath && !hasSelection", frac, 1, true},
		{"literal false", "false", frac, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuiltinEvaluator{}.Evaluate(tt.condition, contextAt(t, tt.text, tt.index))
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.condition, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %t, want %t", tt.condition, got, tt.want)
			}
		})
	}
}

func TestBuiltinEvaluatorErrors(t *testing.T) {
	ctx := contextAt(t, "a", 0)
	for _, cond := range []string{"inSpace", "inMath && bogus", "mode == insert", "inMath &&"} {
		t.Run(cond, func(t *testing.T) {
			_, err := BuiltinEvaluator{}.Evaluate(cond, ctx)
			if !errors.Is(err, ErrUnknownCondition) && !errors.Is(err, ErrInvalidCondition) {
				t.Errorf("Evaluate(%q) error = %v", cond, err)
			}
		})
	}
}

func TestKeymapValidate(t *testing.T) {
	km := NewKeymap("bad").
		Add("Ctrl+Nope", "fraction").
		Add("Ctrl+B", "").
		AddBinding(Binding{Keys: "a", Command: "x", Wrap: "sometimes"})

	err := km.Validate()
	for _, want := range []error{key.ErrInvalidSpec, ErrEmptyCommand, ErrInvalidWrap} {
		if !errors.Is(err, want) {
			t.Errorf("Validate() error = %v, want %v", err, want)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestBindingOptions(t *testing.T) {
	b := NewBinding("Alt+2", "sqrt").WithArgs("", "3")
	cur := 0
	b.Cursor = &cur
	b.Wrap = "force"

	opts := b.Options()
	if opts.IsShortcutInvocation {
		t.Error("binding with args should not absorb")
	}
	if opts.WrapWithMath != command.WrapForce {
		t.Errorf("WrapWithMath = %v", opts.WrapWithMath)
	}
	if opts.CursorArgumentIndex == nil || *opts.CursorArgumentIndex != 0 {
		t.Errorf("CursorArgumentIndex = %v", opts.CursorArgumentIndex)
	}

	if !NewBinding("Ctrl+B", "mathbf").Options().IsShortcutInvocation {
		t.Error("binding without args should absorb")
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	base := NewKeymap("base").
		AddBinding(NewBinding("Ctrl+T", "text")).
		AddBinding(NewBinding("Ctrl+T", "mathbf").WithWhen("inMath").WithPriority(5))
	user := NewKeymap("user").WithPriority(1).
		AddBinding(NewBinding("Ctrl+T", "hat").WithWhen("hasSelection"))

	for _, km := range []*Keymap{base, user} {
		if err := r.Register(km); err != nil {
			t.Fatalf("Register(%s): %v", km.Name, err)
		}
	}

	commands := func(ms []Match) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Command)
		}
		return out
	}
	ev := key.MustParse("Ctrl+t")

	tests := []struct {
		name string
		ctx  command.Context
		want []string
	}{
		{"text", contextAt(t, "ab $x$", 1), []string{"text"}},
		{"math", contextAt(t, "ab $x$", 4), []string{"mathbf", "text"}},
		{
			"selection",
			command.Context{Text: "ab", Selection: cursor.NewSelection(0, 2)},
			[]string{"hat", "text"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, err := r.Lookup(ev, tt.ctx)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if diff := cmp.Diff(tt.want, commands(ms)); diff != "" {
				t.Errorf("Lookup mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if ms, _ := r.Lookup(key.MustParse("Ctrl+U"), contextAt(t, "a", 0)); len(ms) != 0 {
		t.Errorf("unbound key matched %d bindings", len(ms))
	}
}

func TestRegistryTieBreak(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewKeymap("first").Add("Alt+X", "first"))
	_ = r.Register(NewKeymap("second").Add("Alt+X", "second"))

	ms, err := r.Lookup(key.MustParse("Alt+X"), contextAt(t, "", 0))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(ms) != 2 || ms[0].Command != "second" {
		t.Errorf("later keymap should win a tie, got %+v", ms)
	}

	r.Unregister("second")
	if got := r.Names(); !cmp.Equal(got, []string{"first"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestRegistryConditionErrors(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(NewKeymap("m").
		AddBinding(NewBinding("Alt+X", "broken").WithWhen("inSpace")).
		AddBinding(NewBinding("Alt+X", "ok")))

	ms, err := r.Lookup(key.MustParse("Alt+X"), contextAt(t, "", 0))
	if !errors.Is(err, ErrUnknownCondition) {
		t.Errorf("Lookup error = %v, want ErrUnknownCondition", err)
	}
	if len(ms) != 1 || ms[0].Command != "ok" {
		t.Errorf("matches = %+v", ms)
	}

	r.SetConditionEvaluator(ConditionFunc(func(string, command.Context) (bool, error) {
		return true, nil
	}))
	ms, err = r.Lookup(key.MustParse("Alt+X"), contextAt(t, "", 0))
	if err != nil || len(ms) != 2 {
		t.Errorf("custom evaluator: %d matches, err %v", len(ms), err)
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); !errors.Is(err, ErrNilKeymap) {
		t.Errorf("Register(nil) = %v", err)
	}
	if err := r.Register(NewKeymap("bad").Add("", "x")); !errors.Is(err, key.ErrEmptySpec) {
		t.Errorf("Register(bad) = %v", err)
	}
}

type memReader map[string]string

func (m memReader) ReadFile(name string) ([]byte, error) {
	s, ok := m[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(s), nil
}

func TestLoader(t *testing.T) {
	files := memReader{
		"keys/user.yaml": `
priority: 2
bindings:
  - keys: Ctrl+T
    command: text
    when: "!inMath"
  - keys: Alt+2
    command: sqrt
    args: ["", "3"]
    cursor: 0
`,
		"keys/extra.json":  `{"name": "extra", "bindings": [{"keys": "Alt+B", "command": "beta"}]}`,
		"keys/broken.yaml": "bindings:\n  - keys: a\n    command: x\n    colour: red\n",
		"keys/notes.txt":   "",
	}
	l := NewLoader(files)

	km, err := l.LoadFile("keys/user.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	zero := 0
	want := &Keymap{
		Name:     "user",
		Priority: 2,
		Source:   "keys/user.yaml",
		Bindings: []Binding{
			{Keys: "Ctrl+T", Command: "text", When: "!inMath"},
			{Keys: "Alt+2", Command: "sqrt", Args: []string{"", "3"}, Cursor: &zero},
		},
	}
	if diff := cmp.Diff(want, km); diff != "" {
		t.Errorf("LoadFile mismatch (-want +got):\n%s", diff)
	}

	r := NewRegistry()
	err = l.LoadAndRegister(r, []string{"keys/user.yaml", "keys/extra.json", "keys/broken.yaml", "keys/notes.txt", "keys/missing.yaml"})
	if err == nil {
		t.Fatal("expected errors for broken files")
	}
	if !errors.Is(err, ErrUnsupportedFormat) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadAndRegister error = %v", err)
	}
	if diff := cmp.Diff([]string{"user", "extra"}, r.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(Default())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), "command: mathbf") {
		t.Errorf("encoded keymap:\n%s", data)
	}
	km, err := Decode(data, ".yml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(Default(), km); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClone(t *testing.T) {
	one := 1
	km := NewKeymap("k").AddBinding(Binding{Keys: "a", Command: "x", Args: []string{"p"}, Cursor: &one})
	clone := km.Clone()
	clone.Bindings[0].Args[0] = "q"
	*clone.Bindings[0].Cursor = 2

	if km.Bindings[0].Args[0] != "p" || *km.Bindings[0].Cursor != 1 {
		t.Error("Clone shares binding state")
	}
}
