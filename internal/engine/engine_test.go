package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine/cursor"
	"github.com/dshills/mathmark/internal/logging"
)

func newRegistry(t *testing.T) *command.Registry {
	t.Helper()
	r, err := command.NewDefaultRegistry(command.Defaults{})
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	return r
}

func TestNormalizeAdjacentMath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		inserts []cursor.Insertion
	}{
		{"empty", "", "", nil},
		{"prose", "hello world", "hello world", nil},
		{"separated", "$a$ $b$", "$a$ $b$", nil},
		{"touching", "$a$$b$", "$a$ $b$", []cursor.Insertion{{At: 3, Len: 1}}},
		{"three", "$a$$b$$c$", "$a$ $b$ $c$", []cursor.Insertion{{At: 3, Len: 1}, {At: 6, Len: 1}}},
		{"inside prose", "x$a$$b$y", "x$a$ $b$y", []cursor.Insertion{{At: 4, Len: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, inserts := NormalizeAdjacentMath(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeAdjacentMath(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if diff := cmp.Diff(tt.inserts, inserts); diff != "" {
				t.Errorf("inserts mismatch (-want +got):\n%s", diff)
			}
			again, more := NormalizeAdjacentMath(got)
			if again != got || len(more) != 0 {
				t.Errorf("normalizing %q again = %q with %d inserts", got, again, len(more))
			}
		})
	}
}

func TestSetContentNormalizesAndRemaps(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.Initial("")

	s = m.SetContent(s, "$a$$b$", 3, 6)
	if s.Content != "$a$ $b$" {
		t.Fatalf("Content = %q, want %q", s.Content, "$a$ $b$")
	}
	if got, want := s.Cursor.Selection, cursor.NewSelection(4, 7); got != want {
		t.Errorf("Selection = %v, want %v", got, want)
	}

	s = m.SetContent(s, "$a$$b$", 2, 2)
	if got := s.Cursor.Index(); got != 2 {
		t.Errorf("cursor before gap = %d, want 2", got)
	}
}

func TestSetContentWithoutNormalization(t *testing.T) {
	m := NewMachine(newRegistry(t), WithNormalization(false))
	s := m.SetContent(m.Initial(""), "$a$$b$", 3, 3)
	if s.Content != "$a$$b$" {
		t.Errorf("Content = %q, want unchanged", s.Content)
	}
}

func TestSetContentClamps(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.SetContent(m.Initial(""), "abc", -4, 99)
	if got, want := s.Cursor.Selection, cursor.NewSelection(0, 3); got != want {
		t.Errorf("Selection = %v, want %v", got, want)
	}
}

func TestSetContentHistory(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.Initial("a")

	s = m.SetContent(s, "a", 0, 0)
	if s.History.CanUndo() {
		t.Error("unchanged content recorded an undo step")
	}

	s = m.SetContent(s, "ab", 2, 2)
	s, err := m.Undo(s)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !s.History.CanRedo() {
		t.Fatal("expected a redo step after undo")
	}

	s = m.SetContent(s, "a", 1, 1)
	if s.History.CanRedo() {
		t.Error("SetContent without change kept the redo stack")
	}
	if s.History.CanUndo() {
		t.Error("SetContent without change recorded an undo step")
	}
}

func TestUndoRedoSymmetry(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.Initial("")
	for _, c := range []string{"x", "x+", "x+y", "$x+y$"} {
		s = m.SetContent(s, c, len(c), len(c))
	}
	final := s.Content

	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			cur := s
			var err error
			for i := 0; i < n; i++ {
				if cur, err = m.Undo(cur); err != nil {
					t.Fatalf("Undo %d: %v", i, err)
				}
				if cur.Cursor.Index() != 0 {
					t.Errorf("cursor after undo = %d, want 0", cur.Cursor.Index())
				}
			}
			for i := 0; i < n; i++ {
				if cur, err = m.Redo(cur); err != nil {
					t.Fatalf("Redo %d: %v", i, err)
				}
			}
			if cur.Content != final {
				t.Errorf("Content = %q, want %q", cur.Content, final)
			}
		})
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.Initial("abc")
	s = m.SetCursor(s, 2, 2)

	got, err := m.Undo(s)
	if !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo error = %v, want ErrNothingToUndo", err)
	}
	if got.Content != s.Content || got.Cursor != s.Cursor {
		t.Error("failed Undo changed the state")
	}

	_, err = m.Redo(s)
	if !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo error = %v, want ErrNothingToRedo", err)
	}
}

func TestHistoryLimit(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.Initial("")
	for i := 0; i < 60; i++ {
		s = m.SetContent(s, fmt.Sprintf("v%d", i), 0, 0)
	}

	past := s.History.Past()
	if len(past) != DefaultHistoryLimit {
		t.Fatalf("len(past) = %d, want %d", len(past), DefaultHistoryLimit)
	}
	if past[0] != "v9" || past[len(past)-1] != "v58" {
		t.Errorf("past spans %q..%q, want v9..v58", past[0], past[len(past)-1])
	}

	small := NewMachine(newRegistry(t), WithHistoryLimit(3))
	s = small.Initial("")
	for i := 0; i < 10; i++ {
		s = small.SetContent(s, fmt.Sprintf("v%d", i), 0, 0)
	}
	if got := s.History.UndoCount(); got != 3 {
		t.Errorf("UndoCount = %d, want 3", got)
	}
}

func TestSetCursorSnaps(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.Initial(`$\frac{a}{b}$`)
	before := s.History

	s = m.SetCursor(s, 3, 3)
	if got := s.Cursor.Index(); got != 1 && got != 7 {
		t.Errorf("snapped cursor = %d, want a valid neighbour", got)
	}
	if s.History.UndoCount() != before.UndoCount() {
		t.Error("SetCursor changed history")
	}

	s = m.SetCursor(s, 7, 7)
	if s.Cursor.Context != "argument:frac#0" || !s.Cursor.InMath {
		t.Errorf("Context = %q InMath = %t", s.Cursor.Context, s.Cursor.InMath)
	}
}

func TestCursorLineColumn(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s := m.SetContent(m.Initial(""), "ab\ncd", 4, 4)
	if s.Cursor.Line != 1 || s.Cursor.Column != 1 {
		t.Errorf("Line, Column = %d, %d, want 1, 1", s.Cursor.Line, s.Cursor.Column)
	}
	if s.Cursor.Context != "text" || s.Cursor.InMath {
		t.Errorf("Context = %q InMath = %t", s.Cursor.Context, s.Cursor.InMath)
	}
}

func TestStateIsValue(t *testing.T) {
	m := NewMachine(newRegistry(t))
	s0 := m.SetContent(m.Initial(""), "a", 1, 1)
	s1 := m.SetContent(s0, "ab", 2, 2)
	_ = m.SetContent(s1, "abc", 3, 3)

	if s0.Content != "a" || s0.History.UndoCount() != 1 {
		t.Errorf("s0 modified: %q, %d", s0.Content, s0.History.UndoCount())
	}
	if s1.Content != "ab" || s1.History.UndoCount() != 2 {
		t.Errorf("s1 modified: %q, %d", s1.Content, s1.History.UndoCount())
	}
}

type recorder struct {
	events []string
}

func (r *recorder) ContentChanged(content string, selStart, selEnd int) {
	r.events = append(r.events, fmt.Sprintf("content %q %d-%d", content, selStart, selEnd))
}

func (r *recorder) CursorChanged(selStart, selEnd int) {
	r.events = append(r.events, fmt.Sprintf("cursor %d-%d", selStart, selEnd))
}

func TestEditorListeners(t *testing.T) {
	rec := &recorder{}
	e := NewEditor(newRegistry(t), WithListener(rec))

	e.SetContent("$a$$b$", 3, 3)
	e.SetCursor(1, 2)
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}

	want := []string{
		`content "$a$ $b$" 4-4`,
		"cursor 4-4",
		"cursor 1-2",
		`content "" 0-0`,
		"cursor 0-0",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	rec.events = nil
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo error = %v", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("failed undo notified listeners: %v", rec.events)
	}
}

func TestEditorListenerFuncs(t *testing.T) {
	var contents []string
	e := NewEditor(newRegistry(t), WithContent("a"))
	e.AddListener(ListenerFuncs{OnContent: func(c string, _, _ int) {
		contents = append(contents, c)
	}})

	e.SetContent("ab", 2, 2)
	e.SetCursor(0, 0)
	if diff := cmp.Diff([]string{"ab"}, contents); diff != "" {
		t.Errorf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorExecute(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		sel         [2]int
		command     string
		args        []string
		opts        command.Options
		wantContent string
		wantCursor  int
	}{
		{
			name:        "fraction absorbs",
			content:     "x+y",
			sel:         [2]int{3, 3},
			command:     "fraction",
			opts:        command.Options{IsShortcutInvocation: true},
			wantContent: `$\frac{x+y}{}$`,
			wantCursor:  12,
		},
		{
			name:        "whitespace blocks absorption",
			content:     "x+y ",
			sel:         [2]int{4, 4},
			command:     "fraction",
			opts:        command.Options{IsShortcutInvocation: true},
			wantContent: `x+y $\frac{}{}$`,
			wantCursor:  11,
		},
		{
			name:        "selection becomes first argument",
			content:     "a b",
			sel:         [2]int{0, 1},
			command:     "sqrt",
			wantContent: `$\sqrt{a}$ b`,
			wantCursor:  7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(newRegistry(t))
			e.SetContent(tt.content, tt.sel[0], tt.sel[1])
			e.Execute(tt.command, tt.args, tt.opts)

			if got := e.Content(); got != tt.wantContent {
				t.Errorf("Content = %q, want %q", got, tt.wantContent)
			}
			if got := e.Selection(); got != cursor.At(tt.wantCursor) {
				t.Errorf("Selection = %v, want %v", got, cursor.At(tt.wantCursor))
			}
			if err := e.Undo(); err != nil {
				t.Fatalf("Undo: %v", err)
			}
			if got := e.Content(); got != tt.content {
				t.Errorf("Content after undo = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestEditorTextEditing(t *testing.T) {
	e := NewEditor(newRegistry(t), WithContent("ab"))
	e.SetCursor(2, 2)

	e.InsertText("é")
	if got := e.Content(); got != "abé" {
		t.Fatalf("Content = %q", got)
	}
	if got := e.Selection().Head; got != 4 {
		t.Errorf("cursor = %d, want 4", got)
	}

	if !e.DeleteBackward() {
		t.Fatal("DeleteBackward returned false")
	}
	if got := e.Content(); got != "ab" {
		t.Errorf("Content = %q, want %q", got, "ab")
	}

	e.SetCursor(0, 2)
	e.InsertText("z")
	if got := e.Content(); got != "z" {
		t.Errorf("Content = %q, want %q", got, "z")
	}

	e.SetCursor(0, 0)
	if e.DeleteBackward() {
		t.Error("DeleteBackward at 0 returned true")
	}
}

func TestEditorMoveCursor(t *testing.T) {
	e := NewEditor(newRegistry(t), WithContent(`$\frac{a}{b}$`))

	e.MoveCursor(true)
	if got := e.Selection().Head; got != 1 {
		t.Errorf("after first move = %d, want 1", got)
	}
	e.MoveCursor(true)
	if got := e.Selection().Head; got != 7 {
		t.Errorf("after second move = %d, want 7", got)
	}
	e.MoveCursor(false)
	if got := e.Selection().Head; got != 1 {
		t.Errorf("after moving back = %d, want 1", got)
	}

	e.SetCursor(1, 7)
	e.MoveCursor(false)
	if got := e.Selection(); got != cursor.At(1) {
		t.Errorf("collapse = %v, want Cursor(1)", got)
	}
}

func TestEditorNextTabStop(t *testing.T) {
	e := NewEditor(newRegistry(t), WithContent(`$\frac{a}{b}$`))
	doc := e.Document()

	var seen []int
	for i := 0; i < 20; i++ {
		if !e.NextTabStop(true) {
			t.Fatal("NextTabStop returned false")
		}
		head := e.Selection().Head
		if !doc.IsValid(head) {
			t.Errorf("tab stop %d is not a valid position", head)
		}
		seen = append(seen, head)
	}
	if seen[0] <= 0 {
		t.Errorf("first stop = %d, want > 0", seen[0])
	}

	e2 := NewEditor(newRegistry(t))
	if e2.NextTabStop(true) {
		head := e2.Selection().Head
		if head != 0 {
			t.Errorf("empty document stop = %d", head)
		}
	}
}

func TestEditorLogsSession(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf, Prefix: "test"})
	e := NewEditor(newRegistry(t), WithLogger(logger))
	e.SetContent("x", 1, 1)

	out := buf.String()
	if !strings.Contains(out, "session="+e.ID()) {
		t.Errorf("log output missing session ID:\n%s", out)
	}
	if !strings.Contains(out, "component=editor") {
		t.Errorf("log output missing component:\n%s", out)
	}
}

func TestEditorCommandContext(t *testing.T) {
	e := NewEditor(newRegistry(t), WithContent(`$\frac{a}{b}$`))
	e.SetCursor(10, 10)
	ctx := e.CommandContext()
	if !ctx.InMath() {
		t.Error("expected InMath")
	}
	if ctx.Cursor.Label() != "argument:frac#1" {
		t.Errorf("Label = %q", ctx.Cursor.Label())
	}
	if ctx.HasSelection() {
		t.Error("unexpected selection")
	}
}
