package engine

import (
	"github.com/dshills/mathmark/internal/engine/cursor"
	"github.com/dshills/mathmark/internal/engine/history"
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/engine/token"
)

// Cursor is the selection together with what surrounds its head.
type Cursor struct {
	Selection cursor.Selection

	// Line and Column locate the head; both are 0-based and Column counts
	// grapheme clusters.
	Line   int
	Column int

	// Context labels the structure at the head, e.g. "argument:frac#0".
	Context string
	InMath  bool
}

// Index returns the head offset.
func (c Cursor) Index() int {
	return c.Selection.Head
}

// State is one editor snapshot. States are values: transitions return new
// states and never modify their input.
type State struct {
	Content string
	Cursor  Cursor
	History history.History
}

// Machine implements the editor transitions as pure functions over State.
type Machine struct {
	analyzer     *position.Analyzer
	historyLimit int
	normalize    bool
}

// NewMachine creates a machine that tokenizes with patterns.
func NewMachine(patterns token.Patterns, opts ...Option) *Machine {
	cfg := newConfig(opts)
	return &Machine{
		analyzer:     position.NewAnalyzer(patterns),
		historyLimit: cfg.historyLimit,
		normalize:    cfg.normalize,
	}
}

// Analyzer returns the analyzer used for cursor context.
func (m *Machine) Analyzer() *position.Analyzer {
	return m.analyzer
}

// Initial returns the state for a fresh session holding content, with the
// cursor at 0 and empty history.
func (m *Machine) Initial(content string) State {
	content, _ = m.normalized(content)
	return State{
		Content: content,
		Cursor:  m.cursorAt(content, cursor.At(0)),
		History: history.NewHistory(m.historyLimit),
	}
}

// SetContent replaces the content. Touching math regions are separated by
// a space and the selection is shifted past every space inserted at or
// before it, then clamped. The previous content is recorded for undo when
// it differs; the redo stack is always cleared.
func (m *Machine) SetContent(s State, content string, selStart, selEnd int) State {
	content, inserts := m.normalized(content)
	sel := cursor.TransformSelection(cursor.NewSelection(selStart, selEnd), inserts).Clamp(len(content))

	hist := s.History.DropFuture()
	if content != s.Content {
		hist = s.History.Push(s.Content)
	}
	return State{
		Content: content,
		Cursor:  m.cursorAt(content, sel),
		History: hist,
	}
}

// SetCursor moves the selection, snapping both ends to valid positions.
// History is untouched.
func (m *Machine) SetCursor(s State, selStart, selEnd int) State {
	doc := m.analyzer.Analyze(s.Content)
	sel := cursor.NewSelection(doc.Snap(selStart), doc.Snap(selEnd))
	return State{
		Content: s.Content,
		Cursor:  m.cursorFor(doc, sel),
		History: s.History,
	}
}

// Undo restores the previous content with the cursor at 0. With nothing to
// undo it returns s and ErrNothingToUndo.
func (m *Machine) Undo(s State) (State, error) {
	hist, content, err := s.History.Undo(s.Content)
	if err != nil {
		return s, err
	}
	return State{Content: content, Cursor: m.cursorAt(content, cursor.At(0)), History: hist}, nil
}

// Redo re-applies the last undone content with the cursor at 0. With
// nothing to redo it returns s and ErrNothingToRedo.
func (m *Machine) Redo(s State) (State, error) {
	hist, content, err := s.History.Redo(s.Content)
	if err != nil {
		return s, err
	}
	return State{Content: content, Cursor: m.cursorAt(content, cursor.At(0)), History: hist}, nil
}

func (m *Machine) normalized(content string) (string, []cursor.Insertion) {
	if !m.normalize {
		return content, nil
	}
	return NormalizeAdjacentMath(content)
}

func (m *Machine) cursorAt(content string, sel cursor.Selection) Cursor {
	return m.cursorFor(m.analyzer.Analyze(content), sel)
}

func (m *Machine) cursorFor(doc *position.Document, sel cursor.Selection) Cursor {
	ctx := doc.Context(sel.Head)
	line, col := position.LineColumn(doc.Text(), sel.Head)
	return Cursor{
		Selection: sel,
		Line:      line,
		Column:    col,
		Context:   ctx.Label(),
		InMath:    ctx.InMath,
	}
}
