package engine

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine/cursor"
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/logging"
)

// Editor owns one editing session: the current state, the command registry
// and the host listeners.
//
// Editor is not safe for concurrent use. Hosts must serialize calls.
type Editor struct {
	id        string
	machine   *Machine
	registry  *command.Registry
	state     State
	logger    *logging.Logger
	listeners []Listener
}

// NewEditor creates an editor resolving commands through registry. A nil
// registry knows no commands.
func NewEditor(registry *command.Registry, opts ...Option) *Editor {
	if registry == nil {
		registry, _ = command.NewRegistry()
	}
	cfg := newConfig(opts)
	id := uuid.NewString()

	logger := cfg.logger
	if logger == nil {
		logger = logging.Null()
	}

	e := &Editor{
		id:        id,
		machine:   NewMachine(registry, opts...),
		registry:  registry,
		logger:    logger.WithComponent("editor").WithField("session", id),
		listeners: cfg.listeners,
	}
	e.state = e.machine.Initial(cfg.content)
	e.logger.Debug("session started with %d bytes", len(e.state.Content))
	return e
}

// ID returns the session ID.
func (e *Editor) ID() string {
	return e.id
}

// Registry returns the command registry.
func (e *Editor) Registry() *command.Registry {
	return e.registry
}

// State returns the current state.
func (e *Editor) State() State {
	return e.state
}

// Content returns the current content.
func (e *Editor) Content() string {
	return e.state.Content
}

// Selection returns the current selection.
func (e *Editor) Selection() cursor.Selection {
	return e.state.Cursor.Selection
}

// Document analyzes the current content.
func (e *Editor) Document() *position.Document {
	return e.machine.Analyzer().Analyze(e.state.Content)
}

// CommandContext returns the context shortcut guards are evaluated in.
func (e *Editor) CommandContext() command.Context {
	sel := e.state.Cursor.Selection
	return command.Context{
		Text:      e.state.Content,
		Selection: sel,
		Cursor:    e.Document().Context(sel.Head),
	}
}

// AddListener registers l for notifications.
func (e *Editor) AddListener(l Listener) {
	if l != nil {
		e.listeners = append(e.listeners, l)
	}
}

// SetContent replaces the content and selection.
func (e *Editor) SetContent(content string, selStart, selEnd int) {
	before := e.state.History.UndoCount()
	e.state = e.machine.SetContent(e.state, content, selStart, selEnd)
	sel := e.state.Cursor.Selection
	e.logger.Debug("set content: %d bytes, cursor %s, recorded %t", len(e.state.Content), sel, e.state.History.UndoCount() != before)
	e.notifyContent()
}

// SetCursor moves the selection. Both ends snap to valid positions.
func (e *Editor) SetCursor(selStart, selEnd int) {
	e.state = e.machine.SetCursor(e.state, selStart, selEnd)
	e.notifyCursor()
}

// Undo restores the previous content.
func (e *Editor) Undo() error {
	next, err := e.machine.Undo(e.state)
	if err != nil {
		return err
	}
	e.state = next
	e.logger.Debug("undo: past=%d future=%d", next.History.UndoCount(), next.History.RedoCount())
	e.notifyContent()
	return nil
}

// Redo re-applies the last undone content.
func (e *Editor) Redo() error {
	next, err := e.machine.Redo(e.state)
	if err != nil {
		return err
	}
	e.state = next
	e.logger.Debug("redo: past=%d future=%d", next.History.UndoCount(), next.History.RedoCount())
	e.notifyContent()
	return nil
}

// Execute runs the named command at the cursor. A selected range is cut
// from the content and passed as the first argument. Unknown names run as
// generic commands.
func (e *Editor) Execute(name string, args []string, opts command.Options) {
	content := e.state.Content
	sel := e.state.Cursor.Selection
	pos := sel.Head
	if !sel.IsEmpty() {
		args = append([]string{sel.Text(content)}, args...)
		content = content[:sel.Start()] + content[sel.End():]
		pos = sel.Start()
	}
	if opts.Patterns == nil {
		opts.Patterns = e.registry
	}

	next, at := e.registry.Execute(name, content, pos, args, opts)
	e.logger.Debug("execute %s with %d args, cursor %d", name, len(args), at)
	e.commit(next, at)
}

// InsertText replaces the selection with text and places the cursor after
// it.
func (e *Editor) InsertText(text string) {
	content := e.state.Content
	sel := e.state.Cursor.Selection
	next := content[:sel.Start()] + text + content[sel.End():]
	e.commit(next, sel.Start()+len(text))
}

// DeleteBackward deletes the selection, or the character before the
// cursor. It reports whether anything was deleted.
func (e *Editor) DeleteBackward() bool {
	content := e.state.Content
	sel := e.state.Cursor.Selection
	if !sel.IsEmpty() {
		e.commit(content[:sel.Start()]+content[sel.End():], sel.Start())
		return true
	}
	if sel.Head == 0 {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(content[:sel.Head])
	start := sel.Head - size
	e.commit(content[:start]+content[sel.Head:], start)
	return true
}

// MoveCursor moves to the next or previous valid position. A non-empty
// selection collapses to its end or start instead.
func (e *Editor) MoveCursor(forward bool) {
	sel := e.state.Cursor.Selection
	var to int
	switch {
	case !sel.IsEmpty() && forward:
		to = sel.End()
	case !sel.IsEmpty():
		to = sel.Start()
	case forward:
		to = e.Document().Next(sel.Head)
	default:
		to = e.Document().Prev(sel.Head)
	}
	e.SetCursor(to, to)
}

// NextTabStop jumps to the next or previous tab stop, wrapping around the
// document. It reports false when the document has no tab stops.
func (e *Editor) NextTabStop(forward bool) bool {
	to, ok := e.Document().FindNextTabStop(e.state.Cursor.Selection.Head, forward)
	if !ok {
		return false
	}
	e.SetCursor(to, to)
	return true
}

// commit stores new content with a collapsed cursor snapped to a valid
// position.
func (e *Editor) commit(content string, at int) {
	before := e.state.History.UndoCount()
	next := e.machine.SetContent(e.state, content, at, at)
	head := next.Cursor.Selection.Head
	e.state = e.machine.SetCursor(next, head, head)
	e.logger.Debug("commit: %d bytes, cursor %d, recorded %t", len(e.state.Content), e.state.Cursor.Index(), e.state.History.UndoCount() != before)
	e.notifyContent()
}

func (e *Editor) notifyContent() {
	sel := e.state.Cursor.Selection
	for _, l := range e.listeners {
		l.ContentChanged(e.state.Content, sel.Start(), sel.End())
	}
	e.notifyCursor()
}

func (e *Editor) notifyCursor() {
	sel := e.state.Cursor.Selection
	for _, l := range e.listeners {
		l.CursorChanged(sel.Start(), sel.End())
	}
}
