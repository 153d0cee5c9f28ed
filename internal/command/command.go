package command

import (
	"github.com/dshills/mathmark/internal/engine/cursor"
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/engine/token"
)

// Command is a named, stateless insertion unit.
type Command interface {
	// Name returns the unique command name.
	Name() string

	// Patterns returns the identifiers the tokenizer should resolve to
	// this command.
	Patterns() []token.Pattern

	// Shortcuts returns the default key bindings of the command.
	Shortcuts() []Shortcut

	// Execute inserts the command into content at position and returns
	// the new content and cursor.
	Execute(content string, position int, args []string, opts Options) (string, int)
}

// WrapMode controls whether inserted markup gets its own $...$ region.
type WrapMode uint8

const (
	// WrapAuto wraps in plain text and reuses a math region the cursor
	// touches.
	WrapAuto WrapMode = iota

	// WrapForce opens a fresh region whenever the cursor is outside math
	// content, even next to an existing region.
	WrapForce

	// WrapNever inserts the bare markup.
	WrapNever
)

// String returns the wrap mode name.
func (m WrapMode) String() string {
	switch m {
	case WrapAuto:
		return "auto"
	case WrapForce:
		return "force"
	case WrapNever:
		return "never"
	default:
		return "unknown"
	}
}

// Options tunes a single command execution.
type Options struct {
	// WrapWithMath selects how markup outside math is wrapped.
	WrapWithMath WrapMode

	// CursorArgumentIndex picks the argument slot that receives the cursor.
	// Negative values count from the last slot. Nil selects the command's
	// default.
	CursorArgumentIndex *int

	// IsShortcutInvocation enables absorption of the expression left of the
	// cursor when no arguments are given.
	IsShortcutInvocation bool

	// IsSecondClassCommand asks script commands for the bare operator so
	// the next character typed becomes its implicit argument.
	IsSecondClassCommand bool

	// Patterns tokenizes content to classify the insertion site. When nil,
	// the executing command's own patterns are used.
	Patterns token.Patterns
}

// ArgumentIndex returns a pointer to i, for Options.CursorArgumentIndex.
func ArgumentIndex(i int) *int {
	return &i
}

// Context is the cursor state a shortcut guard is evaluated against.
type Context struct {
	Text      string
	Selection cursor.Selection
	Cursor    position.Context
}

// InMath reports whether the cursor is inside math content.
func (c Context) InMath() bool {
	return c.Cursor.InMath
}

// HasSelection reports whether a non-empty range is selected.
func (c Context) HasSelection() bool {
	return !c.Selection.IsEmpty()
}

// Shortcut is a default key binding of a command.
type Shortcut struct {
	// Keys is a key specification such as "/" or "Ctrl+R".
	Keys string

	// Description is shown in help output.
	Description string

	// When guards the shortcut. Nil always matches.
	When func(Context) bool

	// Build returns the arguments and options for the execution. Nil runs
	// the command as a shortcut invocation without arguments.
	Build func(Context) ([]string, Options)
}

// Matches reports whether the shortcut applies in ctx.
func (s Shortcut) Matches(ctx Context) bool {
	return s.When == nil || s.When(ctx)
}

// Arguments returns the arguments and options for an execution in ctx.
func (s Shortcut) Arguments(ctx Context) ([]string, Options) {
	if s.Build == nil {
		return nil, Options{IsShortcutInvocation: true}
	}
	return s.Build(ctx)
}

// InMath is a shortcut guard matching inside math content.
func InMath(ctx Context) bool {
	return ctx.InMath()
}
