package command

import (
	"strings"

	"github.com/dshills/mathmark/internal/engine/token"
)

// Generic inserts \name{a}{b}... for any name, with max(len(args), 2)
// argument slots. The registry resolves unknown names to it.
type Generic struct {
	name string
}

// NewGeneric creates a generic command for \name.
func NewGeneric(name string) Generic {
	return Generic{name: name}
}

// Name returns the command name.
func (g Generic) Name() string { return g.name }

// Patterns returns an unbounded pattern for the name when it is a valid
// identifier.
func (g Generic) Patterns() []token.Pattern {
	if !isIdentifier(g.name) {
		return nil
	}
	return []token.Pattern{backslash(g.name, token.Unbounded, false, g.name)}
}

// Shortcuts returns nothing.
func (Generic) Shortcuts() []Shortcut { return nil }

// Execute inserts the command with one slot per argument, and at least two.
func (g Generic) Execute(content string, pos int, args []string, opts Options) (string, int) {
	return insert(content, pos, args, opts, patternsOf(g), true, func(args []string, absorbed bool) literal {
		var b strings.Builder
		b.WriteString(`\` + g.name)
		for i := 0; i < max(len(args), 2); i++ {
			b.WriteString("{" + arg(args, i) + "}")
		}
		return literal{text: b.String(), slot: defaultSlot(absorbed), offset: -1}
	})
}
