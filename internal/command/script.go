package command

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/mathmark/internal/engine/token"
)

// Script inserts a superscript ^{A} or subscript _{A}.
//
// When the character left of the cursor is a letter, digit or ")" the
// script attaches to it in place, even in prose. Otherwise the script is
// inserted alone and gets its own $...$ region when the site needs one.
// The cursor lands in the script argument.
type Script struct {
	name string
	op   string
}

// NewSuperscript creates the superscript command.
func NewSuperscript() Script {
	return Script{name: "superscript", op: "^"}
}

// NewSubscript creates the subscript command.
func NewSubscript() Script {
	return Script{name: "subscript", op: "_"}
}

// Name returns "superscript" or "subscript".
func (s Script) Name() string { return s.name }

// Patterns returns the second-class character pattern.
func (s Script) Patterns() []token.Pattern {
	return []token.Pattern{{
		Identifier: s.op,
		Type:       token.PatternCharacter,
		Class:      token.ClassSecond,
		Arity:      1,
		Command:    s.name,
	}}
}

// Shortcuts returns the operator key in math.
func (s Script) Shortcuts() []Shortcut {
	return []Shortcut{{Keys: s.op, Description: "Insert a " + s.name, When: InMath}}
}

// Execute inserts the script. args[0] is the script content.
func (s Script) Execute(content string, pos int, args []string, opts Options) (string, int) {
	site := ClassifySite(analyze(content, opts, patternsOf(s)), pos)
	at, lower, wrap := site.Target(opts.WrapWithMath)

	if opts.IsSecondClassCommand {
		return splice(content, at, at, literal{text: s.op, offset: len(s.op)}, wrap, nil)
	}

	left, _ := utf8.DecodeLastRuneInString(content[lower:at])
	if at > lower && attachable(left) {
		wrap = false
	}
	lit := literal{text: s.op + "{" + arg(args, 0) + "}", slot: -1, offset: -1}
	return splice(content, at, at, lit, wrap, opts.CursorArgumentIndex)
}

func attachable(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ')'
}
