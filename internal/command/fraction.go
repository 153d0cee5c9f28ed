package command

import "github.com/dshills/mathmark/internal/engine/token"

// Fraction inserts \frac{A}{B}. A shortcut invocation absorbs the
// numerator and leaves the cursor in the denominator.
type Fraction struct{}

// NewFraction creates the fraction command.
func NewFraction() Fraction {
	return Fraction{}
}

// Name returns "fraction".
func (Fraction) Name() string { return "fraction" }

// Patterns returns the \frac pattern.
func (Fraction) Patterns() []token.Pattern {
	return []token.Pattern{backslash("frac", 2, false, "fraction")}
}

// Shortcuts returns "/" in math and Ctrl+/ anywhere.
func (Fraction) Shortcuts() []Shortcut {
	return []Shortcut{
		{Keys: "/", Description: "Fraction over the expression left of the cursor", When: InMath},
		{Keys: "Ctrl+/", Description: "Insert a fraction"},
	}
}

// Execute inserts a fraction. args are the numerator and denominator.
func (f Fraction) Execute(content string, pos int, args []string, opts Options) (string, int) {
	return insert(content, pos, args, opts, patternsOf(f), true, func(args []string, absorbed bool) literal {
		return literal{
			text:   `\frac{` + arg(args, 0) + `}{` + arg(args, 1) + `}`,
			slot:   defaultSlot(absorbed),
			offset: -1,
		}
	})
}

// Sqrt inserts \sqrt{A}, or \sqrt[N]{A} when an index is given.
type Sqrt struct{}

// NewSqrt creates the square root command.
func NewSqrt() Sqrt {
	return Sqrt{}
}

// Name returns "sqrt".
func (Sqrt) Name() string { return "sqrt" }

// Patterns returns the \sqrt pattern, which accepts an optional index.
func (Sqrt) Patterns() []token.Pattern {
	return []token.Pattern{backslash("sqrt", 1, true, "sqrt")}
}

// Shortcuts returns Ctrl+R.
func (Sqrt) Shortcuts() []Shortcut {
	return []Shortcut{{Keys: "Ctrl+R", Description: "Square root of the expression left of the cursor"}}
}

// Execute inserts a root. args are the radicand and the optional index.
func (s Sqrt) Execute(content string, pos int, args []string, opts Options) (string, int) {
	return insert(content, pos, args, opts, patternsOf(s), true, func(args []string, absorbed bool) literal {
		text := `\sqrt`
		if index := arg(args, 1); index != "" {
			text += "[" + index + "]"
		}
		text += "{" + arg(args, 0) + "}"
		return literal{text: text, slot: defaultSlot(absorbed), offset: -1}
	})
}

// Unary wraps its single argument in a one-argument command such as
// \text{...} or \vec{...}. It absorbs like Sqrt.
type Unary struct {
	identifier string
}

// NewUnary creates a one-argument command for \identifier.
func NewUnary(identifier string) Unary {
	return Unary{identifier: identifier}
}

// Name returns the identifier.
func (u Unary) Name() string { return u.identifier }

// Patterns returns the command's pattern.
func (u Unary) Patterns() []token.Pattern {
	return []token.Pattern{backslash(u.identifier, 1, false, u.identifier)}
}

// Shortcuts returns nothing; unary commands are bound through keymaps.
func (Unary) Shortcuts() []Shortcut { return nil }

// Execute inserts \identifier{A}.
func (u Unary) Execute(content string, pos int, args []string, opts Options) (string, int) {
	return insert(content, pos, args, opts, patternsOf(u), true, func(args []string, absorbed bool) literal {
		return literal{
			text:   `\` + u.identifier + "{" + arg(args, 0) + "}",
			slot:   defaultSlot(absorbed),
			offset: -1,
		}
	})
}
