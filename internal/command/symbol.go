package command

import "github.com/dshills/mathmark/internal/engine/token"

// Symbol inserts an argument-free command such as \alpha or \times.
type Symbol struct {
	identifier string
}

// NewSymbol creates a symbol command for \identifier.
func NewSymbol(identifier string) Symbol {
	return Symbol{identifier: identifier}
}

// Name returns the identifier.
func (s Symbol) Name() string { return s.identifier }

// Patterns returns the command's pattern.
func (s Symbol) Patterns() []token.Pattern {
	return []token.Pattern{backslash(s.identifier, 0, false, s.identifier)}
}

// Shortcuts returns nothing.
func (Symbol) Shortcuts() []Shortcut { return nil }

// Execute inserts the symbol and leaves the cursor after it. args are
// ignored.
func (s Symbol) Execute(content string, pos int, _ []string, opts Options) (string, int) {
	return insert(content, pos, nil, opts, patternsOf(s), false, func([]string, bool) literal {
		text := `\` + s.identifier
		return literal{text: text, offset: len(text), separate: true}
	})
}

// symbolNames lists the built-in symbols.
var symbolNames = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "theta", "lambda", "mu",
	"pi", "rho", "sigma", "tau", "phi", "omega",
	"Gamma", "Delta", "Theta", "Lambda", "Pi", "Sigma", "Phi", "Omega",
	"cdot", "times", "pm", "infty", "leq", "geq", "neq", "approx",
}
