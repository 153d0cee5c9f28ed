package command

import "github.com/dshills/mathmark/internal/engine/token"

// MathToggle wraps text in a $...$ region, or unwraps the region at the
// cursor.
//
// Outside math, args[0] (or on a shortcut, the run left of the cursor) is
// wrapped and the cursor lands at the end of it inside the region. An
// empty region is written as "$ $". Inside or next to a math region, the
// region's delimiters are removed and the cursor keeps its place in the
// content.
type MathToggle struct{}

// NewMathToggle creates the math toggle command.
func NewMathToggle() MathToggle {
	return MathToggle{}
}

// Name returns "math".
func (MathToggle) Name() string { return "math" }

// Patterns returns nothing; $ is handled by the tokenizer itself.
func (MathToggle) Patterns() []token.Pattern { return nil }

// Shortcuts returns Ctrl+E.
func (MathToggle) Shortcuts() []Shortcut {
	return []Shortcut{{Keys: "Ctrl+E", Description: "Toggle math around the cursor"}}
}

// Execute toggles math at pos.
func (MathToggle) Execute(content string, pos int, args []string, opts Options) (string, int) {
	doc := analyze(content, opts, opts.Patterns)
	site := ClassifySite(doc, pos)
	pos = site.Position

	if site.Kind != SiteText && site.Math != token.NoNode {
		m := doc.Tree().Node(site.Math)
		inner := content[m.InnerStart:m.InnerEnd]
		out := content[:m.Start] + inner + content[m.End:]
		switch {
		case pos <= m.Start:
		case pos >= m.End:
			pos -= m.Len() - len(inner)
		default:
			pos = m.Start + min(max(pos-m.InnerStart, 0), len(inner))
		}
		return out, pos
	}

	start := pos
	text := arg(args, 0)
	if len(args) == 0 && opts.IsShortcutInvocation {
		start = AbsorbStart(content, site.TextLower, pos)
		text = content[start:pos]
	}
	if text == "" {
		return content[:pos] + "$ $" + content[pos:], pos + 1
	}
	return content[:start] + "$" + text + "$" + content[pos:], start + 1 + len(text)
}
