package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mathmark/internal/engine/token"
)

// Theme holds the styles used for drawing.
type Theme struct {
	Text        tcell.Style
	Math        tcell.Style
	Delimiter   tcell.Style
	CommandName tcell.Style
	Status      tcell.Style
	Message     tcell.Style
}

// DefaultTheme returns the default styles.
func DefaultTheme() Theme {
	return Theme{
		Text:        tcell.StyleDefault,
		Math:        tcell.StyleDefault.Foreground(tcell.ColorTeal),
		Delimiter:   tcell.StyleDefault.Foreground(tcell.ColorOlive).Bold(true),
		CommandName: tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		Status:      tcell.StyleDefault.Reverse(true),
		Message:     tcell.StyleDefault.Reverse(true).Bold(true),
	}
}

// Highlight returns the style of every byte of the tree source. Inner
// nodes override the nodes that contain them.
func (t Theme) Highlight(tree *token.Tree) []tcell.Style {
	styles := make([]tcell.Style, len(tree.Source()))
	for i := range styles {
		styles[i] = t.Text
	}
	paint := func(lo, hi int, s tcell.Style) {
		for i := lo; i < hi && i < len(styles); i++ {
			styles[i] = s
		}
	}

	tree.Walk(func(id token.NodeID, _ int) bool {
		n := tree.Node(id)
		switch {
		case n.Kind == token.KindMath:
			paint(n.Start, n.End, t.Math)
		case n.Kind == token.KindCommandName:
			paint(n.Start, n.End, t.CommandName)
		case n.Kind == token.KindText && n.Delimiter:
			paint(n.Start, n.End, t.Delimiter)
		}
		return true
	})
	return styles
}
