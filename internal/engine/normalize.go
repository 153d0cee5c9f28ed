package engine

import (
	"strings"

	"github.com/dshills/mathmark/internal/engine/cursor"
	"github.com/dshills/mathmark/internal/engine/token"
)

// NormalizeAdjacentMath inserts one space wherever a math region ends
// exactly where the next begins ("$a$$b$" becomes "$a$ $b$"). It returns
// the normalized content and the insertions made, in ascending order.
// Normalizing normalized content changes nothing.
func NormalizeAdjacentMath(content string) (string, []cursor.Insertion) {
	tree := token.Parse(content, nil)
	roots := tree.Roots()

	var inserts []cursor.Insertion
	for i := 1; i < len(roots); i++ {
		prev, next := tree.Node(roots[i-1]), tree.Node(roots[i])
		if prev.Kind == token.KindMath && next.Kind == token.KindMath && prev.End == next.Start {
			inserts = append(inserts, cursor.Insertion{At: prev.End, Len: 1})
		}
	}
	if len(inserts) == 0 {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content) + len(inserts))
	last := 0
	for _, ins := range inserts {
		b.WriteString(content[last:ins.At])
		b.WriteByte(' ')
		last = ins.At
	}
	b.WriteString(content[last:])
	return b.String(), inserts
}
