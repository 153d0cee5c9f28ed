package position

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/mathmark/internal/engine/token"
)

// Position is an index paired with its validity.
type Position struct {
	Index int
	Valid bool
}

// Analyzer tokenizes text with a fixed set of command patterns.
// It holds no per-text state and is safe to share.
type Analyzer struct {
	patterns token.Patterns
}

// NewAnalyzer creates an analyzer resolving commands through patterns.
func NewAnalyzer(patterns token.Patterns) *Analyzer {
	return &Analyzer{patterns: patterns}
}

// Patterns returns the patterns used for tokenizing.
func (a *Analyzer) Patterns() token.Patterns {
	return a.patterns
}

// Analyze parses text and computes its validity map.
func (a *Analyzer) Analyze(text string) *Document {
	return NewDocument(token.Parse(text, a.patterns))
}

// IsValid reports whether index is a legal cursor position in text.
func (a *Analyzer) IsValid(text string, index int) bool {
	return a.Analyze(text).IsValid(index)
}

// At returns the Position for index in text.
func (a *Analyzer) At(text string, index int) Position {
	return a.Analyze(text).At(index)
}

// Next returns the first valid position after index.
func (a *Analyzer) Next(text string, index int) int {
	return a.Analyze(text).Next(index)
}

// Prev returns the last valid position before index.
func (a *Analyzer) Prev(text string, index int) int {
	return a.Analyze(text).Prev(index)
}

// TabStops returns the categorized tab stops of text.
func (a *Analyzer) TabStops(text string) TabStops {
	return a.Analyze(text).TabStops()
}

// FindNextTabStop returns the nearest tab stop after (forward) or before
// index, wrapping around the document.
func (a *Analyzer) FindNextTabStop(text string, index int, forward bool) (int, bool) {
	return a.Analyze(text).FindNextTabStop(index, forward)
}

// Context returns the cursor context at index.
func (a *Analyzer) Context(text string, index int) Context {
	return a.Analyze(text).Context(index)
}

// Document is a parsed text with its validity map.
type Document struct {
	tree  *token.Tree
	valid []bool
	gaps  []int
}

// NewDocument computes validity for an already parsed tree.
func NewDocument(tree *token.Tree) *Document {
	d := &Document{tree: tree}
	d.computeValidity()
	return d
}

// Tree returns the parsed token tree.
func (d *Document) Tree() *token.Tree {
	return d.tree
}

// Text returns the document source.
func (d *Document) Text() string {
	return d.tree.Source()
}

// Len returns the length of the document in bytes.
func (d *Document) Len() int {
	return len(d.tree.Source())
}

func (d *Document) computeValidity() {
	text := d.tree.Source()
	n := len(text)
	d.valid = make([]bool, n+1)
	for i := 0; i <= n; i++ {
		d.valid[i] = i == n || utf8.RuneStart(text[i])
	}

	d.tree.Walk(func(id token.NodeID, _ int) bool {
		node := d.tree.Node(id)
		switch node.Kind {
		case token.KindText:
			if node.Delimiter && node.Len() > 1 {
				d.invalidate(node.Start+1, node.End-1)
			}
		case token.KindCommand:
			if node.Pattern == nil || node.Pattern.Class != token.ClassFirst {
				return true
			}
			name := d.tree.Node(d.tree.CommandName(id))
			d.invalidate(name.Start+1, name.End-1)
			if groups := d.tree.Groups(id); len(groups) > 0 {
				d.invalidate(name.End, d.tree.Node(groups[0]).Start)
			}
		}
		return true
	})

	roots := d.tree.Roots()
	for i := 1; i < len(roots); i++ {
		prev, next := d.tree.Node(roots[i-1]), d.tree.Node(roots[i])
		if prev.Kind == token.KindMath && next.Kind == token.KindMath && prev.End == next.Start {
			d.gaps = append(d.gaps, prev.End)
			d.valid[prev.End] = true
		}
	}

	d.valid[0] = true
	d.valid[n] = true
}

// invalidate marks the closed range [lo, hi] invalid.
func (d *Document) invalidate(lo, hi int) {
	if lo < 0 {
		lo = 0
	}
	if hi > len(d.valid)-1 {
		hi = len(d.valid) - 1
	}
	for i := lo; i <= hi; i++ {
		d.valid[i] = false
	}
}

// IsValid reports whether index is a legal cursor position.
func (d *Document) IsValid(index int) bool {
	if index < 0 || index >= len(d.valid) {
		return false
	}
	return d.valid[index]
}

// At returns the Position for index.
func (d *Document) At(index int) Position {
	return Position{Index: index, Valid: d.IsValid(index)}
}

// Clamp limits index to [0, Len()].
func (d *Document) Clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > d.Len() {
		return d.Len()
	}
	return index
}

// Next returns the first valid position strictly after index, or Len()
// when there is none.
func (d *Document) Next(index int) int {
	n := d.Len()
	if index >= n {
		return n
	}
	if index < -1 {
		index = -1
	}
	for i := index + 1; i < n; i++ {
		if d.valid[i] {
			return i
		}
	}
	return n
}

// Prev returns the last valid position strictly before index, or 0 when
// there is none.
func (d *Document) Prev(index int) int {
	if index <= 0 {
		return 0
	}
	if index > d.Len()+1 {
		index = d.Len() + 1
	}
	for i := index - 1; i > 0; i-- {
		if d.valid[i] {
			return i
		}
	}
	return 0
}

// Snap returns index if it is valid, otherwise the nearest valid position.
// Ties go forward.
func (d *Document) Snap(index int) int {
	index = d.Clamp(index)
	if d.valid[index] {
		return index
	}
	prev, next := d.Prev(index), d.Next(index)
	if next-index <= index-prev {
		return next
	}
	return prev
}

// AdjacentGaps returns the offsets between touching math regions.
func (d *Document) AdjacentGaps() []int {
	return d.gaps
}

// LineColumn returns the 0-based line and grapheme column of index.
func LineColumn(text string, index int) (line, column int) {
	if index < 0 {
		index = 0
	}
	if index > len(text) {
		index = len(text)
	}
	before := text[:index]
	line = strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	column = uniseg.GraphemeClusterCount(before[lineStart:])
	return line, column
}
