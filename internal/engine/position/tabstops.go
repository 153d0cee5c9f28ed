package position

import (
	"sort"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/mathmark/internal/engine/token"
)

// TabStops holds categorized navigation targets. Every slice is sorted
// ascending and free of duplicates. Categories may overlap.
type TabStops struct {
	// CommandStarts and CommandEnds are the outer edges of commands.
	CommandStarts []int
	CommandEnds   []int

	// CommandNames holds the start and end of every command name.
	CommandNames []int

	// ArgumentOpens holds the outer and inner start of every group.
	ArgumentOpens []int

	// ArgumentCloses holds the inner and outer end of every group.
	ArgumentCloses []int

	// MathBoundaries holds the outer and inner edges of math regions.
	MathBoundaries []int

	// AdjacentGaps holds offsets between touching math regions.
	AdjacentGaps []int

	// WordBoundaries holds word starts and ends in text outside commands.
	WordBoundaries []int

	// Other holds every remaining valid position.
	Other []int

	// AllPositions is the union of all categories.
	AllPositions []int
}

type indexSet map[int]struct{}

func (s indexSet) add(indices ...int) {
	for _, i := range indices {
		s[i] = struct{}{}
	}
}

func (s indexSet) sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// TabStops computes the categorized tab stops of the document.
func (d *Document) TabStops() TabStops {
	var (
		starts   = indexSet{}
		ends     = indexSet{}
		names    = indexSet{}
		opens    = indexSet{}
		closes   = indexSet{}
		math     = indexSet{}
		gaps     = indexSet{}
		words    = indexSet{}
		assigned = indexSet{}
	)

	tree := d.tree
	tree.Walk(func(id token.NodeID, _ int) bool {
		n := tree.Node(id)
		switch n.Kind {
		case token.KindCommand:
			starts.add(n.Start)
			ends.add(n.End)
			if nameID := tree.CommandName(id); nameID != token.NoNode {
				name := tree.Node(nameID)
				names.add(name.Start, name.End)
			}
		case token.KindCommandArgs, token.KindCommandOptional:
			opens.add(n.Start, n.InnerStart)
			closes.add(n.InnerEnd, n.End)
		case token.KindMath:
			math.add(n.Start, n.InnerStart, n.InnerEnd, n.End)
		}
		return true
	})
	gaps.add(d.gaps...)

	for _, id := range tree.Roots() {
		n := tree.Node(id)
		switch n.Kind {
		case token.KindText:
			d.addWordBoundaries(words, id)
		case token.KindMath:
			for _, child := range n.Children {
				if tree.Node(child).Kind != token.KindMathContent {
					continue
				}
				for _, c := range tree.Node(child).Children {
					if tree.Node(c).Kind == token.KindText {
						d.addWordBoundaries(words, c)
					}
				}
			}
		}
	}

	for _, set := range []indexSet{starts, ends, names, opens, closes, math, gaps, words} {
		for i := range set {
			assigned.add(i)
		}
	}

	other := indexSet{}
	for i, ok := range d.valid {
		if ok {
			if _, seen := assigned[i]; !seen {
				other.add(i)
			}
		}
	}
	all := indexSet{}
	for i := range assigned {
		all.add(i)
	}
	for i := range other {
		all.add(i)
	}

	return TabStops{
		CommandStarts:  starts.sorted(),
		CommandEnds:    ends.sorted(),
		CommandNames:   names.sorted(),
		ArgumentOpens:  opens.sorted(),
		ArgumentCloses: closes.sorted(),
		MathBoundaries: math.sorted(),
		AdjacentGaps:   gaps.sorted(),
		WordBoundaries: words.sorted(),
		Other:          other.sorted(),
		AllPositions:   all.sorted(),
	}
}

// addWordBoundaries records the edges of every word in a text node.
func (d *Document) addWordBoundaries(words indexSet, id token.NodeID) {
	n := d.tree.Node(id)
	rest := d.tree.Content(id)
	offset := n.Start
	state := -1
	var word string
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if isWord(word) {
			words.add(offset, offset+len(word))
		}
		offset += len(word)
	}
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Navigable returns the valid tab stops used for Tab navigation: every
// categorized stop except Other. If there are none, the valid Other stops
// are returned instead.
func (ts TabStops) Navigable(d *Document) []int {
	other := make(map[int]struct{}, len(ts.Other))
	for _, i := range ts.Other {
		other[i] = struct{}{}
	}
	var out []int
	for _, i := range ts.AllPositions {
		if _, skip := other[i]; skip {
			continue
		}
		if d.IsValid(i) {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		for _, i := range ts.Other {
			if d.IsValid(i) {
				out = append(out, i)
			}
		}
	}
	return out
}

// FindNextTabStop returns the nearest navigable tab stop strictly after
// (forward) or before index. When the end of the document is reached the
// search wraps to the first or last stop. It returns false only when the
// document has no tab stops.
func (d *Document) FindNextTabStop(index int, forward bool) (int, bool) {
	stops := d.TabStops().Navigable(d)
	if len(stops) == 0 {
		return 0, false
	}
	if forward {
		i := sort.SearchInts(stops, index+1)
		if i < len(stops) {
			return stops[i], true
		}
		return stops[0], true
	}
	i := sort.SearchInts(stops, index) - 1
	if i >= 0 {
		return stops[i], true
	}
	return stops[len(stops)-1], true
}
