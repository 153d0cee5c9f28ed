package command

import (
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/engine/token"
)

// SiteKind classifies where a command is inserted.
type SiteKind uint8

const (
	// SiteText is prose outside every math region.
	SiteText SiteKind = iota
	// SiteMath is math content outside any argument group.
	SiteMath
	// SiteArgument is inside a command's argument group.
	SiteArgument
	// SiteBeforeMath is on the opening delimiter of a math region.
	SiteBeforeMath
	// SiteAfterMath is just after the closing delimiter of a math region.
	SiteAfterMath
)

// String returns the site kind name.
func (k SiteKind) String() string {
	switch k {
	case SiteText:
		return "text"
	case SiteMath:
		return "math"
	case SiteArgument:
		return "argument"
	case SiteBeforeMath:
		return "before-math"
	case SiteAfterMath:
		return "after-math"
	default:
		return "unknown"
	}
}

// Site describes an insertion point.
type Site struct {
	Kind SiteKind

	// Position is the clamped cursor the site was classified at.
	Position int

	// At is where markup lands in math content. Before and after a math
	// region this is the region's content start or end.
	At int

	// Lower bounds absorption at At: nothing before Lower is absorbed.
	// It is the start of the enclosing argument or math content.
	Lower int

	// TextLower bounds absorption at Position when the markup is placed
	// outside math: the end of the previous math region, or 0.
	TextLower int

	// Math is the math region the site belongs to or touches, or
	// token.NoNode.
	Math token.NodeID
}

// Target returns where markup goes under mode, the absorption bound there
// and whether the markup needs its own $...$ region.
func (s Site) Target(mode WrapMode) (at, lower int, wrap bool) {
	switch s.Kind {
	case SiteMath, SiteArgument:
		return s.At, s.Lower, false
	case SiteBeforeMath, SiteAfterMath:
		if mode == WrapAuto {
			return s.At, s.Lower, false
		}
		return s.Position, s.TextLower, mode == WrapForce
	default:
		return s.Position, s.TextLower, mode != WrapNever
	}
}

// ClassifySite classifies the insertion site at pos in doc.
func ClassifySite(doc *position.Document, pos int) Site {
	pos = doc.Clamp(pos)
	tree := doc.Tree()
	lower := textLower(tree, pos)
	site := Site{
		Kind:      SiteText,
		Position:  pos,
		At:        pos,
		Lower:     lower,
		TextLower: lower,
		Math:      token.NoNode,
	}

	ctx := doc.Context(pos)
	switch ctx.Kind {
	case position.ContextArgument, position.ContextOptional:
		site.Kind = SiteArgument
		site.Math = ctx.Math
		site.Lower = tree.Node(ctx.Group).InnerStart

	case position.ContextCommandName:
		// Markup never splits a command name; it goes in front of it.
		site.Kind = SiteMath
		site.Math = ctx.Math
		site.At = tree.Node(ctx.Command).Start
		site.Lower = tree.Node(ctx.Math).InnerStart
		if ctx.Group != token.NoNode {
			site.Kind = SiteArgument
			site.Lower = tree.Node(ctx.Group).InnerStart
		}

	case position.ContextMath:
		site.Kind = SiteMath
		site.Math = ctx.Math
		site.Lower = tree.Node(ctx.Math).InnerStart

	case position.ContextDelimiter:
		m := tree.Node(ctx.Math)
		site.Math = ctx.Math
		site.Lower = m.InnerStart
		if pos < m.InnerStart {
			site.Kind = SiteBeforeMath
			site.At = m.InnerStart
		} else {
			site.Kind = SiteAfterMath
			site.At = m.InnerEnd
		}

	default:
		var before, after token.NodeID = token.NoNode, token.NoNode
		for _, id := range tree.MathRegions() {
			m := tree.Node(id)
			if m.Closed && m.End == pos {
				after = id
			}
			if m.Start == pos {
				before = id
			}
		}
		switch {
		case after != token.NoNode:
			m := tree.Node(after)
			site.Kind = SiteAfterMath
			site.Math = after
			site.At = m.InnerEnd
			site.Lower = m.InnerStart
		case before != token.NoNode:
			m := tree.Node(before)
			site.Kind = SiteBeforeMath
			site.Math = before
			site.At = m.InnerStart
			site.Lower = m.InnerStart
		}
	}
	return site
}

// textLower returns the end of the last math region ending at or before
// pos, or 0.
func textLower(tree *token.Tree, pos int) int {
	lower := 0
	for _, id := range tree.MathRegions() {
		if end := tree.Node(id).End; end <= pos && end > lower {
			lower = end
		}
	}
	return lower
}
