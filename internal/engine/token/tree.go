package token

import (
	"fmt"
	"strings"
)

// Kind identifies the role of a node in the tree.
type Kind uint8

const (
	// KindText is a literal run of characters.
	KindText Kind = iota
	// KindMath is a whole math region including its delimiters.
	KindMath
	// KindMathContent is the interior of a math region.
	KindMathContent
	// KindCommand is a recognized command with its name and groups.
	KindCommand
	// KindCommandName is the backslash-name or command character.
	KindCommandName
	// KindCommandArgs is one required argument group.
	KindCommandArgs
	// KindCommandOptional is the [...] optional argument group.
	KindCommandOptional
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMath:
		return "math"
	case KindMathContent:
		return "math-content"
	case KindCommand:
		return "command"
	case KindCommandName:
		return "command-name"
	case KindCommandArgs:
		return "command-args"
	case KindCommandOptional:
		return "command-optional"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// NodeID addresses a node inside its Tree.
type NodeID int32

// NoNode is returned by lookups that find nothing.
const NoNode NodeID = -1

// Node is one token. Offsets are half-open byte offsets into the source.
type Node struct {
	Kind  Kind
	Start int
	End   int

	// InnerStart and InnerEnd delimit the interior of math regions,
	// math content and argument groups. For other kinds they equal
	// Start and End.
	InnerStart int
	InnerEnd   int

	// InMath is set for every node inside a math region.
	InMath bool

	// Display marks a math region opened with $$.
	Display bool

	// Delimiter marks a text leaf that is a $, $$, {, }, [ or ].
	Delimiter bool

	// Closed reports whether a math region or group has its closing
	// delimiter. Unterminated ones extend to the end of their range.
	Closed bool

	// Implicit marks a second-class argument given as a bare character.
	Implicit bool

	// Pattern is set on command nodes.
	Pattern *Pattern

	Children []NodeID
}

// Len returns the number of bytes covered by the node.
func (n Node) Len() int {
	return n.End - n.Start
}

// IsLeaf returns true if the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is an arena of nodes produced by Parse.
type Tree struct {
	src   string
	nodes []Node
	roots []NodeID
}

// Source returns the parsed text.
func (t *Tree) Source() string {
	return t.src
}

// Size returns the number of nodes in the arena.
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Roots returns the top-level nodes in source order.
func (t *Tree) Roots() []NodeID {
	return t.roots
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Content returns the literal source text covered by a node.
func (t *Tree) Content(id NodeID) string {
	n := t.nodes[id]
	return t.src[n.Start:n.End]
}

// Inner returns the literal source text of a node's interior.
func (t *Tree) Inner(id NodeID) string {
	n := t.nodes[id]
	return t.src[n.InnerStart:n.InnerEnd]
}

// Walk visits every node depth first in source order.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	for _, id := range t.roots {
		t.walk(id, 0, fn)
	}
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, child := range t.nodes[id].Children {
		t.walk(child, depth+1, fn)
	}
}

// Leaves returns the leaf nodes in depth-first order.
func (t *Tree) Leaves() []NodeID {
	var leaves []NodeID
	t.Walk(func(id NodeID, _ int) bool {
		if t.nodes[id].IsLeaf() {
			leaves = append(leaves, id)
		}
		return true
	})
	return leaves
}

// Text concatenates the content of all leaves. It always equals Source.
func (t *Tree) Text() string {
	var sb strings.Builder
	sb.Grow(len(t.src))
	for _, id := range t.Leaves() {
		sb.WriteString(t.Content(id))
	}
	return sb.String()
}

// Parent returns the parent of a node. Parents are not stored; the tree is
// searched from the roots.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	parent := t.findParent(NoNode, t.roots, id)
	return parent, parent != NoNode
}

func (t *Tree) findParent(parent NodeID, children []NodeID, id NodeID) NodeID {
	target := t.nodes[id]
	for _, c := range children {
		if c == id {
			return parent
		}
		n := t.nodes[c]
		if n.Start > target.Start || target.End > n.End {
			continue
		}
		if p := t.findParent(c, n.Children, id); p != NoNode {
			return p
		}
	}
	return NoNode
}

// OfKind returns every node of the given kind in depth-first order.
func (t *Tree) OfKind(kind Kind) []NodeID {
	var out []NodeID
	t.Walk(func(id NodeID, _ int) bool {
		if t.nodes[id].Kind == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}

// MathRegions returns the top-level math nodes in source order.
func (t *Tree) MathRegions() []NodeID {
	var out []NodeID
	for _, id := range t.roots {
		if t.nodes[id].Kind == KindMath {
			out = append(out, id)
		}
	}
	return out
}

// CommandName returns the name node of a command.
func (t *Tree) CommandName(cmd NodeID) NodeID {
	for _, c := range t.nodes[cmd].Children {
		if t.nodes[c].Kind == KindCommandName {
			return c
		}
	}
	return NoNode
}

// Groups returns the optional and required argument groups of a command in
// source order.
func (t *Tree) Groups(cmd NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.nodes[cmd].Children {
		switch t.nodes[c].Kind {
		case KindCommandArgs, KindCommandOptional:
			out = append(out, c)
		}
	}
	return out
}

// Arguments returns only the required argument groups of a command.
func (t *Tree) Arguments(cmd NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.nodes[cmd].Children {
		if t.nodes[c].Kind == KindCommandArgs {
			out = append(out, c)
		}
	}
	return out
}

// String returns an indented dump of the tree for debugging.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Walk(func(id NodeID, depth int) bool {
		n := t.nodes[id]
		fmt.Fprintf(&sb, "%s%s [%d,%d) %q\n", strings.Repeat("  ", depth), n.Kind, n.Start, n.End, t.Content(id))
		return true
	})
	return sb.String()
}
