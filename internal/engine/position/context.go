package position

import (
	"fmt"

	"github.com/dshills/mathmark/internal/engine/token"
)

// ContextKind classifies what surrounds a cursor.
type ContextKind uint8

const (
	// ContextText is prose outside any math region.
	ContextText ContextKind = iota
	// ContextMath is math content outside any argument group.
	ContextMath
	// ContextArgument is inside a required {...} argument.
	ContextArgument
	// ContextOptional is inside an optional [...] argument.
	ContextOptional
	// ContextCommandName is inside a command name or before its first group.
	ContextCommandName
	// ContextDelimiter is between the two characters of a $$ delimiter.
	ContextDelimiter
)

// String returns the context kind name.
func (k ContextKind) String() string {
	switch k {
	case ContextText:
		return "text"
	case ContextMath:
		return "math"
	case ContextArgument:
		return "argument"
	case ContextOptional:
		return "optional"
	case ContextCommandName:
		return "command-name"
	case ContextDelimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// Context describes the structure around a cursor index.
type Context struct {
	Kind ContextKind

	// InMath is true inside the content of a math region.
	InMath bool

	// Math is the enclosing math region, or token.NoNode.
	Math token.NodeID

	// Command is the node of the innermost command whose name or group
	// holds the cursor, or token.NoNode.
	Command token.NodeID

	// CommandName is the owning command name of Command ("fraction").
	CommandName string

	// Identifier is the identifier of Command ("frac").
	Identifier string

	// Group is the innermost argument group holding the cursor, or
	// token.NoNode.
	Group token.NodeID

	// ArgIndex is the index of Group among the required arguments, or -1.
	ArgIndex int

	// Depth is the number of nested argument groups around the cursor.
	Depth int
}

// Label returns a compact description such as "math" or "argument:frac#1".
func (c Context) Label() string {
	switch c.Kind {
	case ContextArgument:
		return fmt.Sprintf("argument:%s#%d", c.Identifier, c.ArgIndex)
	case ContextOptional:
		return fmt.Sprintf("optional:%s", c.Identifier)
	case ContextCommandName:
		return fmt.Sprintf("command-name:%s", c.Identifier)
	default:
		return c.Kind.String()
	}
}

// InArgument reports whether the cursor is inside any argument group.
func (c Context) InArgument() bool {
	return c.Kind == ContextArgument || c.Kind == ContextOptional
}

// Context returns the cursor context at index. Out-of-range indices are
// clamped.
func (d *Document) Context(index int) Context {
	index = d.Clamp(index)
	tree := d.tree
	ctx := Context{
		Kind:     ContextText,
		Math:     token.NoNode,
		Command:  token.NoNode,
		Group:    token.NoNode,
		ArgIndex: -1,
	}

	content := token.NoNode
	for _, id := range tree.MathRegions() {
		m := tree.Node(id)
		if index < m.Start || index > m.End {
			continue
		}
		if m.InnerStart <= index && index <= m.InnerEnd {
			ctx.Math = id
			content = mathContent(tree, id)
			break
		}
		if (m.Start < index && index < m.InnerStart) || (m.InnerEnd < index && index < m.End) {
			ctx.Kind = ContextDelimiter
			ctx.Math = id
			return ctx
		}
	}
	if content == token.NoNode {
		return ctx
	}

	ctx.Kind = ContextMath
	ctx.InMath = true
	children := tree.Node(content).Children
	for {
		next, done := d.descend(&ctx, children, index)
		if done {
			return ctx
		}
		children = next
	}
}

// descend looks for a command among children whose name or groups hold
// index. It returns the children of the matching group, or done when the
// cursor does not go any deeper.
func (d *Document) descend(ctx *Context, children []token.NodeID, index int) ([]token.NodeID, bool) {
	tree := d.tree
	for _, c := range children {
		n := tree.Node(c)
		if n.Kind != token.KindCommand || index <= n.Start || index > n.End {
			continue
		}
		identifier, command := "", ""
		if n.Pattern != nil {
			identifier, command = n.Pattern.Identifier, n.Pattern.Command
		}
		name := tree.Node(tree.CommandName(c))
		groups := tree.Groups(c)
		firstClass := n.Pattern != nil && n.Pattern.Class == token.ClassFirst

		inName := name.Start < index && index < name.End
		inGap := firstClass && len(groups) > 0 && name.End <= index && index <= tree.Node(groups[0]).Start
		if inName || inGap {
			ctx.Kind = ContextCommandName
			ctx.Command = c
			ctx.CommandName = command
			ctx.Identifier = identifier
			return nil, true
		}

		argIndex := 0
		for _, g := range groups {
			gn := tree.Node(g)
			inside := gn.InnerStart <= index && index <= gn.InnerEnd
			if gn.Implicit {
				inside = gn.InnerStart < index && index < gn.InnerEnd
			}
			if inside {
				ctx.Command = c
				ctx.CommandName = command
				ctx.Identifier = identifier
				ctx.Group = g
				ctx.Depth++
				if gn.Kind == token.KindCommandOptional {
					ctx.Kind = ContextOptional
					ctx.ArgIndex = -1
				} else {
					ctx.Kind = ContextArgument
					ctx.ArgIndex = argIndex
				}
				return gn.Children, false
			}
			if gn.Kind == token.KindCommandArgs {
				argIndex++
			}
		}
	}
	return nil, true
}

func mathContent(tree *token.Tree, math token.NodeID) token.NodeID {
	for _, c := range tree.Node(math).Children {
		if tree.Node(c).Kind == token.KindMathContent {
			return c
		}
	}
	return token.NoNode
}
