// Package token tokenizes prose with embedded math markup.
//
// The tokenizer produces a Tree: an arena of Nodes addressed by NodeID.
// Top-level nodes are plain text runs and math regions. A math region
// ($...$ inline, $$...$$ display) holds its delimiters and a math-content
// node, whose children are text runs and commands. Commands hold a name
// node, an optional [...] group and their {...} argument groups, each of
// which is tokenized recursively.
//
// Parsing never fails. Unterminated math regions and argument groups extend
// to the end of their enclosing range, and backslash sequences that do not
// name a registered command stay literal text. For every input the leaves
// of a depth-first traversal concatenate back to the original text:
//
//	tree := token.Parse(`area $\frac{a}{b}$`, registry)
//	tree.Text() == `area $\frac{a}{b}$` // always true
//
// Command recognition is delegated to a Patterns implementation, normally
// the command registry, so the tokenizer itself carries no vocabulary.
//
// Offsets are byte offsets into the source string.
package token
