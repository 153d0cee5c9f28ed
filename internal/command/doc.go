// Package command implements the structured insertions of the editor.
//
// A Command synthesizes a piece of markup (a fraction, a root, a script, a
// matrix, a colored span) and splices it into content at a cursor. Commands
// are stateless values owned by a Registry, which is built once and then
// only read. The Registry also implements token.Patterns so the tokenizer
// recognizes exactly the identifiers its commands declare.
//
// # Insertion
//
// Every built-in command inserts through the same steps:
//
//  1. Classify the site at the cursor: inside math content, inside an
//     argument group, just before or just after a math region, or plain
//     text.
//  2. On a shortcut invocation without explicit arguments, absorb the
//     expression to the left of the cursor (a balanced (...) group or a
//     run of non-space characters) as the first argument.
//  3. Synthesize the literal form and wrap it in $...$ when the site is
//     plain text.
//  4. Place the cursor in an argument slot: the second slot when something
//     was absorbed, the first otherwise. Options.CursorArgumentIndex
//     overrides the choice; an index that does not exist puts the cursor
//     at the end of the inserted markup.
//
// # Shortcuts
//
// Commands advertise Shortcuts: a key specification, a guard over the
// cursor Context and a builder for the arguments and Options. The
// dispatcher evaluates them against the live cursor.
package command
