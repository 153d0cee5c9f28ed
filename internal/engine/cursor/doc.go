// Package cursor provides the selection value used by the editor.
//
// Selections use an anchor/head model where:
//   - Anchor: the offset where the selection started
//   - Head: the offset where typing would occur
//
// When Anchor == Head the selection is a plain cursor. Offsets are byte
// offsets into the document.
//
// When the editor rewrites content by inserting bytes (for example a space
// between two touching math regions), selections are carried over with
// TransformSelection:
//
//	sel := cursor.NewSelection(3, 6)
//	sel = cursor.TransformSelection(sel, []cursor.Insertion{{At: 3, Len: 1}})
//	// sel is now 4→7
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
