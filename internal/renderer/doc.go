// Package renderer draws an editing session onto a tcell screen.
//
// The text area shows the document with math regions, delimiters and
// command names highlighted from the token tree. The bottom row is a
// status line with the file, the cursor context and the cursor location.
package renderer
