// Package key provides key events and key specification parsing.
//
// An Event is a Key plus modifiers; character keys use KeyRune and carry
// the character. Shift is folded into character events, so "^" typed with
// Shift held equals the spec "^".
//
// Specifications accept several forms:
//
//   - single characters: "/", "^", "_"
//   - key names: "Tab", "Backspace", "Left"
//   - chords: "Ctrl+/", "Shift+Tab", "Alt+M"
//   - Vim notation: "<C-r>", "<S-Tab>", "<CR>"
//
// FromTcell converts terminal key events.
package key
