// Package dispatcher maps key events to editor operations.
//
// HandleKey offers each event to four layers in turn and stops at the
// first that claims it:
//
//  1. Keymap bindings whose `when` condition holds, best first. A name
//     the registry does not know inserts a generic \name command when it
//     is a valid identifier; other names are logged and skipped.
//  2. Command shortcuts whose guard holds, in registry order: "/" in math
//     runs fraction, Ctrl+R runs sqrt, and so on.
//  3. Built-in keys: Tab and Shift+Tab move between tab stops, Left and
//     Right step over valid positions, Ctrl+Z and Ctrl+Y undo and redo,
//     Backspace deletes.
//  4. Printable characters are inserted as text.
//
// The dispatcher adds no state of its own; every change goes through the
// engine.Editor it drives.
package dispatcher
