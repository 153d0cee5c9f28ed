// Package engine holds the editor state machine for math markup sessions.
//
// A Machine implements the four transitions as pure functions over State:
//
//	m := engine.NewMachine(registry)
//	s := m.Initial("")
//	s = m.SetContent(s, "$a$$b$", 3, 3) // "$a$ $b$", cursor 4
//	s, err := m.Undo(s)                 // "", cursor 0
//
// SetContent separates touching math regions with a single space and shifts
// the selection past every space inserted at or before it. The previous
// content is recorded for undo only when the content actually changes; the
// redo stack is cleared on every SetContent. At most DefaultHistoryLimit
// undo steps are kept, the oldest evicted first.
//
// An Editor wraps a Machine with the current state, a command registry,
// a logger carrying the session ID, and host listeners. Commands run
// through Editor.Execute never touch the state directly: they return new
// content and a cursor which the editor commits through SetContent.
//
// Neither type locks. Hosts must serialize calls into an Editor.
package engine
