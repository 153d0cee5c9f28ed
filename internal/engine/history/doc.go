// Package history provides bounded undo/redo for the editor.
//
// The editor records whole-content snapshots rather than edit operations:
// every committed content change pushes the previous content onto the past
// stack and clears the redo stack.
//
//	h := history.NewHistory(50)
//	h = h.Push("old content")
//
//	h, restored, err := h.Undo("new content")
//	// restored == "old content"
//
//	h, again, err := h.Redo(restored)
//	// again == "new content"
//
// Only the past stack is bounded; once it holds MaxEntries snapshots the
// oldest is evicted on the next push. History values are immutable, which
// lets editor states that hold them be kept and compared freely.
package history
