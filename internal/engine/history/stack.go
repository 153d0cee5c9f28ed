package history

import "errors"

// DefaultMaxEntries is the number of past snapshots kept when no limit is
// given.
const DefaultMaxEntries = 50

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History is a bounded undo/redo record of whole-content snapshots.
//
// History is a value type. Every operation returns a new History and never
// writes to a backing array another History may share, so old values stay
// valid after later transitions.
type History struct {
	past       []string
	future     []string
	maxEntries int
}

// NewHistory creates an empty history keeping at most maxEntries past
// snapshots. A non-positive limit selects DefaultMaxEntries.
func NewHistory(maxEntries int) History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return History{maxEntries: maxEntries}
}

// Push records previous as the newest past snapshot and clears the redo
// stack. The oldest snapshot is evicted when the limit is exceeded.
func (h History) Push(previous string) History {
	return History{
		past:       pushBounded(h.past, previous, h.MaxEntries()),
		maxEntries: h.maxEntries,
	}
}

// Undo pops the newest past snapshot and returns it. current is moved onto
// the redo stack. When there is nothing to undo, h is returned unchanged
// with ErrNothingToUndo.
func (h History) Undo(current string) (History, string, error) {
	if len(h.past) == 0 {
		return h, current, ErrNothingToUndo
	}
	last := len(h.past) - 1
	return History{
		past:       h.past[:last:last],
		future:     pushBounded(h.future, current, 0),
		maxEntries: h.maxEntries,
	}, h.past[last], nil
}

// Redo pops the newest redo snapshot and returns it. current is moved back
// onto the past stack, subject to the limit. When there is nothing to redo,
// h is returned unchanged with ErrNothingToRedo.
func (h History) Redo(current string) (History, string, error) {
	if len(h.future) == 0 {
		return h, current, ErrNothingToRedo
	}
	last := len(h.future) - 1
	return History{
		past:       pushBounded(h.past, current, h.MaxEntries()),
		future:     h.future[:last:last],
		maxEntries: h.maxEntries,
	}, h.future[last], nil
}

// CanUndo returns true if undo is available.
func (h History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo returns true if redo is available.
func (h History) CanRedo() bool {
	return len(h.future) > 0
}

// UndoCount returns the number of undo steps available.
func (h History) UndoCount() int {
	return len(h.past)
}

// RedoCount returns the number of redo steps available.
func (h History) RedoCount() int {
	return len(h.future)
}

// Past returns a copy of the past snapshots, oldest first.
func (h History) Past() []string {
	return append([]string(nil), h.past...)
}

// Future returns a copy of the redo snapshots, oldest first. The last
// element is the one Redo returns next.
func (h History) Future() []string {
	return append([]string(nil), h.future...)
}

// MaxEntries returns the maximum number of past snapshots.
func (h History) MaxEntries() int {
	if h.maxEntries <= 0 {
		return DefaultMaxEntries
	}
	return h.maxEntries
}

// DropFuture returns the history with an empty redo stack.
func (h History) DropFuture() History {
	return History{past: h.past, maxEntries: h.maxEntries}
}

// Clear returns an empty history with the same limit.
func (h History) Clear() History {
	return History{maxEntries: h.maxEntries}
}

// pushBounded returns a fresh slice holding stack plus v, keeping at most
// limit entries when limit is positive.
func pushBounded(stack []string, v string, limit int) []string {
	excess := 0
	if limit > 0 && len(stack)+1 > limit {
		excess = len(stack) + 1 - limit
	}
	out := make([]string, 0, len(stack)+1-excess)
	out = append(out, stack[excess:]...)
	return append(out, v)
}
