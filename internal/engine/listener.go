package engine

// Listener receives editor notifications. Methods are called synchronously
// after the state has been committed.
type Listener interface {
	// ContentChanged is called after every committed content change,
	// including undo and redo.
	ContentChanged(content string, selStart, selEnd int)

	// CursorChanged is called after every cursor move and every content
	// change.
	CursorChanged(selStart, selEnd int)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are
// skipped.
type ListenerFuncs struct {
	OnContent func(content string, selStart, selEnd int)
	OnCursor  func(selStart, selEnd int)
}

// ContentChanged implements Listener.
func (f ListenerFuncs) ContentChanged(content string, selStart, selEnd int) {
	if f.OnContent != nil {
		f.OnContent(content, selStart, selEnd)
	}
}

// CursorChanged implements Listener.
func (f ListenerFuncs) CursorChanged(selStart, selEnd int) {
	if f.OnCursor != nil {
		f.OnCursor(selStart, selEnd)
	}
}
