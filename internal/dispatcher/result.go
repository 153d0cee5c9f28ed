package dispatcher

// Source tells which layer handled a key.
type Source uint8

const (
	// SourceNone means the key was not handled.
	SourceNone Source = iota
	// SourceKeymap is a user or default keymap binding.
	SourceKeymap
	// SourceShortcut is a command's own shortcut.
	SourceShortcut
	// SourceBuiltin is navigation, history or editing.
	SourceBuiltin
	// SourceText is a typed character.
	SourceText
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceKeymap:
		return "keymap"
	case SourceShortcut:
		return "shortcut"
	case SourceBuiltin:
		return "builtin"
	case SourceText:
		return "text"
	default:
		return "unknown"
	}
}

// Result describes how a key event was handled.
type Result struct {
	Source Source

	// Action is the command name, or the builtin action such as "undo".
	Action string

	// Err is set when the action failed, e.g. undo with empty history or a
	// recovered panic. The key still counts as consumed.
	Err error
}

// Handled reports whether the key was consumed.
func (r Result) Handled() bool {
	return r.Source != SourceNone
}
