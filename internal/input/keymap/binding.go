package keymap

import (
	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/input/key"
)

// Binding maps a key chord to a command execution.
type Binding struct {
	// Keys is the chord, e.g. "Ctrl+B" or "<A-v>".
	Keys string `yaml:"keys" json:"keys"`

	// Command is the registry name of the command to run.
	Command string `yaml:"command" json:"command"`

	// Args are fixed arguments. Without args the command runs as a
	// shortcut invocation and may absorb the expression left of the cursor.
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`

	// When is a condition that must hold for the binding to apply, e.g.
	// "inMath && !hasSelection".
	When string `yaml:"when,omitempty" json:"when,omitempty"`

	// Wrap is "auto", "force" or "never". Empty means auto.
	Wrap string `yaml:"wrap,omitempty" json:"wrap,omitempty"`

	// Cursor selects the argument slot for the cursor; negative values
	// count from the last slot.
	Cursor *int `yaml:"cursor,omitempty" json:"cursor,omitempty"`

	// Priority orders bindings for the same chord. Higher wins.
	Priority int `yaml:"priority,omitempty" json:"priority,omitempty"`

	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// NewBinding creates a binding of keys to command.
func NewBinding(keys, cmd string) Binding {
	return Binding{Keys: keys, Command: cmd}
}

// WithArgs sets fixed arguments.
func (b Binding) WithArgs(args ...string) Binding {
	b.Args = args
	return b
}

// WithWhen sets the condition.
func (b Binding) WithWhen(when string) Binding {
	b.When = when
	return b
}

// WithPriority sets the priority.
func (b Binding) WithPriority(priority int) Binding {
	b.Priority = priority
	return b
}

// WithDescription sets the description.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Options returns the command options for running the binding.
func (b Binding) Options() command.Options {
	opts := command.Options{
		WrapWithMath:         parseWrap(b.Wrap),
		IsShortcutInvocation: len(b.Args) == 0,
	}
	if b.Cursor != nil {
		opts.CursorArgumentIndex = command.ArgumentIndex(*b.Cursor)
	}
	return opts
}

func parseWrap(s string) command.WrapMode {
	switch s {
	case "force":
		return command.WrapForce
	case "never":
		return command.WrapNever
	default:
		return command.WrapAuto
	}
}

// ParsedBinding is a binding with its chord parsed.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// Match is a binding that applies to a key event, with the keymap it came
// from.
type Match struct {
	*ParsedBinding
	Keymap *Keymap
	Score  int

	// keymap and index are the registration position, for tie-breaking.
	keymap int
	index  int
}

func (m *Match) calculateScore() {
	m.Score = m.Keymap.Priority*100 + m.Priority
}

// less orders higher scores first, then later registrations first.
func (m Match) less(other Match) bool {
	if m.Score != other.Score {
		return m.Score > other.Score
	}
	if m.keymap != other.keymap {
		return m.keymap > other.keymap
	}
	return m.index > other.index
}
