package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/mathmark/internal/input/key"
)

// Keymap is a named set of bindings.
type Keymap struct {
	Name string `yaml:"name" json:"name"`

	// Priority is added, times 100, to the priority of every binding.
	Priority int `yaml:"priority,omitempty" json:"priority,omitempty"`

	// Source records where the keymap came from: "default", "user" or a
	// file path.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	Bindings []Binding `yaml:"bindings" json:"bindings"`
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// WithPriority sets the keymap priority.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add binds keys to cmd.
func (k *Keymap) Add(keys, cmd string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, cmd))
	return k
}

// AddBinding appends b.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Validate checks every binding's chord and command. All problems are
// reported.
func (k *Keymap) Validate() error {
	var errs []error
	for i, b := range k.Bindings {
		if b.Command == "" {
			errs = append(errs, fmt.Errorf("binding %d (%s): %w", i, b.Keys, ErrEmptyCommand))
		}
		if _, err := key.Parse(b.Keys); err != nil {
			errs = append(errs, fmt.Errorf("binding %d: %w", i, err))
		}
		switch b.Wrap {
		case "", "auto", "force", "never":
		default:
			errs = append(errs, fmt.Errorf("binding %d (%s): %w: %q", i, b.Keys, ErrInvalidWrap, b.Wrap))
		}
	}
	return errors.Join(errs...)
}

// ParsedKeymap is a keymap with parsed chords.
type ParsedKeymap struct {
	*Keymap
	Parsed []ParsedBinding
}

// Parse validates the keymap and parses its chords.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	if err := k.Validate(); err != nil {
		return nil, fmt.Errorf("keymap %q: %w", k.Name, err)
	}
	parsed := &ParsedKeymap{Keymap: k, Parsed: make([]ParsedBinding, 0, len(k.Bindings))}
	for _, b := range k.Bindings {
		parsed.Parsed = append(parsed.Parsed, ParsedBinding{Binding: b, Event: key.MustParse(b.Keys)})
	}
	return parsed, nil
}

// Clone returns a deep copy.
func (k *Keymap) Clone() *Keymap {
	clone := *k
	clone.Bindings = make([]Binding, len(k.Bindings))
	for i, b := range k.Bindings {
		b.Args = append([]string(nil), b.Args...)
		if b.Cursor != nil {
			c := *b.Cursor
			b.Cursor = &c
		}
		clone.Bindings[i] = b
	}
	return &clone
}
