package command

import (
	"fmt"
	"sort"

	"github.com/dshills/mathmark/internal/engine/token"
)

// Registry maps command names and identifiers to commands. It is built once
// by NewRegistry and never changes afterwards, so it can be shared freely.
type Registry struct {
	commands  map[string]Command
	order     []string
	backslash map[string]token.Pattern
	character map[string]token.Pattern
	fallback  func(name string) Command
}

// NewRegistry builds a registry from cmds. Names and identifiers must be
// unique. Names not registered resolve to a Generic command.
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{
		commands:  make(map[string]Command, len(cmds)),
		backslash: make(map[string]token.Pattern),
		character: make(map[string]token.Pattern),
		fallback:  func(name string) Command { return NewGeneric(name) },
	}
	for _, cmd := range cmds {
		name := cmd.Name()
		if _, exists := r.commands[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
		}
		for _, p := range cmd.Patterns() {
			if p.Command == "" {
				p.Command = name
			}
			if err := r.addPattern(p); err != nil {
				return nil, err
			}
		}
		r.commands[name] = cmd
		r.order = append(r.order, name)
	}
	return r, nil
}

func (r *Registry) addPattern(p token.Pattern) error {
	var table map[string]token.Pattern
	switch p.Type {
	case token.PatternBackslash:
		if !isIdentifier(p.Identifier) {
			return fmt.Errorf("%w: backslash identifier %q", ErrInvalidPattern, p.Identifier)
		}
		table = r.backslash
	case token.PatternCharacter:
		if len(p.Identifier) != 1 || p.Identifier[0] >= 0x80 {
			return fmt.Errorf("%w: character identifier %q", ErrInvalidPattern, p.Identifier)
		}
		table = r.character
	default:
		return fmt.Errorf("%w: unknown type %v", ErrInvalidPattern, p.Type)
	}
	if prev, exists := table[p.Identifier]; exists && prev.Command != p.Command {
		return fmt.Errorf("%w: %q claimed by %q and %q", ErrDuplicatePattern, p.Identifier, prev.Command, p.Command)
	}
	table[p.Identifier] = p
	return nil
}

// Get returns the registered command with name.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Resolvable reports whether name is a registered command or can be
// inserted as a generic \name command.
func (r *Registry) Resolvable(name string) bool {
	_, ok := r.commands[name]
	return ok || isIdentifier(name)
}

// Resolve returns the command registered under name, or a Generic command
// for it. It never fails.
func (r *Registry) Resolve(name string) Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	return r.fallback(name)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.order))
	for i, name := range r.order {
		out[i] = r.commands[name]
	}
	return out
}

// LookupBackslash implements token.Patterns.
func (r *Registry) LookupBackslash(identifier string) (token.Pattern, bool) {
	p, ok := r.backslash[identifier]
	return p, ok
}

// LookupCharacter implements token.Patterns.
func (r *Registry) LookupCharacter(identifier string) (token.Pattern, bool) {
	p, ok := r.character[identifier]
	return p, ok
}

// Identifiers returns the sorted backslash identifiers.
func (r *Registry) Identifiers() []string {
	out := make([]string, 0, len(r.backslash))
	for id := range r.backslash {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Execute resolves name and runs it, tokenizing with the registry's
// patterns unless opts names others.
func (r *Registry) Execute(name, content string, pos int, args []string, opts Options) (string, int) {
	if opts.Patterns == nil {
		opts.Patterns = r
	}
	return r.Resolve(name).Execute(content, pos, args, opts)
}

// BoundShortcut is a shortcut together with the command it runs.
type BoundShortcut struct {
	Command string
	Shortcut
}

// Shortcuts returns every command shortcut in registration order.
func (r *Registry) Shortcuts() []BoundShortcut {
	var out []BoundShortcut
	for _, name := range r.order {
		for _, s := range r.commands[name].Shortcuts() {
			out = append(out, BoundShortcut{Command: name, Shortcut: s})
		}
	}
	return out
}

// Defaults configures the built-in commands.
type Defaults struct {
	MatrixRows        int
	MatrixCols        int
	MatrixEnvironment string
	Color             string
}

// Builtin returns the built-in command set.
func Builtin(d Defaults) ([]Command, error) {
	def, err := ParseColor(nonEmpty(d.Color, DefaultColor))
	if err != nil {
		return nil, err
	}

	cmds := []Command{
		NewFraction(),
		NewSqrt(),
		NewSuperscript(),
		NewSubscript(),
		NewMatrix(d.MatrixRows, d.MatrixCols, d.MatrixEnvironment),
		NewColor(def),
		NewMathToggle(),
	}
	for _, id := range []string{"text", "mathbf", "vec", "overline", "hat"} {
		cmds = append(cmds, NewUnary(id))
	}
	for _, id := range symbolNames {
		cmds = append(cmds, NewSymbol(id))
	}
	return cmds, nil
}

// NewDefaultRegistry builds a registry holding the built-in commands.
func NewDefaultRegistry(d Defaults) (*Registry, error) {
	cmds, err := Builtin(d)
	if err != nil {
		return nil, err
	}
	return NewRegistry(cmds...)
}

func backslash(identifier string, arity int, optional bool, command string) token.Pattern {
	return token.Pattern{
		Identifier: identifier,
		Type:       token.PatternBackslash,
		Class:      token.ClassFirst,
		Arity:      arity,
		Optional:   optional,
		Command:    command,
	}
}

// patternsOf returns the patterns a command tokenizes with when it runs
// outside a registry.
func patternsOf(cmd Command) token.Patterns {
	m := token.PatternMap{
		Backslash: make(map[string]token.Pattern),
		Character: make(map[string]token.Pattern),
	}
	for _, p := range cmd.Patterns() {
		switch p.Type {
		case token.PatternBackslash:
			m.Backslash[p.Identifier] = p
		case token.PatternCharacter:
			m.Character[p.Identifier] = p
		}
	}
	return m
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return false
		}
	}
	return true
}
