package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification.
//
// Supported forms:
//   - a single character: "/", "^", "a"
//   - a key or character name: "Tab", "Backspace", "Space", "Plus"
//   - modifiers joined with '+': "Ctrl+/", "Shift+Tab", "Alt+M", "Ctrl++"
//   - Vim notation: "<C-r>", "<S-Tab>", "<CR>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVim(spec[1 : len(spec)-1])
	}

	if utf8.RuneCountInString(spec) > 1 && strings.Contains(spec, "+") {
		mods, name := spec, ""
		if strings.HasSuffix(spec, "++") {
			mods, name = spec[:len(spec)-2], "+"
		} else {
			i := strings.LastIndexByte(spec, '+')
			mods, name = spec[:i], spec[i+1:]
		}
		return parseChord(strings.Split(mods, "+"), name, spec)
	}

	return parseChord(nil, spec, spec)
}

// MustParse is like Parse but panics on error. Use for built-in specs.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}

func parseVim(inner string) (Event, error) {
	parts := strings.Split(inner, "-")
	name := parts[len(parts)-1]
	// "<C-->" names the minus key.
	if name == "" && len(parts) > 1 && strings.HasSuffix(inner, "--") {
		parts, name = parts[:len(parts)-2], "-"
	} else {
		parts = parts[:len(parts)-1]
	}
	return parseChord(parts, name, "<"+inner+">")
}

func parseChord(modNames []string, name, spec string) (Event, error) {
	var mods Modifier
	for _, m := range modNames {
		mod := ModifierFromName(m)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, m, spec)
		}
		mods = mods.With(mod)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	if k := FromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeAliases[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && r != utf8.RuneError {
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, name, spec)
}
