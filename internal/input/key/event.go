package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}.normalize()
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// normalize folds Shift into character events: the shifted character
// already tells "A" from "a". With Ctrl or Alt held, letters are
// lowercased so Ctrl+R and Ctrl+r are the same chord.
func (e Event) normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	e.Modifiers = e.Modifiers.Without(ModShift)
	if e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// IsRune reports whether e is a character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsText reports whether e types a printable character: a character key
// without Ctrl, Alt or Meta.
func (e Event) IsText() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && e.Modifiers.Without(ModShift) == ModNone
}

// Equals reports whether e and other are the same chord.
func (e Event) Equals(other Event) bool {
	a, b := e.normalize(), other.normalize()
	return a.Key == b.Key && a.Rune == b.Rune && a.Modifiers == b.Modifiers
}

// Matches reports whether e is the chord described by spec. Invalid specs
// match nothing.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// String returns the canonical specification of e, which Parse accepts:
// "a", "Ctrl+/", "Shift+Tab", "Alt+Space".
func (e Event) String() string {
	e = e.normalize()
	var name string
	switch {
	case e.Key != KeyRune:
		name = e.Key.String()
	case e.Rune == ' ':
		name = "Space"
	case e.Rune == '+':
		name = "Plus"
	default:
		name = string(e.Rune)
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// Vim returns e in Vim notation, e.g. "<C-/>" or "<S-Tab>". Plain
// characters are returned as is.
func (e Event) Vim() string {
	e = e.normalize()
	if e.IsText() && e.Rune != ' ' {
		return string(e.Rune)
	}
	var parts []string
	for _, mod := range []struct {
		bit  Modifier
		name string
	}{{ModCtrl, "C"}, {ModAlt, "A"}, {ModShift, "S"}, {ModMeta, "D"}} {
		if e.Modifiers.Has(mod.bit) {
			parts = append(parts, mod.name)
		}
	}
	switch {
	case e.Key == KeyEnter:
		parts = append(parts, "CR")
	case e.Key == KeyEscape:
		parts = append(parts, "Esc")
	case e.Key == KeyBackspace:
		parts = append(parts, "BS")
	case e.Key != KeyRune:
		parts = append(parts, e.Key.String())
	case e.Rune == ' ':
		parts = append(parts, "Space")
	default:
		parts = append(parts, string(e.Rune))
	}
	return "<" + strings.Join(parts, "-") + ">"
}
