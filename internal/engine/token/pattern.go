package token

// PatternType specifies how a command is introduced in the markup.
type PatternType uint8

const (
	// PatternBackslash is a backslash followed by a run of letters (\frac).
	PatternBackslash PatternType = iota
	// PatternCharacter is a single standalone character (^, _).
	PatternCharacter
)

// String returns the pattern type name.
func (t PatternType) String() string {
	switch t {
	case PatternBackslash:
		return "backslash"
	case PatternCharacter:
		return "character"
	default:
		return "unknown"
	}
}

// CommandClass controls argument requirements and cursor placement rules.
type CommandClass uint8

const (
	// ClassFirst commands require explicit brace-delimited arguments. The
	// cursor may not rest inside their name or before their first group.
	ClassFirst CommandClass = iota
	// ClassSecond commands (sub/superscript) may take a single bare
	// character as an implicit argument and are built up incrementally.
	ClassSecond
)

// String returns the class name.
func (c CommandClass) String() string {
	switch c {
	case ClassFirst:
		return "first"
	case ClassSecond:
		return "second"
	default:
		return "unknown"
	}
}

// Unbounded is the Arity of a pattern that consumes every following group.
const Unbounded = -1

// Pattern describes how the tokenizer recognizes one command identifier.
type Pattern struct {
	// Identifier is the bare name after the backslash ("frac") or the
	// standalone character ("^").
	Identifier string

	// Type is how the identifier is introduced.
	Type PatternType

	// Class is the command class.
	Class CommandClass

	// Arity is the maximum number of {...} groups consumed.
	// Unbounded consumes all consecutive groups.
	Arity int

	// Optional reports whether one leading [...] group is accepted.
	Optional bool

	// Command is the name of the command owning this pattern.
	Command string
}

// Patterns resolves identifiers to command patterns.
type Patterns interface {
	// LookupBackslash resolves the letters following a backslash.
	LookupBackslash(identifier string) (Pattern, bool)

	// LookupCharacter resolves a standalone command character.
	LookupCharacter(identifier string) (Pattern, bool)
}

// PatternMap is a simple map-backed Patterns implementation.
type PatternMap struct {
	Backslash map[string]Pattern
	Character map[string]Pattern
}

// LookupBackslash implements Patterns.
func (m PatternMap) LookupBackslash(identifier string) (Pattern, bool) {
	p, ok := m.Backslash[identifier]
	return p, ok
}

// LookupCharacter implements Patterns.
func (m PatternMap) LookupCharacter(identifier string) (Pattern, bool) {
	p, ok := m.Character[identifier]
	return p, ok
}
