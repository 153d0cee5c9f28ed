package command

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/engine/token"
)

// literal is the synthesized markup of one execution.
type literal struct {
	text string

	// slot is the argument slot that receives the cursor by default.
	slot int

	// offset, when non-negative, is the exact cursor offset in text. It is
	// ignored when the caller overrides the slot.
	offset int

	// separate asks for a space when an ASCII letter follows the
	// insertion, so \alpha does not run into the next word.
	separate bool
}

// builder synthesizes markup from the arguments. absorbed reports whether
// args[0] was taken from the content left of the cursor.
type builder func(args []string, absorbed bool) literal

// analyze tokenizes content with the patterns from opts, or fallback.
func analyze(content string, opts Options, fallback token.Patterns) *position.Document {
	patterns := opts.Patterns
	if patterns == nil {
		patterns = fallback
	}
	return position.NewAnalyzer(patterns).Analyze(content)
}

// insert runs the shared insertion algorithm.
func insert(content string, pos int, args []string, opts Options, self token.Patterns, absorbs bool, build builder) (string, int) {
	site := ClassifySite(analyze(content, opts, self), pos)
	at, lower, wrap := site.Target(opts.WrapWithMath)

	start := at
	absorbed := false
	if absorbs && opts.IsShortcutInvocation && len(args) == 0 {
		start = AbsorbStart(content, lower, at)
		if start < at {
			args = []string{content[start:at]}
			absorbed = true
		}
	}
	return splice(content, start, at, build(args, absorbed), wrap, opts.CursorArgumentIndex)
}

// splice replaces content[start:end] with the literal, optionally wrapped
// in $...$, and returns the new content and cursor.
func splice(content string, start, end int, lit literal, wrap bool, override *int) (string, int) {
	offset := lit.offset
	if override != nil || offset < 0 {
		slot := lit.slot
		if override != nil {
			slot = *override
		}
		offset = SlotOffset(lit.text, slot)
	}

	text := lit.text
	if lit.separate && !wrap && end < len(content) && isASCIILetter(content[end]) {
		text += " "
	}
	delim := ""
	if wrap {
		delim = "$"
	}

	var b strings.Builder
	b.Grow(len(content) + len(text) + 2*len(delim))
	b.WriteString(content[:start])
	b.WriteString(delim)
	b.WriteString(text)
	b.WriteString(delim)
	b.WriteString(content[end:])
	return b.String(), start + len(delim) + offset
}

// AbsorbStart returns the start of the expression that ends at at and
// would be absorbed by a shortcut invocation, never going below lower.
// It returns at when there is nothing to absorb.
//
// A balanced (...) group ending at at is absorbed alone. Otherwise the
// longest run of non-space characters is taken. Balanced {...} and (...)
// groups are single units, unmatched parentheses are plain characters and
// an unmatched brace ends the run.
func AbsorbStart(content string, lower, at int) int {
	if lower < 0 {
		lower = 0
	}
	if at > len(content) {
		at = len(content)
	}
	if at <= lower {
		return at
	}
	r, _ := utf8.DecodeLastRuneInString(content[lower:at])
	if unicode.IsSpace(r) {
		return at
	}
	if r == ')' {
		if open, ok := matchOpen(content, lower, at-1); ok {
			return open
		}
	}

	i := at
	for i > lower {
		r, size := utf8.DecodeLastRuneInString(content[lower:i])
		if unicode.IsSpace(r) {
			break
		}
		if r == '{' && !escaped(content, lower, i-1) {
			break
		}
		if (r == '}' || r == ')') && !escaped(content, lower, i-1) {
			if open, ok := matchOpen(content, lower, i-1); ok {
				i = open
				continue
			}
			if r == '}' {
				break
			}
		}
		i -= size
	}
	return i
}

// matchOpen finds the opener matching the closer at index close, scanning
// back to lower. Escaped delimiters are ignored.
func matchOpen(content string, lower, close int) (int, bool) {
	closer := content[close]
	opener := byte('(')
	if closer == '}' {
		opener = '{'
	}
	depth := 0
	for i := close; i >= lower; i-- {
		c := content[i]
		if (c != opener && c != closer) || escaped(content, lower, i) {
			continue
		}
		if c == closer {
			depth++
			continue
		}
		depth--
		if depth == 0 {
			return i, true
		}
	}
	return 0, false
}

// escaped reports whether the byte at i is preceded by an odd number of
// backslashes at or after lower.
func escaped(content string, lower, i int) bool {
	n := 0
	for j := i - 1; j >= lower && content[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// Slots returns the interiors of the top-level {...} groups of markup as
// [start, end) pairs. Escaped braces and unterminated groups are skipped.
func Slots(markup string) [][2]int {
	var out [][2]int
	depth, start := 0, 0
	for i := 0; i < len(markup); i++ {
		switch markup[i] {
		case '\\':
			i++
		case '{':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, [2]int{start, i})
			}
		}
	}
	return out
}

// SlotOffset returns the offset of the start of slot in markup. Negative
// slots count from the last slot. A slot that does not exist resolves to
// the end of markup.
func SlotOffset(markup string, slot int) int {
	slots := Slots(markup)
	if slot < 0 {
		slot += len(slots)
	}
	if slot < 0 || slot >= len(slots) {
		return len(markup)
	}
	return slots[slot][0]
}

// defaultSlot is the cursor slot when the command does not pick one.
func defaultSlot(absorbed bool) int {
	if absorbed {
		return 1
	}
	return 0
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
