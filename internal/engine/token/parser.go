package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// noPatterns recognizes no commands.
type noPatterns struct{}

func (noPatterns) LookupBackslash(string) (Pattern, bool) { return Pattern{}, false }
func (noPatterns) LookupCharacter(string) (Pattern, bool) { return Pattern{}, false }

// parser is a single-use recursive-descent scanner over src.
type parser struct {
	src      string
	patterns Patterns
	tree     *Tree
}

// Parse tokenizes text. A nil patterns recognizes no commands, so every
// math region holds only text.
func Parse(text string, patterns Patterns) *Tree {
	if patterns == nil {
		patterns = noPatterns{}
	}
	p := &parser{
		src:      text,
		patterns: patterns,
		tree:     &Tree{src: text},
	}
	p.tree.roots = p.parseTop()
	return p.tree
}

func (p *parser) add(n Node) NodeID {
	p.tree.nodes = append(p.tree.nodes, n)
	return NodeID(len(p.tree.nodes) - 1)
}

func (p *parser) setChildren(id NodeID, children []NodeID) {
	p.tree.nodes[id].Children = children
}

func (p *parser) text(start, end int, inMath bool) NodeID {
	return p.add(Node{
		Kind:       KindText,
		Start:      start,
		End:        end,
		InnerStart: start,
		InnerEnd:   end,
		InMath:     inMath,
	})
}

func (p *parser) delimiter(start, end int, inMath bool) NodeID {
	return p.add(Node{
		Kind:       KindText,
		Start:      start,
		End:        end,
		InnerStart: start,
		InnerEnd:   end,
		InMath:     inMath,
		Delimiter:  true,
	})
}

// parseTop splits the source into text runs and math regions.
func (p *parser) parseTop() []NodeID {
	var roots []NodeID
	pos, n := 0, len(p.src)
	for pos < n {
		idx := strings.IndexByte(p.src[pos:], '$')
		if idx < 0 {
			roots = append(roots, p.text(pos, n, false))
			break
		}
		idx += pos
		if idx > pos {
			roots = append(roots, p.text(pos, idx, false))
		}
		id, end := p.parseMath(idx)
		roots = append(roots, id)
		pos = end
	}
	return roots
}

// parseMath parses the math region whose opening delimiter is at start.
func (p *parser) parseMath(start int) (NodeID, int) {
	delim := "$"
	if strings.HasPrefix(p.src[start:], "$$") {
		delim = "$$"
	}
	contentStart := start + len(delim)
	contentEnd, end := len(p.src), len(p.src)
	closed := false
	if i := strings.Index(p.src[contentStart:], delim); i >= 0 {
		contentEnd = contentStart + i
		end = contentEnd + len(delim)
		closed = true
	}

	id := p.add(Node{
		Kind:       KindMath,
		Start:      start,
		End:        end,
		InnerStart: contentStart,
		InnerEnd:   contentEnd,
		InMath:     true,
		Display:    len(delim) == 2,
		Closed:     closed,
	})
	children := []NodeID{p.delimiter(start, contentStart, true)}

	content := p.add(Node{
		Kind:       KindMathContent,
		Start:      contentStart,
		End:        contentEnd,
		InnerStart: contentStart,
		InnerEnd:   contentEnd,
		InMath:     true,
		Closed:     closed,
	})
	p.setChildren(content, p.parseContent(contentStart, contentEnd))
	children = append(children, content)

	if closed {
		children = append(children, p.delimiter(contentEnd, end, true))
	}
	p.setChildren(id, children)
	return id, end
}

// parseContent tokenizes math content in [start, end).
func (p *parser) parseContent(start, end int) []NodeID {
	var out []NodeID
	textStart := start
	flush := func(to int) {
		if to > textStart {
			out = append(out, p.text(textStart, to, true))
		}
	}

	i := start
	for i < end {
		c := p.src[i]
		if c == '\\' {
			j := i + 1
			for j < end && isLetter(p.src[j]) {
				j++
			}
			if j == i+1 {
				// Escaped character such as \\ or \{ stays literal.
				i = skipEscape(p.src, i, end)
				continue
			}
			pat, ok := p.patterns.LookupBackslash(p.src[i+1 : j])
			if !ok || pat.Type != PatternBackslash {
				i = j
				continue
			}
			flush(i)
			id, next := p.parseCommand(i, j, end, pat)
			out = append(out, id)
			i, textStart = next, next
			continue
		}

		if c < utf8.RuneSelf {
			if pat, ok := p.patterns.LookupCharacter(p.src[i : i+1]); ok && pat.Type == PatternCharacter {
				flush(i)
				id, next := p.parseCommand(i, i+1, end, pat)
				out = append(out, id)
				i, textStart = next, next
				continue
			}
		}
		i++
	}
	flush(end)
	return out
}

// parseCommand parses a resolved command whose name spans [start, nameEnd).
// The command may not extend beyond limit.
func (p *parser) parseCommand(start, nameEnd, limit int, pat Pattern) (NodeID, int) {
	pattern := pat
	id := p.add(Node{
		Kind:    KindCommand,
		Start:   start,
		InMath:  true,
		Pattern: &pattern,
	})
	children := []NodeID{p.add(Node{
		Kind:       KindCommandName,
		Start:      start,
		End:        nameEnd,
		InnerStart: start,
		InnerEnd:   nameEnd,
		InMath:     true,
	})}

	k := nameEnd
	if pat.Optional && k < limit && p.src[k] == '[' {
		closeIdx, closed := matchBracket(p.src, k, limit)
		group, next := p.parseGroup(KindCommandOptional, k, closeIdx, closed)
		children = append(children, group)
		k = next
	}

	count := 0
	for (pat.Arity == Unbounded || count < pat.Arity) && k < limit && p.src[k] == '{' {
		closeIdx, closed := matchBrace(p.src, k, limit)
		group, next := p.parseGroup(KindCommandArgs, k, closeIdx, closed)
		children = append(children, group)
		k = next
		count++
	}

	if pat.Class == ClassSecond && count == 0 && k < limit {
		r, size := utf8.DecodeRuneInString(p.src[k:limit])
		if isImplicitArgument(r) {
			arg := p.add(Node{
				Kind:       KindCommandArgs,
				Start:      k,
				End:        k + size,
				InnerStart: k,
				InnerEnd:   k + size,
				InMath:     true,
				Closed:     true,
				Implicit:   true,
			})
			p.setChildren(arg, []NodeID{p.text(k, k+size, true)})
			children = append(children, arg)
			k += size
		}
	}

	p.tree.nodes[id].End = k
	p.tree.nodes[id].InnerStart = start
	p.tree.nodes[id].InnerEnd = k
	p.setChildren(id, children)
	return id, k
}

// parseGroup builds a {...} or [...] group opening at open. closeIdx is the
// index of the closing delimiter, or the range limit when unterminated.
func (p *parser) parseGroup(kind Kind, open, closeIdx int, closed bool) (NodeID, int) {
	end := closeIdx
	if closed {
		end = closeIdx + 1
	}
	id := p.add(Node{
		Kind:       kind,
		Start:      open,
		End:        end,
		InnerStart: open + 1,
		InnerEnd:   closeIdx,
		InMath:     true,
		Closed:     closed,
	})
	children := []NodeID{p.delimiter(open, open+1, true)}
	children = append(children, p.parseContent(open+1, closeIdx)...)
	if closed {
		children = append(children, p.delimiter(closeIdx, end, true))
	}
	p.setChildren(id, children)
	return id, end
}

// matchBrace returns the index of the brace closing the one at open.
// Escaped braces are ignored. If there is no match it returns limit, false.
func matchBrace(src string, open, limit int) (int, bool) {
	depth := 0
	for i := open; i < limit; i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return limit, false
}

// matchBracket returns the index of the ] closing the [ at open, skipping
// any ] nested inside braces.
func matchBracket(src string, open, limit int) (int, bool) {
	depth := 0
	for i := open + 1; i < limit; i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ']':
			if depth == 0 {
				return i, true
			}
		}
	}
	return limit, false
}

// skipEscape returns the index after a backslash and the rune following it.
func skipEscape(src string, i, limit int) int {
	if i+1 >= limit {
		return limit
	}
	_, size := utf8.DecodeRuneInString(src[i+1 : limit])
	return i + 1 + size
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isImplicitArgument(r rune) bool {
	if r == utf8.RuneError || unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '\\', '{', '}', '^', '_', '$':
		return false
	}
	return true
}
