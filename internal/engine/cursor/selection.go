package cursor

import "fmt"

// Selection is a cursor or a selected range of text, in byte offsets.
// Anchor is where the selection started; Head is where typing occurs.
// When Anchor == Head the selection is a plain cursor.
// Selection is an immutable value type.
type Selection struct {
	Anchor int
	Head   int
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// At creates a collapsed selection at offset.
func At(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len returns the length of the selection in bytes.
func (s Selection) Len() int {
	return s.End() - s.Start()
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	return max(s.Anchor, s.Head)
}

// IsBackward returns true if the head is before the anchor.
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// Extend returns the selection with its head moved to offset.
func (s Selection) Extend(offset int) Selection {
	return Selection{Anchor: s.Anchor, Head: offset}
}

// MoveTo returns a collapsed selection at offset.
func (s Selection) MoveTo(offset int) Selection {
	return At(offset)
}

// Collapse collapses the selection to its head.
func (s Selection) Collapse() Selection {
	return At(s.Head)
}

// Clamp returns the selection with both ends limited to [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	return Selection{
		Anchor: min(max(s.Anchor, 0), maxOffset),
		Head:   min(max(s.Head, 0), maxOffset),
	}
}

// Map applies fn to both ends of the selection.
func (s Selection) Map(fn func(int) int) Selection {
	return Selection{Anchor: fn(s.Anchor), Head: fn(s.Head)}
}

// Text returns the selected part of content. Out-of-range ends are
// clamped.
func (s Selection) Text(content string) string {
	c := s.Clamp(len(content))
	return content[c.Start():c.End()]
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Head)
}
