package renderer

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// StatusLine is the content of the bottom row.
type StatusLine struct {
	File     string
	Modified bool
	Context  string
	Line     int
	Column   int

	// Message replaces the context while set.
	Message string
}

// Format lays the status line out in width cells:
//
//	name.md* | argument:frac#0            3:12
func (s StatusLine) Format(width int) string {
	name := s.File
	if name == "" {
		name = "[scratch]"
	}
	if s.Modified {
		name += "*"
	}
	middle := s.Context
	if s.Message != "" {
		middle = s.Message
	}
	left := " " + name + " | " + middle
	right := fmt.Sprintf("%d:%d ", s.Line+1, s.Column+1)

	gap := width - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	if gap < 1 {
		left = truncate(left, width-uniseg.StringWidth(right)-1)
		gap = width - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	}
	if gap < 0 {
		return truncate(left+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// truncate cuts s to at most width cells without splitting graphemes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	state := -1
	var cluster string
	var w int
	for s != "" {
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > width {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String()
}
