package renderer

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/mathmark/internal/engine/position"
)

// Renderer draws documents onto a screen. It keeps the scroll offsets
// between frames so the cursor stays in view.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
	top    int
	left   int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the styles.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// New creates a renderer for screen.
func New(screen tcell.Screen, opts ...Option) *Renderer {
	r := &Renderer{screen: screen, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// cell is one grapheme cluster laid out on a line.
type cell struct {
	text   string
	offset int
	width  int
}

// Render draws doc with the cursor at head and the status line below.
func (r *Renderer) Render(doc *position.Document, head int, status StatusLine) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	rows := height - 1

	text := doc.Text()
	styles := r.theme.Highlight(doc.Tree())
	lines := strings.SplitAfter(text, "\n")

	line, column := position.LineColumn(text, head)
	r.scroll(line, rows)

	offset := 0
	for i, l := range lines {
		if i >= r.top+rows {
			break
		}
		cells := layout(strings.TrimSuffix(l, "\n"), offset)
		if i >= r.top {
			y := i - r.top
			if i == line {
				r.scrollX(cells, column, width)
			}
			r.drawLine(cells, y, width, styles)
			if i == line {
				r.screen.ShowCursor(screenX(cells, column)-r.left, y)
			}
		}
		offset += len(l)
	}

	status.Line, status.Column = line, column
	style := r.theme.Status
	if status.Message != "" {
		style = r.theme.Message
	}
	r.drawString(0, height-1, status.Format(width), style)
	r.screen.Show()
}

// layout splits a line into grapheme clusters. Tabs take one cell.
func layout(line string, offset int) []cell {
	var cells []cell
	state := -1
	var cluster string
	var w int
	for line != "" {
		cluster, line, w, state = uniseg.FirstGraphemeClusterInString(line, state)
		if cluster == "\t" {
			w = 1
		}
		cells = append(cells, cell{text: cluster, offset: offset, width: w})
		offset += len(cluster)
	}
	return cells
}

// screenX returns the x of the column-th cluster before scrolling.
func screenX(cells []cell, column int) int {
	x := 0
	for i := 0; i < column && i < len(cells); i++ {
		x += cells[i].width
	}
	return x
}

func (r *Renderer) scroll(line, rows int) {
	if line < r.top {
		r.top = line
	}
	if line >= r.top+rows {
		r.top = line - rows + 1
	}
}

func (r *Renderer) scrollX(cells []cell, column, width int) {
	x := screenX(cells, column)
	if x < r.left {
		r.left = x
	}
	if x >= r.left+width {
		r.left = x - width + 1
	}
}

func (r *Renderer) drawLine(cells []cell, y, width int, styles []tcell.Style) {
	x := -r.left
	for _, c := range cells {
		if x >= width {
			return
		}
		if x >= 0 && c.width > 0 {
			runes := []rune(c.text)
			if c.text == "\t" {
				runes = []rune{' '}
			}
			r.screen.SetContent(x, y, runes[0], runes[1:], styles[c.offset])
		}
		x += c.width
	}
}

func (r *Renderer) drawString(x, y int, s string, style tcell.Style) {
	for _, c := range layout(s, 0) {
		runes := []rune(c.text)
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += c.width
	}
}
