package renderer

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/engine/position"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func analyze(t *testing.T, text string) *position.Document {
	t.Helper()
	r, err := command.NewDefaultRegistry(command.Defaults{})
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	return position.NewAnalyzer(r).Analyze(text)
}

func row(s tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		mainc, combc, _, _ := s.GetContent(x, y) //nolint:staticcheck
		b.WriteRune(mainc)
		for _, c := range combc {
			b.WriteRune(c)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestRender(t *testing.T) {
	s := newScreen(t, 30, 4)
	r := New(s)
	doc := analyze(t, "ab $\\frac{x}{y}$\nsecond")

	r.Render(doc, 11, StatusLine{File: "n.md", Modified: true, Context: "argument:frac#0"})

	if got := row(s, 0, 30); got != `ab $\frac{x}{y}$` {
		t.Errorf("row 0 = %q", got)
	}
	if got := row(s, 1, 30); got != "second" {
		t.Errorf("row 1 = %q", got)
	}
	status := row(s, 3, 30)
	if !strings.HasPrefix(status, " n.md* | argument:frac#0") || !strings.HasSuffix(status, "1:12") {
		t.Errorf("status = %q", status)
	}

	theme := DefaultTheme()
	for _, tt := range []struct {
		x    int
		want tcell.Style
	}{
		{0, theme.Text},
		{3, theme.Delimiter},
		{4, theme.CommandName},
		{10, theme.Math},
	} {
		if _, _, style, _ := s.GetContent(tt.x, 0); style != tt.want { //nolint:staticcheck
			t.Errorf("style at %d = %v, want %v", tt.x, style, tt.want)
		}
	}
}

func TestRenderScrolls(t *testing.T) {
	s := newScreen(t, 10, 3)
	r := New(s)
	text := "l0\nl1\nl2\nl3\nl4"
	doc := analyze(t, text)

	r.Render(doc, len(text), StatusLine{})
	if got := row(s, 0, 10); got != "l3" {
		t.Errorf("row 0 = %q, want l3", got)
	}
	if got := row(s, 1, 10); got != "l4" {
		t.Errorf("row 1 = %q, want l4", got)
	}

	r.Render(doc, 0, StatusLine{})
	if got := row(s, 0, 10); got != "l0" {
		t.Errorf("after moving up row 0 = %q, want l0", got)
	}
}

func TestStatusLineFormat(t *testing.T) {
	tests := []struct {
		name   string
		status StatusLine
		width  int
		want   string
	}{
		{"scratch", StatusLine{Context: "text"}, 24, " [scratch] | text   1:1 "},
		{"message", StatusLine{File: "a", Context: "math", Message: "saved", Line: 1, Column: 4}, 16, " a | saved  2:5 "},
		{"narrow", StatusLine{File: "long-name.md", Context: "math"}, 12, " long-n 1:1 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Format(tt.width); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.width, got, tt.want)
			}
		})
	}
}

func TestLayoutGraphemes(t *testing.T) {
	cells := layout("éx\t漢", 5)
	var got []int
	for _, c := range cells {
		got = append(got, c.offset, c.width)
	}
	want := []int{5, 1, 7, 1, 8, 1, 9, 2}
	if len(got) != len(want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("layout = %v, want %v", got, want)
		}
	}
	if x := screenX(cells, 4); x != 5 {
		t.Errorf("screenX(4) = %d, want 5", x)
	}
}
