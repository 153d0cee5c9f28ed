package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/mathmark/internal/engine/token"
)

// DefaultColor is the color used when none is given.
const DefaultColor = "#ff0000"

// namedColors maps color names accepted by ParseColor to hex values.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"magenta": "#ff00ff",
	"cyan":    "#00ffff",
	"gray":    "#808080",
	"grey":    "#808080",
}

// ParseColor parses a color name, a hex value ("#f00", "ff0000") or an
// "r,g,b" triple.
func ParseColor(spec string) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if parts := strings.Split(s, ","); len(parts) == 3 {
		r, g, b, ok := channels(parts)
		if !ok {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
		}
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	return c, nil
}

// Color inserts \color{r}{g}{b}{text}.
//
// Arguments are either the three channels followed by the text, or a
// single color spec (see ParseColor) followed by the text. When the text
// is given, or absorbed, the cursor lands at the start of it; otherwise
// it lands in the first channel.
type Color struct {
	Default colorful.Color
}

// NewColor creates a color command using def for missing channels.
func NewColor(def colorful.Color) Color {
	return Color{Default: def}
}

// Name returns "color".
func (Color) Name() string { return "color" }

// Patterns returns the \color pattern.
func (Color) Patterns() []token.Pattern {
	return []token.Pattern{backslash("color", 4, false, "color")}
}

// Shortcuts returns Ctrl+K.
func (Color) Shortcuts() []Shortcut {
	return []Shortcut{{Keys: "Ctrl+K", Description: "Color the expression left of the cursor"}}
}

// Execute inserts a colored span.
func (c Color) Execute(content string, pos int, args []string, opts Options) (string, int) {
	return insert(content, pos, args, opts, patternsOf(c), true, func(args []string, absorbed bool) literal {
		r, g, b := c.Default.RGB255()
		text := ""
		switch {
		case absorbed:
			text = arg(args, 0)
		case len(args) >= 3:
			if cr, cg, cb, ok := channels(args[:3]); ok {
				r, g, b = uint8(cr), uint8(cg), uint8(cb)
				text = arg(args, 3)
				break
			}
			fallthrough
		case len(args) > 0:
			if parsed, err := ParseColor(args[0]); err == nil {
				r, g, b = parsed.RGB255()
				text = arg(args, 1)
			} else {
				text = args[0]
			}
		}

		markup := fmt.Sprintf(`\color{%d}{%d}{%d}{%s}`, r, g, b, text)
		slot := 0
		if text != "" {
			slot = 3
		}
		return literal{text: markup, slot: slot, offset: -1}
	})
}

// channels parses three 0-255 integers.
func channels(parts []string) (r, g, b int, ok bool) {
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return 0, 0, 0, false
		}
		v[i] = n
	}
	return v[0], v[1], v[2], true
}
