package key

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"/", Event{Key: KeyRune, Rune: '/'}},
		{"^", Event{Key: KeyRune, Rune: '^'}},
		{"A", Event{Key: KeyRune, Rune: 'A'}},
		{"+", Event{Key: KeyRune, Rune: '+'}},
		{"Tab", Event{Key: KeyTab}},
		{"backspace", Event{Key: KeyBackspace}},
		{"Space", Event{Key: KeyRune, Rune: ' '}},
		{"Ctrl+/", Event{Key: KeyRune, Rune: '/', Modifiers: ModCtrl}},
		{"Ctrl+R", Event{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl}},
		{"Alt+M", Event{Key: KeyRune, Rune: 'm', Modifiers: ModAlt}},
		{"Shift+Tab", Event{Key: KeyTab, Modifiers: ModShift}},
		{"Ctrl+Shift+Left", Event{Key: KeyLeft, Modifiers: ModCtrl | ModShift}},
		{"Ctrl++", Event{Key: KeyRune, Rune: '+', Modifiers: ModCtrl}},
		{"Ctrl+Plus", Event{Key: KeyRune, Rune: '+', Modifiers: ModCtrl}},
		{"<C-r>", Event{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl}},
		{"<S-Tab>", Event{Key: KeyTab, Modifiers: ModShift}},
		{"<CR>", Event{Key: KeyEnter}},
		{"<C-->", Event{Key: KeyRune, Rune: '-', Modifiers: ModCtrl}},
		{"  Ctrl+z  ", Event{Key: KeyRune, Rune: 'z', Modifiers: ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.spec, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+a", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"Ctrl+Nope", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"abc", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	MustParse("Ctrl+Nope")
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
		vim   string
	}{
		{NewRuneEvent('/', ModNone), "/", "/"},
		{NewRuneEvent('/', ModCtrl), "Ctrl+/", "<C-/>"},
		{NewRuneEvent('M', ModAlt|ModShift), "Alt+m", "<A-m>"},
		{NewSpecialEvent(KeyTab, ModShift), "Shift+Tab", "<S-Tab>"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter", "<CR>"},
		{NewRuneEvent(' ', ModNone), "Space", "<Space>"},
		{NewRuneEvent('+', ModCtrl), "Ctrl+Plus", "<C-+>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.event.Vim(); got != tt.vim {
				t.Errorf("Vim() = %q, want %q", got, tt.vim)
			}
			parsed, err := Parse(tt.event.String())
			if err != nil {
				t.Fatalf("Parse(String()) error = %v", err)
			}
			if !parsed.Equals(tt.event) {
				t.Errorf("Parse(%q) = %v, want %v", tt.want, parsed, tt.event)
			}
		})
	}
}

func TestEventMatches(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		spec  string
		want  bool
	}{
		{"shifted caret", Event{Key: KeyRune, Rune: '^', Modifiers: ModShift}, "^", true},
		{"ctrl upper", Event{Key: KeyRune, Rune: 'R', Modifiers: ModCtrl}, "Ctrl+r", true},
		{"missing modifier", NewRuneEvent('/', ModNone), "Ctrl+/", false},
		{"extra modifier", NewRuneEvent('/', ModCtrl|ModAlt), "Ctrl+/", false},
		{"tab vs shift tab", NewSpecialEvent(KeyTab, ModNone), "Shift+Tab", false},
		{"invalid spec", NewRuneEvent('a', ModNone), "Bogus+a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Matches(tt.spec); got != tt.want {
				t.Errorf("Matches(%q) = %t, want %t", tt.spec, got, tt.want)
			}
		})
	}
}

func TestIsText(t *testing.T) {
	tests := []struct {
		event Event
		want  bool
	}{
		{NewRuneEvent('a', ModNone), true},
		{NewRuneEvent('A', ModShift), true},
		{NewRuneEvent('a', ModCtrl), false},
		{NewRuneEvent('\x01', ModNone), false},
		{NewSpecialEvent(KeyTab, ModNone), false},
	}

	for _, tt := range tests {
		if got := tt.event.IsText(); got != tt.want {
			t.Errorf("%v.IsText() = %t, want %t", tt.event, got, tt.want)
		}
	}
}

func TestModifierString(t *testing.T) {
	if got := (ModMeta | ModShift | ModCtrl).String(); got != "Ctrl+Shift+Meta" {
		t.Errorf("String() = %q", got)
	}
	if got := ModNone.String(); got != "" {
		t.Errorf("ModNone.String() = %q", got)
	}
	if ModifierFromName("Option") != ModAlt {
		t.Error("Option should map to Alt")
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), NewRuneEvent('x', ModNone)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModAlt), NewRuneEvent('m', ModAlt)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), NewSpecialEvent(KeyTab, ModShift)},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), NewSpecialEvent(KeyLeft, ModNone)},
		{"ctrl r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), NewRuneEvent('r', ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromTcell(tt.ev)
			if !ok {
				t.Fatal("FromTcell returned false")
			}
			if !got.Equals(tt.want) {
				t.Errorf("FromTcell = %v, want %v", got, tt.want)
			}
		})
	}
}
