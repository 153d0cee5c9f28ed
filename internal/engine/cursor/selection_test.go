package cursor

import "testing"

func TestSelectionBounds(t *testing.T) {
	tests := []struct {
		name       string
		sel        Selection
		start, end int
		empty      bool
		backward   bool
	}{
		{"cursor", At(4), 4, 4, true, false},
		{"forward", NewSelection(2, 6), 2, 6, false, false},
		{"backward", NewSelection(6, 2), 2, 6, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sel.Start() != tt.start || tt.sel.End() != tt.end {
				t.Errorf("bounds = %d,%d; want %d,%d", tt.sel.Start(), tt.sel.End(), tt.start, tt.end)
			}
			if tt.sel.IsEmpty() != tt.empty {
				t.Errorf("IsEmpty() = %v", tt.sel.IsEmpty())
			}
			if tt.sel.IsBackward() != tt.backward {
				t.Errorf("IsBackward() = %v", tt.sel.IsBackward())
			}
			if tt.sel.Len() != tt.end-tt.start {
				t.Errorf("Len() = %d", tt.sel.Len())
			}
		})
	}
}

func TestSelectionMoves(t *testing.T) {
	s := NewSelection(2, 5)
	if got := s.Extend(9); got != NewSelection(2, 9) {
		t.Errorf("Extend = %v", got)
	}
	if got := s.MoveTo(7); got != At(7) {
		t.Errorf("MoveTo = %v", got)
	}
	if got := s.Collapse(); got != At(5) {
		t.Errorf("Collapse = %v", got)
	}
	if s != NewSelection(2, 5) {
		t.Error("original selection should be unchanged")
	}
}

func TestSelectionClamp(t *testing.T) {
	if got := NewSelection(-3, 40).Clamp(10); got != NewSelection(0, 10) {
		t.Errorf("Clamp = %v", got)
	}
	if got := NewSelection(4, 2).Clamp(10); got != NewSelection(4, 2) {
		t.Errorf("Clamp changed an in-range selection: %v", got)
	}
}

func TestSelectionText(t *testing.T) {
	content := "hello world"
	tests := []struct {
		sel  Selection
		want string
	}{
		{NewSelection(0, 5), "hello"},
		{NewSelection(11, 6), "world"},
		{At(3), ""},
		{NewSelection(6, 99), "world"},
	}
	for _, tt := range tests {
		if got := tt.sel.Text(content); got != tt.want {
			t.Errorf("%v.Text() = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestSelectionString(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{At(3), "Cursor(3)"},
		{NewSelection(1, 4), "Selection(1→4)"},
		{NewSelection(4, 1), "Selection(4←1)"},
	}
	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTransformOffset(t *testing.T) {
	inserts := []Insertion{{At: 3, Len: 1}, {At: 7, Len: 1}}
	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{2, 2},
		{3, 4},
		{5, 6},
		{7, 9},
		{10, 12},
	}
	for _, tt := range tests {
		if got := TransformOffset(tt.offset, inserts); got != tt.want {
			t.Errorf("TransformOffset(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
	if got := TransformOffset(5, nil); got != 5 {
		t.Errorf("no insertions should not move offsets, got %d", got)
	}
}

func TestTransformSelection(t *testing.T) {
	got := TransformSelection(NewSelection(8, 2), []Insertion{{At: 3, Len: 2}})
	if want := NewSelection(10, 2); got != want {
		t.Errorf("TransformSelection = %v, want %v", got, want)
	}
}
