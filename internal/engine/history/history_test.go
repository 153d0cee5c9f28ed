package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewHistoryDefaults(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultMaxEntries},
		{-4, DefaultMaxEntries},
		{10, 10},
	}
	for _, tt := range tests {
		if got := NewHistory(tt.limit).MaxEntries(); got != tt.want {
			t.Errorf("NewHistory(%d).MaxEntries() = %d, want %d", tt.limit, got, tt.want)
		}
	}
	var zero History
	if zero.MaxEntries() != DefaultMaxEntries {
		t.Error("zero History should use the default limit")
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory(5)

	got, content, err := h.Undo("now")
	if !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Undo error = %v, want ErrNothingToUndo", err)
	}
	if content != "now" || got.CanUndo() || got.CanRedo() {
		t.Errorf("empty undo changed state: %q %+v", content, got)
	}

	_, content, err = h.Redo("now")
	if !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("Redo error = %v, want ErrNothingToRedo", err)
	}
	if content != "now" {
		t.Errorf("empty redo returned %q", content)
	}
}

func TestUndoRedoSymmetry(t *testing.T) {
	h := NewHistory(5).Push("a").Push("b")

	h, content, err := h.Undo("c")
	if err != nil || content != "b" {
		t.Fatalf("Undo = %q, %v", content, err)
	}
	h, content, err = h.Undo(content)
	if err != nil || content != "a" {
		t.Fatalf("second Undo = %q, %v", content, err)
	}
	if h.UndoCount() != 0 || h.RedoCount() != 2 {
		t.Fatalf("counts = %d/%d", h.UndoCount(), h.RedoCount())
	}

	h, content, err = h.Redo(content)
	if err != nil || content != "b" {
		t.Fatalf("Redo = %q, %v", content, err)
	}
	h, content, err = h.Redo(content)
	if err != nil || content != "c" {
		t.Fatalf("second Redo = %q, %v", content, err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.Past()); diff != "" {
		t.Errorf("past mismatch (-want +got):\n%s", diff)
	}
	if h.CanRedo() {
		t.Error("redo stack should be empty")
	}
}

func TestPushClearsFuture(t *testing.T) {
	h := NewHistory(5).Push("a")
	h, _, _ = h.Undo("b")
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}
	h = h.Push("a")
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestMaxEntries(t *testing.T) {
	h := NewHistory(50)
	for i := 0; i < 60; i++ {
		h = h.Push(fmt.Sprintf("v%d", i))
	}
	past := h.Past()
	if len(past) != 50 {
		t.Fatalf("len(past) = %d, want 50", len(past))
	}
	if past[0] != "v10" || past[49] != "v59" {
		t.Errorf("past = %s..%s, want v10..v59", past[0], past[49])
	}
}

func TestRedoRestoresFullPast(t *testing.T) {
	h := NewHistory(2).Push("a").Push("b")
	h, content, _ := h.Undo("c")
	h, _, _ = h.Undo(content)
	h, content, _ = h.Redo("a")
	h, content, _ = h.Redo(content)
	if got := h.UndoCount(); got != 2 {
		t.Errorf("UndoCount = %d, want 2", got)
	}
	if content != "c" {
		t.Errorf("content = %q, want c", content)
	}
}

func TestValuesAreIndependent(t *testing.T) {
	base := NewHistory(5).Push("a").Push("b")
	undone, _, _ := base.Undo("c")
	branch := undone.Push("x")

	if diff := cmp.Diff([]string{"a", "b"}, base.Past()); diff != "" {
		t.Errorf("base past changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "x"}, branch.Past()); diff != "" {
		t.Errorf("branch past mismatch (-want +got):\n%s", diff)
	}

	past := base.Past()
	past[0] = "mutated"
	if base.Past()[0] != "a" {
		t.Error("Past should return a copy")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory(7).Push("a")
	h = h.Clear()
	if h.CanUndo() || h.MaxEntries() != 7 {
		t.Errorf("Clear = %+v", h)
	}
}

func TestDropFuture(t *testing.T) {
	h := NewHistory(5).Push("a").Push("b")
	h, _, _ = h.Undo("c")
	h = h.DropFuture()
	if h.CanRedo() {
		t.Error("DropFuture should empty the redo stack")
	}
	if diff := cmp.Diff([]string{"a"}, h.Past()); diff != "" {
		t.Errorf("past mismatch (-want +got):\n%s", diff)
	}
}
