package transpose_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/transpose"
)

func TestMoveSelectionRight(t *testing.T) {
	b := newBuffer(t, "abxyef", sel(2, 0, 4, 0))
	out, err := transpose.New(b).MoveSelectionRight()
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "abexyf" {
		t.Errorf("text = %q, want %q", b.Text(), "abexyf")
	}
	want := []cursor.Caret{sel(3, 0, 5, 0)}
	if diff := cmp.Diff(want, b.Carets().All()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
	if !out.Changed || b.Status() != transpose.DefaultMessages().MovedRight {
		t.Errorf("changed = %v, status = %q", out.Changed, b.Status())
	}
}

func TestMoveSelectionLeft(t *testing.T) {
	b := newBuffer(t, "abxyef", cursor.Selected(cursor.Pos(4, 0), cursor.Pos(2, 0)))
	_, err := transpose.New(b).MoveSelectionLeft()
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "axybef" {
		t.Errorf("text = %q, want %q", b.Text(), "axybef")
	}
	want := []cursor.Caret{cursor.Selected(cursor.Pos(3, 0), cursor.Pos(1, 0))}
	if diff := cmp.Diff(want, b.Carets().All()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
	if b.Status() != transpose.DefaultMessages().MovedLeft {
		t.Errorf("status = %q", b.Status())
	}
}

func TestMoveSelectionBlocked(t *testing.T) {
	msgs := transpose.DefaultMessages()

	tests := []struct {
		name  string
		text  string
		caret cursor.Caret
		left  bool
		want  string
	}{
		{"left at line start", "xyz", sel(0, 0, 2, 0), true, msgs.StartOfLine},
		{"right at line end", "xyz", sel(1, 0, 3, 0), false, msgs.EndOfLine},
		{"collapsed caret", "xyz", at(1, 0), true, msgs.NoValidSelection},
		{"multi-line selection", "ab\ncd", sel(1, 0, 1, 1), false, msgs.NoValidSelection},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBuffer(t, tc.text, tc.caret)
			eng := transpose.New(b)

			var out transpose.Outcome
			var err error
			if tc.left {
				out, err = eng.MoveSelectionLeft()
			} else {
				out, err = eng.MoveSelectionRight()
			}
			if err != nil {
				t.Fatal(err)
			}
			if out.Changed || b.Text() != tc.text {
				t.Errorf("blocked move changed text to %q", b.Text())
			}
			if b.Status() != tc.want {
				t.Errorf("status = %q, want %q", b.Status(), tc.want)
			}
		})
	}
}

func TestMoveSelectionNeedsSingleCaret(t *testing.T) {
	b := newBuffer(t, "abcdef", sel(1, 0, 2, 0), sel(3, 0, 4, 0))
	out, err := transpose.New(b).MoveSelectionRight()
	if err != nil {
		t.Fatal(err)
	}
	if out.Changed {
		t.Error("two carets should not move")
	}
	if b.Status() != transpose.DefaultMessages().NoValidSelection {
		t.Errorf("status = %q", b.Status())
	}
}

func TestMoveSelectionOverSurrogatePair(t *testing.T) {
	b := newBuffer(t, "ab\U0001F600", sel(0, 0, 2, 0))
	eng := transpose.New(b)

	if _, err := eng.MoveSelectionRight(); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "\U0001F600ab" {
		t.Errorf("text = %q", b.Text())
	}
	if !b.Carets().Primary().Equal(sel(2, 0, 4, 0)) {
		t.Errorf("caret = %v", b.Carets().Primary())
	}

	if _, err := eng.MoveSelectionLeft(); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "ab\U0001F600" {
		t.Errorf("text = %q", b.Text())
	}
	if !b.Carets().Primary().Equal(sel(0, 0, 2, 0)) {
		t.Errorf("caret = %v", b.Carets().Primary())
	}
}

func TestMoveSelectionReversible(t *testing.T) {
	text := "the quick brown fox"
	b := newBuffer(t, text, sel(4, 0, 9, 0))
	eng := transpose.New(b)

	for i := 0; i < 3; i++ {
		if _, err := eng.MoveSelectionRight(); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := eng.MoveSelectionLeft(); err != nil {
			t.Fatal(err)
		}
	}

	if b.Text() != text {
		t.Errorf("text = %q, want %q", b.Text(), text)
	}
	if !b.Carets().Primary().Equal(sel(4, 0, 9, 0)) {
		t.Errorf("caret = %v", b.Carets().Primary())
	}
	if got := b.SelectedText(); got != "quick" {
		t.Errorf("selected = %q", got)
	}
}
