package transpose_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/transpose"
)

func TestTransposeSingle(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     cursor.Caret
		wantText  string
		wantCaret cursor.Caret
		changed   bool
	}{
		{"middle of line", "abcd", at(2, 0), "acbd", at(3, 0), true},
		{"end of line", "abcd", at(4, 0), "abcd", at(4, 0), false},
		{"start of buffer", "abcd", at(0, 0), "abcd", at(0, 0), false},
		{"line end before break", "ab\ncd", at(2, 0), "a\nbcd", at(1, 1), true},
		{"column zero swaps lines", "one\ntwo\nthree", at(0, 1), "two\none\nthree", at(0, 1), true},
		{"surrogate after caret", "a\U0001F600b", at(1, 0), "\U0001F600ab", at(3, 0), true},
		{"surrogate before caret", "a\U0001F600b", at(3, 0), "ab\U0001F600", at(4, 0), true},
		{"two surrogate pairs", "\U0001F600\U0001F601", at(2, 0), "\U0001F601\U0001F600", at(4, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBuffer(t, tc.text, tc.caret)
			out, err := transpose.New(b).Transpose()
			if err != nil {
				t.Fatalf("Transpose error = %v", err)
			}
			if got := b.Text(); got != tc.wantText {
				t.Errorf("text = %q, want %q", got, tc.wantText)
			}
			if out.Changed != tc.changed {
				t.Errorf("Changed = %v, want %v", out.Changed, tc.changed)
			}
			if diff := cmp.Diff([]cursor.Caret{tc.wantCaret}, out.Carets); diff != "" {
				t.Errorf("outcome carets mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]cursor.Caret{tc.wantCaret}, b.Carets().All()); diff != "" {
				t.Errorf("buffer carets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransposeEndOfFileStatus(t *testing.T) {
	b := newBuffer(t, "ab\ncd", at(2, 1))
	out, err := transpose.New(b).Transpose()
	if err != nil {
		t.Fatal(err)
	}
	want := transpose.DefaultMessages().EndOfFile
	if out.Message != want || b.Status() != want {
		t.Errorf("message = %q, status = %q, want %q", out.Message, b.Status(), want)
	}
}

func TestTransposeBufferStartIsSilent(t *testing.T) {
	b := newBuffer(t, "ab", at(0, 0))
	out, err := transpose.New(b).Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if out.Message != "" || b.Status() != "" {
		t.Errorf("expected no status at buffer start, got %q", b.Status())
	}
}

func TestTransposeSingleSelection(t *testing.T) {
	b := newBuffer(t, "abcd", sel(1, 0, 3, 0))
	out, err := transpose.New(b).Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if out.Changed || b.Text() != "abcd" {
		t.Errorf("selection alone should not change text, got %q", b.Text())
	}
	if b.Status() != transpose.DefaultMessages().NothingToTranspose {
		t.Errorf("status = %q", b.Status())
	}
}

func TestTransposeWithoutLineSwap(t *testing.T) {
	b := newBuffer(t, "ab\ncd", at(0, 1))
	out, err := transpose.New(b, transpose.WithLineSwap(false)).Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "abc\nd" {
		t.Errorf("text = %q, want %q", b.Text(), "abc\nd")
	}
	if !out.Carets[0].Equal(at(0, 1)) {
		t.Errorf("caret = %v", out.Carets[0])
	}
}

func TestTransposeTwiceRestores(t *testing.T) {
	text := "hello world"
	for col := 1; col < len(text); col++ {
		b := newBuffer(t, text, at(col, 0))
		eng := transpose.New(b)
		if _, err := eng.Transpose(); err != nil {
			t.Fatal(err)
		}
		if err := b.SetCarets(at(col, 0)); err != nil {
			t.Fatal(err)
		}
		if _, err := eng.Transpose(); err != nil {
			t.Fatal(err)
		}
		if b.Text() != text {
			t.Errorf("caret at %d: twice gave %q", col, b.Text())
		}
	}
}

func TestTransposeSurrogateRoundTrip(t *testing.T) {
	text := "x\U0001F600y"
	b := newBuffer(t, text, at(1, 0))
	eng := transpose.New(b)

	if _, err := eng.Transpose(); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "\U0001F600xy" {
		t.Fatalf("text = %q", b.Text())
	}

	// The pair now occupies columns 0-1; swap it back from its far side.
	if err := b.SetCarets(at(2, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Transpose(); err != nil {
		t.Fatal(err)
	}
	if b.Text() != text {
		t.Errorf("round trip gave %q", b.Text())
	}
}

func TestTransposeEachCollapsedCaret(t *testing.T) {
	b := newBuffer(t, "abcd\nefgh", at(1, 0), at(2, 1))
	out, err := transpose.New(b).Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "bacd\negfh" {
		t.Errorf("text = %q", b.Text())
	}
	want := []cursor.Caret{at(2, 0), at(3, 1)}
	if diff := cmp.Diff(want, out.Carets); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, b.Carets().All()); diff != "" {
		t.Errorf("buffer carets mismatch (-want +got):\n%s", diff)
	}
}

func TestTransposeEachShiftsLaterCarets(t *testing.T) {
	// The first caret swaps the line break with "c", moving "def" left.
	b := newBuffer(t, "ab\ncdef", at(3, 1), at(0, 1))
	out, err := transpose.New(b).Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "abc\ndfe" {
		t.Errorf("text = %q, want %q", b.Text(), "abc\ndfe")
	}
	want := []cursor.Caret{at(3, 1), at(0, 1)}
	if diff := cmp.Diff(want, out.Carets); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}
}
