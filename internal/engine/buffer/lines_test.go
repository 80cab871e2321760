package buffer

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/transpose/internal/engine/cursor"
)

func TestNewLineBuffer(t *testing.T) {
	b := NewLineBuffer("line1\nline2\n")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	if b.LineText(1) != "line2" {
		t.Errorf("expected line2, got %q", b.LineText(1))
	}
	if b.LineText(2) != "" {
		t.Errorf("expected empty last line, got %q", b.LineText(2))
	}
	if b.LineText(9) != "" {
		t.Error("out of range line should be empty")
	}
	if got := b.Carets().All(); len(got) != 1 || !got[0].Equal(cursor.Collapsed(cursor.Pos(0, 0))) {
		t.Errorf("unexpected initial carets %v", got)
	}
}

func TestNewLineBufferEmpty(t *testing.T) {
	b := NewLineBuffer("")
	if b.LineCount() != 1 {
		t.Errorf("empty buffer should have 1 line, got %d", b.LineCount())
	}
	if b.Text() != "" {
		t.Errorf("expected empty text, got %q", b.Text())
	}
}

func TestLineBufferByteOrderMark(t *testing.T) {
	b := NewLineBuffer("\uFEFFabc")
	if b.LineText(0) != "abc" {
		t.Errorf("BOM should not be part of the line, got %q", b.LineText(0))
	}
	if b.Text() != "\uFEFFabc" {
		t.Errorf("BOM should be restored by Text, got %q", b.Text())
	}
}

func TestLineBufferTextInRange(t *testing.T) {
	b := NewLineBuffer("hello\nbig\nworld")

	tests := []struct {
		name       string
		start, end cursor.Position
		want       string
	}{
		{"same line", cursor.Pos(1, 0), cursor.Pos(4, 0), "ell"},
		{"reversed", cursor.Pos(4, 0), cursor.Pos(1, 0), "ell"},
		{"across break", cursor.Pos(4, 0), cursor.Pos(1, 1), "o\nb"},
		{"three lines", cursor.Pos(5, 0), cursor.Pos(0, 2), "\nbig\n"},
		{"empty", cursor.Pos(2, 1), cursor.Pos(2, 1), ""},
		{"invalid", cursor.Pos(9, 0), cursor.Pos(1, 1), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.TextInRange(tc.start, tc.end); got != tc.want {
				t.Errorf("TextInRange = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLineBufferReplace(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end cursor.Position
		insert     string
		wantText   string
		wantEnd    cursor.Position
	}{
		{"swap chars", "abcd", cursor.Pos(1, 0), cursor.Pos(3, 0), "cb", "acbd", cursor.Pos(3, 0)},
		{"grow line", "ab", cursor.Pos(1, 0), cursor.Pos(1, 0), "XYZ", "aXYZb", cursor.Pos(4, 0)},
		{"insert break", "ab", cursor.Pos(1, 0), cursor.Pos(1, 0), "1\n22", "a1\n22b", cursor.Pos(2, 1)},
		{"join lines", "ab\ncd", cursor.Pos(1, 0), cursor.Pos(1, 1), "", "ad", cursor.Pos(1, 0)},
		{"swap across break", "ab\ncd", cursor.Pos(1, 0), cursor.Pos(0, 1), "\nb", "a\nbcd", cursor.Pos(1, 1)},
		{"multi to multi", "a\nb\nc", cursor.Pos(0, 1), cursor.Pos(1, 2), "x\ny\nz", "a\nx\ny\nz", cursor.Pos(1, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewLineBuffer(tc.text)
			end, err := b.Replace(tc.start, tc.end, tc.insert)
			if err != nil {
				t.Fatalf("Replace error = %v", err)
			}
			if got := b.Text(); got != tc.wantText {
				t.Errorf("Text = %q, want %q", got, tc.wantText)
			}
			if end != tc.wantEnd {
				t.Errorf("end = %v, want %v", end, tc.wantEnd)
			}
		})
	}
}

func TestLineBufferReplaceOutOfRange(t *testing.T) {
	b := NewLineBuffer("abc")

	if _, err := b.Replace(cursor.Pos(0, 0), cursor.Pos(4, 0), "x"); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("expected ErrPositionOutOfRange, got %v", err)
	}
	if _, err := b.Insert(cursor.Pos(0, 3), "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
	if b.Text() != "abc" {
		t.Errorf("failed edit changed text to %q", b.Text())
	}
}

func TestLineBufferSurrogateColumns(t *testing.T) {
	// U+1F600 takes two code units.
	b := NewLineBuffer("a\U0001F600b")

	if n := len(b.LineUnits(0)); n != 4 {
		t.Fatalf("expected 4 code units, got %d", n)
	}
	if got := b.TextInRange(cursor.Pos(1, 0), cursor.Pos(3, 0)); got != "\U0001F600" {
		t.Errorf("TextInRange = %q", got)
	}
	if !IsSurrogate(b.LineUnits(0)[1]) || !IsSurrogate(b.LineUnits(0)[2]) {
		t.Error("expected surrogate pair at columns 1-2")
	}
	if UnitLen("a\U0001F600b") != 4 {
		t.Errorf("UnitLen = %d, want 4", UnitLen("a\U0001F600b"))
	}
}

func TestLineBufferDeleteInsert(t *testing.T) {
	b := NewLineBuffer("abxycd")
	if err := b.Delete(cursor.Pos(2, 0), cursor.Pos(4, 0)); err != nil {
		t.Fatal(err)
	}
	end, err := b.Insert(cursor.Pos(3, 0), "xy")
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "abcxyd" {
		t.Errorf("Text = %q", b.Text())
	}
	if end != cursor.Pos(5, 0) {
		t.Errorf("end = %v", end)
	}
}

func TestLineBufferSetLineText(t *testing.T) {
	b := NewLineBuffer("one\ntwo")
	if err := b.SetLineText(1, "three"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "one\nthree" {
		t.Errorf("Text = %q", b.Text())
	}
	if err := b.SetLineText(5, "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
	if err := b.SetLineText(0, "a\nb"); !errors.Is(err, ErrMultilineText) {
		t.Errorf("expected ErrMultilineText, got %v", err)
	}
}

func TestLineBufferCarets(t *testing.T) {
	b := NewLineBuffer("hello\nworld")

	sel := cursor.Selected(cursor.Pos(4, 0), cursor.Pos(1, 0))
	if err := b.SetCaret(sel, SetReplace); err != nil {
		t.Fatal(err)
	}
	if err := b.SetCaret(cursor.Collapsed(cursor.Pos(2, 1)), SetAdd); err != nil {
		t.Fatal(err)
	}
	if b.SelectedText() != "ell" {
		t.Errorf("SelectedText = %q", b.SelectedText())
	}

	if err := b.SetCaretAt(1, cursor.Collapsed(cursor.Pos(5, 1))); err != nil {
		t.Fatal(err)
	}
	want := []cursor.Caret{sel, cursor.Collapsed(cursor.Pos(5, 1))}
	if diff := cmp.Diff(want, b.Carets().All()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}

	if err := b.SetCaretAt(2, sel); !errors.Is(err, ErrCaretIndexOutOfRange) {
		t.Errorf("expected ErrCaretIndexOutOfRange, got %v", err)
	}
	if err := b.SetCaret(cursor.Collapsed(cursor.Pos(9, 0)), SetAdd); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("expected ErrPositionOutOfRange, got %v", err)
	}

	b.DeleteAllCarets()
	if b.Carets().Len() != 0 {
		t.Error("expected no carets")
	}
}

func TestLineBufferStatus(t *testing.T) {
	b := NewLineBuffer("")
	if b.Status() != "" {
		t.Error("expected no status")
	}
	b.ShowStatus("first")
	b.ShowStatus("second")
	if b.Status() != "second" {
		t.Errorf("Status = %q", b.Status())
	}
	if diff := cmp.Diff([]string{"first", "second"}, b.Statuses()); diff != "" {
		t.Errorf("Statuses mismatch:\n%s", diff)
	}
}

func TestLineBufferConcurrentAccess(t *testing.T) {
	b := NewLineBuffer("abc\ndef")
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = b.Insert(cursor.Pos(0, 0), "x")
		}()
		go func() {
			defer wg.Done()
			_ = b.Text()
			_ = b.LineText(1)
		}()
	}
	wg.Wait()

	if got := len(b.LineText(0)); got != 13 {
		t.Errorf("expected 13 chars on line 0, got %d", got)
	}
}

func TestLineBufferRestore(t *testing.T) {
	b := NewLineBuffer("abc")
	v := b.Version()

	carets := []cursor.Caret{cursor.Collapsed(cursor.Pos(1, 1)), cursor.Selected(cursor.Pos(0, 0), cursor.Pos(2, 0))}
	if err := b.Restore("xy\nz", carets); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := b.Text(); got != "xy\nz" {
		t.Errorf("Text() = %q", got)
	}
	if b.Version() == v {
		t.Error("Restore should bump the version")
	}
	if diff := cmp.Diff(carets, b.Carets().All()); diff != "" {
		t.Errorf("carets mismatch (-want +got):\n%s", diff)
	}

	if err := b.Restore("q", []cursor.Caret{cursor.Collapsed(cursor.Pos(5, 0))}); err == nil {
		t.Error("Restore should reject carets outside the new text")
	}
	if got := b.Text(); got != "xy\nz" {
		t.Errorf("failed Restore changed text to %q", got)
	}
}
