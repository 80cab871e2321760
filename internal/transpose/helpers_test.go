package transpose_test

import (
	"testing"

	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
)

// newBuffer creates a buffer holding text with the given carets.
func newBuffer(t *testing.T, text string, carets ...cursor.Caret) *buffer.LineBuffer {
	t.Helper()

	b := buffer.NewLineBuffer(text)
	if len(carets) > 0 {
		if err := b.SetCarets(carets...); err != nil {
			t.Fatalf("SetCarets error = %v", err)
		}
	}
	return b
}

func at(col, line int) cursor.Caret {
	return cursor.Collapsed(cursor.Pos(col, line))
}

func sel(startCol, startLine, endCol, endLine int) cursor.Caret {
	return cursor.Selected(cursor.Pos(startCol, startLine), cursor.Pos(endCol, endLine))
}
