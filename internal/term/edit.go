package term

import (
	"fmt"

	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
)

// span picks the range a caret edits.
type span func(b *buffer.LineBuffer, c cursor.Caret) (start, end cursor.Position)

// selection edits the selected text, or nothing for a collapsed caret.
func selection(_ *buffer.LineBuffer, c cursor.Caret) (cursor.Position, cursor.Position) {
	return c.Bounds()
}

// previousChar edits the selection, or the character before a collapsed caret.
func previousChar(b *buffer.LineBuffer, c cursor.Caret) (cursor.Position, cursor.Position) {
	if c.HasSelection() {
		return c.Bounds()
	}
	return stepLeft(b, c.Point), c.Point
}

// nextChar edits the selection, or the character after a collapsed caret.
func nextChar(b *buffer.LineBuffer, c cursor.Caret) (cursor.Position, cursor.Position) {
	if c.HasSelection() {
		return c.Bounds()
	}
	return c.Point, stepRight(b, c.Point)
}

// replaceAll replaces the span of every caret with text and leaves a
// collapsed caret after each insertion. Spans are replaced in buffer
// order; each start is corrected by the shift of the edit before it.
// A span reaching back into the previous one is cut at its end.
func replaceAll(b *buffer.LineBuffer, pick span, text string) error {
	carets := b.Carets().All()
	if len(carets) == 0 {
		return nil
	}

	ranges := make([]cursor.Caret, len(carets))
	for i, c := range carets {
		start, end := pick(b, c)
		ranges[i] = cursor.Selected(start, end)
	}

	out := make([]cursor.Caret, len(carets))
	shift := cursor.NoShift
	var prevEnd cursor.Position
	for k, i := range cursor.OrderByPosition(ranges) {
		start, end := ranges[i].Bounds()
		if k > 0 && start.Before(prevEnd) {
			start = prevEnd
			if end.Before(start) {
				end = start
			}
		}

		prevEnd = end
		if start == end && text == "" {
			out[i] = cursor.Collapsed(shift.Apply(start))
			continue
		}

		newEnd, err := b.Replace(shift.Apply(start), shift.Apply(end), text)
		if err != nil {
			return fmt.Errorf("edit at %v: %w", start, err)
		}
		out[i] = cursor.Collapsed(newEnd)
		shift = cursor.ShiftBetween(end, newEnd)
	}
	return b.SetCarets(dedupe(out)...)
}
