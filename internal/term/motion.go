package term

import (
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
)

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

// splitsPair reports whether col falls between the halves of a pair.
func splitsPair(units []uint16, col int) bool {
	return col > 0 && col < len(units) &&
		isLowSurrogate(units[col]) && isHighSurrogate(units[col-1])
}

// stepLeft returns the position one character before p, crossing to the
// end of the previous line at column 0.
func stepLeft(b *buffer.LineBuffer, p cursor.Position) cursor.Position {
	if p.Column == 0 {
		if p.Line == 0 {
			return p
		}
		return cursor.Pos(len(b.LineUnits(p.Line-1)), p.Line-1)
	}
	col := p.Column - 1
	if splitsPair(b.LineUnits(p.Line), col) {
		col--
	}
	return cursor.Pos(col, p.Line)
}

// stepRight returns the position one character after p.
func stepRight(b *buffer.LineBuffer, p cursor.Position) cursor.Position {
	units := b.LineUnits(p.Line)
	if p.Column >= len(units) {
		if p.Line+1 >= b.LineCount() {
			return p
		}
		return cursor.Pos(0, p.Line+1)
	}
	col := p.Column + 1
	if splitsPair(units, col) {
		col++
	}
	return cursor.Pos(col, p.Line)
}

// stepVertical moves p by delta lines, clamping the column to the
// target line and off the middle of a surrogate pair.
func stepVertical(b *buffer.LineBuffer, p cursor.Position, delta int) cursor.Position {
	line := p.Line + delta
	if line < 0 || line >= b.LineCount() {
		return p
	}
	units := b.LineUnits(line)
	col := min(p.Column, len(units))
	if splitsPair(units, col) {
		col--
	}
	return cursor.Pos(col, line)
}

func lineStart(_ *buffer.LineBuffer, p cursor.Position) cursor.Position {
	return cursor.Pos(0, p.Line)
}

func lineEnd(b *buffer.LineBuffer, p cursor.Position) cursor.Position {
	return cursor.Pos(len(b.LineUnits(p.Line)), p.Line)
}

// moveCaret moves the point of c. With extend the anchor stays put and
// the caret becomes a selection.
func moveCaret(c cursor.Caret, to cursor.Position, extend bool) cursor.Caret {
	if !extend {
		return cursor.Collapsed(to)
	}
	anchor := c.Point
	if c.HasSelection() {
		anchor = c.Anchor
	}
	if to == anchor {
		return cursor.Collapsed(to)
	}
	return cursor.Selected(to, anchor)
}

// dedupe drops carets equal to an earlier one.
func dedupe(carets []cursor.Caret) []cursor.Caret {
	out := carets[:0:0]
	for _, c := range carets {
		dup := false
		for _, o := range out {
			if o.Equal(c) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}
