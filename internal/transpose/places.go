package transpose

import (
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
)

// LineMaxColumn returns the number of UTF-16 code units in a line.
func LineMaxColumn(svc buffer.TextService, line int) int {
	return buffer.UnitLen(svc.LineText(line))
}

// NextPlace returns the position one code unit forward. The end of a
// line wraps to the start of the next; the end of the last line does
// not move.
func NextPlace(svc buffer.TextService, p cursor.Position) cursor.Position {
	if p.Column >= LineMaxColumn(svc, p.Line) {
		if p.Line < svc.LineCount()-1 {
			return cursor.Pos(0, p.Line+1)
		}
		return p
	}
	return p.Offset(1)
}

// PrevPlace returns the position one code unit back. Column 0 wraps to
// the end of the previous line; (0,0) does not move.
func PrevPlace(svc buffer.TextService, p cursor.Position) cursor.Position {
	if p.Column == 0 {
		if p.Line > 0 {
			return cursor.Pos(LineMaxColumn(svc, p.Line-1), p.Line-1)
		}
		return cursor.Pos(0, 0)
	}
	return p.Offset(-1)
}

// IsSurrogate reports whether a code unit lies in [0xD800, 0xDFFF].
func IsSurrogate(u uint16) bool {
	return buffer.IsSurrogate(u)
}

// nextChar returns the end of the character after p, covering both
// halves of a surrogate pair when enabled.
func (e *Engine) nextChar(p cursor.Position) cursor.Position {
	next := NextPlace(e.svc, p)
	if !e.surrogatePairs || next.Line != p.Line {
		return next
	}
	units := buffer.Encode(e.svc.LineText(p.Line))
	if p.Column+2 <= len(units) && IsSurrogate(units[p.Column]) {
		return p.Offset(2)
	}
	return next
}

// prevChar returns the start of the character before p, covering both
// halves of a surrogate pair when enabled.
func (e *Engine) prevChar(p cursor.Position) cursor.Position {
	prev := PrevPlace(e.svc, p)
	if !e.surrogatePairs || prev.Line != p.Line {
		return prev
	}
	units := buffer.Encode(e.svc.LineText(p.Line))
	if p.Column >= 2 && p.Column <= len(units) && IsSurrogate(units[p.Column-1]) {
		return p.Offset(-2)
	}
	return prev
}
