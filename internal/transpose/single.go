package transpose

import (
	"fmt"

	"github.com/dshills/transpose/internal/engine/cursor"
)

// transposeSingle handles the one-caret case.
func (e *Engine) transposeSingle(c cursor.Caret) (Outcome, error) {
	if c.HasSelection() {
		return e.notice(e.messages.NothingToTranspose, []cursor.Caret{c}), nil
	}

	p, msg, changed, err := e.transposeAt(c.Point)
	if err != nil {
		return Outcome{}, err
	}
	if msg != "" {
		e.svc.ShowStatus(msg)
	}
	result := cursor.Collapsed(p)
	if changed {
		if err := e.placeCarets([]cursor.Caret{result}); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{Changed: changed, Message: msg, Carets: []cursor.Caret{result}}, nil
}

// transposeEach transposes every collapsed caret on its own. Carets are
// visited in buffer order and corrected by the shift of the swap before
// them; a swap across a line break moves the text after it. Line swaps
// are left to the single-caret case. Results keep creation order.
func (e *Engine) transposeEach(carets []cursor.Caret) (Outcome, error) {
	out := Outcome{Carets: make([]cursor.Caret, len(carets))}
	shift := cursor.NoShift
	for _, i := range cursor.OrderByPosition(carets) {
		orig := carets[i].Point
		p := shift.Apply(orig)
		next := e.nextChar(p)

		end, msg, changed, err := e.swapChars(p)
		if err != nil {
			return Outcome{}, err
		}
		if msg != "" {
			out.Message = msg
		}
		out.Changed = out.Changed || changed
		out.Carets[i] = cursor.Collapsed(end)
		if changed {
			shift = cursor.ShiftBetween(unshift(orig, p, next), end)
		}
	}
	if out.Message != "" {
		e.svc.ShowStatus(out.Message)
	}
	if out.Changed {
		if err := e.placeCarets(out.Carets); err != nil {
			return Outcome{}, err
		}
	}
	return out, nil
}

// unshift maps q, a position at or after p in current coordinates, back
// to the coordinates orig of p had before any edit.
func unshift(orig, p, q cursor.Position) cursor.Position {
	if q.Line == p.Line {
		return cursor.Pos(orig.Column+q.Column-p.Column, orig.Line)
	}
	return cursor.Pos(q.Column, orig.Line+q.Line-p.Line)
}

// transposeAt swaps the characters or, at the start of a line, the
// lines around p and returns the new caret position. A non-empty msg
// reports why nothing changed.
func (e *Engine) transposeAt(p cursor.Position) (result cursor.Position, msg string, changed bool, err error) {
	if p.Column == 0 && e.lineSwap && p.Line > 0 {
		return e.swapLines(p)
	}
	return e.swapChars(p)
}

// swapChars swaps the characters before and after p.
func (e *Engine) swapChars(p cursor.Position) (result cursor.Position, msg string, changed bool, err error) {
	if p.IsZero() {
		return p, "", false, nil
	}

	next := e.nextChar(p)
	if next == p {
		return p, e.messages.EndOfFile, false, nil
	}
	prev := e.prevChar(p)

	before := e.svc.TextInRange(prev, p)
	after := e.svc.TextInRange(p, next)
	end, err := e.svc.Replace(prev, next, after+before)
	if err != nil {
		return p, "", false, fmt.Errorf("transpose: swap at %v: %w", p, err)
	}
	e.logger.Debug("swapped %q and %q at %v", before, after, p)
	return end, "", true, nil
}

// swapLines exchanges line p.Line with the line above it. The caret
// stays where it is.
func (e *Engine) swapLines(p cursor.Position) (cursor.Position, string, bool, error) {
	upper := e.svc.LineText(p.Line - 1)
	lower := e.svc.LineText(p.Line)
	if err := e.svc.SetLineText(p.Line-1, lower); err != nil {
		return p, "", false, fmt.Errorf("transpose: swap lines %d/%d: %w", p.Line-1, p.Line, err)
	}
	if err := e.svc.SetLineText(p.Line, upper); err != nil {
		return p, "", false, fmt.Errorf("transpose: swap lines %d/%d: %w", p.Line-1, p.Line, err)
	}
	e.logger.Debug("swapped lines %d and %d", p.Line-1, p.Line)
	return p, "", upper != lower, nil
}
