package transpose

import (
	"fmt"

	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
)

// validForMove reports whether carets can be moved: exactly one caret
// whose selection stays on one line.
func validForMove(carets *cursor.CaretSet) bool {
	if carets.Len() != 1 {
		return false
	}
	c := carets.Primary()
	return c.HasSelection() && c.SingleLine()
}

// moveSelection slides the selection dir characters (-1 or 1).
func (e *Engine) moveSelection(dir int) (Outcome, error) {
	carets := e.svc.Carets()
	if !validForMove(carets) {
		return e.notice(e.messages.NoValidSelection, carets.All()), nil
	}

	c := carets.Primary()
	start, end := c.Bounds()
	units := buffer.Encode(e.svc.LineText(start.Line))

	step := 1
	var delta int
	if dir < 0 {
		if e.surrogatePairs && start.Column >= 2 && start.Column <= len(units) && IsSurrogate(units[start.Column-1]) {
			step = 2
		}
		if start.Column < step {
			return e.notice(e.messages.StartOfLine, []cursor.Caret{c}), nil
		}
		delta = -step
	} else {
		if e.surrogatePairs && end.Column+2 <= len(units) && IsSurrogate(units[end.Column]) {
			step = 2
		}
		if end.Column+step > len(units) {
			return e.notice(e.messages.EndOfLine, []cursor.Caret{c}), nil
		}
		delta = step
	}

	text := e.svc.TextInRange(start, end)
	if err := e.svc.Delete(start, end); err != nil {
		return Outcome{}, fmt.Errorf("transpose: move selection: %w", err)
	}
	if _, err := e.svc.Insert(start.Offset(delta), text); err != nil {
		return Outcome{}, fmt.Errorf("transpose: move selection: %w", err)
	}

	moved := cursor.Selected(c.Point.Offset(delta), c.Anchor.Offset(delta))
	if err := e.svc.SetCaret(moved, buffer.SetReplace); err != nil {
		return Outcome{}, fmt.Errorf("transpose: move selection: %w", err)
	}

	msg := e.messages.MovedRight
	if dir < 0 {
		msg = e.messages.MovedLeft
	}
	e.svc.ShowStatus(msg)
	e.logger.Debug("moved %q by %d at %v", text, delta, start)
	return Outcome{Changed: true, Message: msg, Carets: []cursor.Caret{moved}}, nil
}
