package transpose

import (
	"fmt"

	"github.com/dshills/transpose/internal/engine/cursor"
)

// rotation is the state carried from one replacement to the next.
type rotation struct {
	shift  cursor.Shift
	carets []cursor.Caret
}

// rotate gives every caret the content of the caret created before it,
// the first caret taking the last one's. All carets are treated as
// selections. Replacements run in buffer order so each one only has to
// be corrected by the shift of the replacement before it.
func (e *Engine) rotate(set *cursor.CaretSet) (Outcome, error) {
	carets := set.All()
	std := set.Standardized(true)
	n := len(carets)
	texts := make([]string, n)
	for i, c := range std {
		texts[i] = e.svc.TextInRange(c.Point, c.Anchor)
	}

	order := cursor.OrderByPosition(std)
	if overlapping(std, order) {
		return e.notice(e.messages.SelectionsOverlap, carets), nil
	}

	state := rotation{shift: cursor.NoShift, carets: make([]cursor.Caret, n)}
	for _, i := range order {
		var err error
		state, err = e.rotateStep(state, carets[i], std[i], texts[(i+n-1)%n], i)
		if err != nil {
			return Outcome{}, err
		}
	}

	if err := e.placeCarets(state.carets); err != nil {
		return Outcome{}, err
	}
	e.logger.Debug("rotated %d selections", n)
	return Outcome{Changed: true, Carets: state.carets}, nil
}

// rotateStep replaces one standardized range with text, after moving it
// by the shift of the previous replacement.
func (e *Engine) rotateStep(state rotation, orig, std cursor.Caret, text string, index int) (rotation, error) {
	moved := state.shift.ApplyCaret(std)
	start, end := moved.Point, moved.Anchor

	newEnd, err := e.svc.Replace(start, end, text)
	if err != nil {
		return state, fmt.Errorf("transpose: rotate caret %d at %v: %w", index, start, err)
	}

	state.carets[index] = rotatedCaret(orig, start, newEnd)
	state.shift = cursor.ShiftBetween(std.Anchor, newEnd)
	return state, nil
}

// rotatedCaret selects the inserted text, keeping the caret on the same
// side of the selection as before. Empty insertions collapse.
func rotatedCaret(orig cursor.Caret, start, end cursor.Position) cursor.Caret {
	if start == end {
		return cursor.Collapsed(start)
	}
	if orig.HasSelection() && orig.Point.Before(orig.Anchor) {
		return cursor.Selected(start, end)
	}
	return cursor.Selected(end, start)
}

// overlapping reports whether any two standardized ranges share text.
// Ranges that only touch do not overlap.
func overlapping(std []cursor.Caret, order []int) bool {
	for k := 1; k < len(order); k++ {
		prevEnd := std[order[k-1]].Anchor
		if std[order[k]].Point.Before(prevEnd) {
			return true
		}
	}
	return false
}
