package cursor

import "fmt"

// Shift is the displacement an edit imposes on positions after it.
// Line applies to every later position. Column applies only to
// positions that were on the line the edit ended on, in pre-edit
// coordinates.
type Shift struct {
	Column int
	Line   int
	// On is the pre-edit line where Column applies. Negative for none.
	On int
}

// NoShift is the identity shift.
var NoShift = Shift{On: -1}

// ShiftBetween returns the shift for an edit whose end moved from oldEnd
// (pre-edit coordinates) to newEnd (post-edit coordinates).
func ShiftBetween(oldEnd, newEnd Position) Shift {
	return Shift{
		Column: newEnd.Column - oldEnd.Column,
		Line:   newEnd.Line - oldEnd.Line,
		On:     oldEnd.Line,
	}
}

// Apply corrects a pre-edit position into post-edit coordinates.
func (s Shift) Apply(p Position) Position {
	if p.Line == s.On {
		p.Column += s.Column
	}
	p.Line += s.Line
	return p
}

// ApplyCaret corrects both ends of a caret.
func (s Shift) ApplyCaret(c Caret) Caret {
	if !c.selected {
		return Collapsed(s.Apply(c.Point))
	}
	return Selected(s.Apply(c.Point), s.Apply(c.Anchor))
}

// String returns a string representation of the shift.
func (s Shift) String() string {
	return fmt.Sprintf("Shift(col%+d@%d, line%+d)", s.Column, s.On, s.Line)
}
