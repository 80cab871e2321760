package cursor

import "fmt"

// NoSelection is the end column hosts use to mark a collapsed caret.
const NoSelection = -1

// Caret is a single edit cursor: collapsed at Point, or carrying a
// selection from Anchor to Point. Caret is an immutable value type.
type Caret struct {
	// Point is where the caret sits.
	Point Position
	// Anchor is the other end of the selection. Unused when collapsed.
	Anchor Position

	selected bool
}

// Collapsed returns a caret with no selection at p.
func Collapsed(p Position) Caret {
	return Caret{Point: p, Anchor: p}
}

// Selected returns a caret at point with a selection reaching to anchor.
// A zero-length selection (point == anchor) is still a selection.
func Selected(point, anchor Position) Caret {
	return Caret{Point: point, Anchor: anchor, selected: true}
}

// FromRange decodes the host's (col, line, endCol, endLine) form, where a
// negative endCol means there is no selection.
func FromRange(col, line, endCol, endLine int) Caret {
	if endCol < 0 {
		return Collapsed(Pos(col, line))
	}
	return Selected(Pos(col, line), Pos(endCol, endLine))
}

// Range encodes the caret in the host's (col, line, endCol, endLine) form.
func (c Caret) Range() (col, line, endCol, endLine int) {
	if !c.selected {
		return c.Point.Column, c.Point.Line, NoSelection, NoSelection
	}
	return c.Point.Column, c.Point.Line, c.Anchor.Column, c.Anchor.Line
}

// HasSelection reports whether the caret carries a selection.
func (c Caret) HasSelection() bool {
	return c.selected
}

// SingleLine reports whether both ends are on the same line.
func (c Caret) SingleLine() bool {
	return !c.selected || c.Point.Line == c.Anchor.Line
}

// Bounds returns the ordered start and end of the caret.
// A collapsed caret returns its point twice.
func (c Caret) Bounds() (start, end Position) {
	if !c.selected {
		return c.Point, c.Point
	}
	if c.Anchor.Before(c.Point) {
		return c.Anchor, c.Point
	}
	return c.Point, c.Anchor
}

// Standardize returns the caret with Point never after Anchor.
// A collapsed caret is returned unchanged, or, when asSelection is set,
// as a zero-length selection at its point.
func (c Caret) Standardize(asSelection bool) Caret {
	if !c.selected {
		if asSelection {
			return Selected(c.Point, c.Point)
		}
		return c
	}
	start, end := c.Bounds()
	return Selected(start, end)
}

// Equal returns true if both carets have the same shape and ends.
func (c Caret) Equal(other Caret) bool {
	if c.selected != other.selected {
		return false
	}
	if !c.selected {
		return c.Point == other.Point
	}
	return c.Point == other.Point && c.Anchor == other.Anchor
}

// String returns a string representation of the caret.
func (c Caret) String() string {
	if !c.selected {
		return fmt.Sprintf("Caret%s", c.Point)
	}
	return fmt.Sprintf("Selection%s→%s", c.Anchor, c.Point)
}
