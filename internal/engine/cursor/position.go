package cursor

import "fmt"

// Position is a (column, line) location in a buffer.
// Column is measured in UTF-16 code units from the start of the line.
type Position struct {
	Column int
	Line   int
}

// Pos is shorthand for Position{Column: col, Line: line}.
func Pos(col, line int) Position {
	return Position{Column: col, Line: line}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Lines are compared first.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the buffer start (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Offset returns the position moved by dcol columns on the same line.
func (p Position) Offset(dcol int) Position {
	return Position{Column: p.Column + dcol, Line: p.Line}
}
