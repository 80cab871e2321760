// Package cursor provides the caret and selection model used by the
// transpose commands.
//
// Coordinates are (column, line) pairs, both zero-based. Columns count
// UTF-16 code units of the line's text, which is what host editors
// expose through their position-based text APIs.
//
// Caret Model:
//
// A Caret is either collapsed (a single insertion point) or carries a
// selection between its Point and its Anchor. The two ends of a
// selection are not ordered; Standardize returns a copy whose Point is
// never after its Anchor.
//
//	c := cursor.FromRange(4, 0, 1, 0) // selection from (1,0) to (4,0), caret at column 4
//	s := c.Standardize(false)         // Point (1,0), Anchor (4,0)
//
// Hosts that encode "no selection" with a negative end column can
// convert at the boundary with FromRange and Caret.Range.
//
// Multi-Caret:
//
// CaretSet keeps carets in creation order, not position order.
// OrderByPosition returns the indices sorted by buffer position for
// callers that must apply edits front to back.
//
// Shift:
//
// A Shift records how positions after an edit moved. Column deltas only
// apply on the line where the edit ended; line deltas apply everywhere.
//
// Thread Safety:
//
// Position, Caret and Shift are immutable value types. CaretSet is not
// thread-safe.
package cursor
