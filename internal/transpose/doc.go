// Package transpose implements the transpose and selection-shift commands
// on top of a buffer.TextService.
//
// # Transpose
//
// With a single collapsed caret, Transpose swaps the characters on either
// side of it and leaves the caret after the pair. At column 0 of a line
// other than the first it swaps that line with the one above instead
// (see WithLineSwap). Surrogate pairs move as one character.
//
// With several carets and at least one selection, every caret is treated
// as a selection (collapsed carets become empty ones) and the contents
// are rotated by one: each caret receives the text of the caret created
// before it, and the first receives the last one's. Edits are applied
// front to back in buffer order; the displacement each replacement
// causes is carried forward as a cursor.Shift rather than re-reading
// positions from the host.
//
// With several collapsed carets, each one swaps the characters around it
// on its own, even at column 0. They are visited in buffer order with the
// same shift carried forward.
//
// # Moving a selection
//
// MoveSelectionLeft and MoveSelectionRight slide a single-line selection
// over the neighbouring character by deleting it and inserting it one
// character away, keeping the text selected.
//
// # Feedback
//
// Boundary conditions are not errors. They produce an Outcome with
// Changed == false and a status message that is also sent to the host's
// status line. Errors are only returned when the host rejects an edit.
//
// Usage:
//
//	buf := buffer.NewLineBuffer("abcd")
//	_ = buf.SetCaret(cursor.Collapsed(cursor.Pos(2, 0)), buffer.SetReplace)
//
//	eng := transpose.New(buf)
//	out, err := eng.Transpose()
//	// buf.Text() == "acbd", out.Carets[0] is collapsed at (0:3)
package transpose
