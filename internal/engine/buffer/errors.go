package buffer

import "errors"

// Errors returned by LineBuffer operations.
var (
	// ErrLineOutOfRange indicates a line index outside the buffer.
	ErrLineOutOfRange = errors.New("buffer: line out of range")

	// ErrPositionOutOfRange indicates a column outside its line.
	ErrPositionOutOfRange = errors.New("buffer: position out of range")

	// ErrCaretIndexOutOfRange indicates a caret index that does not exist.
	ErrCaretIndexOutOfRange = errors.New("buffer: caret index out of range")

	// ErrMultilineText indicates a line replacement containing a line break.
	ErrMultilineText = errors.New("buffer: line text contains a line break")
)
