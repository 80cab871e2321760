package buffer

import "github.com/dshills/transpose/internal/engine/cursor"

// SetMode selects how SetCaret treats the existing carets.
type SetMode uint8

const (
	// SetReplace removes every caret and leaves only the new one.
	SetReplace SetMode = iota
	// SetAdd appends the new caret to the existing ones.
	SetAdd
)

// String returns a string representation of the mode.
func (m SetMode) String() string {
	switch m {
	case SetReplace:
		return "replace"
	case SetAdd:
		return "add"
	default:
		return "unknown"
	}
}

// TextService is the host text-editing API.
//
// Positions passed to ranged operations may be given in either order;
// implementations standardize them. Replace and Insert return the
// position immediately after the inserted text.
type TextService interface {
	// Carets returns every caret in creation order.
	Carets() *cursor.CaretSet
	// SetCaret places a caret according to mode.
	SetCaret(c cursor.Caret, mode SetMode) error
	// SetCaretAt replaces the caret at index.
	SetCaretAt(index int, c cursor.Caret) error
	// DeleteAllCarets removes every caret.
	DeleteAllCarets()

	// LineText returns a line without its line break.
	LineText(line int) string
	// LineCount returns the number of lines.
	LineCount() int
	// SetLineText replaces the content of a line.
	SetLineText(line int, text string) error

	// TextInRange returns the text between two positions.
	TextInRange(start, end cursor.Position) string
	// Replace substitutes text for the range and returns the new end.
	Replace(start, end cursor.Position, text string) (cursor.Position, error)
	// Insert adds text at a position and returns the new end.
	Insert(at cursor.Position, text string) (cursor.Position, error)
	// Delete removes the text in the range.
	Delete(start, end cursor.Position) error

	// SelectedText returns the primary caret's selected text.
	SelectedText() string
	// ShowStatus displays a status message to the user.
	ShowStatus(msg string)
}
