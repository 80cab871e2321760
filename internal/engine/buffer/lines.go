package buffer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/transpose/internal/engine/cursor"
)

// LineBuffer is an in-memory TextService. Lines are held as UTF-16 code
// units so that columns match what host editors report.
type LineBuffer struct {
	mu sync.RWMutex

	lines   [][]uint16
	hadBOM  bool
	carets  cursor.CaretSet
	status  []string
	version uint64
}

// NewLineBuffer creates a buffer holding text, with one collapsed caret
// at (0,0). Lines are split on "\n"; a leading byte-order mark is
// dropped and restored by Text.
func NewLineBuffer(text string) *LineBuffer {
	b := &LineBuffer{}
	if strings.HasPrefix(text, string(byteOrderMark)) {
		b.hadBOM = true
		text = strings.TrimPrefix(text, string(byteOrderMark))
	}
	for _, line := range strings.Split(text, "\n") {
		b.lines = append(b.lines, Encode(line))
	}
	b.carets.Reset(cursor.Collapsed(cursor.Position{}))
	return b
}

// Text returns the full buffer content.
func (b *LineBuffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	parts := make([]string, len(b.lines))
	for i, line := range b.lines {
		parts[i] = Decode(line)
	}
	text := strings.Join(parts, "\n")
	if b.hadBOM {
		text = string(byteOrderMark) + text
	}
	return text
}

// Version returns a counter incremented by every text mutation.
func (b *LineBuffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Restore replaces the whole text and the carets, as one mutation.
func (b *LineBuffer) Restore(text string, carets []cursor.Caret) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	restored := NewLineBuffer(text)
	for _, c := range carets {
		if err := restored.checkCaret(c); err != nil {
			return err
		}
	}
	b.lines = restored.lines
	b.hadBOM = restored.hadBOM
	b.replaceCarets(carets)
	b.version++
	return nil
}

// Carets implements TextService.
func (b *LineBuffer) Carets() *cursor.CaretSet {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cursor.NewCaretSet(b.carets.All()...)
}

// SetCaret implements TextService.
func (b *LineBuffer) SetCaret(c cursor.Caret, mode SetMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkCaret(c); err != nil {
		return err
	}
	switch mode {
	case SetAdd:
		b.carets.Add(c)
	default:
		b.carets.Reset(c)
	}
	return nil
}

// SetCaretAt implements TextService.
func (b *LineBuffer) SetCaretAt(index int, c cursor.Caret) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= b.carets.Len() {
		return fmt.Errorf("%w: %d", ErrCaretIndexOutOfRange, index)
	}
	if err := b.checkCaret(c); err != nil {
		return err
	}
	b.carets.Set(index, c)
	return nil
}

// SetCarets replaces all carets at once.
func (b *LineBuffer) SetCarets(carets ...cursor.Caret) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range carets {
		if err := b.checkCaret(c); err != nil {
			return err
		}
	}
	b.replaceCarets(carets)
	return nil
}

func (b *LineBuffer) replaceCarets(carets []cursor.Caret) {
	b.carets.Clear()
	for _, c := range carets {
		b.carets.Add(c)
	}
}

// DeleteAllCarets implements TextService.
func (b *LineBuffer) DeleteAllCarets() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.carets.Clear()
}

// LineText implements TextService. Out of range lines are empty.
func (b *LineBuffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return Decode(b.lines[line])
}

// LineUnits returns a copy of a line's UTF-16 code units.
func (b *LineBuffer) LineUnits(line int) []uint16 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 0 || line >= len(b.lines) {
		return nil
	}
	return append([]uint16(nil), b.lines[line]...)
}

// LineCount implements TextService.
func (b *LineBuffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// SetLineText implements TextService.
func (b *LineBuffer) SetLineText(line int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if line < 0 || line >= len(b.lines) {
		return fmt.Errorf("%w: %d", ErrLineOutOfRange, line)
	}
	if strings.ContainsRune(text, '\n') {
		return ErrMultilineText
	}
	b.lines[line] = Encode(text)
	b.version++
	return nil
}

// TextInRange implements TextService. Invalid ranges read as empty.
func (b *LineBuffer) TextInRange(start, end cursor.Position) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end = order(start, end)
	if b.checkPosition(start) != nil || b.checkPosition(end) != nil {
		return ""
	}
	return Decode(b.unitsBetween(start, end))
}

// Replace implements TextService.
func (b *LineBuffer) Replace(start, end cursor.Position, text string) (cursor.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end = order(start, end)
	if err := b.checkPosition(start); err != nil {
		return start, err
	}
	if err := b.checkPosition(end); err != nil {
		return end, err
	}

	head := b.lines[start.Line][:start.Column]
	tail := b.lines[end.Line][end.Column:]

	parts := strings.Split(text, "\n")
	replacement := make([][]uint16, len(parts))
	for i, part := range parts {
		replacement[i] = Encode(part)
	}

	last := len(replacement) - 1
	newEnd := cursor.Pos(len(replacement[last]), start.Line+last)
	if last == 0 {
		newEnd.Column += len(head)
	}

	first := make([]uint16, 0, len(head)+len(replacement[0]))
	first = append(first, head...)
	first = append(first, replacement[0]...)
	replacement[0] = first
	replacement[last] = append(replacement[last], tail...)

	lines := make([][]uint16, 0, len(b.lines)-(end.Line-start.Line)+last)
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines
	b.version++

	return newEnd, nil
}

// Insert implements TextService.
func (b *LineBuffer) Insert(at cursor.Position, text string) (cursor.Position, error) {
	return b.Replace(at, at, text)
}

// Delete implements TextService.
func (b *LineBuffer) Delete(start, end cursor.Position) error {
	_, err := b.Replace(start, end, "")
	return err
}

// SelectedText implements TextService.
func (b *LineBuffer) SelectedText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	primary := b.carets.Primary()
	if b.carets.Len() == 0 || !primary.HasSelection() {
		return ""
	}
	start, end := primary.Bounds()
	if b.checkPosition(start) != nil || b.checkPosition(end) != nil {
		return ""
	}
	return Decode(b.unitsBetween(start, end))
}

// ShowStatus implements TextService. Messages are kept in order.
func (b *LineBuffer) ShowStatus(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = append(b.status, msg)
}

// Status returns the most recent status message.
func (b *LineBuffer) Status() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.status) == 0 {
		return ""
	}
	return b.status[len(b.status)-1]
}

// Statuses returns every status message shown so far.
func (b *LineBuffer) Statuses() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.status...)
}

// unitsBetween returns the code units in [start, end), joining lines
// with "\n". Positions must be valid and ordered.
func (b *LineBuffer) unitsBetween(start, end cursor.Position) []uint16 {
	if start.Line == end.Line {
		return append([]uint16(nil), b.lines[start.Line][start.Column:end.Column]...)
	}
	var units []uint16
	units = append(units, b.lines[start.Line][start.Column:]...)
	for line := start.Line + 1; line < end.Line; line++ {
		units = append(units, '\n')
		units = append(units, b.lines[line]...)
	}
	units = append(units, '\n')
	units = append(units, b.lines[end.Line][:end.Column]...)
	return units
}

func (b *LineBuffer) checkPosition(p cursor.Position) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return fmt.Errorf("%w: %v", ErrLineOutOfRange, p)
	}
	if p.Column < 0 || p.Column > len(b.lines[p.Line]) {
		return fmt.Errorf("%w: %v", ErrPositionOutOfRange, p)
	}
	return nil
}

func (b *LineBuffer) checkCaret(c cursor.Caret) error {
	if err := b.checkPosition(c.Point); err != nil {
		return err
	}
	if c.HasSelection() {
		return b.checkPosition(c.Anchor)
	}
	return nil
}

func order(a, b cursor.Position) (cursor.Position, cursor.Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

var _ TextService = (*LineBuffer)(nil)
