package term

import (
	"fmt"
	"strings"

	"github.com/dshills/transpose/internal/engine/cursor"
)

// Draw renders the document and the status line.
func (e *Editor) Draw() {
	width, height := e.screen.Size()
	e.screen.Clear()
	if width < 1 || height < 1 {
		e.screen.Show()
		return
	}

	b := e.buffer()
	carets := b.Carets().All()
	primary := b.Carets().Primary().Point
	rows := height - 1

	e.scrollTo(primary, rows, width)

	for row := 0; row < rows; row++ {
		line := e.top + row
		if line >= b.LineCount() {
			break
		}
		e.drawLine(row, line, b.LineText(line), carets, width)
	}
	e.drawStatus(height-1, primary, len(carets))

	if rows > 0 {
		x := layoutLine(b.LineText(primary.Line)).cellOf(primary.Column) - e.left
		e.screen.ShowCursor(x, primary.Line-e.top)
	} else {
		e.screen.HideCursor()
	}
	e.screen.Show()
}

// scrollTo moves the viewport so p is visible.
func (e *Editor) scrollTo(p cursor.Position, rows, width int) {
	if p.Line < e.top {
		e.top = p.Line
	}
	if rows > 0 && p.Line >= e.top+rows {
		e.top = p.Line - rows + 1
	}

	x := layoutLine(e.buffer().LineText(p.Line)).cellOf(p.Column)
	if x < e.left {
		e.left = x
	}
	if x >= e.left+width {
		e.left = x - width + 1
	}
}

func (e *Editor) drawLine(row, line int, text string, carets []cursor.Caret, width int) {
	l := layoutLine(text)
	for _, c := range l.clusters {
		x := c.col - e.left
		if x < 0 || x+c.width > width {
			continue
		}
		style := textStyle
		if marked(carets, cursor.Pos(c.unit, line)) {
			style = selectStyle
		}
		if c.text == "\t" {
			for i := 0; i < c.width; i++ {
				e.screen.Put(x+i, row, " ", style)
			}
			continue
		}
		e.screen.Put(x, row, c.text, style)
	}

	// Secondary carets at the end of the line.
	for _, c := range carets[1:] {
		if !c.HasSelection() && c.Point == cursor.Pos(l.units, line) {
			if x := l.width - e.left; x >= 0 && x < width {
				e.screen.Put(x, row, " ", selectStyle)
			}
		}
	}
}

// marked reports whether the character at p is selected or sits under a
// secondary caret.
func marked(carets []cursor.Caret, p cursor.Position) bool {
	for i, c := range carets {
		if !c.HasSelection() {
			if i > 0 && c.Point == p {
				return true
			}
			continue
		}
		start, end := c.Bounds()
		if !p.Before(start) && p.Before(end) {
			return true
		}
	}
	return false
}

func (e *Editor) drawStatus(row int, primary cursor.Position, carets int) {
	doc := e.app.Document()

	var sb strings.Builder
	sb.WriteString(" ")
	sb.WriteString(doc.Name)
	if doc.IsModified() {
		sb.WriteString(" [+]")
	}
	if e.app.ReadOnly() {
		sb.WriteString(" [ro]")
	}
	fmt.Fprintf(&sb, "  Ln %d, Col %d", primary.Line+1, primary.Column+1)
	if carets > 1 {
		fmt.Fprintf(&sb, "  %d carets", carets)
	}
	if e.message != "" {
		sb.WriteString("  ")
		sb.WriteString(e.message)
	}

	x := 0
	for _, c := range layoutLine(sb.String()).clusters {
		e.screen.Put(x, row, c.text, statusStyle)
		x += c.width
	}
	e.screen.FillRow(x, row, statusStyle)
}
