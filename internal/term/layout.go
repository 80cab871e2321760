package term

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/transpose/internal/engine/buffer"
)

// tabWidth is the distance between tab stops in cells.
const tabWidth = 4

// cluster is one grapheme cluster of a line as laid out on screen.
type cluster struct {
	text  string
	unit  int // first UTF-16 unit of the cluster
	units int
	col   int // first screen cell
	width int
}

// lineLayout splits a line into grapheme clusters with their UTF-16
// offsets and screen cells.
type lineLayout struct {
	clusters []cluster
	units    int
	width    int
}

func layoutLine(text string) lineLayout {
	var l lineLayout
	state := -1
	for text != "" {
		var c string
		var w int
		c, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		switch {
		case c == "\t":
			w = tabWidth - l.width%tabWidth
		case w < 1:
			w = 1
		}
		n := buffer.UnitLen(c)
		l.clusters = append(l.clusters, cluster{text: c, unit: l.units, units: n, col: l.width, width: w})
		l.units += n
		l.width += w
	}
	return l
}

// cellOf returns the screen cell of a UTF-16 column. A column inside a
// cluster maps to the cluster's first cell.
func (l lineLayout) cellOf(unit int) int {
	for _, c := range l.clusters {
		if unit < c.unit+c.units {
			return c.col
		}
	}
	return l.width
}

// unitAt returns the UTF-16 column of the cluster covering a screen
// cell. Cells past the end map to the end of the line.
func (l lineLayout) unitAt(cell int) int {
	for _, c := range l.clusters {
		if cell < c.col+c.width {
			return c.unit
		}
	}
	return l.units
}
