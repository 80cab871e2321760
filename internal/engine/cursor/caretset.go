package cursor

import "sort"

// CaretSet holds all simultaneous carets of a buffer in creation order.
// The first caret is the primary one.
type CaretSet struct {
	carets []Caret
}

// NewCaretSet creates a caret set from the given carets.
func NewCaretSet(carets ...Caret) *CaretSet {
	cs := &CaretSet{carets: make([]Caret, len(carets))}
	copy(cs.carets, carets)
	return cs
}

// Len returns the number of carets.
func (cs *CaretSet) Len() int {
	return len(cs.carets)
}

// IsMulti returns true if there is more than one caret.
func (cs *CaretSet) IsMulti() bool {
	return len(cs.carets) > 1
}

// Primary returns the first caret, or a collapsed caret at (0,0) if empty.
func (cs *CaretSet) Primary() Caret {
	if len(cs.carets) == 0 {
		return Collapsed(Position{})
	}
	return cs.carets[0]
}

// All returns a copy of the carets in creation order.
func (cs *CaretSet) All() []Caret {
	result := make([]Caret, len(cs.carets))
	copy(result, cs.carets)
	return result
}

// Add appends a caret.
func (cs *CaretSet) Add(c Caret) {
	cs.carets = append(cs.carets, c)
}

// Set replaces the caret at index i. Out of range indices are ignored.
func (cs *CaretSet) Set(i int, c Caret) {
	if i < 0 || i >= len(cs.carets) {
		return
	}
	cs.carets[i] = c
}

// Reset replaces every caret with c.
func (cs *CaretSet) Reset(c Caret) {
	cs.carets = []Caret{c}
}

// Clear removes all carets.
func (cs *CaretSet) Clear() {
	cs.carets = nil
}

// HasSelection returns true if any caret carries a selection.
func (cs *CaretSet) HasSelection() bool {
	for _, c := range cs.carets {
		if c.HasSelection() {
			return true
		}
	}
	return false
}

// Standardized returns every caret standardized, in creation order.
func (cs *CaretSet) Standardized(asSelection bool) []Caret {
	result := make([]Caret, len(cs.carets))
	for i, c := range cs.carets {
		result[i] = c.Standardize(asSelection)
	}
	return result
}

// OrderByPosition returns caret indices sorted by start position, then
// by end position, so an empty range comes before a range starting at
// the same place. Carets with the same bounds keep creation order.
func OrderByPosition(carets []Caret) []int {
	order := make([]int, len(carets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, ea := carets[order[a]].Bounds()
		sb, eb := carets[order[b]].Bounds()
		return sa.Before(sb) || (sa == sb && ea.Before(eb))
	})
	return order
}
