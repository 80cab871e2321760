// Package history provides undo/redo for a line buffer.
//
// Each entry holds the buffer text and carets before and after one
// change, so undo and redo restore the exact caret layout a multi-caret
// command started from.
//
//	h := history.New(1000)
//
//	// Record a change
//	h.Record("editor.transpose", buf, func() error {
//	    return doEdit(buf)
//	})
//
//	// Undo/redo
//	h.Undo(buf)
//	h.Redo(buf)
//
// # Grouping
//
// Changes recorded between BeginGroup and EndGroup undo as one entry:
//
//	h.BeginGroup("script")
//	// ... several recorded changes ...
//	h.EndGroup()
//
// A recording that changes nothing adds no entry.
package history
