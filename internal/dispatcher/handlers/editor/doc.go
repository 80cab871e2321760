// Package editor provides the dispatcher handlers for the transpose commands.
//
// The TransposeHandler type serves the "editor" namespace:
//   - editor.transpose: swap characters or lines, or rotate selections
//   - editor.moveSelectionLeft: move a single-line selection left
//   - editor.moveSelectionRight: move a single-line selection right
//
// A repeat count runs the command that many times and stops early once a
// run changes nothing, so "3 editor.transpose" drags a character three
// places forward.
//
// Register the handler with the dispatcher:
//
//	d.RegisterNamespace("editor", editor.NewTransposeHandler())
package editor
