// Package term is the interactive terminal host for the transpose
// commands.
//
// The host draws the document with tcell, keeps one or more carets on it
// and routes key presses through the application keymap first, so the
// transpose bindings (ctrl+t, alt+left, alt+right by default) and any
// configured overrides win over the built-in editing keys.
//
// Built-in keys:
//
//	Arrows, Home, End        move every caret; with Shift, extend selections
//	Alt+Up, Alt+Down         add a caret above the first or below the last
//	Ctrl+Click               add a caret at the pointer
//	Escape                   keep only the primary caret
//	Ctrl+Z, Ctrl+Y           undo, redo
//	Ctrl+S                   save
//	Ctrl+Q                   quit (twice when there are unsaved changes)
//
// Columns on screen are grapheme cluster widths from uniseg, while caret
// columns stay in UTF-16 code units as everywhere else.
package term
