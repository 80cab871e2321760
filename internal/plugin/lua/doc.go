// Package lua runs editing scripts in a sandboxed gopher-lua state.
//
// A State opens only the base, table, string and math libraries,
// removes the loaders that read files or compile strings, and limits
// require to those libraries plus preloaded modules. Execution is
// bounded by a timeout carried on the state's context.
//
// EditorModule exposes the transpose commands and a small view of the
// buffer to scripts, both as the global editor and through
// require("editor"):
//
//	local editor = require("editor")
//	editor.set_carets({{col = 2, line = 0}})
//	local changed, msg = editor.transpose()
//	print(editor.text(), msg)
//
// Coordinates are zero-based. Columns count UTF-16 code units. A caret
// table holds col and line, plus end_col and end_line for a selection;
// carets() reports end_col = -1 for a collapsed caret.
package lua
