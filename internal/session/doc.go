// Package session runs transpose commands in batch from JSON.
//
// A request names the text, the carets and the commands to run:
//
//	{
//	  "text": "abcd",
//	  "carets": [[2, 0]],
//	  "commands": ["transpose", {"name": "moveSelectionRight", "count": 2}]
//	}
//
// Carets are [col, line] or [col, line, end_col, end_line] arrays, or
// objects with the same field names. Columns count UTF-16 code units.
// Commands may use the short names transpose, moveSelectionLeft and
// moveSelectionRight or full action names.
//
// The response carries the final text, the carets in the same array
// form (end_col -1 for a collapsed caret) and one status message per
// command:
//
//	{"text": "acbd", "carets": [[3, 0, -1, -1]], "messages": [""]}
//
// Process accepts a single request object or an array of them.
package session
