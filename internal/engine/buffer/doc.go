// Package buffer defines the text service the transpose commands drive
// and provides LineBuffer, an in-memory implementation of it.
//
// TextService is the host editor's position-based text API: carets,
// line access, ranged reads, replace/insert/delete that report where
// the inserted text ends, and a status line. Commands never reach past
// this interface, so any editor that can answer these calls can host
// them.
//
// Coordinates:
//
// All positions are cursor.Position values. Columns count UTF-16 code
// units, so a character outside the Basic Multilingual Plane occupies
// two columns (a surrogate pair). LineBuffer stores each line as UTF-16
// code units to make those columns exact.
//
// Basic usage:
//
//	buf := buffer.NewLineBuffer("abcd")
//	buf.SetCaret(cursor.Collapsed(cursor.Pos(2, 0)), buffer.SetReplace)
//	end, _ := buf.Replace(cursor.Pos(1, 0), cursor.Pos(3, 0), "cb")
//	// buf.Text() == "acbd", end == (0:3)
//
// Thread Safety:
//
// All LineBuffer methods are safe for concurrent use. Commands still
// assume a single writer for the duration of one invocation.
package buffer
