package buffer

import (
	"unicode/utf16"
	"unicode/utf8"
)

// byteOrderMark is stripped from the start of loaded text.
const byteOrderMark = '\uFEFF'

// Encode converts a string to UTF-16 code units.
func Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Decode converts UTF-16 code units to a string.
// Unpaired surrogates decode as U+FFFD.
func Decode(units []uint16) string {
	return string(utf16.Decode(units))
}

// UnitLen returns the length of s in UTF-16 code units.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		if r == utf8.RuneError {
			n++
			continue
		}
		n += utf16.RuneLen(r)
	}
	return n
}

// IsSurrogate reports whether a code unit is half of a surrogate pair.
func IsSurrogate(u uint16) bool {
	return u >= 0xD800 && u <= 0xDFFF
}
