package text

import "unicode/utf16"

// Units returns s encoded as UTF-16 code units.
func Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// FromUnits decodes UTF-16 code units back into a string. Unpaired
// surrogates decode to U+FFFD.
func FromUnits(u []uint16) string {
	return string(utf16.Decode(u))
}

// UnitLen returns the length of s in UTF-16 code units.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// SliceUnits returns the substring of s between code-unit offsets
// [start, end). Offsets that split a surrogate pair produce U+FFFD for
// the severed half, matching UTF-16 substring semantics.
func SliceUnits(s string, start, end int) string {
	if start == 0 && end == UnitLen(s) {
		return s
	}
	u := Units(s)
	return FromUnits(u[start:end])
}
