package selection

// whitespaceUnits is the fixed set of separator and control code
// points skipped during word and line navigation, so that word jumps
// land at the edge of the nearest word instead of swallowing trailing
// whitespace. All members are BMP code points, so a single UTF-16 code
// unit test suffices.
var whitespaceUnits = map[uint16]struct{}{
	0x0009: {}, // tab
	0x000A: {}, // line feed
	0x000B: {}, // vertical tab
	0x000C: {}, // form feed
	0x000D: {}, // carriage return
	0x001C: {}, // file separator
	0x001D: {}, // group separator
	0x001E: {}, // record separator
	0x001F: {}, // unit separator
	0x0020: {}, // space
	0x00A0: {}, // no-break space
	0x1680: {}, // ogham space mark
	0x2000: {}, // en quad
	0x2001: {}, // em quad
	0x2002: {}, // en space
	0x2003: {}, // em space
	0x2004: {}, // three-per-em space
	0x2005: {}, // four-per-em space
	0x2006: {}, // six-per-em space
	0x2007: {}, // figure space
	0x2008: {}, // punctuation space
	0x2009: {}, // thin space
	0x200A: {}, // hair space
	0x202F: {}, // narrow no-break space
	0x205F: {}, // medium mathematical space
	0x3000: {}, // ideographic space
}

// IsWhitespaceUnit reports whether a UTF-16 code unit is in the
// navigation whitespace set.
func IsWhitespaceUnit(u uint16) bool {
	_, ok := whitespaceUnits[u]
	return ok
}
