package text

import "fmt"

// Affinity disambiguates which visual line a caret belongs to when its
// offset sits exactly at a line-wrap boundary.
type Affinity uint8

const (
	// Downstream associates the caret with the text after the offset
	// (the start of the following line at a wrap boundary). This is
	// the zero value and the default for new positions.
	Downstream Affinity = iota

	// Upstream associates the caret with the text before the offset
	// (the end of the preceding line at a wrap boundary).
	Upstream
)

// String returns the affinity name.
func (a Affinity) String() string {
	switch a {
	case Upstream:
		return "upstream"
	case Downstream:
		return "downstream"
	default:
		return "unknown"
	}
}

// Position represents a caret location between two code units.
// Position is an immutable value type.
type Position struct {
	// Offset is a UTF-16 code-unit index into the owning text.
	Offset int

	// Affinity selects the visual line when Offset sits at a wrap
	// boundary.
	Affinity Affinity
}

// NewPosition creates a downstream position at the given offset.
func NewPosition(offset int) Position {
	return Position{Offset: offset}
}

// Equals returns true if two positions have the same offset and affinity.
func (p Position) Equals(other Position) bool {
	return p.Offset == other.Offset && p.Affinity == other.Affinity
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("Position(%d, %s)", p.Offset, p.Affinity)
}
