package text

import (
	"errors"
	"fmt"
)

// ErrRangeOutOfBounds is returned when a range extends past the end of
// the text it is applied to.
var ErrRangeOutOfBounds = errors.New("range out of bounds")

// Range represents a span of UTF-16 code units in a text.
// Start is inclusive, End is exclusive: [Start, End).
// Range is an immutable value type.
type Range struct {
	Start int // Inclusive start offset
	End   int // Exclusive end offset
}

// EmptyRange is the canonical "no range" value.
var EmptyRange = Range{Start: -1, End: -1}

// NewRange creates a range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// CollapsedRange creates a zero-length range at the given offset.
func CollapsedRange(offset int) Range {
	return Range{Start: offset, End: offset}
}

// IsValid returns true if both offsets are non-negative.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.End >= 0
}

// IsCollapsed returns true if the range has zero length.
func (r Range) IsCollapsed() bool {
	return r.Start == r.End
}

// IsNormalized returns true if Start <= End.
func (r Range) IsNormalized() bool {
	return r.Start <= r.End
}

// Len returns the length of the range in code units.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains returns true if the given offset is within [Start, End).
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// TextBefore returns the text before this range.
func (r Range) TextBefore(full string) (string, error) {
	if err := r.checkBounds(full); err != nil {
		return "", err
	}
	return SliceUnits(full, 0, r.Start), nil
}

// TextAfter returns the text after this range.
func (r Range) TextAfter(full string) (string, error) {
	if err := r.checkBounds(full); err != nil {
		return "", err
	}
	return SliceUnits(full, r.End, UnitLen(full)), nil
}

// TextInside returns the text covered by this range.
func (r Range) TextInside(full string) (string, error) {
	if err := r.checkBounds(full); err != nil {
		return "", err
	}
	return SliceUnits(full, r.Start, r.End), nil
}

func (r Range) checkBounds(full string) error {
	n := UnitLen(full)
	if !r.IsValid() || !r.IsNormalized() || r.End > n {
		return fmt.Errorf("%w: [%d:%d) in text of length %d", ErrRangeOutOfBounds, r.Start, r.End, n)
	}
	return nil
}

// Equals returns true if two ranges have the same offsets.
func (r Range) Equals(other Range) bool {
	return r.Start == other.Start && r.End == other.End
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}
