package text

import "fmt"

// Selection represents a range of selected text with directionality.
// Base is where the selection gesture started; Extent is the
// currently-moving end. When Base == Extent the selection is collapsed
// and denotes the caret position. Selection is an immutable value type;
// every change constructs a whole new value.
type Selection struct {
	// Base is the offset where the selection was anchored.
	Base int

	// Extent is the offset of the moving edge (where typing occurs).
	Extent int

	// Affinity applies when the selection is collapsed at a wrap
	// boundary.
	Affinity Affinity

	// Directional is true if the selection was made with a
	// direction-aware gesture (shift+arrow) rather than a tap.
	Directional bool
}

// NoSelection is the canonical invalid selection, used when a field
// holds text but no caret (e.g. after focus loss).
var NoSelection = Selection{Base: -1, Extent: -1}

// NewSelection creates a selection from base to extent.
func NewSelection(base, extent int) Selection {
	return Selection{Base: base, Extent: extent}
}

// CollapsedSelection creates a caret (zero-extent selection) at offset.
func CollapsedSelection(offset int) Selection {
	return Selection{Base: offset, Extent: offset}
}

// CollapsedAt creates a caret at the given position, keeping its
// affinity.
func CollapsedAt(pos Position) Selection {
	return Selection{Base: pos.Offset, Extent: pos.Offset, Affinity: pos.Affinity}
}

// Start returns min(Base, Extent).
func (s Selection) Start() int {
	if s.Base <= s.Extent {
		return s.Base
	}
	return s.Extent
}

// End returns max(Base, Extent).
func (s Selection) End() int {
	if s.Base >= s.Extent {
		return s.Base
	}
	return s.Extent
}

// Range returns the normalized range covered by the selection.
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// IsValid returns true if both edges are non-negative.
func (s Selection) IsValid() bool {
	return s.Base >= 0 && s.Extent >= 0
}

// IsCollapsed returns true if the selection has no extent.
func (s Selection) IsCollapsed() bool {
	return s.Base == s.Extent
}

// BasePosition returns the anchored edge as a position.
func (s Selection) BasePosition() Position {
	return Position{Offset: s.Base, Affinity: s.Affinity}
}

// ExtentPosition returns the moving edge as a position.
func (s Selection) ExtentPosition() Position {
	return Position{Offset: s.Extent, Affinity: s.Affinity}
}

// TextBefore returns the text before the selection.
func (s Selection) TextBefore(full string) (string, error) {
	return s.Range().TextBefore(full)
}

// TextAfter returns the text after the selection.
func (s Selection) TextAfter(full string) (string, error) {
	return s.Range().TextAfter(full)
}

// TextInside returns the selected text.
func (s Selection) TextInside(full string) (string, error) {
	return s.Range().TextInside(full)
}

// WithBase returns a copy with the base moved to offset.
func (s Selection) WithBase(offset int) Selection {
	s.Base = offset
	return s
}

// WithExtent returns a copy with the extent moved to offset. The base
// stays anchored, so this is how keyboard-driven extension grows a
// selection.
func (s Selection) WithExtent(offset int) Selection {
	s.Extent = offset
	return s
}

// WithAffinity returns a copy with the given affinity.
func (s Selection) WithAffinity(a Affinity) Selection {
	s.Affinity = a
	return s
}

// WithDirectional returns a copy with the directional flag set.
func (s Selection) WithDirectional(d bool) Selection {
	s.Directional = d
	return s
}

// Collapse returns a caret at the extent.
func (s Selection) Collapse() Selection {
	return Selection{Base: s.Extent, Extent: s.Extent, Affinity: s.Affinity}
}

// CollapseToStart returns a caret at min(Base, Extent).
func (s Selection) CollapseToStart() Selection {
	start := s.Start()
	return Selection{Base: start, Extent: start, Affinity: s.Affinity}
}

// CollapseToEnd returns a caret at max(Base, Extent).
func (s Selection) CollapseToEnd() Selection {
	end := s.End()
	return Selection{Base: end, Extent: end, Affinity: s.Affinity}
}

// Equals returns true if all four fields match.
func (s Selection) Equals(other Selection) bool {
	return s.Base == other.Base &&
		s.Extent == other.Extent &&
		s.Affinity == other.Affinity &&
		s.Directional == other.Directional
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Caret(%d, %s)", s.Extent, s.Affinity)
	}
	return fmt.Sprintf("Selection(%d→%d)", s.Base, s.Extent)
}
