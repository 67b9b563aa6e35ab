package layout

import "github.com/dshills/fieldkit/internal/engine/text"

// Style carries the measurements a paragraph needs to lay text out.
// A glyph-shaping backend would derive these from font metrics; the
// grid backend takes them directly.
type Style struct {
	// LineHeight is the height of one laid-out line.
	LineHeight float64

	// CellWidth is the advance of a single-cell grapheme.
	CellWidth float64
}

// Paragraph lays out a text run and answers geometry queries about it.
// Layout must be called before any query; queries reflect the most
// recent layout.
type Paragraph interface {
	// Layout shapes the text within the given width constraints and
	// caches the resulting geometry.
	Layout(txt string, style Style, minWidth, maxWidth float64)

	// CaretOffsetFor returns the top-left offset of the caret at the
	// given position, for a caret of the prototype shape.
	CaretOffsetFor(pos text.Position, prototype Rect) Point

	// FullGlyphHeightFor returns the full height of the glyph run at
	// the position, or ok=false when the height is unknown.
	FullGlyphHeightFor(pos text.Position, prototype Rect) (float64, bool)

	// WordBoundaryAt returns the word range containing the position,
	// or ok=false when no boundary data is available.
	WordBoundaryAt(pos text.Position) (text.Range, bool)

	// LineBoundaryAt returns the visual line range containing the
	// position, or ok=false when no boundary data is available.
	LineBoundaryAt(pos text.Position) (text.Range, bool)

	// BoxesForSelection returns the glyph boxes covering the selection.
	BoxesForSelection(sel text.Selection) []Box

	// PositionForPoint returns the text position nearest the point.
	PositionForPoint(p Point) text.Position

	// PreferredLineHeight returns the height of one line of text.
	PreferredLineHeight() float64

	// Width returns the laid-out width of the paragraph.
	Width() float64

	// Height returns the laid-out height of the paragraph.
	Height() float64
}
