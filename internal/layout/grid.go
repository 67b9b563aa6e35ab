package layout

import (
	"math"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/fieldkit/internal/engine/text"
)

// Grid is a fixed-advance Paragraph implementation. Every grapheme
// cluster occupies a whole number of cells (wide CJK clusters take
// two), lines wrap greedily at grapheme boundaries, and all offsets
// are UTF-16 code units. Grid is the layout backend for tests and
// terminal hosts.
type Grid struct {
	style    Style
	text     string
	maxWidth float64
	lines    []gridLine
	laidOut  bool
}

// gridLine is one visual line: [start, end) in code units, excluding
// any trailing newline. hardBreak distinguishes newline-terminated
// lines from wrapped ones.
type gridLine struct {
	start, end int
	hardBreak  bool
	cells      []gridCell
}

// gridCell is one grapheme cluster and its advance.
type gridCell struct {
	start, end int
	width      float64
}

// NewGrid creates an empty grid layout.
func NewGrid() *Grid {
	return &Grid{}
}

// Layout implements Paragraph.
func (g *Grid) Layout(txt string, style Style, minWidth, maxWidth float64) {
	g.style = style
	g.text = txt
	g.maxWidth = maxWidth
	g.lines = g.lines[:0]
	g.laidOut = true

	line := gridLine{hardBreak: true}
	width := 0.0
	unit := 0

	graphemes := uniseg.NewGraphemes(txt)
	for graphemes.Next() {
		cluster := graphemes.Str()
		units := text.UnitLen(cluster)

		if isLineBreak(cluster) {
			line.end = unit
			g.lines = append(g.lines, line)
			unit += units
			line = gridLine{start: unit, hardBreak: true}
			width = 0
			continue
		}

		w := float64(uniseg.StringWidth(cluster)) * style.CellWidth
		if maxWidth > 0 && len(line.cells) > 0 && width+w > maxWidth {
			line.end = unit
			line.hardBreak = false
			g.lines = append(g.lines, line)
			line = gridLine{start: unit, hardBreak: true}
			width = 0
		}
		line.cells = append(line.cells, gridCell{start: unit, end: unit + units, width: w})
		unit += units
		width += w
	}
	line.end = unit
	g.lines = append(g.lines, line)
}

func isLineBreak(cluster string) bool {
	switch cluster {
	case "\n", "\r", "\r\n":
		return true
	}
	return false
}

// LineCount returns the number of visual lines.
func (g *Grid) LineCount() int {
	return len(g.lines)
}

// LineText returns the text of visual line i.
func (g *Grid) LineText(i int) string {
	l := g.lines[i]
	return text.SliceUnits(g.text, l.start, l.end)
}

// lineIndexFor locates the visual line owning a position. At a soft
// wrap boundary the offset belongs to the earlier line only with
// upstream affinity.
func (g *Grid) lineIndexFor(pos text.Position) int {
	o := pos.Offset
	for i, l := range g.lines {
		if o < l.end {
			if o >= l.start {
				return i
			}
			// Offset sits inside the newline units before this line.
			return i - 1
		}
		if o == l.end {
			if i == len(g.lines)-1 || l.hardBreak {
				return i
			}
			if pos.Affinity == text.Upstream {
				return i
			}
			// Downstream at a wrap boundary belongs to the next line.
			continue
		}
	}
	return len(g.lines) - 1
}

// advanceTo returns the x advance from the start of line l to offset.
func (g *Grid) advanceTo(l gridLine, offset int) float64 {
	x := 0.0
	for _, c := range l.cells {
		if c.start >= offset {
			break
		}
		x += c.width
	}
	return x
}

// CaretOffsetFor implements Paragraph.
func (g *Grid) CaretOffsetFor(pos text.Position, prototype Rect) Point {
	if !g.laidOut {
		return Point{}
	}
	i := g.lineIndexFor(pos)
	if i < 0 {
		i = 0
	}
	l := g.lines[i]
	return Point{X: g.advanceTo(l, pos.Offset), Y: float64(i) * g.style.LineHeight}
}

// FullGlyphHeightFor implements Paragraph.
func (g *Grid) FullGlyphHeightFor(pos text.Position, prototype Rect) (float64, bool) {
	if !g.laidOut {
		return 0, false
	}
	return g.style.LineHeight, true
}

// WordBoundaryAt implements Paragraph. Words are maximal runs of the
// same character class: word characters (letters, digits, marks,
// underscore), whitespace, or other symbols.
func (g *Grid) WordBoundaryAt(pos text.Position) (text.Range, bool) {
	if !g.laidOut {
		return text.EmptyRange, false
	}
	units := text.Units(g.text)
	n := len(units)
	if n == 0 {
		return text.EmptyRange, false
	}
	o := pos.Offset
	if o < 0 {
		o = 0
	}
	if o > n {
		o = n
	}
	probe := o
	if probe == n {
		probe = n - 1
	}
	runes := runesWithUnits(g.text)
	ri := runeIndexAt(runes, probe)
	class := classifyRune(runes[ri].r)
	start := ri
	for start > 0 && classifyRune(runes[start-1].r) == class {
		start--
	}
	end := ri
	for end < len(runes)-1 && classifyRune(runes[end+1].r) == class {
		end++
	}
	return text.NewRange(runes[start].start, runes[end].end), true
}

// LineBoundaryAt implements Paragraph, returning the visual (wrapped)
// line range containing the position.
func (g *Grid) LineBoundaryAt(pos text.Position) (text.Range, bool) {
	if !g.laidOut {
		return text.EmptyRange, false
	}
	i := g.lineIndexFor(pos)
	if i < 0 || i >= len(g.lines) {
		return text.EmptyRange, false
	}
	l := g.lines[i]
	return text.NewRange(l.start, l.end), true
}

// BoxesForSelection implements Paragraph.
func (g *Grid) BoxesForSelection(sel text.Selection) []Box {
	if !g.laidOut || !sel.IsValid() || sel.IsCollapsed() {
		return nil
	}
	start, end := sel.Start(), sel.End()
	var boxes []Box
	for i, l := range g.lines {
		s, e := maxInt(start, l.start), minInt(end, l.end)
		if s >= e {
			continue
		}
		top := float64(i) * g.style.LineHeight
		boxes = append(boxes, Box{
			Left:      g.advanceTo(l, s),
			Top:       top,
			Right:     g.advanceTo(l, e),
			Bottom:    top + g.style.LineHeight,
			Direction: DirectionLTR,
		})
	}
	return boxes
}

// PositionForPoint implements Paragraph. The nearest grapheme boundary
// wins; points past the end of a wrapped line resolve upstream so the
// caret stays on that line.
func (g *Grid) PositionForPoint(p Point) text.Position {
	if !g.laidOut || len(g.lines) == 0 {
		return text.NewPosition(0)
	}
	row := int(math.Floor(p.Y / g.style.LineHeight))
	if row < 0 {
		row = 0
	}
	if row >= len(g.lines) {
		row = len(g.lines) - 1
	}
	l := g.lines[row]
	x := 0.0
	for _, c := range l.cells {
		if p.X < x+c.width/2 {
			return text.NewPosition(c.start)
		}
		x += c.width
	}
	pos := text.NewPosition(l.end)
	if !l.hardBreak {
		pos.Affinity = text.Upstream
	}
	return pos
}

// PreferredLineHeight implements Paragraph.
func (g *Grid) PreferredLineHeight() float64 {
	return g.style.LineHeight
}

// Width implements Paragraph.
func (g *Grid) Width() float64 {
	w := 0.0
	for _, l := range g.lines {
		lw := 0.0
		for _, c := range l.cells {
			lw += c.width
		}
		if lw > w {
			w = lw
		}
	}
	return w
}

// Height implements Paragraph.
func (g *Grid) Height() float64 {
	return float64(len(g.lines)) * g.style.LineHeight
}

type unitRune struct {
	r          rune
	start, end int
}

func runesWithUnits(s string) []unitRune {
	var out []unitRune
	unit := 0
	for _, r := range s {
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		out = append(out, unitRune{r: r, start: unit, end: unit + w})
		unit += w
	}
	return out
}

func runeIndexAt(runes []unitRune, offset int) int {
	for i, ur := range runes {
		if offset < ur.end {
			return i
		}
	}
	return len(runes) - 1
}

type charClass uint8

const (
	classWord charClass = iota
	classSpace
	classSymbol
)

func classifyRune(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_':
		return classWord
	default:
		return classSymbol
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
