package layout

import (
	"testing"

	"github.com/dshills/fieldkit/internal/engine/text"
)

func layoutGrid(t *testing.T, txt string, maxWidth float64) *Grid {
	t.Helper()
	g := NewGrid()
	g.Layout(txt, Style{LineHeight: 10, CellWidth: 8}, 0, maxWidth)
	return g
}

func TestGridSingleLine(t *testing.T) {
	g := layoutGrid(t, "hello", 0)
	if g.LineCount() != 1 {
		t.Fatalf("LineCount = %d, want 1", g.LineCount())
	}
	if g.LineText(0) != "hello" {
		t.Errorf("LineText = %q", g.LineText(0))
	}
	if g.Width() != 5*8 {
		t.Errorf("Width = %v, want 40", g.Width())
	}
	if g.Height() != 10 {
		t.Errorf("Height = %v, want 10", g.Height())
	}
}

func TestGridHardBreaks(t *testing.T) {
	g := layoutGrid(t, "ab\ncd\n", 0)
	if g.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3 (trailing newline opens an empty line)", g.LineCount())
	}
	if g.LineText(0) != "ab" || g.LineText(1) != "cd" || g.LineText(2) != "" {
		t.Errorf("lines = %q, %q, %q", g.LineText(0), g.LineText(1), g.LineText(2))
	}
}

func TestGridSoftWrap(t *testing.T) {
	// 3 cells per line: "abcde" wraps to "abc" + "de".
	g := layoutGrid(t, "abcde", 3*8)
	if g.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", g.LineCount())
	}
	if g.LineText(0) != "abc" || g.LineText(1) != "de" {
		t.Errorf("lines = %q, %q", g.LineText(0), g.LineText(1))
	}
}

func TestGridCaretOffset(t *testing.T) {
	g := layoutGrid(t, "ab\ncd", 0)
	tests := []struct {
		pos  text.Position
		want Point
	}{
		{text.NewPosition(0), Point{0, 0}},
		{text.NewPosition(2), Point{16, 0}},
		{text.NewPosition(3), Point{0, 10}},
		{text.NewPosition(5), Point{16, 10}},
	}
	for _, tt := range tests {
		if got := g.CaretOffsetFor(tt.pos, Rect{}); got != tt.want {
			t.Errorf("CaretOffsetFor(%d) = %v, want %v", tt.pos.Offset, got, tt.want)
		}
	}
}

func TestGridWrapBoundaryAffinity(t *testing.T) {
	g := layoutGrid(t, "abcde", 3*8)

	// Offset 3 is both the end of line 0 and the start of line 1.
	down := g.CaretOffsetFor(text.NewPosition(3), Rect{})
	if down.Y != 10 {
		t.Errorf("downstream caret on line %v, want next line", down.Y/10)
	}
	up := g.CaretOffsetFor(text.Position{Offset: 3, Affinity: text.Upstream}, Rect{})
	if up.Y != 0 || up.X != 24 {
		t.Errorf("upstream caret = %v, want end of first line", up)
	}
}

func TestGridPositionForPoint(t *testing.T) {
	g := layoutGrid(t, "ab\ncd", 0)
	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"origin", Point{0, 0}, 0},
		{"mid first cell rounds down", Point{3, 5}, 0},
		{"past midpoint rounds up", Point{5, 5}, 1},
		{"second line", Point{0, 15}, 3},
		{"below text clamps to last line", Point{0, 99}, 3},
		{"above text clamps to first line", Point{0, -5}, 0},
		{"right of line end", Point{900, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.PositionForPoint(tt.p); got.Offset != tt.want {
				t.Errorf("PositionForPoint(%v) = %d, want %d", tt.p, got.Offset, tt.want)
			}
		})
	}
}

func TestGridPositionForPointUpstreamAtWrap(t *testing.T) {
	g := layoutGrid(t, "abcde", 3*8)
	pos := g.PositionForPoint(Point{900, 0})
	if pos.Offset != 3 || pos.Affinity != text.Upstream {
		t.Errorf("point past soft-wrapped line = %v, want offset 3 upstream", pos)
	}
}

func TestGridWordBoundary(t *testing.T) {
	g := layoutGrid(t, "foo   bar_baz, qux", 0)
	tests := []struct {
		name   string
		offset int
		want   text.Range
	}{
		{"inside word", 1, text.NewRange(0, 3)},
		{"inside whitespace run", 4, text.NewRange(3, 6)},
		{"underscore joins word", 8, text.NewRange(6, 13)},
		{"symbol is its own class", 13, text.NewRange(13, 14)},
		{"at end probes last rune", 18, text.NewRange(15, 18)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.WordBoundaryAt(text.NewPosition(tt.offset))
			if !ok {
				t.Fatal("WordBoundaryAt not ok")
			}
			if !got.Equals(tt.want) {
				t.Errorf("WordBoundaryAt(%d) = %s, want %s", tt.offset, got, tt.want)
			}
		})
	}
}

func TestGridWordBoundaryEmptyText(t *testing.T) {
	g := layoutGrid(t, "", 0)
	if _, ok := g.WordBoundaryAt(text.NewPosition(0)); ok {
		t.Error("empty text should report no word boundary")
	}
}

func TestGridLineBoundary(t *testing.T) {
	g := layoutGrid(t, "ab\ncdef", 0)
	got, ok := g.LineBoundaryAt(text.NewPosition(4))
	if !ok {
		t.Fatal("LineBoundaryAt not ok")
	}
	if !got.Equals(text.NewRange(3, 7)) {
		t.Errorf("LineBoundaryAt(4) = %s, want [3:7)", got)
	}
}

func TestGridBoxesForSelection(t *testing.T) {
	g := layoutGrid(t, "ab\ncd", 0)
	boxes := g.BoxesForSelection(text.NewSelection(1, 4))
	if len(boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(boxes))
	}
	if boxes[0].Left != 8 || boxes[0].Right != 16 || boxes[0].Top != 0 {
		t.Errorf("first box = %+v", boxes[0])
	}
	if boxes[1].Left != 0 || boxes[1].Right != 8 || boxes[1].Top != 10 {
		t.Errorf("second box = %+v", boxes[1])
	}
}

func TestGridBoxesForCollapsedSelection(t *testing.T) {
	g := layoutGrid(t, "ab", 0)
	if boxes := g.BoxesForSelection(text.CollapsedSelection(1)); boxes != nil {
		t.Errorf("collapsed selection yielded boxes: %v", boxes)
	}
}

func TestGridWideCluster(t *testing.T) {
	g := layoutGrid(t, "a日b", 0)
	// The CJK cluster takes two cells.
	if got := g.CaretOffsetFor(text.NewPosition(2), Rect{}); got.X != 8+16 {
		t.Errorf("caret after wide cluster at %v, want 24", got.X)
	}
}
