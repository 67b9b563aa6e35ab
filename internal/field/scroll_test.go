package field

import (
	"testing"
	"time"

	"github.com/dshills/fieldkit/internal/layout"
)

func caretAt(x float64) layout.Rect {
	return layout.RectFromLTWH(x, 0, 2, 10)
}

func TestScrollTargetIdempotent(t *testing.T) {
	s := caretScroller{viewport: 100, margin: 10, horizontal: true}

	rect := caretAt(150)
	first := s.targetFor(rect)
	s.offset = first
	second := s.targetFor(rect)
	if first != second {
		t.Errorf("targetFor not idempotent: %v then %v", first, second)
	}
}

func TestScrollTrailingEdge(t *testing.T) {
	s := caretScroller{viewport: 100, margin: 10, horizontal: true}

	// Caret at 150 with a 100-wide viewport: trailing edge 152 must sit
	// at viewport minus margin.
	got := s.targetFor(caretAt(150))
	want := 152.0 - 100 + 10
	if got != want {
		t.Errorf("target = %v, want %v", got, want)
	}
}

func TestScrollLeadingEdge(t *testing.T) {
	s := caretScroller{viewport: 100, margin: 10, horizontal: true, offset: 80}

	got := s.targetFor(caretAt(50))
	if got != 40 {
		t.Errorf("target = %v, want 40 (caret left minus margin)", got)
	}
}

func TestScrollNeverNegative(t *testing.T) {
	s := caretScroller{viewport: 100, margin: 10, horizontal: true}

	if got := s.targetFor(caretAt(0)); got != 0 {
		t.Errorf("target = %v, want clamped to 0", got)
	}
}

func TestScrollCaretInsideViewportNoChange(t *testing.T) {
	s := caretScroller{viewport: 100, margin: 10, horizontal: true, offset: 20}

	if got := s.targetFor(caretAt(50)); got != 20 {
		t.Errorf("target = %v, want unchanged 20", got)
	}
}

func TestScrollVerticalAxis(t *testing.T) {
	s := caretScroller{viewport: 50, margin: 5}

	rect := layout.RectFromLTWH(0, 90, 2, 10)
	got := s.targetFor(rect)
	want := 100.0 - 50 + 5
	if got != want {
		t.Errorf("vertical target = %v, want %v", got, want)
	}
}

func TestScrollAdjustAnimates(t *testing.T) {
	s := caretScroller{viewport: 100, margin: 10, horizontal: true, duration: 100 * time.Millisecond}
	now := time.Unix(0, 0)

	s.schedule()
	if !s.pending() {
		t.Fatal("schedule did not mark pending")
	}
	s.adjust(caretAt(150), now)
	if s.pending() {
		t.Error("adjust did not clear the in-flight flag")
	}

	mid := s.advance(now.Add(50 * time.Millisecond))
	if mid <= 0 || mid >= 62 {
		t.Errorf("mid-animation offset = %v", mid)
	}
	end := s.advance(now.Add(200 * time.Millisecond))
	if end != 62 {
		t.Errorf("final offset = %v, want 62", end)
	}
}

func TestScrollAdjustNoopWhenAtTarget(t *testing.T) {
	s := caretScroller{viewport: 100, margin: 10, horizontal: true, offset: 20}
	s.schedule()
	s.adjust(caretAt(50), time.Unix(0, 0))
	if s.anim.Active() {
		t.Error("animation started for a no-op adjustment")
	}
}
