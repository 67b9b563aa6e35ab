package field

import (
	"time"

	"github.com/dshills/fieldkit/internal/anim"
	"github.com/dshills/fieldkit/internal/layout"
)

// DefaultScrollDuration is the caret scroll-into-view animation length.
const DefaultScrollDuration = 100 * time.Millisecond

// caretScroller brings the caret rectangle back inside the viewport
// (plus a margin) whenever a text or selection change moves it out.
// Scheduling is coalesced: any number of requests within one frame
// produce a single adjustment at the frame's post-layout callback,
// guarded by the in-flight flag.
type caretScroller struct {
	viewport   float64
	margin     float64
	duration   time.Duration
	horizontal bool

	offset   float64
	inFlight bool
	anim     *anim.Animation
}

// schedule requests a scroll adjustment; repeated calls before the
// post-layout callback coalesce.
func (s *caretScroller) schedule() {
	s.inFlight = true
}

// pending returns true if an adjustment is scheduled.
func (s *caretScroller) pending() bool {
	return s.inFlight
}

// targetFor computes the scroll offset that brings rect within the
// viewport plus the margin. With no intervening change the computation
// is idempotent: the same rect yields the same target.
func (s *caretScroller) targetFor(rect layout.Rect) float64 {
	leading, trailing := rect.Top, rect.Bottom
	if s.horizontal {
		leading, trailing = rect.Left, rect.Right
	}
	target := s.offset
	switch {
	case leading < s.offset+s.margin:
		target = leading - s.margin
	case trailing > s.offset+s.viewport-s.margin:
		target = trailing - s.viewport + s.margin
	}
	if target < 0 {
		target = 0
	}
	return target
}

// adjust runs the scheduled adjustment against the current caret rect,
// clearing the in-flight flag. Starting a new animation cancels the
// previous one.
func (s *caretScroller) adjust(rect layout.Rect, now time.Time) {
	s.inFlight = false
	target := s.targetFor(rect)
	if target == s.offset {
		return
	}
	s.anim = anim.Start(s.offset, target, now, s.duration, anim.EaseInOut)
}

// advance samples the scroll animation into the offset.
func (s *caretScroller) advance(now time.Time) float64 {
	if s.anim.Active() {
		s.offset = s.anim.ValueAt(now)
		s.anim.DoneAt(now)
	}
	return s.offset
}
