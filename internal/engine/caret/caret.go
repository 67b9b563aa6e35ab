// Package caret computes caret geometry: the caret rectangle for a
// text position, and the floating-cursor drag that lets a pointer move
// a continuous cursor which snaps back to a discrete text position on
// release.
package caret

import (
	"time"

	"github.com/dshills/fieldkit/internal/anim"
	"github.com/dshills/fieldkit/internal/engine/text"
	"github.com/dshills/fieldkit/internal/layout"
)

// DefaultResetDuration is how long the floating cursor takes to settle
// onto its resting text position after the drag ends.
const DefaultResetDuration = 125 * time.Millisecond

// Insets is a margin around the text content's extent, within which
// the floating cursor may travel.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Metrics is the derived caret geometry for one position.
type Metrics struct {
	// Offset is the caret's top-left point.
	Offset layout.Point

	// FullHeight is the full glyph height at the position; HasFullHeight
	// is false when the layout cannot provide it.
	FullHeight    float64
	HasFullHeight bool
}

// Config holds the caret's visual parameters.
type Config struct {
	// CursorOffset shifts the caret rectangle from the glyph offset.
	CursorOffset layout.Point

	// HeightMargin insets the caret vertically on platforms that do
	// not center it over the glyph's full height.
	HeightMargin float64

	// VerticalCentering centers the caret over the glyph's full
	// height (the Mac-family behavior).
	VerticalCentering bool

	// FloatingMargin bounds the floating cursor's travel beyond the
	// text extent.
	FloatingMargin Insets

	// ResetDuration is the floating-cursor settle animation length.
	ResetDuration time.Duration
}

// Controller computes caret rectangles and runs the floating-cursor
// drag state machine. It is not safe for concurrent use; all calls
// happen on the UI thread.
type Controller struct {
	para layout.Paragraph
	cfg  Config

	// Rect cache, keyed on (position, prototype). The geometry query
	// is expensive, so recompute only when the key changes.
	cachedPos   text.Position
	cachedProto layout.Rect
	cachedRect  layout.Rect
	hasCache    bool

	// Floating-cursor drag state.
	active         bool
	proto          layout.Rect
	relativeOrigin layout.Point
	pointerOrigin  layout.Point
	hasPointer     bool
	prevRaw        layout.Point
	startCaret     layout.Rect
	lastBounded    layout.Point
	lastPosition   text.Position
	updated        bool
	resetLeft      bool
	resetRight     bool
	resetTop       bool
	resetBottom    bool

	// Settle animation after the drag ends.
	reset     *anim.Animation
	resetFrom layout.Rect
	resetTo   layout.Rect
	pending   text.Selection
	hasPend   bool

	// onCommit receives the settled collapsed selection when the
	// reset animation completes.
	onCommit func(sel text.Selection)
}

// NewController creates a caret controller over the given layout.
func NewController(para layout.Paragraph, cfg Config) *Controller {
	if cfg.ResetDuration <= 0 {
		cfg.ResetDuration = DefaultResetDuration
	}
	return &Controller{para: para, cfg: cfg}
}

// OnCommit registers the callback receiving the selection committed
// when a floating-cursor drag settles.
func (c *Controller) OnCommit(fn func(sel text.Selection)) {
	c.onCommit = fn
}

// InvalidateCache drops the cached caret rectangle, forcing the next
// query to recompute. Call after the paragraph is re-laid out.
func (c *Controller) InvalidateCache() {
	c.hasCache = false
}

// MetricsFor returns the caret metrics at a position.
func (c *Controller) MetricsFor(pos text.Position, proto layout.Rect) Metrics {
	m := Metrics{Offset: c.para.CaretOffsetFor(pos, proto)}
	m.FullHeight, m.HasFullHeight = c.para.FullGlyphHeightFor(pos, proto)
	return m
}

// CaretRectFor returns the caret rectangle at a position, cached on
// (position, prototype).
func (c *Controller) CaretRectFor(pos text.Position, proto layout.Rect) layout.Rect {
	if c.hasCache && pos.Equals(c.cachedPos) && proto == c.cachedProto {
		return c.cachedRect
	}
	m := c.MetricsFor(pos, proto)
	rect := proto.Shift(m.Offset).Translate(c.cfg.CursorOffset.X, c.cfg.CursorOffset.Y)
	if c.cfg.VerticalCentering {
		if m.HasFullHeight {
			top := m.Offset.Y + (m.FullHeight-proto.Height())/2 + c.cfg.CursorOffset.Y
			rect = layout.RectFromLTWH(rect.Left, top, rect.Width(), proto.Height())
		}
	} else {
		rect.Top += c.cfg.HeightMargin
		rect.Bottom -= c.cfg.HeightMargin
	}
	c.cachedPos = pos
	c.cachedProto = proto
	c.cachedRect = rect
	c.hasCache = true
	return rect
}

// StartFloating begins a floating-cursor drag anchored at the current
// selection's caret. All drag bookkeeping is reset.
func (c *Controller) StartFloating(sel text.Selection, proto layout.Rect) {
	c.active = true
	c.proto = proto
	c.updated = false
	c.hasPointer = false
	c.relativeOrigin = layout.Point{}
	c.resetLeft, c.resetRight, c.resetTop, c.resetBottom = false, false, false, false
	c.reset.Cancel()
	c.hasPend = false

	c.startCaret = c.CaretRectFor(sel.ExtentPosition(), proto)
	c.lastBounded = c.startCaret.TopLeft()
	c.lastPosition = sel.ExtentPosition()
}

// UpdateFloating advances the drag with a raw pointer offset. The
// first update after StartFloating captures the pointer origin, so
// subsequent deltas are relative to it. Returns the floating cursor's
// current rectangle.
func (c *Controller) UpdateFloating(raw layout.Point) layout.Rect {
	if !c.active {
		return c.FloatingRect()
	}
	if !c.hasPointer {
		c.pointerOrigin = raw
		// prevRaw tracks candidate-space points; the first candidate is
		// the drag anchor itself.
		c.prevRaw = c.startCaret.TopLeft()
		c.hasPointer = true
	}
	// Candidate offset: the drag anchor shifted by the pointer's
	// travel since the origin.
	candidate := c.startCaret.TopLeft().Add(raw.Sub(c.pointerOrigin))
	bounded := c.boundedOffset(candidate)

	// Hit-testing uses the unclamped point so the text position keeps
	// tracking the finger even outside the bounds.
	c.lastPosition = c.para.PositionForPoint(candidate)
	c.lastBounded = bounded
	c.updated = true
	return c.FloatingRect()
}

// boundedOffset clamps a candidate offset to the text bounds plus the
// configured margin, maintaining the per-edge rubber-band flags: once
// the drag pushes past an edge, reversing back across it re-anchors
// the relative origin at the edge so the cursor resumes smoothly
// instead of leaping to the pointer's absolute position.
func (c *Controller) boundedOffset(raw layout.Point) layout.Point {
	delta := raw.Sub(c.prevRaw)
	c.prevRaw = raw

	lh := c.para.PreferredLineHeight()
	leftBound := -c.cfg.FloatingMargin.Left
	topBound := -c.cfg.FloatingMargin.Top
	rightBound := c.para.Width() + c.cfg.FloatingMargin.Right
	bottomBound := c.para.Height() - lh + c.cfg.FloatingMargin.Bottom

	if c.resetLeft && delta.X > 0 {
		c.relativeOrigin.X = raw.X - leftBound
		c.resetLeft = false
	} else if c.resetRight && delta.X < 0 {
		c.relativeOrigin.X = raw.X - rightBound
		c.resetRight = false
	}
	if c.resetTop && delta.Y > 0 {
		c.relativeOrigin.Y = raw.Y - topBound
		c.resetTop = false
	} else if c.resetBottom && delta.Y < 0 {
		c.relativeOrigin.Y = raw.Y - bottomBound
		c.resetBottom = false
	}

	adjX := raw.X - c.relativeOrigin.X
	adjY := raw.Y - c.relativeOrigin.Y

	if adjX < leftBound && delta.X < 0 {
		c.resetLeft = true
	} else if adjX > rightBound && delta.X > 0 {
		c.resetRight = true
	}
	if adjY < topBound && delta.Y < 0 {
		c.resetTop = true
	} else if adjY > bottomBound && delta.Y > 0 {
		c.resetBottom = true
	}

	return layout.Point{X: clamp(adjX, leftBound, rightBound), Y: clamp(adjY, topBound, bottomBound)}
}

// EndFloating finishes the drag. If any update occurred, the cursor
// interpolates from its last floating position to the resting caret
// rectangle; the settled selection is committed when the animation
// completes.
func (c *Controller) EndFloating(now time.Time) {
	if !c.active {
		return
	}
	c.active = false
	if !c.updated {
		return
	}
	c.resetFrom = c.FloatingRect()
	c.resetTo = c.CaretRectFor(c.lastPosition, c.proto)
	c.reset = anim.Start(0, 1, now, c.cfg.ResetDuration, anim.Decelerate)
	c.pending = text.CollapsedAt(c.lastPosition)
	c.hasPend = true
}

// TickReset advances the settle animation. It returns the rectangle to
// paint and whether the animation is still running; on completion the
// pending selection is committed and all drag bookkeeping cleared.
func (c *Controller) TickReset(now time.Time) (layout.Rect, bool) {
	if !c.reset.Active() {
		return c.resetTo, false
	}
	t := c.reset.ValueAt(now)
	rect := lerpRect(c.resetFrom, c.resetTo, t)
	if c.reset.DoneAt(now) {
		if c.hasPend && c.onCommit != nil {
			c.onCommit(c.pending)
		}
		c.hasPend = false
		c.updated = false
		return c.resetTo, false
	}
	return rect, true
}

// FloatingActive returns true during a drag.
func (c *Controller) FloatingActive() bool {
	return c.active
}

// Resetting returns true while the settle animation runs.
func (c *Controller) Resetting() bool {
	return c.reset.Active()
}

// FloatingRect returns the floating cursor's current rectangle.
func (c *Controller) FloatingRect() layout.Rect {
	return c.proto.Shift(c.lastBounded)
}

// LastPosition returns the text position nearest the drag's last
// point.
func (c *Controller) LastPosition() text.Position {
	return c.lastPosition
}

func lerpRect(a, b layout.Rect, t float64) layout.Rect {
	return layout.Rect{
		Left:   a.Left + (b.Left-a.Left)*t,
		Top:    a.Top + (b.Top-a.Top)*t,
		Right:  a.Right + (b.Right-a.Right)*t,
		Bottom: a.Bottom + (b.Bottom-a.Bottom)*t,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
