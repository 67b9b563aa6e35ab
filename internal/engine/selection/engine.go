package selection

import (
	"github.com/dshills/fieldkit/internal/engine/text"
	"github.com/dshills/fieldkit/internal/layout"
)

// Engine computes new selections from navigation intents. It holds no
// text of its own; every operation takes the current editing value and
// returns the resulting selection or value.
//
// The vertical-navigation memory (reset anchor and boundary flag) is
// scoped to shift-held vertical navigation sessions; the owner must
// call ResetVerticalMemory on any non-vertical selection change.
type Engine struct {
	para     layout.Paragraph
	profile  PlatformProfile
	proto    layout.Rect
	obscured bool

	// Vertical navigation memory: the extent offset to restore when a
	// shift-selection backs off a top/bottom boundary snap.
	resetOffset  int
	verticalEdge bool
}

// New creates an engine over the given paragraph layout.
func New(para layout.Paragraph, profile PlatformProfile) *Engine {
	return &Engine{para: para, profile: profile}
}

// Profile returns the engine's platform profile.
func (e *Engine) Profile() PlatformProfile {
	return e.profile
}

// SetObscured switches password mode, which redefines word and line
// selection to cover the whole text.
func (e *Engine) SetObscured(obscured bool) {
	e.obscured = obscured
}

// SetCaretPrototype sets the caret shape used for geometry queries.
func (e *Engine) SetCaretPrototype(proto layout.Rect) {
	e.proto = proto
}

// ResetVerticalMemory clears the vertical-navigation reset anchor.
func (e *Engine) ResetVerticalMemory() {
	e.resetOffset = 0
	e.verticalEdge = false
}

// SelectWordAt returns the word selection at a position. In obscured
// mode the "word" is the entire text, so selection boxes cannot leak
// character counts. Clicking at or past the end of a word collapses
// instead of selecting.
func (e *Engine) SelectWordAt(v text.EditingValue, pos text.Position) text.Selection {
	if e.obscured {
		return text.NewSelection(0, v.UnitLen())
	}
	word, ok := e.para.WordBoundaryAt(pos)
	if !ok {
		return text.CollapsedAt(pos)
	}
	if pos.Offset >= word.End {
		return text.CollapsedAt(pos)
	}
	return text.NewSelection(word.Start, word.End)
}

// SelectLineAt returns the visual-line selection at a position, with
// the same two special cases as SelectWordAt.
func (e *Engine) SelectLineAt(v text.EditingValue, pos text.Position) text.Selection {
	if e.obscured {
		return text.NewSelection(0, v.UnitLen())
	}
	line, ok := e.para.LineBoundaryAt(pos)
	if !ok {
		return text.CollapsedAt(pos)
	}
	if pos.Offset >= line.End {
		return text.CollapsedAt(pos)
	}
	return text.NewSelection(line.Start, line.End)
}

// SelectAll returns a selection covering the whole text.
func (e *Engine) SelectAll(v text.EditingValue) text.Selection {
	return text.NewSelection(0, v.UnitLen())
}

// MoveLeft steps the caret one code unit left. With an existing
// non-collapsed selection and no shift, the selection collapses to its
// start instead of moving.
func (e *Engine) MoveLeft(v text.EditingValue, shift bool) text.Selection {
	sel := v.Selection
	if !shift && !sel.IsCollapsed() {
		return sel.CollapseToStart()
	}
	ext := sel.Extent
	if ext > 0 {
		ext--
	}
	return e.place(sel, ext, shift)
}

// MoveRight steps the caret one code unit right, collapsing a
// non-shifted selection to its end.
func (e *Engine) MoveRight(v text.EditingValue, shift bool) text.Selection {
	sel := v.Selection
	if !shift && !sel.IsCollapsed() {
		return sel.CollapseToEnd()
	}
	ext := sel.Extent
	if ext < v.UnitLen() {
		ext++
	}
	return e.place(sel, ext, shift)
}

// MoveWordLeft moves the caret to the start of the word left of it,
// skipping contiguous whitespace first.
func (e *Engine) MoveWordLeft(v text.EditingValue, shift bool) text.Selection {
	sel := v.Selection
	o := skipWhitespaceLeft(v.Text, sel.Extent)
	target := 0
	if o > 0 {
		word, ok := e.para.WordBoundaryAt(text.NewPosition(o - 1))
		if !ok {
			return sel
		}
		target = word.Start
	}
	return e.place(sel, target, shift)
}

// MoveWordRight moves the caret to the end of the word right of it,
// skipping contiguous whitespace first.
func (e *Engine) MoveWordRight(v text.EditingValue, shift bool) text.Selection {
	sel := v.Selection
	n := v.UnitLen()
	o := skipWhitespaceRight(v.Text, sel.Extent)
	target := n
	if o < n {
		word, ok := e.para.WordBoundaryAt(text.NewPosition(o))
		if !ok {
			return sel
		}
		target = word.End
	}
	return e.place(sel, target, shift)
}

// MoveLineLeft moves the caret to the start of its visual line.
func (e *Engine) MoveLineLeft(v text.EditingValue, shift bool) text.Selection {
	sel := v.Selection
	o := skipWhitespaceLeft(v.Text, sel.Extent)
	line, ok := e.para.LineBoundaryAt(text.Position{Offset: o, Affinity: text.Upstream})
	if !ok {
		return sel
	}
	return e.place(sel, line.Start, shift)
}

// MoveLineRight moves the caret to the end of its visual line.
func (e *Engine) MoveLineRight(v text.EditingValue, shift bool) text.Selection {
	sel := v.Selection
	o := skipWhitespaceRight(v.Text, sel.Extent)
	line, ok := e.para.LineBoundaryAt(text.NewPosition(o))
	if !ok {
		return sel
	}
	return e.place(sel, line.End, shift)
}

// MoveUp moves the caret to the line above, preserving the horizontal
// position. At the first line the extent snaps to offset 0; a
// shift-selection remembers the pre-snap offset so moving back down
// restores it.
func (e *Engine) MoveUp(v text.EditingValue, shift bool) text.Selection {
	return e.moveVertical(v, true, shift)
}

// MoveDown moves the caret to the line below; at the last line the
// extent snaps to the end of text.
func (e *Engine) MoveDown(v text.EditingValue, shift bool) text.Selection {
	return e.moveVertical(v, false, shift)
}

func (e *Engine) moveVertical(v text.EditingValue, up, shift bool) text.Selection {
	sel := v.Selection
	origin := e.para.CaretOffsetFor(sel.ExtentPosition(), e.proto)
	lh := e.para.PreferredLineHeight()

	// The caret offset is anchored at the glyph's top-left, so half a
	// line up or one and a half lines down lands mid-line.
	var target layout.Point
	if up {
		target = origin.Translate(0, -0.5*lh)
	} else {
		target = origin.Translate(0, 1.5*lh)
	}
	pos := e.para.PositionForPoint(target)

	var extent int
	switch {
	case pos.Offset == sel.Extent:
		// No line above/below: snap to the text edge.
		if up {
			extent = 0
		} else {
			extent = v.UnitLen()
		}
		if shift {
			// Remember the pre-snap extent so backing off the boundary
			// can restore it.
			e.resetOffset = sel.Extent
			e.verticalEdge = true
		}
	case e.verticalEdge && shift:
		// Backing off a boundary snap restores the remembered offset.
		extent = e.resetOffset
		e.verticalEdge = false
	default:
		extent = pos.Offset
		e.resetOffset = extent
	}

	if shift {
		return sel.WithExtent(extent)
	}
	return text.CollapsedSelection(extent)
}

// place resolves a movement target into a selection, extending when
// shift is held and clearing the vertical memory since this is a
// non-vertical change.
func (e *Engine) place(sel text.Selection, extent int, shift bool) text.Selection {
	e.ResetVerticalMemory()
	if shift {
		return sel.WithExtent(extent).WithDirectional(true)
	}
	return text.CollapsedSelection(extent)
}

func skipWhitespaceLeft(s string, offset int) int {
	units := text.Units(s)
	o := offset
	for o > 0 && IsWhitespaceUnit(units[o-1]) {
		o--
	}
	return o
}

func skipWhitespaceRight(s string, offset int) int {
	units := text.Units(s)
	o := offset
	for o < len(units) && IsWhitespaceUnit(units[o]) {
		o++
	}
	return o
}
