package field

import (
	"context"
	"time"

	"github.com/dshills/fieldkit/internal/clipboard"
	"github.com/dshills/fieldkit/internal/engine/caret"
	"github.com/dshills/fieldkit/internal/engine/selection"
	"github.com/dshills/fieldkit/internal/engine/text"
	"github.com/dshills/fieldkit/internal/field/formatter"
	"github.com/dshills/fieldkit/internal/input/ime"
	"github.com/dshills/fieldkit/internal/input/key"
	"github.com/dshills/fieldkit/internal/layout"
)

// Synchronizer owns the authoritative editing value and mediates
// between local mutations, the platform input channel, and the render
// layer. It implements ime.Handler for inbound platform callbacks.
type Synchronizer struct {
	opts    Options
	para    layout.Paragraph
	engine  *selection.Engine
	caret   *caret.Controller
	channel ime.Channel
	conn    ime.Connection
	clip    clipboard.Clipboard
	filter  key.Filter

	formatters formatter.Chain

	value      text.EditingValue
	lastRemote text.EditingValue
	hasRemote  bool
	focused    bool

	toolbarVisible bool

	// Obscured-mode reveal countdown: while revealTicks is positive
	// the character at revealIndex renders in clear text.
	revealIndex int
	revealTicks int

	blink    *Blink
	scroller caretScroller

	caretProto    layout.Rect
	lastCaretRect layout.Rect
	hasCaretRect  bool

	// Long-press drag session.
	dragBase    int
	dragging    bool
	longPressed text.Selection
	hasLongSel  bool

	style    ime.Style
	hasStyle bool
	geom     ime.EditableGeometry
	hasGeom  bool

	clock func() time.Time

	onChanged   []func(string)
	onSelection []func(sel text.Selection, cause Cause)
	onCaret     []func(rect layout.Rect)
	onComplete  []func(action ime.Action)
}

// NewSynchronizer creates a synchronizer for one field.
func NewSynchronizer(para layout.Paragraph, profile selection.PlatformProfile, channel ime.Channel, clip clipboard.Clipboard, opts Options) *Synchronizer {
	s := &Synchronizer{
		opts:    opts,
		para:    para,
		engine:  selection.New(para, profile),
		channel: channel,
		clip:    clip,
		filter:  profile.KeyFilter(),
		value:   text.EmptyValue,
		blink:   NewBlink(opts.BlinkHalfPeriod, opts.BlinkInitialDelay, profile.CursorOpacityAnimates),
		clock:   time.Now,
	}
	s.engine.SetObscured(opts.Obscure)
	fm := opts.FloatingMargin
	if fm <= 0 {
		fm = DefaultFloatingMargin
	}
	s.caret = caret.NewController(para, caret.Config{
		VerticalCentering: profile.CaretVerticalCentering,
		HeightMargin:      2,
		FloatingMargin:    caret.Insets{Left: fm, Top: fm, Right: fm, Bottom: fm},
	})
	s.caret.OnCommit(s.commitFloatingSelection)
	s.blink.OnTick(s.blinkTick)
	s.scroller = caretScroller{
		viewport:   opts.Viewport,
		margin:     opts.ScrollMargin,
		duration:   opts.ScrollDuration,
		horizontal: !opts.Multiline,
	}
	return s
}

// SetClock injects a time source for deterministic tests.
func (s *Synchronizer) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetFormatters installs the ordered input-formatter pipeline.
func (s *Synchronizer) SetFormatters(fs ...formatter.Formatter) {
	s.formatters = formatter.Chain(fs)
}

// SetCaretPrototype sets the caret shape used for geometry queries.
func (s *Synchronizer) SetCaretPrototype(proto layout.Rect) {
	s.caretProto = proto
	s.engine.SetCaretPrototype(proto)
}

// OnChanged registers a callback fired when the text changes.
func (s *Synchronizer) OnChanged(fn func(string)) {
	s.onChanged = append(s.onChanged, fn)
}

// OnSelectionChanged registers a callback fired on every selection
// change, with the cause.
func (s *Synchronizer) OnSelectionChanged(fn func(sel text.Selection, cause Cause)) {
	s.onSelection = append(s.onSelection, fn)
}

// OnCaretChanged registers a callback fired when the painted caret
// rectangle changes.
func (s *Synchronizer) OnCaretChanged(fn func(rect layout.Rect)) {
	s.onCaret = append(s.onCaret, fn)
}

// OnEditingComplete registers a callback fired when the platform's
// action key finalizes editing.
func (s *Synchronizer) OnEditingComplete(fn func(action ime.Action)) {
	s.onComplete = append(s.onComplete, fn)
}

// Value returns the authoritative editing value. Callers receive a
// copy; the synchronizer exclusively owns the value.
func (s *Synchronizer) Value() text.EditingValue {
	return s.value
}

// HasFocus returns true while an editing session is active.
func (s *Synchronizer) HasFocus() bool {
	return s.focused
}

// ToolbarVisible returns whether the selection toolbar should show.
func (s *Synchronizer) ToolbarVisible() bool {
	return s.toolbarVisible
}

// Focus opens an editing session: attaches the platform connection
// (unless read-only), collapses an invalid selection to end-of-text,
// and starts the caret blink.
func (s *Synchronizer) Focus() error {
	if s.focused {
		return nil
	}
	s.focused = true
	if !s.value.Selection.IsValid() {
		s.value = s.value.WithSelection(text.CollapsedSelection(s.value.UnitLen()))
	}
	if !s.opts.ReadOnly {
		conn, err := s.channel.Attach(s.opts.imeConfig(), s)
		if err != nil {
			s.focused = false
			return err
		}
		s.conn = conn
		conn.Show()
		if s.hasStyle {
			conn.SetStyle(s.style)
		}
		if s.hasGeom {
			conn.SetEditableSizeAndTransform(s.geom)
		}
		conn.SetEditingState(s.value)
		s.lastRemote = s.value
		s.hasRemote = true
	}
	s.syncBlink()
	return nil
}

// Blur closes the editing session. The text is preserved; the
// selection is discarded and composing state cleared.
func (s *Synchronizer) Blur() {
	if !s.focused {
		return
	}
	s.focused = false
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.finalize()
}

// finalize drops selection, composing and transient visual state.
func (s *Synchronizer) finalize() {
	s.value = s.value.ClearSelection()
	s.hasRemote = false
	s.toolbarVisible = false
	s.dragging = false
	s.hasLongSel = false
	s.blink.Stop()
	s.revealTicks = 0
	s.engine.ResetVerticalMemory()
}

// SetStyle records the field's text style and pushes it when
// connected.
func (s *Synchronizer) SetStyle(st ime.Style) {
	s.style = st
	s.hasStyle = true
	if s.conn != nil {
		s.conn.SetStyle(st)
	}
}

// SetEditableGeometry records the editable's size and placement and
// pushes it when connected.
func (s *Synchronizer) SetEditableGeometry(g ime.EditableGeometry) {
	s.geom = g
	s.hasGeom = true
	if s.conn != nil {
		s.conn.SetEditableSizeAndTransform(g)
	}
}

// SetValue replaces the value programmatically, running the full
// update pipeline.
func (s *Synchronizer) SetValue(v text.EditingValue) {
	s.engine.ResetVerticalMemory()
	s.apply(v, false, CauseKeyboard)
}

// Insert replaces the current selection with txt, as a hardware
// keyboard would.
func (s *Synchronizer) Insert(txt string) {
	if s.opts.ReadOnly || !s.value.Selection.IsValid() {
		return
	}
	nv, err := s.value.ReplaceSelection(txt)
	if err != nil {
		return
	}
	s.engine.ResetVerticalMemory()
	s.apply(nv, false, CauseKeyboard)
}

// UpdateEditingValue implements ime.Handler: a platform-originated
// edit enters the update pipeline.
func (s *Synchronizer) UpdateEditingValue(v text.EditingValue) {
	s.engine.ResetVerticalMemory()
	s.apply(v, true, CauseKeyboard)
}

// PerformAction implements ime.Handler.
func (s *Synchronizer) PerformAction(action ime.Action) {
	switch action {
	case ime.ActionNewline:
		if s.opts.Multiline {
			s.Insert("\n")
			return
		}
		s.completeEditing(action)
	case ime.ActionDone, ime.ActionGo, ime.ActionSend, ime.ActionSearch,
		ime.ActionNext, ime.ActionPrevious:
		s.completeEditing(action)
	}
}

func (s *Synchronizer) completeEditing(action ime.Action) {
	s.value = s.value.ClearComposing()
	s.pushRemoteIfNeeded()
	for _, fn := range s.onComplete {
		fn(action)
	}
}

// UpdateFloatingCursor implements ime.Handler, driving the floating
// cursor state machine.
func (s *Synchronizer) UpdateFloatingCursor(ev ime.FloatingCursorEvent) {
	switch ev.State {
	case ime.FloatingStart:
		s.caret.StartFloating(s.value.Selection, s.caretProto)
	case ime.FloatingUpdate:
		s.caret.UpdateFloating(ev.Point)
	case ime.FloatingEnd:
		s.caret.EndFloating(s.clock())
	}
}

func (s *Synchronizer) commitFloatingSelection(sel text.Selection) {
	if sel.Equals(s.value.Selection) {
		return
	}
	s.engine.ResetVerticalMemory()
	s.apply(s.value.WithSelection(sel), false, CauseForcePress)
}

// ConnectionClosed implements ime.Handler. The platform closing the
// connection unilaterally is equivalent to editing being finalized,
// not an error.
func (s *Synchronizer) ConnectionClosed() {
	s.conn = nil
	s.focused = false
	s.finalize()
}

// apply is the update pipeline every edit passes through, whether from
// the hardware keyboard, the platform IME, or a programmatic mutation.
func (s *Synchronizer) apply(proposed text.EditingValue, remote bool, cause Cause) {
	if s.opts.ReadOnly {
		return
	}
	if err := proposed.Validate(); err != nil {
		panic(err)
	}

	textChanged := proposed.Text != s.value.Text
	if textChanged {
		s.toolbarVisible = false
		s.scroller.schedule()
	}
	if s.opts.Obscure && textChanged && proposed.UnitLen() == s.value.UnitLen()+1 {
		s.revealIndex = proposed.Selection.Start() - 1
		if s.revealIndex < 0 {
			s.revealIndex = 0
		}
		s.revealTicks = RevealTicks
	}
	if remote {
		s.lastRemote = proposed
		s.hasRemote = true
	}

	old := s.value
	final := s.formatters.Format(old, proposed)
	selChanged := !final.Selection.Equals(old.Selection)

	s.value = final
	s.pushRemoteIfNeeded()

	// Notify against the committed value: a formatter may have undone
	// the proposed text change.
	if final.Text != old.Text {
		for _, fn := range s.onChanged {
			fn(final.Text)
		}
	}
	if selChanged {
		s.notifySelection(final.Selection, cause)
	}
	// Restart rather than let the caret blink mid-keystroke; the
	// reveal countdown is preserved across this restart.
	s.restartBlink(true)
}

// commitSelection applies a selection-only change.
func (s *Synchronizer) commitSelection(sel text.Selection, cause Cause) {
	if sel.Equals(s.value.Selection) {
		return
	}
	s.scroller.schedule()
	s.apply(s.value.WithSelection(sel), false, cause)
}

func (s *Synchronizer) notifySelection(sel text.Selection, cause Cause) {
	for _, fn := range s.onSelection {
		fn(sel, cause)
	}
}

// pushRemoteIfNeeded sends the authoritative value to the platform
// unless it already holds it, avoiding redundant round trips.
func (s *Synchronizer) pushRemoteIfNeeded() {
	if s.conn == nil {
		return
	}
	if s.hasRemote && s.value.Equals(s.lastRemote) {
		return
	}
	s.conn.SetEditingState(s.value)
	s.lastRemote = s.value
	s.hasRemote = true
}

// restartBlink restarts the caret blink, optionally preserving the
// obscured-character reveal countdown (per-keystroke restarts do).
func (s *Synchronizer) restartBlink(preserveReveal bool) {
	if !preserveReveal {
		s.revealTicks = 0
	}
	if s.shouldBlink() {
		s.blink.Restart(s.clock())
	} else {
		s.blink.Stop()
	}
}

// syncBlink starts or stops the timer to match focus and selection
// state.
func (s *Synchronizer) syncBlink() {
	if s.shouldBlink() {
		if !s.blink.Running() {
			s.blink.Start(s.clock())
		}
	} else if s.blink.Running() {
		s.blink.Stop()
		s.revealTicks = 0
	}
}

func (s *Synchronizer) shouldBlink() bool {
	return s.focused && s.value.Selection.IsValid() && s.value.Selection.IsCollapsed()
}

func (s *Synchronizer) blinkTick() {
	if s.revealTicks > 0 {
		s.revealTicks--
	}
}

// HandleKeyEvent routes a hardware key event through the filtering
// policy and the selection engine. down is the set of currently
// pressed keys. Returns true if the event was consumed.
func (s *Synchronizer) HandleKeyEvent(ctx context.Context, ev key.Event, down key.Set) bool {
	if !s.focused || !s.value.Selection.IsValid() {
		return false
	}
	if !s.filter.Actionable(ev, down) {
		return false
	}
	intent, shift, ok := selection.ResolveIntent(ev, s.engine.Profile())
	if !ok {
		return false
	}

	switch {
	case intent.IsMovement():
		s.commitSelection(s.moveSelection(intent, shift), CauseKeyboard)
		return true
	case intent == selection.IntentSelectAll:
		if !s.opts.CanSelectAll {
			return false
		}
		s.commitSelection(s.engine.SelectAll(s.value), CauseKeyboard)
		return true
	case intent == selection.IntentCopy:
		if !s.opts.CanCopy {
			return false
		}
		_ = selection.Copy(ctx, s.clip, s.value)
		return true
	case intent == selection.IntentCut:
		if !s.opts.CanCut || s.opts.ReadOnly {
			return false
		}
		nv, err := selection.Cut(ctx, s.clip, s.value)
		if err == nil && !nv.Equals(s.value) {
			s.engine.ResetVerticalMemory()
			s.apply(nv, false, CauseKeyboard)
		}
		return true
	case intent == selection.IntentPaste:
		if !s.opts.CanPaste || s.opts.ReadOnly {
			return false
		}
		s.paste(ctx)
		return true
	case intent == selection.IntentDelete:
		if s.opts.ReadOnly {
			return false
		}
		s.applyIfChanged(selection.Delete(s.value))
		return true
	case intent == selection.IntentBackspace:
		if s.opts.ReadOnly {
			return false
		}
		s.applyIfChanged(selection.DeleteBackward(s.value))
		return true
	}
	return false
}

func (s *Synchronizer) applyIfChanged(nv text.EditingValue) {
	if nv.Equals(s.value) {
		return
	}
	s.engine.ResetVerticalMemory()
	s.apply(nv, false, CauseKeyboard)
}

func (s *Synchronizer) moveSelection(intent selection.Intent, shift bool) text.Selection {
	switch intent {
	case selection.IntentMoveLeft:
		return s.engine.MoveLeft(s.value, shift)
	case selection.IntentMoveRight:
		return s.engine.MoveRight(s.value, shift)
	case selection.IntentMoveUp:
		return s.engine.MoveUp(s.value, shift)
	case selection.IntentMoveDown:
		return s.engine.MoveDown(s.value, shift)
	case selection.IntentWordLeft:
		return s.engine.MoveWordLeft(s.value, shift)
	case selection.IntentWordRight:
		return s.engine.MoveWordRight(s.value, shift)
	case selection.IntentLineLeft:
		return s.engine.MoveLineLeft(s.value, shift)
	case selection.IntentLineRight:
		return s.engine.MoveLineRight(s.value, shift)
	}
	return s.value.Selection
}

// paste is the two-phase clipboard paste: the snapshot is captured
// before the asynchronous clipboard read suspends, and the splice runs
// against that snapshot at resume time.
func (s *Synchronizer) paste(ctx context.Context) {
	snap := selection.BeginPaste(s.value)
	clip, err := s.clip.ReadText(ctx)
	if err != nil {
		return
	}
	s.CompletePaste(snap, clip)
}

// BeginPaste captures the paste snapshot for hosts that drive the
// clipboard read themselves.
func (s *Synchronizer) BeginPaste() selection.PasteSnapshot {
	return selection.BeginPaste(s.value)
}

// CompletePaste finishes a two-phase paste.
func (s *Synchronizer) CompletePaste(snap selection.PasteSnapshot, clip string) {
	nv, ok := selection.CompletePaste(snap, clip)
	if !ok {
		return
	}
	s.engine.ResetVerticalMemory()
	s.apply(nv, false, CauseKeyboard)
}

// HandleTapDown collapses the selection at the tapped position.
func (s *Synchronizer) HandleTapDown(p layout.Point) {
	pos := s.para.PositionForPoint(p)
	s.engine.ResetVerticalMemory()
	s.commitSelection(text.CollapsedAt(pos), CauseTap)
}

// HandleDoubleTap selects the word at the tapped position and shows
// the toolbar.
func (s *Synchronizer) HandleDoubleTap(p layout.Point) {
	pos := s.para.PositionForPoint(p)
	s.engine.ResetVerticalMemory()
	s.commitSelection(s.engine.SelectWordAt(s.value, pos), CauseDoubleTap)
	s.toolbarVisible = true
}

// HandleLongPress selects the word at the pressed position (the whole
// text in obscured mode), shows the toolbar, and opens a word-wise
// drag session.
func (s *Synchronizer) HandleLongPress(p layout.Point) {
	pos := s.para.PositionForPoint(p)
	s.engine.ResetVerticalMemory()
	sel := s.engine.SelectWordAt(s.value, pos)
	s.longPressed = sel
	s.hasLongSel = true
	s.commitSelection(sel, CauseLongPress)
	s.toolbarVisible = true
}

// HandleLongPressDrag extends a long-press selection by whole words.
func (s *Synchronizer) HandleLongPressDrag(p layout.Point) {
	if !s.hasLongSel {
		return
	}
	pos := s.para.PositionForPoint(p)
	word := s.engine.SelectWordAt(s.value, pos)
	origin := s.longPressed
	sel := origin
	switch {
	case pos.Offset >= origin.End():
		sel = text.NewSelection(origin.Start(), word.End())
	case pos.Offset < origin.Start():
		sel = text.NewSelection(origin.End(), word.Start())
	}
	s.commitSelection(sel, CauseLongPress)
}

// HandleLongPressEnd closes the word-wise drag session.
func (s *Synchronizer) HandleLongPressEnd() {
	s.hasLongSel = false
}

// HandleDragStart begins an extending drag selection.
func (s *Synchronizer) HandleDragStart(p layout.Point) {
	pos := s.para.PositionForPoint(p)
	s.dragBase = pos.Offset
	s.dragging = true
	s.engine.ResetVerticalMemory()
	s.commitSelection(text.CollapsedAt(pos), CauseDrag)
}

// HandleDragUpdate extends the drag selection to the pointer.
func (s *Synchronizer) HandleDragUpdate(p layout.Point) {
	if !s.dragging {
		return
	}
	pos := s.para.PositionForPoint(p)
	s.commitSelection(text.NewSelection(s.dragBase, pos.Offset), CauseDrag)
}

// HandleDragEnd closes the drag session.
func (s *Synchronizer) HandleDragEnd() {
	s.dragging = false
}

// HideToolbar hides the selection toolbar overlay.
func (s *Synchronizer) HideToolbar() {
	s.toolbarVisible = false
}

// SetViewport updates the scroll viewport extent after a host resize
// and schedules a caret adjustment against the new extent.
func (s *Synchronizer) SetViewport(extent float64) {
	if extent == s.scroller.viewport {
		return
	}
	s.scroller.viewport = extent
	s.scroller.schedule()
}

// DidLayout invalidates cached geometry after the paragraph has been
// re-laid out.
func (s *Synchronizer) DidLayout() {
	s.caret.InvalidateCache()
}

// Advance runs the per-frame work: the blink timer, the scroll and
// floating-cursor animations, and the post-layout scroll adjustment.
// Hosts call it once per frame after layout, with the current time.
func (s *Synchronizer) Advance(now time.Time) {
	s.blink.Advance(now)
	s.caret.TickReset(now)
	if s.scroller.pending() && s.value.Selection.IsValid() {
		rect := s.caret.CaretRectFor(s.value.Selection.ExtentPosition(), s.caretProto)
		s.scroller.adjust(rect, now)
	}
	s.scroller.advance(now)

	if s.value.Selection.IsValid() {
		rect := s.CaretRect()
		if !s.hasCaretRect || rect != s.lastCaretRect {
			s.lastCaretRect = rect
			s.hasCaretRect = true
			for _, fn := range s.onCaret {
				fn(rect)
			}
		}
	}
}

// CaretRect returns the caret rectangle at the selection extent.
func (s *Synchronizer) CaretRect() layout.Rect {
	return s.caret.CaretRectFor(s.value.Selection.ExtentPosition(), s.caretProto)
}

// CaretOpacity returns the caret opacity at now.
func (s *Synchronizer) CaretOpacity(now time.Time) float64 {
	if !s.focused || !s.value.Selection.IsCollapsed() {
		return 0
	}
	return s.blink.Opacity(now)
}

// CaretVisible returns the discrete caret visibility.
func (s *Synchronizer) CaretVisible() bool {
	return s.focused && s.value.Selection.IsValid() && s.value.Selection.IsCollapsed() && s.blink.Visible()
}

// ScrollOffset returns the current scroll offset along the field's
// scroll axis.
func (s *Synchronizer) ScrollOffset() float64 {
	return s.scroller.offset
}

// FloatingCaret reports the floating cursor rectangle and whether it
// should be painted (during a drag or its settle animation).
func (s *Synchronizer) FloatingCaret() (layout.Rect, bool) {
	if s.caret.FloatingActive() {
		return s.caret.FloatingRect(), true
	}
	if s.caret.Resetting() {
		rect, _ := s.caret.TickReset(s.clock())
		return rect, true
	}
	return layout.Rect{}, false
}

// DisplayText returns the text as painted: obscured when configured,
// with the reveal countdown keeping the last typed character readable.
func (s *Synchronizer) DisplayText() string {
	if !s.opts.Obscure {
		return s.value.Text
	}
	reveal := -1
	if s.revealTicks > 0 {
		reveal = s.revealIndex
	}
	return s.value.DisplayText(s.opts.ObscuringCharacter, reveal)
}
