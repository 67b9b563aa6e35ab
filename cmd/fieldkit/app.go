package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/fieldkit/internal/clipboard"
	"github.com/dshills/fieldkit/internal/config"
	"github.com/dshills/fieldkit/internal/engine/text"
	"github.com/dshills/fieldkit/internal/field"
	"github.com/dshills/fieldkit/internal/field/formatter"
	"github.com/dshills/fieldkit/internal/input/ime"
	"github.com/dshills/fieldkit/internal/input/key"
	"github.com/dshills/fieldkit/internal/layout"
)

// frameInterval is the demo's render cadence.
const frameInterval = 33 * time.Millisecond

// doubleClickWindow is how close two presses must be to count as a
// double click.
const doubleClickWindow = 400 * time.Millisecond

// fieldOrigin is where the field's content area is drawn on screen.
var fieldOrigin = layout.Point{X: 2, Y: 2}

// app is the terminal demo host: one field, one grid layout, a
// loopback input channel, and the system clipboard.
type app struct {
	screen  tcell.Screen
	grid    *layout.Grid
	sync    *field.Synchronizer
	lua     *formatter.Lua
	profile string

	quit chan struct{}

	lastClickTime time.Time
	lastClickCell layout.Point
	buttonDown    bool
	dragStarted   bool
	pressPoint    layout.Point
}

func newApp(cfg config.Config, opts options) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	grid := layout.NewGrid()
	fieldOpts := cfg.Options()

	sync := field.NewSynchronizer(grid, cfg.Profile(), ime.NewLoopback(), clipboard.NewSystem(), fieldOpts)

	formatters, lua, err := cfg.Formatters()
	if err != nil {
		return nil, err
	}
	sync.SetFormatters(formatters...)
	sync.SetCaretPrototype(layout.RectFromLTWH(0, 0, 1, 1))

	if opts.Text != "" {
		sync.SetValue(text.ValueWithText(opts.Text))
	}

	return &app{
		screen:  screen,
		grid:    grid,
		sync:    sync,
		lua:     lua,
		profile: cfg.Profile().Name,
		quit:    make(chan struct{}),
	}, nil
}

// Run initializes the terminal and drives the frame loop until quit.
func (a *app) Run() error {
	if err := a.screen.Init(); err != nil {
		return err
	}
	a.screen.EnableMouse()
	a.screen.EnablePaste()

	if err := a.sync.Focus(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.relayout()
	a.render()

	for {
		select {
		case <-a.quit:
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
			a.relayout()
			a.frame()
		case <-ticker.C:
			a.frame()
		}
	}
}

// Quit asks the frame loop to exit. Safe to call from any goroutine.
func (a *app) Quit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// Shutdown restores the terminal.
func (a *app) Shutdown() {
	a.screen.Fini()
	if a.lua != nil {
		a.lua.Close()
	}
}

func (a *app) frame() {
	a.sync.Advance(time.Now())
	a.render()
}

// relayout runs the grid layout over the display text and tells the
// synchronizer its cached geometry is stale.
func (a *app) relayout() {
	w, _ := a.screen.Size()
	maxWidth := float64(w) - fieldOrigin.X*2
	if maxWidth < 1 {
		maxWidth = 1
	}
	style := layout.Style{LineHeight: 1, CellWidth: 1}
	a.grid.Layout(a.sync.DisplayText(), style, 0, maxWidth)
	a.sync.SetViewport(maxWidth)
	a.sync.DidLayout()
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(tev)
	case *tcell.EventMouse:
		a.handleMouse(tev)
	case *tcell.EventPaste:
		// Bracketed paste delivers runes between start and end
		// markers; nothing to do for the markers themselves.
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		a.Quit()
		return false
	}

	kev, ok := convertKey(ev)
	if !ok {
		return true
	}

	// Terminals report no key-up, so the pressed-key set is synthesized
	// from the event itself plus its modifiers.
	down := key.NewSet(kev.Chord()).Union(downModifiers(kev.Modifiers))
	if a.sync.HandleKeyEvent(context.Background(), kev, down) {
		return true
	}

	if kev.Key == key.KeyEnter {
		a.sync.PerformAction(ime.ActionNewline)
		return true
	}
	if kev.IsChar() && kev.Modifiers.Without(key.ModShift).IsEmpty() {
		a.sync.Insert(string(kev.Rune))
	}
	return true
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := layout.Point{
		X: float64(x) - fieldOrigin.X + a.sync.ScrollOffset(),
		Y: float64(y) - fieldOrigin.Y,
	}

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !a.buttonDown:
		a.buttonDown = true
		a.dragStarted = false
		a.pressPoint = p
		now := time.Now()
		if now.Sub(a.lastClickTime) < doubleClickWindow && p == a.lastClickCell {
			a.sync.HandleDoubleTap(p)
			a.dragStarted = true // suppress drag after a double click
		} else {
			a.sync.HandleTapDown(p)
		}
		a.lastClickTime = now
		a.lastClickCell = p
	case pressed && a.buttonDown:
		if p == a.pressPoint {
			return
		}
		if !a.dragStarted {
			a.sync.HandleDragStart(a.pressPoint)
			a.dragStarted = true
		}
		a.sync.HandleDragUpdate(p)
	case !pressed && a.buttonDown:
		a.buttonDown = false
		if a.dragStarted {
			a.sync.HandleDragEnd()
		}
	}
}

func (a *app) render() {
	a.screen.Clear()
	base := tcell.StyleDefault
	inverted := base.Reverse(true)

	w, _ := a.screen.Size()
	title := " fieldkit demo (" + a.profile + " profile, esc quits) "
	drawString(a.screen, 2, 0, title, base.Bold(true))

	scroll := a.sync.ScrollOffset()

	// Selected cells render inverted, composing cells underlined.
	selected := make(map[[2]int]bool)
	sel := a.sync.Value().Selection
	if sel.IsValid() && !sel.IsCollapsed() {
		for _, box := range a.grid.BoxesForSelection(sel) {
			row := int(box.Top)
			for x := int(box.Left); x < int(box.Right); x++ {
				selected[[2]int{x, row}] = true
			}
		}
	}
	composing := make(map[[2]int]bool)
	if comp := a.sync.Value().Composing; !comp.IsCollapsed() {
		for _, box := range a.grid.BoxesForSelection(text.NewSelection(comp.Start, comp.End)) {
			row := int(box.Top)
			for x := int(box.Left); x < int(box.Right); x++ {
				composing[[2]int{x, row}] = true
			}
		}
	}

	for i := 0; i < a.grid.LineCount(); i++ {
		y := int(fieldOrigin.Y) + i
		x := 0
		for _, r := range a.grid.LineText(i) {
			style := base
			if composing[[2]int{x, i}] {
				style = style.Underline(true)
			}
			if selected[[2]int{x, i}] {
				style = inverted
			}
			col := int(fieldOrigin.X) + x - int(scroll)
			if col >= 0 && col < w {
				a.screen.SetContent(col, y, r, nil, style)
			}
			x++
		}
	}

	if rect, ok := a.sync.FloatingCaret(); ok {
		a.screen.ShowCursor(int(fieldOrigin.X+rect.Left-scroll), int(fieldOrigin.Y+rect.Top))
	} else if a.sync.CaretVisible() {
		rect := a.sync.CaretRect()
		a.screen.ShowCursor(int(fieldOrigin.X+rect.Left-scroll), int(fieldOrigin.Y+rect.Top))
	} else {
		a.screen.HideCursor()
	}

	a.screen.Show()
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// convertKey maps a tcell key event to the editing core's key model.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := key.Modifier(0)
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModControl)
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if ev.Modifiers()&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyCtrlA:
		return key.NewRuneEvent('a', mods.With(key.ModControl)), true
	case tcell.KeyCtrlC:
		return key.NewRuneEvent('c', mods.With(key.ModControl)), true
	case tcell.KeyCtrlV:
		return key.NewRuneEvent('v', mods.With(key.ModControl)), true
	case tcell.KeyCtrlX:
		return key.NewRuneEvent('x', mods.With(key.ModControl)), true
	case tcell.KeyRune:
		return key.NewRuneEvent(ev.Rune(), mods), true
	}
	return key.Event{}, false
}

// downModifiers synthesizes the pressed-key set for held modifiers.
func downModifiers(mods key.Modifier) key.Set {
	return key.ModifierChords(mods.Keys()...)
}
