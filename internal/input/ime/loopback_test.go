package ime

import (
	"testing"

	"github.com/dshills/fieldkit/internal/engine/text"
)

type recordingHandler struct {
	values  []text.EditingValue
	actions []Action
	cursor  []FloatingCursorEvent
	closed  bool
}

func (h *recordingHandler) UpdateEditingValue(v text.EditingValue)  { h.values = append(h.values, v) }
func (h *recordingHandler) PerformAction(a Action)                  { h.actions = append(h.actions, a) }
func (h *recordingHandler) UpdateFloatingCursor(e FloatingCursorEvent) { h.cursor = append(h.cursor, e) }
func (h *recordingHandler) ConnectionClosed()                       { h.closed = true }

func TestLoopbackRoundTrip(t *testing.T) {
	loop := NewLoopback()
	h := &recordingHandler{}

	conn, err := loop.Attach(Config{Keyboard: KeyboardEmail}, h)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if conn.ID() == "" {
		t.Error("connection has no ID")
	}

	lc := loop.Connection()
	if lc.Config().Keyboard != KeyboardEmail {
		t.Errorf("config keyboard = %v", lc.Config().Keyboard)
	}

	conn.Show()
	if !lc.Shown() {
		t.Error("Show not recorded")
	}

	v := text.NewEditingValue("hi", text.CollapsedSelection(2), text.EmptyRange)
	conn.SetEditingState(v)
	last, ok := lc.LastState()
	if !ok || !last.Equals(v) {
		t.Errorf("LastState = %s, %v", last, ok)
	}

	lc.InjectEditingValue(v)
	lc.InjectAction(ActionGo)
	lc.InjectFloatingCursor(FloatingCursorEvent{State: FloatingStart})
	lc.InjectClose()

	if len(h.values) != 1 || !h.values[0].Equals(v) {
		t.Errorf("handler values = %v", h.values)
	}
	if len(h.actions) != 1 || h.actions[0] != ActionGo {
		t.Errorf("handler actions = %v", h.actions)
	}
	if len(h.cursor) != 1 || h.cursor[0].State != FloatingStart {
		t.Errorf("handler cursor events = %v", h.cursor)
	}
	if !h.closed {
		t.Error("ConnectionClosed not delivered")
	}
	if !lc.Closed() {
		t.Error("Closed not recorded")
	}
}

func TestLoopbackDistinctIDs(t *testing.T) {
	loop := NewLoopback()
	a, _ := loop.Attach(Config{}, &recordingHandler{})
	b, _ := loop.Attach(Config{}, &recordingHandler{})
	if a.ID() == b.ID() {
		t.Error("two attaches produced the same connection ID")
	}
}
