package ime

import (
	"github.com/google/uuid"

	"github.com/dshills/fieldkit/internal/engine/text"
)

// Loopback is an in-process Channel for tests and terminal hosts. It
// records everything the core pushes outbound and lets the host inject
// inbound callbacks as if they came from the platform.
type Loopback struct {
	conn *LoopbackConnection
}

// NewLoopback creates a loopback channel.
func NewLoopback() *Loopback {
	return &Loopback{}
}

// Attach implements Channel.
func (l *Loopback) Attach(config Config, handler Handler) (Connection, error) {
	l.conn = &LoopbackConnection{
		id:      uuid.New().String(),
		config:  config,
		handler: handler,
	}
	return l.conn, nil
}

// Connection returns the most recently attached connection, or nil.
func (l *Loopback) Connection() *LoopbackConnection {
	return l.conn
}

// LoopbackConnection records outbound state and forwards injected
// inbound events to the attached handler.
type LoopbackConnection struct {
	id      string
	config  Config
	handler Handler

	closed    bool
	shown     bool
	states    []text.EditingValue
	style     Style
	geometry  EditableGeometry
	hasStyle  bool
	hasGeom   bool
	showCalls int
}

// ID implements Connection.
func (c *LoopbackConnection) ID() string { return c.id }

// Show implements Connection.
func (c *LoopbackConnection) Show() {
	c.shown = true
	c.showCalls++
}

// SetEditingState implements Connection.
func (c *LoopbackConnection) SetEditingState(v text.EditingValue) {
	c.states = append(c.states, v)
}

// SetStyle implements Connection.
func (c *LoopbackConnection) SetStyle(s Style) {
	c.style = s
	c.hasStyle = true
}

// SetEditableSizeAndTransform implements Connection.
func (c *LoopbackConnection) SetEditableSizeAndTransform(g EditableGeometry) {
	c.geometry = g
	c.hasGeom = true
}

// Close implements Connection.
func (c *LoopbackConnection) Close() {
	c.closed = true
}

// Closed returns true once the core has closed the connection.
func (c *LoopbackConnection) Closed() bool { return c.closed }

// Shown returns true once the core has requested the keyboard.
func (c *LoopbackConnection) Shown() bool { return c.shown }

// Config returns the config the core attached with.
func (c *LoopbackConnection) Config() Config { return c.config }

// States returns every editing state pushed outbound, oldest first.
func (c *LoopbackConnection) States() []text.EditingValue { return c.states }

// LastState returns the most recently pushed editing state.
func (c *LoopbackConnection) LastState() (text.EditingValue, bool) {
	if len(c.states) == 0 {
		return text.EmptyValue, false
	}
	return c.states[len(c.states)-1], true
}

// InjectEditingValue simulates a platform-originated edit.
func (c *LoopbackConnection) InjectEditingValue(v text.EditingValue) {
	c.handler.UpdateEditingValue(v)
}

// InjectAction simulates a press of the keyboard's action key.
func (c *LoopbackConnection) InjectAction(a Action) {
	c.handler.PerformAction(a)
}

// InjectFloatingCursor simulates a floating-cursor drag event.
func (c *LoopbackConnection) InjectFloatingCursor(ev FloatingCursorEvent) {
	c.handler.UpdateFloatingCursor(ev)
}

// InjectClose simulates the platform closing the connection.
func (c *LoopbackConnection) InjectClose() {
	c.closed = true
	c.handler.ConnectionClosed()
}
