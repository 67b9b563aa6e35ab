// Package ime defines the contract between the editing core and the
// platform input method: the configuration a field attaches with, the
// connection it pushes state through, and the callbacks the platform
// drives back into the core. The transport behind the contract is
// opaque; the package ships a Loopback implementation for tests and
// in-process hosts.
package ime

import (
	"errors"

	"github.com/dshills/fieldkit/internal/engine/text"
	"github.com/dshills/fieldkit/internal/layout"
)

// ErrChannelClosed is returned when attaching through a closed channel.
var ErrChannelClosed = errors.New("input channel closed")

// KeyboardType selects the on-screen keyboard layout.
type KeyboardType uint8

const (
	// KeyboardText is the plain text keyboard.
	KeyboardText KeyboardType = iota
	// KeyboardMultiline is the text keyboard with a newline action.
	KeyboardMultiline
	// KeyboardNumber is the numeric keyboard.
	KeyboardNumber
	// KeyboardPhone is the phone-pad keyboard.
	KeyboardPhone
	// KeyboardEmail is the email-address keyboard.
	KeyboardEmail
	// KeyboardURL is the URL keyboard.
	KeyboardURL
)

// Action is the kind of the keyboard's primary action key.
type Action uint8

const (
	// ActionNone shows no action key.
	ActionNone Action = iota
	// ActionDone finalizes editing.
	ActionDone
	// ActionGo submits and navigates.
	ActionGo
	// ActionSearch submits a search.
	ActionSearch
	// ActionSend submits a message.
	ActionSend
	// ActionNewline inserts a line break.
	ActionNewline
	// ActionNext moves focus to the next field.
	ActionNext
	// ActionPrevious moves focus to the previous field.
	ActionPrevious
)

// SmartMode enables or disables a smart punctuation transformation.
type SmartMode uint8

const (
	// SmartEnabled turns the transformation on.
	SmartEnabled SmartMode = iota
	// SmartDisabled turns the transformation off.
	SmartDisabled
)

// Capitalization selects automatic capitalization behavior.
type Capitalization uint8

const (
	// CapitalizeNone never capitalizes automatically.
	CapitalizeNone Capitalization = iota
	// CapitalizeWords capitalizes the first letter of each word.
	CapitalizeWords
	// CapitalizeSentences capitalizes the first letter of each sentence.
	CapitalizeSentences
	// CapitalizeCharacters capitalizes every character.
	CapitalizeCharacters
)

// Appearance selects the keyboard's light or dark theme.
type Appearance uint8

const (
	// AppearanceLight is the light keyboard theme.
	AppearanceLight Appearance = iota
	// AppearanceDark is the dark keyboard theme.
	AppearanceDark
)

// Config is the surface a field attaches to the platform with.
type Config struct {
	Keyboard          KeyboardType
	ObscureText       bool
	Autocorrect       bool
	SmartDashes       SmartMode
	SmartQuotes       SmartMode
	EnableSuggestions bool
	InputAction       Action
	Capitalization    Capitalization
	Appearance        Appearance
}

// Style is the text style pushed to the platform so system UI (such as
// the floating composing window) can match the field.
type Style struct {
	FontFamily string
	FontSize   float64
	Bold       bool
	Direction  layout.TextDirection
}

// EditableGeometry is the size and on-screen placement of the editable,
// pushed so the platform can position candidate windows.
type EditableGeometry struct {
	Width, Height    float64
	OffsetX, OffsetY float64
}

// FloatingCursorState drives the floating-cursor drag state machine.
type FloatingCursorState uint8

const (
	// FloatingStart begins a floating-cursor drag.
	FloatingStart FloatingCursorState = iota
	// FloatingUpdate carries a pointer offset during the drag.
	FloatingUpdate
	// FloatingEnd finishes the drag.
	FloatingEnd
)

// String returns the state name.
func (s FloatingCursorState) String() string {
	switch s {
	case FloatingStart:
		return "start"
	case FloatingUpdate:
		return "update"
	case FloatingEnd:
		return "end"
	default:
		return "unknown"
	}
}

// FloatingCursorEvent is an inbound floating-cursor callback.
type FloatingCursorEvent struct {
	State FloatingCursorState
	Point layout.Point
}

// Handler receives inbound platform callbacks. The editing core
// implements this interface.
type Handler interface {
	// UpdateEditingValue delivers a platform-originated edit.
	UpdateEditingValue(v text.EditingValue)

	// PerformAction delivers a press of the keyboard's action key.
	PerformAction(action Action)

	// UpdateFloatingCursor delivers floating-cursor drag events.
	UpdateFloatingCursor(ev FloatingCursorEvent)

	// ConnectionClosed signals that the platform closed the
	// connection unilaterally. Equivalent to editing being finalized.
	ConnectionClosed()
}

// Connection is an open channel to the platform input method.
type Connection interface {
	// ID identifies this connection.
	ID() string

	// Show asks the platform to present its keyboard.
	Show()

	// SetEditingState pushes the authoritative editing value.
	SetEditingState(v text.EditingValue)

	// SetStyle pushes the field's text style.
	SetStyle(s Style)

	// SetEditableSizeAndTransform pushes the editable's geometry.
	SetEditableSizeAndTransform(g EditableGeometry)

	// Close closes the connection. Safe to call twice.
	Close()
}

// Channel attaches fields to the platform input method.
type Channel interface {
	// Attach opens a connection configured for one editing session.
	Attach(config Config, handler Handler) (Connection, error)
}
