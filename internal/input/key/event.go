package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the modifier keys held during the press.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewSpecialEvent creates a key event for a non-character key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods, Timestamp: time.Now()}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// Chord returns the identity of the pressed key, ignoring modifiers.
func (e Event) Chord() Chord {
	if e.Key == KeyRune {
		return Chord{Key: KeyRune, Rune: unicode.ToLower(e.Rune)}
	}
	return Chord{Key: e.Key}
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}

// String returns a canonical representation like "Ctrl+Left" or "a".
func (e Event) String() string {
	var parts []string
	if mods := e.Modifiers.String(); mods != "" {
		parts = append(parts, mods)
	}
	if e.Key == KeyRune {
		parts = append(parts, string(e.Rune))
	} else {
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "+")
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}", e.Key, e.Rune, e.Modifiers)
}
