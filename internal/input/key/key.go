// Package key provides hardware-keyboard event values and the
// immutable key sets the editing core filters shortcuts against.
package key

// Key identifies a keyboard key. Character keys use KeyRune with the
// character in Event.Rune.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Modifier keys, tracked as pressed keys for shortcut filtering.
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta

	// KeyRune is used for character keys; the character is stored in
	// Event.Rune.
	KeyRune
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyShift:
		return "Shift"
	case KeyControl:
		return "Control"
	case KeyAlt:
		return "Alt"
	case KeyMeta:
		return "Meta"
	case KeyRune:
		return "Rune"
	default:
		return "Unknown"
	}
}

// IsModifier returns true for the four modifier keys.
func (k Key) IsModifier() bool {
	switch k {
	case KeyShift, KeyControl, KeyAlt, KeyMeta:
		return true
	}
	return false
}

// IsArrow returns true for the four arrow keys.
func (k Key) IsArrow() bool {
	switch k {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}
