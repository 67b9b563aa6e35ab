package key

import "strings"

// Modifier represents the modifier keys held during an event.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModControl indicates the Control key.
	ModControl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasControl returns true if Control is held.
func (m Modifier) HasControl() bool {
	return m.Has(ModControl)
}

// HasAlt returns true if Alt is held.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is held.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are held.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.HasControl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// Keys returns the modifier keys held, as Key values.
func (m Modifier) Keys() []Key {
	var keys []Key
	if m.HasShift() {
		keys = append(keys, KeyShift)
	}
	if m.HasControl() {
		keys = append(keys, KeyControl)
	}
	if m.HasAlt() {
		keys = append(keys, KeyAlt)
	}
	if m.HasMeta() {
		keys = append(keys, KeyMeta)
	}
	return keys
}
