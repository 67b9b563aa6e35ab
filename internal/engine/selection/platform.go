package selection

import "github.com/dshills/fieldkit/internal/input/key"

// PlatformProfile captures the per-platform editing conventions in one
// value constructed at startup, instead of platform switches scattered
// through the engine.
type PlatformProfile struct {
	// Name identifies the profile, e.g. "mac" or "pc".
	Name string

	// WordModifier held with left/right jumps by words.
	WordModifier key.Modifier

	// LineModifier held with left/right jumps to the line edge.
	LineModifier key.Modifier

	// ShortcutModifier held with a/c/v/x triggers the clipboard
	// shortcuts.
	ShortcutModifier key.Modifier

	// ModifierKeys are the modifier keys that may be held during an
	// actionable key event.
	ModifierKeys []key.Key

	// CaretVerticalCentering centers the caret rectangle over the
	// glyph's full height instead of offsetting it by a fixed margin.
	CaretVerticalCentering bool

	// CursorOpacityAnimates fades the caret in and out instead of
	// toggling it.
	CursorOpacityAnimates bool
}

// PCProfile returns the conventions shared by Linux and Windows.
func PCProfile() PlatformProfile {
	return PlatformProfile{
		Name:             "pc",
		WordModifier:     key.ModControl,
		LineModifier:     key.ModAlt,
		ShortcutModifier: key.ModControl,
		ModifierKeys:     []key.Key{key.KeyShift, key.KeyControl, key.KeyAlt},
	}
}

// MacProfile returns the macOS/iOS conventions.
func MacProfile() PlatformProfile {
	return PlatformProfile{
		Name:                   "mac",
		WordModifier:           key.ModAlt,
		LineModifier:           key.ModMeta,
		ShortcutModifier:       key.ModMeta,
		ModifierKeys:           []key.Key{key.KeyShift, key.KeyMeta, key.KeyAlt},
		CaretVerticalCentering: true,
		CursorOpacityAnimates:  true,
	}
}

// ProfileFor returns the profile for a GOOS-style platform name.
func ProfileFor(goos string) PlatformProfile {
	switch goos {
	case "darwin", "ios", "mac":
		return MacProfile()
	default:
		return PCProfile()
	}
}

// KeyFilter builds the shortcut filter for this profile: the fixed
// interesting-key set plus the profile's modifier keys.
func (p PlatformProfile) KeyFilter() key.Filter {
	return key.NewFilter(key.Interesting(), key.ModifierChords(p.ModifierKeys...))
}
