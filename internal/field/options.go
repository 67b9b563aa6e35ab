package field

import (
	"time"

	"github.com/dshills/fieldkit/internal/input/ime"
)

// RevealTicks is how many blink-timer ticks the most recently typed
// character of an obscured field stays readable.
const RevealTicks = 3

// DefaultFloatingMargin is how far the floating cursor may leave the
// field bounds on every edge.
const DefaultFloatingMargin = 4.0

// Options configures one editing session.
type Options struct {
	// ReadOnly rejects every edit; navigation still works.
	ReadOnly bool

	// Obscure renders the text as ObscuringCharacter (password mode).
	Obscure bool

	// ObscuringCharacter replaces each character in obscured mode.
	ObscuringCharacter rune

	// Multiline allows line breaks and scrolls vertically.
	Multiline bool

	// Platform input configuration, forwarded on attach.
	Keyboard          ime.KeyboardType
	InputAction       ime.Action
	Autocorrect       bool
	SmartDashes       ime.SmartMode
	SmartQuotes       ime.SmartMode
	EnableSuggestions bool
	Capitalization    ime.Capitalization
	Appearance        ime.Appearance

	// Per-action shortcut enablement.
	CanCopy      bool
	CanCut       bool
	CanPaste     bool
	CanSelectAll bool

	// Blink timing; zero values take the package defaults.
	BlinkHalfPeriod   time.Duration
	BlinkInitialDelay time.Duration

	// Caret scroll-into-view.
	Viewport       float64
	ScrollMargin   float64
	ScrollDuration time.Duration

	// FloatingMargin bounds the floating cursor outside the field.
	FloatingMargin float64
}

// DefaultOptions returns a writable single-line field configuration.
func DefaultOptions() Options {
	return Options{
		ObscuringCharacter: '•',
		Keyboard:           ime.KeyboardText,
		InputAction:        ime.ActionDone,
		Autocorrect:        true,
		EnableSuggestions:  true,
		CanCopy:            true,
		CanCut:             true,
		CanPaste:           true,
		CanSelectAll:       true,
		BlinkHalfPeriod:    BlinkHalfPeriod,
		BlinkInitialDelay:  BlinkInitialDelay,
		ScrollDuration:     DefaultScrollDuration,
		FloatingMargin:     DefaultFloatingMargin,
	}
}

// imeConfig builds the platform attach configuration.
func (o Options) imeConfig() ime.Config {
	kb := o.Keyboard
	action := o.InputAction
	if o.Multiline {
		kb = ime.KeyboardMultiline
		action = ime.ActionNewline
	}
	return ime.Config{
		Keyboard:          kb,
		ObscureText:       o.Obscure,
		Autocorrect:       o.Autocorrect,
		SmartDashes:       o.SmartDashes,
		SmartQuotes:       o.SmartQuotes,
		EnableSuggestions: o.EnableSuggestions,
		InputAction:       action,
		Capitalization:    o.Capitalization,
		Appearance:        o.Appearance,
	}
}
