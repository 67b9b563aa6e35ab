package selection

import "github.com/dshills/fieldkit/internal/input/key"

// Intent is a resolved editing action.
type Intent uint8

const (
	// IntentNone means the event resolved to no action.
	IntentNone Intent = iota

	// IntentMoveLeft steps one code unit left.
	IntentMoveLeft
	// IntentMoveRight steps one code unit right.
	IntentMoveRight
	// IntentMoveUp moves to the line above.
	IntentMoveUp
	// IntentMoveDown moves to the line below.
	IntentMoveDown
	// IntentWordLeft jumps to the previous word edge.
	IntentWordLeft
	// IntentWordRight jumps to the next word edge.
	IntentWordRight
	// IntentLineLeft jumps to the start of the visual line.
	IntentLineLeft
	// IntentLineRight jumps to the end of the visual line.
	IntentLineRight

	// IntentDelete applies the delete key (forward, else backward).
	IntentDelete
	// IntentBackspace deletes one code unit before the caret.
	IntentBackspace

	// IntentSelectAll selects the whole text.
	IntentSelectAll
	// IntentCopy copies the selection.
	IntentCopy
	// IntentCut cuts the selection.
	IntentCut
	// IntentPaste pastes the clipboard.
	IntentPaste
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentMoveLeft:
		return "move-left"
	case IntentMoveRight:
		return "move-right"
	case IntentMoveUp:
		return "move-up"
	case IntentMoveDown:
		return "move-down"
	case IntentWordLeft:
		return "word-left"
	case IntentWordRight:
		return "word-right"
	case IntentLineLeft:
		return "line-left"
	case IntentLineRight:
		return "line-right"
	case IntentDelete:
		return "delete"
	case IntentBackspace:
		return "backspace"
	case IntentSelectAll:
		return "select-all"
	case IntentCopy:
		return "copy"
	case IntentCut:
		return "cut"
	case IntentPaste:
		return "paste"
	default:
		return "unknown"
	}
}

// IsMovement returns true for caret movement intents.
func (i Intent) IsMovement() bool {
	switch i {
	case IntentMoveLeft, IntentMoveRight, IntentMoveUp, IntentMoveDown,
		IntentWordLeft, IntentWordRight, IntentLineLeft, IntentLineRight:
		return true
	}
	return false
}

// IsVertical returns true for up/down movement.
func (i Intent) IsVertical() bool {
	return i == IntentMoveUp || i == IntentMoveDown
}

// ResolveIntent maps an actionable key event to an intent under the
// given platform profile. shift reports whether the selection should
// extend rather than collapse. ok is false when the event maps to
// nothing.
func ResolveIntent(ev key.Event, profile PlatformProfile) (intent Intent, shift bool, ok bool) {
	shift = ev.Modifiers.HasShift()
	switch ev.Key {
	case key.KeyLeft:
		switch {
		case ev.Modifiers.Has(profile.WordModifier):
			return IntentWordLeft, shift, true
		case ev.Modifiers.Has(profile.LineModifier):
			return IntentLineLeft, shift, true
		default:
			return IntentMoveLeft, shift, true
		}
	case key.KeyRight:
		switch {
		case ev.Modifiers.Has(profile.WordModifier):
			return IntentWordRight, shift, true
		case ev.Modifiers.Has(profile.LineModifier):
			return IntentLineRight, shift, true
		default:
			return IntentMoveRight, shift, true
		}
	case key.KeyUp:
		return IntentMoveUp, shift, true
	case key.KeyDown:
		return IntentMoveDown, shift, true
	case key.KeyDelete:
		return IntentDelete, shift, true
	case key.KeyBackspace:
		return IntentBackspace, shift, true
	case key.KeyRune:
		if !ev.Modifiers.Has(profile.ShortcutModifier) {
			return IntentNone, shift, false
		}
		switch ev.Rune {
		case 'a', 'A':
			return IntentSelectAll, shift, true
		case 'c', 'C':
			return IntentCopy, shift, true
		case 'v', 'V':
			return IntentPaste, shift, true
		case 'x', 'X':
			return IntentCut, shift, true
		}
	}
	return IntentNone, shift, false
}
