package field

// Cause identifies what triggered a selection change. Downstream
// consumers behave differently per cause: keyboard-caused changes
// never show selection handles, long-press always does.
type Cause uint8

const (
	// CauseTap is a single tap or tap-down.
	CauseTap Cause = iota

	// CauseDoubleTap is a double tap selecting a word.
	CauseDoubleTap

	// CauseLongPress is a long press selecting a word.
	CauseLongPress

	// CauseForcePress is a floating-cursor drag settling.
	CauseForcePress

	// CauseKeyboard is a hardware-keyboard navigation or edit.
	CauseKeyboard

	// CauseDrag is an extending drag gesture.
	CauseDrag
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseTap:
		return "tap"
	case CauseDoubleTap:
		return "doubleTap"
	case CauseLongPress:
		return "longPress"
	case CauseForcePress:
		return "forcePress"
	case CauseKeyboard:
		return "keyboard"
	case CauseDrag:
		return "drag"
	default:
		return "unknown"
	}
}
