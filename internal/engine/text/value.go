package text

import (
	"fmt"
	"strings"
)

// EditingValue is the authoritative (text, selection, composing) triple
// of an editing session. EditingValue is an immutable value type; the
// whole value is replaced on every change, which keeps "did it change"
// checks simple structural comparisons.
type EditingValue struct {
	// Text is the current contents of the field.
	Text string

	// Selection is the current selection, or NoSelection when the
	// field holds no caret.
	Selection Selection

	// Composing marks IME pre-edit text that has not been committed,
	// or EmptyRange when not composing.
	Composing Range
}

// EmptyValue is the canonical empty editing value.
var EmptyValue = EditingValue{Selection: NoSelection, Composing: EmptyRange}

// NewEditingValue creates a validated editing value. Offsets that
// exceed the text length indicate a caller bug and panic immediately;
// clamping here would mask data corruption.
func NewEditingValue(txt string, sel Selection, composing Range) EditingValue {
	v := EditingValue{Text: txt, Selection: sel, Composing: composing}
	if err := v.Validate(); err != nil {
		panic(err)
	}
	return v
}

// ValueWithText creates a value holding only text, with no selection
// and no composing range.
func ValueWithText(txt string) EditingValue {
	return EditingValue{Text: txt, Selection: NoSelection, Composing: EmptyRange}
}

// Validate checks that the selection and composing range lie within
// the text. Invalid (negative) ranges are allowed; they mean "none".
func (v EditingValue) Validate() error {
	n := UnitLen(v.Text)
	if v.Selection.IsValid() {
		if s := v.Selection.Range(); s.End > n {
			return fmt.Errorf("%w: selection %s in text of length %d", ErrRangeOutOfBounds, s, n)
		}
	}
	if v.Composing.IsValid() {
		if !v.Composing.IsNormalized() || v.Composing.End > n {
			return fmt.Errorf("%w: composing %s in text of length %d", ErrRangeOutOfBounds, v.Composing, n)
		}
	}
	return nil
}

// UnitLen returns the text length in UTF-16 code units.
func (v EditingValue) UnitLen() int {
	return UnitLen(v.Text)
}

// IsComposing returns true if an IME composing region is active.
func (v EditingValue) IsComposing() bool {
	return v.Composing.IsValid() && !v.Composing.IsCollapsed()
}

// WithSelection returns a copy with the given selection.
func (v EditingValue) WithSelection(sel Selection) EditingValue {
	return NewEditingValue(v.Text, sel, v.Composing)
}

// WithComposing returns a copy with the given composing range.
func (v EditingValue) WithComposing(r Range) EditingValue {
	return NewEditingValue(v.Text, v.Selection, r)
}

// ClearComposing returns a copy with composing finalized.
func (v EditingValue) ClearComposing() EditingValue {
	v.Composing = EmptyRange
	return v
}

// ClearSelection returns a copy carrying only the text, the value a
// field keeps when it loses focus.
func (v EditingValue) ClearSelection() EditingValue {
	return EditingValue{Text: v.Text, Selection: NoSelection, Composing: EmptyRange}
}

// ReplaceSelection returns a copy with the selected range replaced by
// replacement, the selection collapsed after the inserted text, and
// composing cleared. The selection must be valid.
func (v EditingValue) ReplaceSelection(replacement string) (EditingValue, error) {
	before, err := v.Selection.TextBefore(v.Text)
	if err != nil {
		return v, err
	}
	after, err := v.Selection.TextAfter(v.Text)
	if err != nil {
		return v, err
	}
	caret := v.Selection.Start() + UnitLen(replacement)
	return NewEditingValue(before+replacement+after, CollapsedSelection(caret), EmptyRange), nil
}

// Equals returns true if text, selection and composing range all match.
func (v EditingValue) Equals(other EditingValue) bool {
	return v.Text == other.Text &&
		v.Selection.Equals(other.Selection) &&
		v.Composing.Equals(other.Composing)
}

// DisplayText returns the text as it should be painted when obscured.
// Every rune is replaced by obscuring except the rune covering
// revealIndex (a code-unit offset), which stays clear while the reveal
// countdown is active. Pass a negative revealIndex to obscure all.
func (v EditingValue) DisplayText(obscuring rune, revealIndex int) string {
	var b strings.Builder
	unit := 0
	for _, r := range v.Text {
		w := 1
		if r > 0xFFFF {
			w = 2
		}
		if revealIndex >= unit && revealIndex < unit+w {
			b.WriteRune(r)
		} else {
			b.WriteRune(obscuring)
		}
		unit += w
	}
	return b.String()
}

// String returns a human-readable representation of the value.
func (v EditingValue) String() string {
	return fmt.Sprintf("EditingValue(%q, %s, composing %s)", v.Text, v.Selection, v.Composing)
}
