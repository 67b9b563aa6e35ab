package selection

import (
	"context"

	"github.com/dshills/fieldkit/internal/clipboard"
	"github.com/dshills/fieldkit/internal/engine/text"
)

// Copy writes the selected text to the clipboard. A collapsed or
// invalid selection is a no-op. Copy never mutates the value.
func Copy(ctx context.Context, clip clipboard.Clipboard, v text.EditingValue) error {
	if !v.Selection.IsValid() || v.Selection.IsCollapsed() {
		return nil
	}
	inside, err := v.Selection.TextInside(v.Text)
	if err != nil {
		return err
	}
	return clip.WriteText(ctx, inside)
}

// Cut writes the selected text to the clipboard and removes it,
// collapsing the selection to the cut point.
func Cut(ctx context.Context, clip clipboard.Clipboard, v text.EditingValue) (text.EditingValue, error) {
	if !v.Selection.IsValid() || v.Selection.IsCollapsed() {
		return v, nil
	}
	inside, err := v.Selection.TextInside(v.Text)
	if err != nil {
		return v, err
	}
	if err := clip.WriteText(ctx, inside); err != nil {
		return v, err
	}
	return v.ReplaceSelection("")
}

// PasteSnapshot captures the editing value before the asynchronous
// clipboard read suspends the paste. The splice is performed against
// this snapshot, not against whatever the value becomes while the read
// is in flight; capturing it before suspending is what makes the
// two-phase paste race-free.
type PasteSnapshot struct {
	Value text.EditingValue
}

// BeginPaste captures the paste snapshot. Call before issuing the
// clipboard read.
func BeginPaste(v text.EditingValue) PasteSnapshot {
	return PasteSnapshot{Value: v}
}

// CompletePaste splices the clipboard text into the snapshot. An empty
// clipboard or an invalid selection pastes nothing; the bool reports
// whether a new value was produced.
func CompletePaste(snap PasteSnapshot, clip string) (text.EditingValue, bool) {
	if clip == "" || !snap.Value.Selection.IsValid() {
		return snap.Value, false
	}
	nv, err := snap.Value.ReplaceSelection(clip)
	if err != nil {
		return snap.Value, false
	}
	return nv, true
}

// DeleteForward removes one code unit after a collapsed caret, or the
// selected range. The selection collapses to the edit point.
func DeleteForward(v text.EditingValue) text.EditingValue {
	sel := v.Selection
	if !sel.IsValid() {
		return v
	}
	if !sel.IsCollapsed() {
		nv, err := v.ReplaceSelection("")
		if err != nil {
			return v
		}
		return nv
	}
	if sel.Extent >= v.UnitLen() {
		return v
	}
	return deleteRange(v, text.NewRange(sel.Extent, sel.Extent+1))
}

// DeleteBackward removes one code unit before a collapsed caret
// (backspace), or the selected range.
func DeleteBackward(v text.EditingValue) text.EditingValue {
	sel := v.Selection
	if !sel.IsValid() {
		return v
	}
	if !sel.IsCollapsed() {
		nv, err := v.ReplaceSelection("")
		if err != nil {
			return v
		}
		return nv
	}
	if sel.Extent == 0 {
		return v
	}
	return deleteRange(v, text.NewRange(sel.Extent-1, sel.Extent))
}

// Delete applies the delete key's semantics: forward when there is
// text after the collapsed caret, otherwise backward.
func Delete(v text.EditingValue) text.EditingValue {
	sel := v.Selection
	if sel.IsValid() && sel.IsCollapsed() && sel.Extent >= v.UnitLen() {
		return DeleteBackward(v)
	}
	return DeleteForward(v)
}

func deleteRange(v text.EditingValue, r text.Range) text.EditingValue {
	before, err := r.TextBefore(v.Text)
	if err != nil {
		return v
	}
	after, err := r.TextAfter(v.Text)
	if err != nil {
		return v
	}
	return text.NewEditingValue(before+after, text.CollapsedSelection(r.Start), text.EmptyRange)
}
