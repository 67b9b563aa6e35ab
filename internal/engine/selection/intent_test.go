package selection

import (
	"testing"

	"github.com/dshills/fieldkit/internal/input/key"
)

func TestResolveIntentPC(t *testing.T) {
	profile := PCProfile()
	tests := []struct {
		name      string
		ev        key.Event
		want      Intent
		wantShift bool
	}{
		{"left", key.NewSpecialEvent(key.KeyLeft, 0), IntentMoveLeft, false},
		{"shift left", key.NewSpecialEvent(key.KeyLeft, key.ModShift), IntentMoveLeft, true},
		{"ctrl left is word", key.NewSpecialEvent(key.KeyLeft, key.ModControl), IntentWordLeft, false},
		{"alt right is line", key.NewSpecialEvent(key.KeyRight, key.ModAlt), IntentLineRight, false},
		{"up", key.NewSpecialEvent(key.KeyUp, 0), IntentMoveUp, false},
		{"shift down", key.NewSpecialEvent(key.KeyDown, key.ModShift), IntentMoveDown, true},
		{"delete", key.NewSpecialEvent(key.KeyDelete, 0), IntentDelete, false},
		{"backspace", key.NewSpecialEvent(key.KeyBackspace, 0), IntentBackspace, false},
		{"ctrl+a", key.NewRuneEvent('a', key.ModControl), IntentSelectAll, false},
		{"ctrl+c", key.NewRuneEvent('c', key.ModControl), IntentCopy, false},
		{"ctrl+v", key.NewRuneEvent('v', key.ModControl), IntentPaste, false},
		{"ctrl+x", key.NewRuneEvent('x', key.ModControl), IntentCut, false},
		{"ctrl+shift+x uppercase", key.NewRuneEvent('X', key.ModControl.With(key.ModShift)), IntentCut, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shift, ok := ResolveIntent(tt.ev, profile)
			if !ok {
				t.Fatal("ResolveIntent not ok")
			}
			if got != tt.want || shift != tt.wantShift {
				t.Errorf("ResolveIntent = %s shift %v, want %s shift %v", got, shift, tt.want, tt.wantShift)
			}
		})
	}
}

func TestResolveIntentMac(t *testing.T) {
	profile := MacProfile()

	got, _, ok := ResolveIntent(key.NewSpecialEvent(key.KeyLeft, key.ModAlt), profile)
	if !ok || got != IntentWordLeft {
		t.Errorf("alt left on mac = %s, want word-left", got)
	}
	got, _, ok = ResolveIntent(key.NewSpecialEvent(key.KeyLeft, key.ModMeta), profile)
	if !ok || got != IntentLineLeft {
		t.Errorf("meta left on mac = %s, want line-left", got)
	}
	got, _, ok = ResolveIntent(key.NewRuneEvent('c', key.ModMeta), profile)
	if !ok || got != IntentCopy {
		t.Errorf("meta c on mac = %s, want copy", got)
	}
}

func TestResolveIntentRejects(t *testing.T) {
	profile := PCProfile()
	tests := []struct {
		name string
		ev   key.Event
	}{
		{"plain letter", key.NewRuneEvent('c', 0)},
		{"letter with wrong modifier", key.NewRuneEvent('c', key.ModAlt)},
		{"unhandled letter with shortcut", key.NewRuneEvent('q', key.ModControl)},
		{"escape", key.NewSpecialEvent(key.KeyEscape, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := ResolveIntent(tt.ev, profile); ok {
				t.Errorf("ResolveIntent(%s) resolved, want rejection", tt.ev)
			}
		})
	}
}

func TestIntentClassification(t *testing.T) {
	if !IntentMoveUp.IsMovement() || !IntentMoveUp.IsVertical() {
		t.Error("up should be vertical movement")
	}
	if !IntentWordLeft.IsMovement() || IntentWordLeft.IsVertical() {
		t.Error("word-left should be horizontal movement")
	}
	if IntentCopy.IsMovement() {
		t.Error("copy is not movement")
	}
}
