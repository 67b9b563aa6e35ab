package field

import (
	"testing"
	"time"
)

func TestBlinkSchedule(t *testing.T) {
	b := NewBlink(500*time.Millisecond, 150*time.Millisecond, false)
	now := time.Unix(0, 0)
	b.Start(now)

	if !b.Visible() {
		t.Fatal("caret hidden immediately after Start")
	}
	// Initial delay plus half period: still visible just before.
	if got := b.Advance(now.Add(600 * time.Millisecond)); !got {
		t.Error("toggled before initial delay elapsed")
	}
	if got := b.Advance(now.Add(700 * time.Millisecond)); got {
		t.Error("still visible after first toggle was due")
	}
	if got := b.Advance(now.Add(1200 * time.Millisecond)); !got {
		t.Error("not visible again after second toggle")
	}
}

func TestBlinkRestartSkipsInitialDelay(t *testing.T) {
	b := NewBlink(500*time.Millisecond, 150*time.Millisecond, false)
	now := time.Unix(0, 0)
	b.Start(now)
	b.Advance(now.Add(700 * time.Millisecond)) // hidden

	// A keystroke restarts the cycle with the caret visible.
	b.Restart(now.Add(700 * time.Millisecond))
	if !b.Visible() {
		t.Fatal("caret hidden right after Restart")
	}
	if got := b.Advance(now.Add(1150 * time.Millisecond)); !got {
		t.Error("toggled before a full half period after Restart")
	}
	if got := b.Advance(now.Add(1250 * time.Millisecond)); got {
		t.Error("no toggle a half period after Restart")
	}
}

func TestBlinkAdvanceCatchesUp(t *testing.T) {
	b := NewBlink(500*time.Millisecond, 0, false)
	now := time.Unix(0, 0)
	b.Start(now)

	ticks := 0
	b.OnTick(func() { ticks++ })

	// A long frame gap processes every missed toggle.
	b.Advance(now.Add(2600 * time.Millisecond))
	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}
	if b.Visible() {
		t.Error("visibility wrong after odd toggle count")
	}
}

func TestBlinkStopLeavesVisible(t *testing.T) {
	b := NewBlink(500*time.Millisecond, 0, false)
	now := time.Unix(0, 0)
	b.Start(now)
	b.Advance(now.Add(600 * time.Millisecond)) // hidden
	b.Stop()

	if !b.Visible() {
		t.Error("Stop should leave the caret visible")
	}
	if b.Running() {
		t.Error("still running after Stop")
	}
	if got := b.Opacity(now.Add(10 * time.Second)); got != 1 {
		t.Errorf("stopped opacity = %v, want 1", got)
	}
}

func TestBlinkDiscreteOpacity(t *testing.T) {
	b := NewBlink(500*time.Millisecond, 0, false)
	now := time.Unix(0, 0)
	b.Start(now)

	if got := b.Opacity(now.Add(100 * time.Millisecond)); got != 1 {
		t.Errorf("visible opacity = %v, want 1", got)
	}
	b.Advance(now.Add(600 * time.Millisecond))
	if got := b.Opacity(now.Add(600 * time.Millisecond)); got != 0 {
		t.Errorf("hidden opacity = %v, want 0", got)
	}
}

func TestBlinkAnimatedOpacityFades(t *testing.T) {
	b := NewBlink(500*time.Millisecond, 0, true)
	now := time.Unix(0, 0)
	b.Start(now)
	b.Advance(now.Add(500 * time.Millisecond)) // toggles hidden at 500ms

	// Mid-fade: opacity strictly between the endpoints.
	got := b.Opacity(now.Add(550 * time.Millisecond))
	if got <= 0 || got >= 1 {
		t.Errorf("mid-fade opacity = %v, want in (0, 1)", got)
	}
	// Fade complete.
	if got := b.Opacity(now.Add(700 * time.Millisecond)); got != 0 {
		t.Errorf("post-fade opacity = %v, want 0", got)
	}
}

func TestBlinkNextDeadline(t *testing.T) {
	b := NewBlink(500*time.Millisecond, 150*time.Millisecond, false)
	if _, ok := b.NextDeadline(); ok {
		t.Error("stopped blink reported a deadline")
	}
	now := time.Unix(0, 0)
	b.Start(now)
	deadline, ok := b.NextDeadline()
	if !ok || !deadline.Equal(now.Add(650*time.Millisecond)) {
		t.Errorf("deadline = %v, want 650ms after start", deadline)
	}
}
