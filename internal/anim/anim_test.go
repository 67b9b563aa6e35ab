package anim

import (
	"testing"
	"time"
)

func TestAnimationLifecycle(t *testing.T) {
	now := time.Unix(0, 0)
	a := Start(0, 100, now, 100*time.Millisecond, Linear)

	if !a.Active() {
		t.Fatal("not active after Start")
	}
	if got := a.ValueAt(now); got != 0 {
		t.Errorf("value at start = %v", got)
	}
	if got := a.ValueAt(now.Add(50 * time.Millisecond)); got != 50 {
		t.Errorf("midpoint = %v, want 50", got)
	}
	if got := a.ValueAt(now.Add(200 * time.Millisecond)); got != 100 {
		t.Errorf("past end = %v, want clamped 100", got)
	}

	if a.DoneAt(now.Add(50 * time.Millisecond)) {
		t.Error("done at midpoint")
	}
	if !a.DoneAt(now.Add(100 * time.Millisecond)) {
		t.Error("not done at end")
	}
	if a.Active() {
		t.Error("still active after DoneAt marked completion")
	}
}

func TestNilAnimationIsFinished(t *testing.T) {
	var a *Animation
	if a.Active() {
		t.Error("nil animation active")
	}
	if !a.DoneAt(time.Now()) {
		t.Error("nil animation not done")
	}
	if got := a.ValueAt(time.Now()); got != 0 {
		t.Errorf("nil animation value = %v", got)
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	now := time.Unix(0, 0)
	a := Start(0, 10, now, 0, Linear)
	if got := a.ValueAt(now); got != 10 {
		t.Errorf("value = %v, want 10", got)
	}
	if !a.DoneAt(now) {
		t.Error("not done immediately")
	}
}

func TestCancel(t *testing.T) {
	a := Start(0, 10, time.Unix(0, 0), time.Second, nil)
	a.Cancel()
	if a.Active() {
		t.Error("active after Cancel")
	}
}

func TestCurves(t *testing.T) {
	for name, c := range map[string]Curve{"linear": Linear, "easeInOut": EaseInOut, "decelerate": Decelerate} {
		if got := c(0); got != 0 {
			t.Errorf("%s(0) = %v", name, got)
		}
		if got := c(1); got != 1 {
			t.Errorf("%s(1) = %v", name, got)
		}
	}
	// Decelerate covers more ground early.
	if Decelerate(0.5) <= 0.5 {
		t.Error("Decelerate should lead a linear ramp")
	}
}
