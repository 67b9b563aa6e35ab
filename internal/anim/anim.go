// Package anim provides poll-driven animations for the editing core:
// an animation is started with a duration and curve, then sampled with
// the current time on each frame. Starting a new animation of the same
// kind replaces the previous one, which is how cancellation works in
// the single-threaded frame loop.
package anim

import "time"

// Curve maps time progress (0..1) to value progress (0..1).
type Curve func(t float64) float64

// Linear advances at constant speed.
func Linear(t float64) float64 { return t }

// EaseInOut accelerates then decelerates, the standard curve for
// scroll adjustments.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Decelerate starts fast and eases to a stop, used for the floating
// cursor snapping back to its resting position.
func Decelerate(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

// Animation interpolates a scalar from From to To over Duration.
// The zero value is a finished animation stuck at 0.
type Animation struct {
	From, To float64
	Start    time.Time
	Duration time.Duration
	Curve    Curve
	active   bool
}

// Start begins an animation at now.
func Start(from, to float64, now time.Time, d time.Duration, curve Curve) *Animation {
	if curve == nil {
		curve = Linear
	}
	return &Animation{From: from, To: to, Start: now, Duration: d, Curve: curve, active: true}
}

// Active returns true while the animation has not been sampled past
// its end.
func (a *Animation) Active() bool {
	return a != nil && a.active
}

// ValueAt samples the animation at now, clamping past the end.
func (a *Animation) ValueAt(now time.Time) float64 {
	if a == nil || !a.active {
		return 0
	}
	t := a.progress(now)
	return a.From + (a.To-a.From)*a.Curve(t)
}

// DoneAt reports whether the animation has completed by now, and marks
// it inactive once it has.
func (a *Animation) DoneAt(now time.Time) bool {
	if a == nil || !a.active {
		return true
	}
	if a.progress(now) >= 1 {
		a.active = false
		return true
	}
	return false
}

// Cancel stops the animation immediately.
func (a *Animation) Cancel() {
	if a != nil {
		a.active = false
	}
}

func (a *Animation) progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(a.Start)) / float64(a.Duration)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
