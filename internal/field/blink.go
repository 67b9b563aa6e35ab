package field

import (
	"time"

	"github.com/dshills/fieldkit/internal/anim"
)

const (
	// BlinkHalfPeriod is the time the caret spends in each visibility
	// state.
	BlinkHalfPeriod = 500 * time.Millisecond

	// BlinkInitialDelay is the pause before the first toggle after
	// (re)focusing, avoiding a jarring flash.
	BlinkInitialDelay = 150 * time.Millisecond

	// blinkFade is how long the animated caret takes to fade between
	// states.
	blinkFade = 100 * time.Millisecond
)

// Blink is the caret blink timer. It is poll-driven: the host calls
// Advance with the current time each frame and samples Visible or
// Opacity. The timer runs only while the field has focus and the
// selection is collapsed; a non-collapsed selection shows a solid
// highlight instead, so the timer is paused to save cycles.
type Blink struct {
	halfPeriod   time.Duration
	initialDelay time.Duration
	animated     bool

	running    bool
	visible    bool
	nextToggle time.Time
	lastToggle time.Time

	// onTick fires once per half-period toggle while running; the
	// owner uses it to count down the obscured-character reveal.
	onTick func()
}

// NewBlink creates a blink timer. animated selects opacity fading
// instead of a hard toggle.
func NewBlink(halfPeriod, initialDelay time.Duration, animated bool) *Blink {
	if halfPeriod <= 0 {
		halfPeriod = BlinkHalfPeriod
	}
	if initialDelay < 0 {
		initialDelay = BlinkInitialDelay
	}
	return &Blink{halfPeriod: halfPeriod, initialDelay: initialDelay, animated: animated, visible: true}
}

// OnTick registers the per-toggle callback.
func (b *Blink) OnTick(fn func()) {
	b.onTick = fn
}

// Start begins blinking at now, caret visible, with the initial delay
// before the first toggle. A running timer is fully restarted.
func (b *Blink) Start(now time.Time) {
	b.running = true
	b.visible = true
	b.lastToggle = now
	b.nextToggle = now.Add(b.initialDelay + b.halfPeriod)
}

// Restart resets the cycle with the caret visible and no initial
// delay, so the caret does not appear to blink while the user is
// actively typing.
func (b *Blink) Restart(now time.Time) {
	b.running = true
	b.visible = true
	b.lastToggle = now
	b.nextToggle = now.Add(b.halfPeriod)
}

// Stop cancels the timer, leaving the caret visible.
func (b *Blink) Stop() {
	b.running = false
	b.visible = true
}

// Running returns true while the timer ticks.
func (b *Blink) Running() bool {
	return b.running
}

// Advance processes every toggle due by now and returns the current
// visibility.
func (b *Blink) Advance(now time.Time) bool {
	if !b.running {
		return b.visible
	}
	for !b.nextToggle.After(now) {
		b.visible = !b.visible
		b.lastToggle = b.nextToggle
		b.nextToggle = b.nextToggle.Add(b.halfPeriod)
		if b.onTick != nil {
			b.onTick()
		}
	}
	return b.visible
}

// Visible returns the current discrete visibility.
func (b *Blink) Visible() bool {
	return b.visible
}

// Opacity returns the caret opacity at now. In discrete mode it is 0
// or 1; in animated mode the caret fades toward its state over a short
// easing ramp after each toggle.
func (b *Blink) Opacity(now time.Time) float64 {
	if !b.running {
		return 1
	}
	if !b.animated {
		if b.visible {
			return 1
		}
		return 0
	}
	p := float64(now.Sub(b.lastToggle)) / float64(blinkFade)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	eased := anim.EaseInOut(p)
	if b.visible {
		return eased
	}
	return 1 - eased
}

// NextDeadline returns when the next toggle is due, for hosts that
// schedule wakeups instead of polling every frame.
func (b *Blink) NextDeadline() (time.Time, bool) {
	if !b.running {
		return time.Time{}, false
	}
	return b.nextToggle, true
}
