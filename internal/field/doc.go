// Package field owns the authoritative editing value of one text field
// and keeps three views of it synchronized: the logical buffer (text,
// selection, composing range), the visual layout, and the platform
// input-method connection.
//
// All mutation happens on a single logical UI thread in response to
// timer ticks, platform callbacks, gestures, and key events. The
// value is replaced wholesale on every change; observers are notified
// synchronously after a commit, before the next external event is
// processed.
package field
