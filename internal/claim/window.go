package claim

import "time"

// Window is the cooldown interval during which a repeat claim is disallowed.
// Eligibility is always derived from EndsAt against the wall clock; once the
// clock passes it the window is spent without any explicit event.
type Window struct {
	EndsAt   time.Time
	Duration time.Duration
}

// NewWindow opens a fresh window ending one duration from now.
func NewWindow(now time.Time, duration time.Duration) Window {
	return Window{
		EndsAt:   now.Add(duration),
		Duration: duration,
	}
}

// Expired reports whether the window has been passed by the wall clock.
func (w Window) Expired(now time.Time) bool {
	return !now.Before(w.EndsAt)
}

// Remaining returns the time left in the window, clamped at zero.
func (w Window) Remaining(now time.Time) time.Duration {
	remaining := w.EndsAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
