// Package countdown derives the remaining time until a claim window expires.
// Everything is recomputed from the absolute deadline; nothing is decremented,
// so the display can never drift or go negative.
package countdown

import (
	"context"
	"fmt"
	"time"
)

// Clock computes remaining time against absolute deadlines.
type Clock struct {
	interval time.Duration
	now      func() time.Time
}

// New creates a clock ticking at the given interval (one second for display).
func New(interval time.Duration) *Clock {
	return &Clock{
		interval: interval,
		now:      time.Now,
	}
}

// Remaining returns the duration until the deadline, clamped at zero.
func (c *Clock) Remaining(endsAt time.Time) time.Duration {
	remaining := endsAt.Sub(c.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the deadline has passed.
func (c *Clock) Expired(endsAt time.Time) bool {
	return !c.now().Before(endsAt)
}

// Watch invokes fn once per tick with the formatted remaining time and an
// expired flag until the context ends. The deadline is re-read every tick, so
// replacing the window takes effect on the next tick with no stale state.
func (c *Clock) Watch(ctx context.Context, endsAt func() time.Time, fn func(remaining string, expired bool)) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := endsAt()
			fn(Format(c.Remaining(deadline)), c.Expired(deadline))
		}
	}
}

// Format renders a duration as HH:MM:SS. Hours are not wrapped at 24 so
// windows longer than a day still read correctly.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
