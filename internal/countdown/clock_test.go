package countdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00:00"},
		{"negative clamps to zero", -5 * time.Second, "00:00:00"},
		{"seconds only", 42 * time.Second, "00:00:42"},
		{"minutes and seconds", 90 * time.Second, "00:01:30"},
		{"just under a day", 24*time.Hour - time.Second, "23:59:59"},
		{"exactly a day", 24 * time.Hour, "24:00:00"},
		{"over a day is not wrapped", 25*time.Hour + 3*time.Minute + 7*time.Second, "25:03:07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.d))
		})
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	clock := New(time.Second)
	now := time.Now()
	clock.now = func() time.Time { return now }

	assert.Equal(t, 10*time.Second, clock.Remaining(now.Add(10*time.Second)))
	assert.Equal(t, time.Duration(0), clock.Remaining(now))
	assert.Equal(t, time.Duration(0), clock.Remaining(now.Add(-time.Hour)))
}

func TestExpiredBoundary(t *testing.T) {
	clock := New(time.Second)
	now := time.Now()
	clock.now = func() time.Time { return now }

	// At t == endsAt exactly, the window counts as expired.
	assert.True(t, clock.Expired(now))
	assert.True(t, clock.Expired(now.Add(-time.Millisecond)))
	assert.False(t, clock.Expired(now.Add(time.Millisecond)))
}

func TestWatchPicksUpReplacedDeadline(t *testing.T) {
	clock := New(5 * time.Millisecond)

	var mu sync.Mutex
	deadline := time.Now().Add(-time.Second)
	var ticks []bool // expired flag per tick

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		clock.Watch(ctx,
			func() time.Time {
				mu.Lock()
				defer mu.Unlock()
				return deadline
			},
			func(_ string, expired bool) {
				mu.Lock()
				defer mu.Unlock()
				ticks = append(ticks, expired)
			},
		)
	}()

	// First the expired deadline, then a fresh window: the next tick must
	// reflect the replacement with no stale state.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ticks) > 0 && ticks[len(ticks)-1]
	}, time.Second, time.Millisecond)

	mu.Lock()
	deadline = time.Now().Add(time.Hour)
	mu.Unlock()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ticks) > 0 && !ticks[len(ticks)-1]
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}
