package claim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowExpiry(t *testing.T) {
	now := time.Now()
	w := NewWindow(now, 24*time.Hour)

	assert.Equal(t, now.Add(24*time.Hour), w.EndsAt)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"just opened", now, false},
		{"mid window", now.Add(12 * time.Hour), false},
		{"one tick before expiry", w.EndsAt.Add(-time.Second), false},
		{"exactly at expiry", w.EndsAt, true},
		{"past expiry", w.EndsAt.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Expired(tt.at))
		})
	}
}

func TestWindowRemainingClampsAtZero(t *testing.T) {
	now := time.Now()
	w := NewWindow(now, time.Hour)

	assert.Equal(t, time.Hour, w.Remaining(now))
	assert.Equal(t, 30*time.Minute, w.Remaining(now.Add(30*time.Minute)))
	assert.Equal(t, time.Duration(0), w.Remaining(w.EndsAt))
	assert.Equal(t, time.Duration(0), w.Remaining(w.EndsAt.Add(time.Hour)))
}
