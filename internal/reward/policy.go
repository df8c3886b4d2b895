// Package reward decides how many tokens a claim grants.
package reward

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Policy produces the reward quantity for a claim attempt. It is evaluated
// fresh for every attempt, never ahead of time.
type Policy interface {
	Amount() int64
}

// RandomPolicy grants a uniform random amount within an inclusive range.
type RandomPolicy struct {
	min int64
	max int64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPolicy creates a policy granting between min and max tokens inclusive.
func NewRandomPolicy(min, max int64) (*RandomPolicy, error) {
	if min <= 0 {
		return nil, fmt.Errorf("reward minimum must be positive, got %d", min)
	}
	if max < min {
		return nil, fmt.Errorf("reward range invalid: min %d > max %d", min, max)
	}

	return &RandomPolicy{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Amount returns a fresh amount in [min, max].
func (p *RandomPolicy) Amount() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min + p.rng.Int63n(p.max-p.min+1)
}

// Range returns the configured inclusive bounds.
func (p *RandomPolicy) Range() (int64, int64) {
	return p.min, p.max
}

// FixedPolicy always grants the same amount. Useful for deterministic
// per-user or server-determined rewards.
type FixedPolicy int64

// Amount returns the fixed amount.
func (p FixedPolicy) Amount() int64 {
	return int64(p)
}
