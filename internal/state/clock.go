package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock is a lamport clock tagged with this process's site ID.
type Clock struct {
	site    string
	counter atomic.Uint64
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

// Site returns the unique ID of this process.
func (c *Clock) Site() string {
	return c.site
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Observe advances the clock past a timestamp seen from another site.
func (c *Clock) Observe(t uint64) {
	for {
		cur := c.counter.Load()
		if t <= cur || c.counter.CompareAndSwap(cur, t) {
			return
		}
	}
}

// Now returns the current value without ticking.
func (c *Clock) Now() uint64 {
	return c.counter.Load()
}
