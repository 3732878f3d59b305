package timeutil

import (
	"sync"
	"time"
)

// Clock abstracts the time source so TTL checks can be tested
// without sleeping.
type Clock interface {
	Now() time.Time
}

// RealClock is the system clock in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// FrozenClock is a fixed time that can be advanced manually.
// Intended for unit tests.
type FrozenClock struct {
	mu sync.RWMutex
	t  time.Time
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{t: t}
}

func (c *FrozenClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

func (c *FrozenClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
