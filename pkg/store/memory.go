package store

import (
	"context"
	"sync"
	"time"

	"leadrelay/pkg/timeutil"
)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// MemoryBackend is the in-process fallback used when no redis connection
// is configured or reachable. Entries expire lazily: Get checks the
// deadline and removes expired entries on access.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	clock timeutil.Clock
}

// NewMemoryBackend creates the fallback backend. A nil clock selects the
// system clock; tests inject a FrozenClock to exercise expiry.
func NewMemoryBackend(clock timeutil.Clock) *MemoryBackend {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &MemoryBackend{
		items: make(map[string]memoryItem),
		clock: clock,
	}
}

func (b *MemoryBackend) Set(_ context.Context, key, value string, ttl time.Duration) error {
	b.mu.Lock()
	b.items[key] = memoryItem{
		value:     value,
		expiresAt: b.clock.Now().Add(ttl),
	}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	item, ok := b.items[key]
	b.mu.RUnlock()

	if !ok {
		return "", false, nil
	}

	if b.clock.Now().After(item.expiresAt) {
		b.mu.Lock()
		delete(b.items, key)
		b.mu.Unlock()
		return "", false, nil
	}

	return item.value, true, nil
}

func (b *MemoryBackend) Name() string { return "memory" }
