package store

import (
	"context"
	"time"
)

// Backend is a minimal key/value store with per-key expiry. Implementations
// must be safe for concurrent use; values are stored as opaque text which
// callers marshal/unmarshal as needed.
type Backend interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the stored value and whether the key was present and
	// unexpired. A missing or expired key is (_, false, nil), not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Name identifies the active variant for health reporting.
	Name() string
}
