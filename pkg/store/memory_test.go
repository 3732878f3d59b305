package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadrelay/pkg/timeutil"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	b := NewMemoryBackend(nil)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "ph:+12814562323", `{"first_name":"Dana"}`, time.Hour))

	val, found, err := b.Get(ctx, "ph:+12814562323")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"first_name":"Dana"}`, val)
}

func TestMemoryBackendMissingKey(t *testing.T) {
	b := NewMemoryBackend(nil)

	_, found, err := b.Get(context.Background(), "ph:+15550000000")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryBackendOverwrite(t *testing.T) {
	b := NewMemoryBackend(nil)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "sub:abc", "old", time.Hour))
	require.NoError(t, b.Set(ctx, "sub:abc", "new", time.Hour))

	val, found, _ := b.Get(ctx, "sub:abc")
	assert.True(t, found)
	assert.Equal(t, "new", val)
}

func TestMemoryBackendExpiry(t *testing.T) {
	clock := timeutil.NewFrozenClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	b := NewMemoryBackend(clock)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "ph:+12814562323", "payload", 24*time.Hour))

	_, found, err := b.Get(ctx, "ph:+12814562323")
	require.NoError(t, err)
	assert.True(t, found)

	clock.Advance(24*time.Hour + time.Second)

	_, found, err = b.Get(ctx, "ph:+12814562323")
	require.NoError(t, err)
	assert.False(t, found, "entry past its TTL must read as absent")

	// Expired entries are removed on access, not resurrected later.
	clock.Advance(-2 * time.Second)
	_, found, _ = b.Get(ctx, "ph:+12814562323")
	assert.False(t, found)
}
