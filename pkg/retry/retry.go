package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Connect retries fn with exponential backoff. Meant for bringing up
// connections at startup (redis ping), bounded so a dead backend cannot
// stall boot indefinitely.
func Connect(ctx context.Context, fn func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 500 * time.Millisecond
	exp.Multiplier = 2.0
	exp.MaxInterval = 3 * time.Second
	exp.RandomizationFactor = 0.5
	exp.Reset()

	type unit struct{}
	op := func() (unit, error) {
		return unit{}, fn()
	}

	_, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(10*time.Second),
	)
	return err
}

// Brief retries fn a few times with a short fixed delay. Meant for
// best-effort vendor calls where giving up quickly is fine.
func Brief(ctx context.Context, fn func() error) error {
	const (
		maxAttempts = 3
		delay       = 200 * time.Millisecond
	)

	var err error
	for i := 0; i < maxAttempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
