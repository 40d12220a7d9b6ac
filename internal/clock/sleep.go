// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"

	"github.com/decred/dcrd/crypto/rand"
)

// SleepWithContext waits for the duration or returns early if the context is
// canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SleepWithJitter sleeps for d plus a random extension of up to d/2 so that
// replicas polling the same upstream drift apart.
func SleepWithJitter(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	jitter := time.Duration(rand.Int64N(int64(d)/2 + 1))
	return SleepWithContext(ctx, d+jitter)
}
