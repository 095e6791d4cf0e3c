// Package retry implements the bounded-retry-with-backoff policy applied
// to lock and serialization conflicts on per-key critical sections.
package retry

import (
	"context"
	"time"
)

type Policy struct {
	Attempts int
	Backoff  time.Duration
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. The backoff doubles between attempts.
func (p Policy) Do(ctx context.Context, retryable func(error) bool, fn func() error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 3
	}

	backoff := p.Backoff
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}

	var err error

	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !retryable(err) {
			return err
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff << i):
		}
	}

	return err
}
