package worker

import (
	"context"
	"math"
	"time"
)

// RetryPolicy controls how many times a report save is attempted and how
// long to back off between attempts. A zero value means 3 attempts starting
// at one second, doubling each time.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

func (r RetryPolicy) normalized() RetryPolicy {
	if r.MaxRetries <= 0 {
		r.MaxRetries = 3
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = time.Second
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}
	return r
}

// NextDelay returns the backoff after a given failed attempt (1-based),
// clamped by MaxDelay.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	r = r.normalized()
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1)))
	if r.MaxDelay > 0 && delay > r.MaxDelay {
		delay = r.MaxDelay
	}
	if delay <= 0 {
		delay = r.InitialDelay
	}
	return delay
}

// Do runs save up to MaxRetries times, sleeping NextDelay between attempts.
// It returns nil on the first success, ctx.Err() when canceled while
// waiting, and otherwise the last save error.
func (r RetryPolicy) Do(ctx context.Context, save func(attempt int) error) error {
	r = r.normalized()

	var err error
	for attempt := 1; attempt <= r.MaxRetries; attempt++ {
		if err = save(attempt); err == nil {
			return nil
		}
		if attempt == r.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.NextDelay(attempt)):
		}
	}
	return err
}
