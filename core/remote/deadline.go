package remote

import (
	"context"
	"fmt"
	"time"
)

// WithDeadline runs op and waits at most d for it to settle. On timeout it
// returns a *TimeoutError naming label; op keeps running with the caller's
// context and its late result is dropped. A cancelled ctx ends the wait
// early with ctx.Err().
func WithDeadline[T any](ctx context.Context, op func(context.Context) (T, error), d time.Duration, label string) (T, error) {
	var zero T
	if d <= 0 {
		return zero, fmt.Errorf("%w: %s", ErrInvalidTimeout, d)
	}

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result{err: fmt.Errorf("%w: %s: %v", ErrPanicked, label, p)}
			}
		}()
		v, err := op(ctx)
		done <- result{val: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.val, r.err
	case <-timer.C:
		return zero, &TimeoutError{Label: label, After: d}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
