package flowq

import (
	"context"
	"time"
)

// Retry wraps fn with up to retries additional attempts. After a
// failed attempt it sleeps backoff, doubling the delay each time, and
// tries again; the wrapped task returns the last attempt's error once
// the attempts are exhausted. A backoff of zero retries immediately.
//
// The sleep honors ctx: cancellation during a backoff settles the
// task with the cancellation cause instead of another attempt.
//
// Retry panics if retries or backoff is negative.
func Retry[T any](fn Task[T], retries int, backoff time.Duration) Task[T] {
	if retries < 0 {
		panic("flowq: Retry requires retries >= 0")
	}
	if backoff < 0 {
		panic("flowq: Retry requires backoff >= 0")
	}
	return func(ctx context.Context) (T, error) {
		var zero T
		delay := backoff
		for attempt := 0; ; attempt++ {
			v, err := fn(ctx)
			if err == nil {
				return v, nil
			}
			if attempt == retries {
				return zero, err
			}
			select {
			case <-time.After(delay):
				delay *= 2
			case <-ctx.Done():
				return zero, context.Cause(ctx)
			}
		}
	}
}

// Timeout wraps fn with a per-invocation deadline. fn runs under a
// context that expires after d; if it has not settled by then, the
// wrapped task returns context.DeadlineExceeded and fn's eventual
// outcome is discarded. As everywhere in this package the deadline is
// a signal, not an interrupt: fn keeps running until it honors its
// context.
//
// Timeout panics if d <= 0.
func Timeout[T any](fn Task[T], d time.Duration) Task[T] {
	if d <= 0 {
		panic("flowq: Timeout requires d > 0")
	}
	return func(ctx context.Context) (T, error) {
		tctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		type settlement struct {
			val T
			err error
		}
		// Buffered so a late fn can settle after the deadline fires.
		ch := make(chan settlement, 1)
		go func() {
			v, err := invoke(tctx, fn)
			ch <- settlement{val: v, err: err}
		}()

		select {
		case s := <-ch:
			return s.val, s.err
		case <-tctx.Done():
			var zero T
			return zero, context.Cause(tctx)
		}
	}
}
