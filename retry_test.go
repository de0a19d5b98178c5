package flowq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	var attempts int
	fn := Retry(func(ctx context.Context) (int, error) {
		attempts++
		return 42, nil
	}, 3, time.Millisecond)

	v, err := fn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, attempts, "no retries after a success")
}

func TestRetryRecoversAfterFailures(t *testing.T) {
	var attempts int
	fn := Retry(func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}, 2, time.Millisecond)

	v, err := fn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, attempts, "initial attempt plus two retries")
}

func TestRetryExhaustedReturnsLastError(t *testing.T) {
	last := errors.New("still broken")
	var attempts int
	fn := Retry(func(ctx context.Context) (int, error) {
		attempts++
		return 0, last
	}, 2, 0)

	_, err := fn(context.Background())
	if err != last {
		t.Fatalf("expected the last attempt's error verbatim, got %v", err)
	}
	assert.Equal(t, 3, attempts)
}

func TestRetryZeroRetriesMeansSingleAttempt(t *testing.T) {
	sentinel := errors.New("boom")
	var attempts int
	fn := Retry(func(ctx context.Context) (int, error) {
		attempts++
		return 0, sentinel
	}, 0, time.Millisecond)

	_, err := fn(context.Background())
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
}

func TestRetryHonorsContextDuringBackoff(t *testing.T) {
	cause := errors.New("shutting down")
	ctx, cancel := context.WithCancelCause(context.Background())

	var attempts int
	fn := Retry(func(ctx context.Context) (int, error) {
		attempts++
		return 0, errors.New("transient")
	}, 5, time.Minute)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel(cause)
	}()

	start := time.Now()
	_, err := fn(ctx)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts, "cancellation during backoff must not retry")
	assert.Less(t, time.Since(start), 10*time.Second,
		"the backoff sleep should be abandoned on cancellation")
}

func TestRetryPanicsOnInvalidInput(t *testing.T) {
	fn := func(ctx context.Context) (int, error) { return 0, nil }

	mustPanic(t, "Retry requires retries >= 0", func() {
		Retry(fn, -1, time.Millisecond)
	})
	mustPanic(t, "Retry requires backoff >= 0", func() {
		Retry(fn, 1, -time.Millisecond)
	})
}

func TestTimeoutReturnsFastResult(t *testing.T) {
	fn := Timeout(func(ctx context.Context) (string, error) {
		return "quick", nil
	}, time.Second)

	v, err := fn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "quick", v)
}

func TestTimeoutExpires(t *testing.T) {
	fn := Timeout(func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, 20*time.Millisecond)

	_, err := fn(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTimeoutDropsLateOutcome(t *testing.T) {
	release := make(chan struct{})
	fn := Timeout(func(ctx context.Context) (int, error) {
		<-release
		return 99, nil
	}, 10*time.Millisecond)

	_, err := fn(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The inner task settles afterwards into a buffered channel; it
	// must not block or surface anywhere.
	close(release)
}

func TestTimeoutPropagatesTaskError(t *testing.T) {
	sentinel := errors.New("boom")
	fn := Timeout(func(ctx context.Context) (int, error) {
		return 0, sentinel
	}, time.Second)

	_, err := fn(context.Background())
	if err != sentinel {
		t.Fatalf("expected the task error verbatim, got %v", err)
	}
}

func TestTimeoutPanicsOnInvalidDuration(t *testing.T) {
	fn := func(ctx context.Context) (int, error) { return 0, nil }

	mustPanic(t, "Timeout requires d > 0", func() {
		Timeout(fn, 0)
	})
	mustPanic(t, "Timeout requires d > 0", func() {
		Timeout(fn, -time.Second)
	})
}

func TestDecoratorsComposeWithQueue(t *testing.T) {
	var attempts int
	tasks := []Task[int]{
		Retry(func(ctx context.Context) (int, error) {
			attempts++
			if attempts < 2 {
				return 0, errors.New("transient")
			}
			return 5, nil
		}, 3, 0),
		Timeout(func(ctx context.Context) (int, error) {
			return 6, nil
		}, time.Second),
	}

	results, err := Queue(context.Background(), tasks, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 6}, results)
}
