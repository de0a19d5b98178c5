package flowq

import (
	"context"
	"fmt"
	"strings"
)

// AggregateError is returned by [Any] when every input rejected. It
// carries each rejection reason in input order.
type AggregateError struct {
	Reasons []error
}

// Error lists every reason.
func (e *AggregateError) Error() string {
	if len(e.Reasons) == 0 {
		return "flowq: no results to wait for"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "flowq: all %d tasks rejected:", len(e.Reasons))
	for _, r := range e.Reasons {
		b.WriteString("\n\t")
		b.WriteString(r.Error())
	}
	return b.String()
}

// Unwrap exposes the individual reasons to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Reasons }

// Any waits for the first result to fulfill and returns its value.
// Rejections are tolerated as long as some input fulfills; when every
// input rejects, Any returns a [*AggregateError] holding all reasons
// in input order. Called with no results it rejects the same way,
// with an empty aggregate.
//
// Losing results are left to settle on their own; Any only stops
// watching them. If ctx ends first, Any returns the cancellation
// cause.
func Any[T any](ctx context.Context, rs ...*Result[T]) (T, error) {
	var zero T
	if len(rs) == 0 {
		return zero, &AggregateError{}
	}

	type settlement struct {
		pos int
		val T
		err error
	}
	// Buffered so losers can settle after the winner is returned.
	ch := make(chan settlement, len(rs))
	for i, r := range rs {
		go func() {
			v, err := r.Wait()
			ch <- settlement{pos: i, val: v, err: err}
		}()
	}

	reasons := make([]error, len(rs))
	for remaining := len(rs); remaining > 0; remaining-- {
		select {
		case s := <-ch:
			if s.err == nil {
				return s.val, nil
			}
			reasons[s.pos] = s.err
		case <-ctx.Done():
			return zero, context.Cause(ctx)
		}
	}
	return zero, &AggregateError{Reasons: reasons}
}
