package flowq

import "context"

// indexed carries a mapped value back together with its input
// position, so completion order can be undone.
type indexed[R any] struct {
	pos int
	val R
}

// Map applies fn to every item with at most ceiling applications in
// flight, and returns the mapped values in input order.
//
// Map runs on [Queue] and accepts the same options; it differs only
// in pairing each result with its input position so the output lines
// up with items regardless of which applications finished first.
// The first failure settles the call with that error and no results.
//
// Map panics if ceiling < 1 or fn is nil.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error), ceiling int, opts ...QueueOption) ([]R, error) {
	if fn == nil {
		panic("flowq: Map requires a non-nil fn")
	}
	tasks := make([]Task[indexed[R]], len(items))
	for i, item := range items {
		tasks[i] = func(ctx context.Context) (indexed[R], error) {
			v, err := fn(ctx, item)
			if err != nil {
				return indexed[R]{}, err
			}
			return indexed[R]{pos: i, val: v}, nil
		}
	}

	settled, err := Queue(ctx, tasks, ceiling, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]R, len(items))
	for _, s := range settled {
		out[s.pos] = s.val
	}
	return out, nil
}
