package flowq

import "context"

// Series runs tasks one at a time, strictly left to right, and
// returns their results in the same order. Task k+1 does not start
// until task k has fulfilled.
//
// The first failure stops the run; tasks after it never start and the
// error is returned verbatim. A cancelled ctx stops the run between
// tasks with the cancellation cause.
func Series[T any](ctx context.Context, tasks []Task[T]) ([]T, error) {
	results := make([]T, 0, len(tasks))
	for _, fn := range tasks {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// Waterfall runs steps one at a time, feeding each step the results
// of every step before it. The first step receives an empty slice.
// It returns all step results in order.
//
// Like [Series], the first failure stops the run and is returned
// verbatim, and a cancelled ctx stops the run between steps.
func Waterfall[T any](ctx context.Context, steps []Step[T]) ([]T, error) {
	results := make([]T, 0, len(steps))
	for _, step := range steps {
		if err := context.Cause(ctx); err != nil {
			return nil, err
		}
		v, err := step(ctx, results)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}
