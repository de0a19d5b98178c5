package flowq

import "context"

// Reduce folds items into a single accumulator, visiting them in
// order. fn receives the accumulator so far and the next item; its
// return value becomes the accumulator for the following item.
//
// Reduce is inherently sequential. The first failure stops the fold
// and is returned verbatim; the partial accumulator is discarded.
func Reduce[T, A any](ctx context.Context, items []T, initial A, fn func(ctx context.Context, acc A, item T) (A, error)) (A, error) {
	acc := initial
	for _, item := range items {
		if err := context.Cause(ctx); err != nil {
			var zero A
			return zero, err
		}
		next, err := fn(ctx, acc, item)
		if err != nil {
			var zero A
			return zero, err
		}
		acc = next
	}
	return acc, nil
}

// Each applies fn to every item in order, one at a time, stopping at
// the first failure. It is [Series] for side effects: no results are
// collected.
func Each[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error) error {
	for _, item := range items {
		if err := context.Cause(ctx); err != nil {
			return err
		}
		if err := fn(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
