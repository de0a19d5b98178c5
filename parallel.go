package flowq

import (
	"context"
	"fmt"
)

// Parallel starts every task at once and returns their results in
// input order.
//
// The first failure settles the call immediately with that error;
// in-flight siblings keep running on an untouched context and their
// outcomes are discarded. For bounded concurrency use [Queue] or
// [Map].
//
// Parallel panics if any task is nil.
func Parallel[T any](ctx context.Context, tasks []Task[T]) ([]T, error) {
	for i, fn := range tasks {
		if fn == nil {
			panic(fmt.Sprintf("flowq: Parallel task [%d] must not be nil", i))
		}
	}
	if len(tasks) == 0 {
		return []T{}, nil
	}

	type settlement struct {
		pos int
		val T
		err error
	}
	// Buffered so stragglers can settle after an early return.
	ch := make(chan settlement, len(tasks))
	for i, fn := range tasks {
		go func() {
			v, err := invoke(ctx, fn)
			ch <- settlement{pos: i, val: v, err: err}
		}()
	}

	results := make([]T, len(tasks))
	for range tasks {
		s := <-ch
		if s.err != nil {
			return nil, s.err
		}
		results[s.pos] = s.val
	}
	return results, nil
}

// Props starts every task in m at once and returns a map from each
// key to its task's result. It is [Parallel] for keyed work: the
// first failure settles the call immediately and sibling outcomes are
// discarded.
//
// Props panics if any task is nil.
func Props[K comparable, V any](ctx context.Context, m map[K]Task[V]) (map[K]V, error) {
	for k, fn := range m {
		if fn == nil {
			panic(fmt.Sprintf("flowq: Props task %q must not be nil", fmt.Sprint(k)))
		}
	}
	if len(m) == 0 {
		return map[K]V{}, nil
	}

	type settlement struct {
		key K
		val V
		err error
	}
	ch := make(chan settlement, len(m))
	for k, fn := range m {
		go func() {
			v, err := invoke(ctx, fn)
			ch <- settlement{key: k, val: v, err: err}
		}()
	}

	out := make(map[K]V, len(m))
	for range m {
		s := <-ch
		if s.err != nil {
			return nil, s.err
		}
		out[s.key] = s.val
	}
	return out, nil
}
