package flowq

import "context"

// Task is a unit of asynchronous work. It receives a context for
// voluntary cancellation and returns either a value or an error; a nil
// error means the task fulfilled.
//
// Tasks must be non-nil wherever this package accepts them. The
// runtime never interrupts a running task: cancellation is delivered
// through ctx and it is up to the task to honor it.
type Task[T any] func(ctx context.Context) (T, error)

// Step is the sequential-pipeline form of a task, used by [Waterfall].
// It receives the results of every step that ran before it, in order.
// Steps must treat prior as read-only.
type Step[T any] func(ctx context.Context, prior []T) (T, error)

// Result is a handle to a task that has already been started, either
// by [Go] or by submitting to a [Pool]. It settles exactly once.
//
// Unlike a bare channel, a Result can be waited on any number of
// times from any number of goroutines; every waiter observes the same
// outcome.
type Result[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newResult[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

// settle publishes the outcome and releases all waiters. Must be
// called exactly once.
func (r *Result[T]) settle(val T, err error) {
	r.val = val
	r.err = err
	close(r.done)
}

// Wait blocks until the task settles and returns its outcome.
func (r *Result[T]) Wait() (T, error) {
	<-r.done
	return r.val, r.err
}

// Done returns a channel that is closed once the task has settled.
// Use it to select across several results or against a context.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Settled reports whether the task has settled, without blocking.
func (r *Result[T]) Settled() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Go starts fn on its own goroutine and returns a handle to its
// eventual outcome. A panic inside fn settles the result with a
// [*PanicError] instead of crashing the process.
//
// Go panics if fn is nil.
func Go[T any](ctx context.Context, fn Task[T]) *Result[T] {
	if fn == nil {
		panic("flowq: Go requires a non-nil task")
	}
	r := newResult[T]()
	go func() {
		r.settle(invoke(ctx, fn))
	}()
	return r
}
