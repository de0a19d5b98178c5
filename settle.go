package flowq

import "context"

// SettleStatus tags a [Settled] descriptor as fulfilled or rejected.
type SettleStatus int

const (
	// StatusFulfilled marks a task that returned a value.
	StatusFulfilled SettleStatus = iota

	// StatusRejected marks a task that returned an error or panicked.
	StatusRejected
)

// String returns "fulfilled" or "rejected".
func (s SettleStatus) String() string {
	switch s {
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Settled describes one task outcome as a value, so that a failure
// can be inspected without failing the caller. Exactly one of Value
// and Reason is meaningful, selected by Status.
type Settled[T any] struct {
	Status SettleStatus
	Value  T     // set when Status == StatusFulfilled
	Reason error // set when Status == StatusRejected
}

// Fulfilled reports whether the task returned a value.
func (s Settled[T]) Fulfilled() bool { return s.Status == StatusFulfilled }

// AllSettled waits for every result and describes each outcome in
// input order. It never fails: rejections are absorbed into the
// returned descriptors rather than propagated.
func AllSettled[T any](rs ...*Result[T]) []Settled[T] {
	out := make([]Settled[T], len(rs))
	for i, r := range rs {
		v, err := r.Wait()
		if err != nil {
			out[i] = Settled[T]{Status: StatusRejected, Reason: err}
			continue
		}
		out[i] = Settled[T]{Status: StatusFulfilled, Value: v}
	}
	return out
}

// Reflect wraps fn into a task that never fails: the wrapped task
// returns fn's outcome as a [Settled] value instead. Useful for
// running a batch through [Queue] or [Parallel] without the first
// rejection settling the whole run.
func Reflect[T any](fn Task[T]) Task[Settled[T]] {
	return func(ctx context.Context) (Settled[T], error) {
		v, err := invoke(ctx, fn)
		if err != nil {
			return Settled[T]{Status: StatusRejected, Reason: err}, nil
		}
		return Settled[T]{Status: StatusFulfilled, Value: v}, nil
	}
}
