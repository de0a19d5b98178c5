package flowq

import (
	"context"
	"fmt"
	"runtime"
)

// PanicError is the rejection reason for a task that panicked. It
// carries the recovered value and the goroutine stack captured at the
// point of the panic.
//
// Every runner in this package ([Queue], [Parallel], [Go], [Pool])
// converts task panics to *PanicError rather than letting them take
// the process down: a panicking task settles like any other failure.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

// Error returns the panic value followed by the captured stack trace.
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap exposes the panic value when it is itself an error, so that
// errors.Is and errors.As see through panic(err).
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	// 8 KiB holds most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// invoke runs one task on the current goroutine, converting a panic
// into a *PanicError rejection. All goroutine-spawning runners go
// through it so a panicking task can never crash the process.
func invoke[T any](ctx context.Context, fn Task[T]) (val T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			val, err = zero, newPanicError(rec)
		}
	}()
	return fn(ctx)
}
