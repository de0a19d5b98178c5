// Package flowq provides bounded-concurrency task scheduling and
// composition primitives for Go.
//
// The building block everywhere in the package is [Task]: a function
// from a context to a value or an error. flowq schedules tasks under a
// concurrency ceiling and composes their outcomes without ever
// interrupting a running task. Cancellation is always voluntary: the
// runtime delivers it through the task's context and moves on, and a
// task that ignores its context simply has its outcome discarded.
//
// # The Queue
//
// The primary entry point is [Queue], which runs a batch of tasks
// with at most a fixed number in flight at a time:
//
//	results, err := flowq.Queue(ctx, tasks, 4)
//
// Every task is admitted up front into a priority-ordered admission
// list; each time a slot frees, the longest-waiting task starts.
// Results arrive in completion order. The first failure settles the
// whole run with that error, verbatim; siblings already running are
// left alone and their outcomes are dropped.
//
// Two options change what happens to those siblings: [WithCancelOnError]
// cancels their context with the failure as cause, and
// [WithDrainOnError] makes Queue wait for them before returning.
//
// # Combinators
//
// Around the queue sit combinators for common shapes of work:
//
//   - [Series]: one task at a time, results in order.
//   - [Parallel]: everything at once, results in input order.
//   - [Waterfall]: sequential steps, each fed all prior results.
//   - [Map]: concurrent transform with a ceiling, output aligned
//     to input.
//   - [Reduce]: sequential fold into an accumulator.
//   - [Each]: sequential iteration for side effects.
//   - [Props]: a map of keyed tasks into a map of keyed results.
//
// # Started Tasks
//
// [Go] starts a task immediately and returns a [Result], a handle
// that any number of goroutines can wait on. [Any] returns the first
// fulfilled value among several results, rejecting with
// [*AggregateError] only when all of them reject. [AllSettled] waits
// for every result and reports each outcome as a [Settled] value,
// absorbing failures instead of propagating them; [Reflect] does the
// same for a single task so it can ride through [Queue] without
// settling the run.
//
// # Worker Pool
//
// [Pool] is the long-lived counterpart to Queue: a fixed set of
// workers consuming an open-ended stream of submissions. [Pool.Submit]
// enqueues at the default priority, [Pool.SubmitPriority] jumps the
// line; within a priority, submissions run in arrival order. Each
// submission returns a [Result]. Call [Pool.Close] to drain the
// backlog and collect task errors, joined via errors.Join.
//
// # Errors and Panics
//
// Task errors propagate verbatim, with no wrapping, so errors.Is and
// errors.As work against the caller's own sentinel values. A panic
// inside any task is captured with its stack and settles the task with
// a [*PanicError] instead of crashing the process. When every branch
// of [Any] fails, the reasons arrive together in an [*AggregateError].
//
// # Decorators
//
// [Retry] and [Timeout] wrap a task with exponential-backoff retries
// or a per-invocation deadline. They return tasks themselves, so they
// compose with everything above:
//
//	v, err := flowq.Go(ctx, flowq.Retry(fetch, 3, time.Second)).Wait()
//
// # Priority Admission
//
// The [github.com/baxromumarov/flowq/prioq] subpackage holds the
// admission structure shared by [Queue] and [Pool]: a red-black-tree
// list that dequeues the highest priority first and preserves
// admission order between equals.
package flowq
