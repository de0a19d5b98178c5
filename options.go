package flowq

import "time"

// TaskInfo provides metadata about a scheduled task. It is passed to
// observability hooks registered via [WithOnTaskStart] and
// [WithOnTaskDone].
type TaskInfo struct {
	// Index is the task's position in the input sequence handed to
	// [Queue] or [Map].
	Index int

	// Priority is the admission priority the task was enqueued with.
	// Queue admits every task at priority zero.
	Priority int
}

type queueConfig struct {
	cancelOnError bool
	drainOnError  bool
	onStart       func(TaskInfo)
	onDone        func(TaskInfo, error, time.Duration)
}

// QueueOption configures a single [Queue] or [Map] run.
type QueueOption func(*queueConfig)

// WithCancelOnError cancels the context passed to sibling tasks as
// soon as one task fails, using the failure as the cancellation cause.
//
// By default a failure settles the run but leaves in-flight siblings
// running to completion on an untouched context.
func WithCancelOnError() QueueOption {
	return func(c *queueConfig) {
		c.cancelOnError = true
	}
}

// WithDrainOnError makes a failed run wait for its in-flight tasks to
// settle before returning. The returned error is still the first
// failure; outcomes of the drained tasks are discarded.
//
// Combine with [WithCancelOnError] to both signal the siblings and
// wait for them.
func WithDrainOnError() QueueOption {
	return func(c *queueConfig) {
		c.drainOnError = true
	}
}

// WithOnTaskStart registers a hook invoked when each task begins
// executing. The hook runs on the task's goroutine before the task
// function.
func WithOnTaskStart(fn func(TaskInfo)) QueueOption {
	return func(c *queueConfig) {
		c.onStart = fn
	}
}

// WithOnTaskDone registers a hook invoked when each task finishes.
// The hook receives the task's error (nil on success) and wall-clock
// duration. It runs on the task's goroutine after the task function
// returns, even for tasks whose outcome the run has already stopped
// caring about.
func WithOnTaskDone(fn func(TaskInfo, error, time.Duration)) QueueOption {
	return func(c *queueConfig) {
		c.onDone = fn
	}
}
