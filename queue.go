package flowq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/baxromumarov/flowq/prioq"
)

// admitted pairs a task with its input position for the admission
// list.
type admitted[T any] struct {
	index int
	fn    Task[T]
}

// queue drives one bounded-concurrency run. All state is guarded by
// mu; scheduling steps (admit, settle, refill) never interleave.
type queue[T any] struct {
	cfg     queueConfig
	ceiling int

	// cancel is non-nil only under WithCancelOnError.
	cancel context.CancelCauseFunc

	mu        sync.Mutex
	admission *prioq.List[admitted[T]]
	active    int
	results   []T
	err       error
	draining  bool
	finished  bool

	done chan struct{}
}

// Queue runs tasks with at most ceiling of them in flight at any
// moment and returns their results.
//
// All tasks are admitted up front; whenever a slot is free the
// longest-waiting task starts. Results are appended in completion
// order, which under concurrency is generally not input order; use
// [Map] when positions must line up with the input.
//
// The first task failure settles the run: Queue returns that error
// verbatim, admits nothing further, and discards the eventual
// outcomes of tasks already in flight. The siblings themselves keep
// running on an untouched context unless [WithCancelOnError] is set;
// [WithDrainOnError] additionally makes Queue wait for them before
// returning. A task panic settles the run the same way, with a
// [*PanicError] as the failure.
//
// If ctx is cancelled, no further tasks are admitted and Queue
// returns the cancellation cause. An empty task list resolves
// immediately. Queue panics if ceiling < 1 or any task is nil.
func Queue[T any](ctx context.Context, tasks []Task[T], ceiling int, opts ...QueueOption) ([]T, error) {
	if ceiling < 1 {
		panic("flowq: Queue requires ceiling >= 1")
	}
	for i, fn := range tasks {
		if fn == nil {
			panic(fmt.Sprintf("flowq: Queue task [%d] must not be nil", i))
		}
	}
	if len(tasks) == 0 {
		return []T{}, nil
	}

	cfg := queueConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &queue[T]{
		cfg:       cfg,
		ceiling:   ceiling,
		admission: prioq.New[admitted[T]](),
		results:   make([]T, 0, len(tasks)),
		done:      make(chan struct{}),
	}

	taskCtx := ctx
	if cfg.cancelOnError {
		var cancel context.CancelCauseFunc
		taskCtx, cancel = context.WithCancelCause(ctx)
		defer cancel(nil)
		q.cancel = cancel
	}

	for i, fn := range tasks {
		q.admission.Enqueue(admitted[T]{index: i, fn: fn}, 0)
	}

	q.mu.Lock()
	q.fill(taskCtx)
	q.mu.Unlock()

	<-q.done
	if q.err != nil {
		return nil, q.err
	}
	return q.results, nil
}

// fill is one scheduling step: start waiting tasks until the ceiling
// is reached or the admission list is empty, then resolve if nothing
// is left. Caller must hold mu.
func (q *queue[T]) fill(ctx context.Context) {
	if q.finished || q.draining {
		return
	}
	if err := context.Cause(ctx); err != nil {
		q.reject(err)
		return
	}
	for q.active < q.ceiling && !q.admission.Empty() {
		next, err := q.admission.DequeueHighest()
		if err != nil {
			// Unreachable: the loop condition guarantees an item.
			q.reject(err)
			return
		}
		q.active++
		go q.run(ctx, next)
	}
	if q.active == 0 && q.admission.Empty() {
		q.finish()
	}
}

// run executes one admitted task on its own goroutine.
func (q *queue[T]) run(ctx context.Context, a admitted[T]) {
	info := TaskInfo{Index: a.index}
	if q.cfg.onStart != nil {
		q.cfg.onStart(info)
	}
	start := time.Now()
	val, err := invoke(ctx, a.fn)
	if q.cfg.onDone != nil {
		q.cfg.onDone(info, err, time.Since(start))
	}
	q.settleOne(ctx, val, err)
}

// settleOne records one task outcome, then refills the freed slot or
// delivers the run's terminal outcome.
func (q *queue[T]) settleOne(ctx context.Context, val T, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.active--
	if q.finished {
		// The run settled while this task was in flight; its
		// outcome is dropped.
		return
	}
	if q.draining {
		if q.active == 0 {
			q.finish()
		}
		return
	}
	if err != nil {
		q.reject(err)
		return
	}
	q.results = append(q.results, val)
	q.fill(ctx)
}

// reject records the first failure and settles the run, or switches
// to draining when configured. Later failures never get here: the
// run is already finished or draining. Caller must hold mu.
func (q *queue[T]) reject(err error) {
	q.err = err
	if q.cancel != nil {
		q.cancel(err)
	}
	if q.cfg.drainOnError && q.active > 0 {
		q.draining = true
		return
	}
	q.finish()
}

// finish marks the terminal outcome, exactly once. Caller must hold
// mu.
func (q *queue[T]) finish() {
	q.finished = true
	close(q.done)
}
