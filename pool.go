package flowq

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baxromumarov/flowq/prioq"
)

// ErrPoolClosed is returned by [Pool.Submit] when the pool has been
// closed or its context has ended.
var ErrPoolClosed = errors.New("flowq: pool is closed")

// ErrPoolFull is returned by [Pool.Submit] when a backlog bound set
// with [WithMaxPending] has been reached.
var ErrPoolFull = errors.New("flowq: pool backlog is full")

// submission is one accepted task waiting for a worker.
type submission[T any] struct {
	fn  Task[T]
	res *Result[T]
}

// Pool is a reusable worker pool. Unlike [Queue], which schedules one
// fixed batch and ends, a Pool accepts tasks over time and dispatches
// the highest-priority pending submission to the next free worker;
// equal priorities run in submission order.
//
// Every accepted submission gets a [Result] that settles exactly
// once: with the task's outcome, or with the pool context's
// cancellation cause if the task was still pending when the pool shut
// down.
type Pool[T any] struct {
	ctx    context.Context
	cancel context.CancelCauseFunc

	mu      sync.Mutex
	cond    *sync.Cond
	backlog *prioq.List[submission[T]]
	closed  bool

	wg         sync.WaitGroup
	maxPending int

	errMu sync.Mutex
	errs  []error

	// Observability counters.
	submitted atomic.Int64
	completed atomic.Int64
	errored   atomic.Int64
	inFlight  atomic.Int64
	workers   int
}

// PoolStats provides a point-in-time snapshot of pool activity.
type PoolStats struct {
	Submitted int64 // total accepted submissions
	Completed int64 // tasks finished (success + error)
	Errored   int64 // tasks that settled with a non-nil error
	InFlight  int64 // tasks currently executing
	Pending   int   // submissions waiting for a worker
	Workers   int   // worker count (fixed at creation)
}

// PoolOption configures a [Pool].
type PoolOption func(*poolConfig)

type poolConfig struct {
	maxPending      int
	onMetrics       func(PoolStats)
	metricsInterval time.Duration
}

// WithMaxPending bounds the backlog: submissions beyond n waiting
// tasks are refused with [ErrPoolFull]. The default is an unbounded
// backlog.
//
// Panics if n < 1.
func WithMaxPending(n int) PoolOption {
	if n < 1 {
		panic("flowq: WithMaxPending requires n >= 1")
	}
	return func(c *poolConfig) {
		c.maxPending = n
	}
}

// WithPoolMetrics registers a periodic metrics callback that fires
// every interval with a snapshot of the pool counters, until the pool
// is closed.
//
// Panics if interval <= 0 or fn is nil.
func WithPoolMetrics(interval time.Duration, fn func(PoolStats)) PoolOption {
	if interval <= 0 {
		panic("flowq: WithPoolMetrics requires interval > 0")
	}
	if fn == nil {
		panic("flowq: WithPoolMetrics requires non-nil callback")
	}
	return func(c *poolConfig) {
		c.onMetrics = fn
		c.metricsInterval = interval
	}
}

// NewPool creates a pool with the given number of worker goroutines.
// Workers start immediately and process submissions until [Pool.Close]
// is called or ctx ends. Panics if workers < 1.
func NewPool[T any](ctx context.Context, workers int, opts ...PoolOption) *Pool[T] {
	if workers < 1 {
		panic("flowq: NewPool requires workers >= 1")
	}

	cfg := poolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	pctx, cancel := context.WithCancelCause(ctx)
	p := &Pool[T]{
		ctx:        pctx,
		cancel:     cancel,
		backlog:    prioq.New[submission[T]](),
		maxPending: cfg.maxPending,
		workers:    workers,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	// Reject everything still pending once the context ends.
	go func() {
		<-pctx.Done()
		p.shutdown(context.Cause(pctx))
	}()

	if cfg.onMetrics != nil {
		go func() {
			ticker := time.NewTicker(cfg.metricsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					cfg.onMetrics(p.Stats())
				case <-pctx.Done():
					return
				}
			}
		}()
	}

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for p.backlog.Empty() && !p.closed {
			p.cond.Wait()
		}
		if p.backlog.Empty() {
			p.mu.Unlock()
			return
		}
		s, err := p.backlog.DequeueHighest()
		p.mu.Unlock()
		if err != nil {
			// Unreachable: the wait loop guarantees an item.
			continue
		}
		p.runTask(s)
	}
}

func (p *Pool[T]) runTask(s submission[T]) {
	p.inFlight.Add(1)
	defer func() {
		p.inFlight.Add(-1)
		p.completed.Add(1)
	}()

	val, err := invoke(p.ctx, s.fn)
	s.res.settle(val, err)
	if err != nil {
		p.errored.Add(1)
		p.errMu.Lock()
		p.errs = append(p.errs, err)
		p.errMu.Unlock()
	}
}

// shutdown stops intake and settles every pending submission with
// cause. Tasks already running are left to finish; they see the
// cancellation through the pool context.
func (p *Pool[T]) shutdown(cause error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	for !p.backlog.Empty() {
		s, err := p.backlog.DequeueHighest()
		if err != nil {
			break
		}
		var zero T
		s.res.settle(zero, cause)
	}
	p.cond.Broadcast()
}

// Stats returns a point-in-time snapshot of pool activity.
// Safe to call concurrently.
func (p *Pool[T]) Stats() PoolStats {
	p.mu.Lock()
	pending := p.backlog.Len()
	p.mu.Unlock()

	return PoolStats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Errored:   p.errored.Load(),
		InFlight:  p.inFlight.Load(),
		Pending:   pending,
		Workers:   p.workers,
	}
}

// Submit hands fn to the pool at the default priority and returns a
// handle to its eventual outcome. It never blocks: if the backlog is
// bounded and full it returns [ErrPoolFull], and after [Pool.Close]
// or context cancellation it returns [ErrPoolClosed].
//
// Panics if fn is nil.
func (p *Pool[T]) Submit(fn Task[T]) (*Result[T], error) {
	return p.submit(fn, 0)
}

// SubmitPriority is [Pool.Submit] with an explicit priority. Higher
// priorities are dispatched first; within a priority, submissions run
// in the order they arrived.
func (p *Pool[T]) SubmitPriority(fn Task[T], priority int) (*Result[T], error) {
	return p.submit(fn, priority)
}

func (p *Pool[T]) submit(fn Task[T], priority int) (*Result[T], error) {
	if fn == nil {
		panic("flowq: Pool requires a non-nil task")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	if p.maxPending > 0 && p.backlog.Len() >= p.maxPending {
		return nil, ErrPoolFull
	}

	s := submission[T]{fn: fn, res: newResult[T]()}
	p.backlog.Enqueue(s, priority)
	p.submitted.Add(1)
	p.cond.Signal()
	return s.res, nil
}

// Close stops accepting new submissions, lets the workers drain the
// backlog, and waits for them to finish. It returns the errors from
// all failed tasks joined together.
// Safe to call multiple times; subsequent calls return the same
// result.
func (p *Pool[T]) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		p.cond.Broadcast()
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel(nil)

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}
