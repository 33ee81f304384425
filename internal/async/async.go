// Package async provides the worker pool and result futures backing the
// facade's non-blocking call surface.
//
// The host simulation loop must never block on storage I/O: every
// store-touching operation is handed to the pool and observed through a
// Result. A result can be awaited with a deadline, but abandoning the wait
// never cancels the underlying operation; once submitted, a write runs to
// completion or failure so it can never be half-applied.
package async

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Result is the observable outcome of an asynchronous operation
type Result[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newResult[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

func (r *Result[T]) complete(value T, err error) {
	r.value = value
	r.err = err
	close(r.done)
}

// Done returns a channel closed when the result is available
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the operation completes or the context is done.
// A context error only abandons the wait; the operation keeps running.
func (r *Result[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// WaitTimeout is Wait with a deadline instead of a context
func (r *Result[T]) WaitTimeout(d time.Duration) (T, error) {
	select {
	case <-r.done:
		return r.value, r.err
	case <-time.After(d):
		var zero T
		return zero, context.DeadlineExceeded
	}
}

// Completed returns an already-resolved Result, for operations that fail
// validation before any I/O is attempted
func Completed[T any](value T, err error) *Result[T] {
	r := newResult[T]()
	r.complete(value, err)
	return r
}

// Pool runs submitted operations on a fixed set of worker goroutines
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	logger *slog.Logger

	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		tasks:  make(chan func(), workers*16),
		logger: logger,
	}

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Close stops accepting work and waits for in-flight operations to finish
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}

// Submit runs fn on a Result of its own. The operation receives a context
// detached from ctx's cancellation: a caller that stops waiting must not
// abort a write in flight.
func Submit[T any](p *Pool, ctx context.Context, fn func(ctx context.Context) (T, error)) *Result[T] {
	r := newResult[T]()
	opCtx := context.WithoutCancel(ctx)

	p.tasks <- func() {
		value, err := fn(opCtx)
		if err != nil {
			p.logger.Debug("async operation failed", slog.String("error", err.Error()))
		}
		r.complete(value, err)
	}

	return r
}
