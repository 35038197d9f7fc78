// Package eventloop runs tasks one at a time on a single goroutine.
//
// A Loop gives a group of state a single logical thread: every mutation is
// posted as a task, and tasks never run concurrently with each other. Tasks
// may post further tasks; the queue is unbounded so posting never blocks.
package eventloop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Do when the loop has stopped before the task ran.
var ErrStopped = errors.New("event loop stopped")

// Loop is a FIFO task queue drained by Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped chan struct{}
	done    chan struct{}
	stop    sync.Once
}

// New creates a loop. Call Run to start processing tasks.
func New() *Loop {
	return &Loop{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Post enqueues fn. It returns false if the loop has been stopped,
// in which case fn will never run.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	select {
	case <-l.stopped:
		l.mu.Unlock()
		return false
	default:
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
		// Already signalled; Run drains the whole queue.
	}
	return true
}

// Do posts fn and waits for it to finish.
// Do must not be called from a task running on the same loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		// Run may have executed the task just before exiting.
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks until ctx is cancelled or Stop is called.
// Tasks still queued at that point are discarded.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return
		case <-l.stopped:
			return
		case <-l.wake:
		}

		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			fn()
		}
	}
}

// Stop stops accepting tasks. Run returns after the task in progress.
func (l *Loop) Stop() {
	l.stop.Do(func() {
		l.mu.Lock()
		close(l.stopped)
		l.queue = nil
		l.mu.Unlock()
	})
}

// Done is closed when Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.stopped:
		return nil, false
	default:
	}
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}
