package scan

import (
	"context"
	"sync"
)

// Loop is a single-threaded cooperative executor modeled on a rendering
// engine's event loop: tasks run one at a time on the goroutine that calls
// Run, in posting order. Goroutines doing work outside the loop hand their
// completions back in through Post and hold the loop open with Track.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	pending int
	wake    chan struct{}
}

// NewLoop returns an empty loop ready to accept tasks.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn to run on the loop goroutine. Safe to call from any
// goroutine, including loop tasks themselves.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
}

// Track registers one unit of outside work the loop must outlive. The
// returned release marks the work finished; it is safe from any goroutine
// and harmless to call more than once.
func (l *Loop) Track() (release func()) {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.pending--
			l.mu.Unlock()
			l.signal()
		})
	}
}

// Run executes tasks until the queue is drained and no tracked work
// remains, or the context is cancelled. Posted tasks run exactly once, in
// order; tasks still queued at cancellation never run.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if fn := l.next(); fn != nil {
			fn()
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if l.idle() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue = l.queue[1:]
	return fn
}

func (l *Loop) idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) == 0 && l.pending == 0
}

// signal never blocks; the buffered slot coalesces bursts and Run re-checks
// state after every wakeup.
func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
