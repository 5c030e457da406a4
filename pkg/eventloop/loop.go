// Package eventloop provides a cooperative, single goroutine executor.
//
// All the tasks posted to a Loop run one after another on the same
// goroutine in the order they were posted, so the state they touch needs
// no locking. Delayed tasks are scheduled with AfterFunc and are executed
// on the loop as well.
package eventloop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/observability"
)

type Task func(ctx context.Context)

// Timer is a handle of a delayed task.
type Timer interface {
	// Stop cancels the task. It returns false if the task has already
	// been executed or stopped.
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, task Task) Timer
}

type Loop struct {
	locker  sync.Mutex
	queue   []Task
	stopped bool
	wakeCh  chan struct{}
	doneCh  chan struct{}
}

var _ Scheduler = (*Loop)(nil)

func New() *Loop {
	return &Loop{
		wakeCh: make(chan struct{}, 1),
		doneCh: make(chan struct{}),
	}
}

// Start runs the loop in a background goroutine until ctx is cancelled.
func (l *Loop) Start(ctx context.Context) {
	observability.Go(ctx, func(ctx context.Context) {
		err := l.Run(ctx)
		logger.Debugf(ctx, "the event loop finished: %v", err)
	})
}

// Run executes the posted tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	logger.Tracef(ctx, "Run")
	defer logger.Tracef(ctx, "/Run")
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wakeCh:
		}

		l.locker.Lock()
		tasks := l.queue
		l.queue = nil
		l.locker.Unlock()

		for _, task := range tasks {
			task(ctx)
		}
	}
}

func (l *Loop) stop() {
	l.locker.Lock()
	defer l.locker.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.queue = nil
	close(l.doneCh)
}

// Done is closed when the loop is finished.
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

// Post queues the task for execution. It returns false if the loop is
// already finished.
func (l *Loop) Post(task Task) bool {
	l.locker.Lock()
	if l.stopped {
		l.locker.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.locker.Unlock()

	select {
	case l.wakeCh <- struct{}{}:
	default:
	}
	return true
}

// Call runs the task on the loop and waits for it to finish. It must not
// be called from the loop itself.
func (l *Loop) Call(ctx context.Context, task Task) error {
	resultCh := make(chan struct{})
	if !l.Post(func(ctx context.Context) {
		defer close(resultCh)
		task(ctx)
	}) {
		return fmt.Errorf("the event loop is finished")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.doneCh:
		select {
		case <-resultCh:
			return nil
		default:
			return fmt.Errorf("the event loop finished before the task was executed")
		}
	case <-resultCh:
		return nil
	}
}

type loopTimer struct {
	timer   *time.Timer
	claimed atomic.Bool
}

// AfterFunc executes the task on the loop after the given delay.
func (l *Loop) AfterFunc(d time.Duration, task Task) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func(ctx context.Context) {
			if !t.claimed.CompareAndSwap(false, true) {
				return
			}
			task(ctx)
		})
	})
	return t
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.claimed.CompareAndSwap(false, true)
}
