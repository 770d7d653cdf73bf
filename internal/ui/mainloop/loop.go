// Package mainloop provides the serial execution context the browser core runs on.
package mainloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/voyage/internal/application/port"
	"github.com/bnema/voyage/internal/logging"
)

var _ port.Scheduler = (*Loop)(nil)

// ErrStopped is returned when work is handed to a loop that has exited.
var ErrStopped = errors.New("main loop stopped")

const (
	timerPending int32 = iota
	timerStarted
	timerCancelled
)

// Loop runs posted functions one at a time on a single goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
	timers  map[*time.Timer]struct{}
}

// New creates a loop. Nothing runs until Run is called.
func New() *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// Post queues fn. Functions posted after Stop are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc posts fn once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) func() bool {
	var state atomic.Int32
	var timer *time.Timer

	l.mu.Lock()
	timer = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, timer)
		l.mu.Unlock()
		l.Post(func() {
			if state.CompareAndSwap(timerPending, timerStarted) {
				fn()
			}
		})
	})
	l.timers[timer] = struct{}{}
	l.mu.Unlock()

	return func() bool {
		if !state.CompareAndSwap(timerPending, timerCancelled) {
			return false
		}
		l.mu.Lock()
		if timer.Stop() {
			delete(l.timers, timer)
		}
		l.mu.Unlock()
		return true
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return nil
	case <-l.done:
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

// Run processes the queue until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	defer close(l.done)
	defer l.Stop()

	for {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			l.invoke(ctx, fn)
		}

		select {
		case <-ctx.Done():
			log.Debug().Msg("main loop context cancelled")
			return
		case <-l.wake:
			l.mu.Lock()
			stopped := l.stopped
			l.mu.Unlock()
			if stopped {
				return
			}
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) invoke(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().Interface("panic", r).Msg("main loop task panicked")
		}
	}()
	fn()
}

// Stop makes Run return after the current task and cancels pending timers.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.queue = nil
	for t := range l.timers {
		t.Stop()
	}
	l.timers = map[*time.Timer]struct{}{}
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
