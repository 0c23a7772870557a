// Package placeholder runs simulated backend work: a fixed delay followed by
// the real call, off the caller's goroutine.
package placeholder

import (
	"sync"
	"time"
)

// DefaultDelay mirrors the latency the screens simulate before a submission resolves.
const DefaultDelay = time.Second

// Task is one in-flight simulated submission. It cannot be cancelled.
type Task struct {
	done chan struct{}
	once sync.Once
	err  error
}

// Start sleeps for delay on a new goroutine, then runs fn and passes its error to onDone.
// onDone may be nil. It runs before Wait returns.
// POST: the returned Task completes exactly once
func Start(delay time.Duration, fn func() error, onDone func(error)) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		err := fn()
		if onDone != nil {
			onDone(err)
		}
		t.finish(err)
	}()
	return t
}

func (t *Task) finish(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns fn's error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}
