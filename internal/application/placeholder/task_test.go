package placeholder_test

import (
	"errors"
	"testing"
	"time"

	"eventdesk/internal/application/placeholder"
)

// TestTask_Wait tests that the callback runs before Wait returns.
func TestTask_Wait(t *testing.T) {
	var called bool
	var seen error
	boom := errors.New("boom")

	task := placeholder.Start(5*time.Millisecond, func() error { return boom }, func(err error) {
		called = true
		seen = err
	})

	if err := task.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait() error = %v, want %v", err, boom)
	}
	if !called || !errors.Is(seen, boom) {
		t.Errorf("onDone called=%v err=%v", called, seen)
	}
	select {
	case <-task.Done():
	default:
		t.Error("Done() should be closed after Wait()")
	}
}

// TestTask_Delay tests that fn does not run before the delay elapses.
func TestTask_Delay(t *testing.T) {
	start := time.Now()
	var ranAt time.Time
	task := placeholder.Start(20*time.Millisecond, func() error {
		ranAt = time.Now()
		return nil
	}, nil)
	if err := task.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if ranAt.Sub(start) < 20*time.Millisecond {
		t.Errorf("fn ran after %v, want at least 20ms", ranAt.Sub(start))
	}
}
