package countdown

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads and the recurring tick so tests can
// drive the countdown deterministically.
type Clock interface {
	Now() time.Time
	// Every calls fn each interval until the returned task is cancelled.
	Every(interval time.Duration, fn func()) Task
}

// Task is a scheduled recurring callback.
type Task interface {
	// Cancel stops future calls. Safe to call more than once.
	Cancel()
}

// RealClock implements Clock with the time package.
type RealClock struct{}

// Now implements Clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Every implements Clock with a ticker goroutine.
func (RealClock) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{stopCh: make(chan struct{})}
	go task.run(interval, fn)
	return task
}

type tickerTask struct {
	once   sync.Once
	stopCh chan struct{}
}

func (task *tickerTask) run(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-task.stopCh:
			return
		case <-ticker.C:
			fn()
		}
	}
}

func (task *tickerTask) Cancel() {
	task.once.Do(func() {
		close(task.stopCh)
	})
}
