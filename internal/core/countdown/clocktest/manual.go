// Package clocktest provides a manually advanced countdown.Clock.
package clocktest

import (
	"sync"
	"sync/atomic"
	"time"

	"lazytimer/internal/core/countdown"
)

// Manual is a countdown.Clock whose time only moves on Advance or Set.
// Recurring callbacks run synchronously inside Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*task
}

type task struct {
	interval  time.Duration
	next      time.Time
	fn        func()
	cancelled atomic.Bool
}

func (task *task) Cancel() {
	task.cancelled.Store(true)
}

// New returns a clock frozen at now.
func New(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now implements countdown.Clock.
func (clock *Manual) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// Every implements countdown.Clock.
func (clock *Manual) Every(interval time.Duration, fn func()) countdown.Task {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	scheduled := &task{interval: interval, next: clock.now.Add(interval), fn: fn}
	clock.tasks = append(clock.tasks, scheduled)
	return scheduled
}

// Active returns the number of scheduled tasks not yet cancelled.
func (clock *Manual) Active() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	active := 0
	for _, scheduled := range clock.tasks {
		if !scheduled.cancelled.Load() {
			active++
		}
	}
	return active
}

// Set jumps to now without firing callbacks, like a process that slept.
func (clock *Manual) Set(now time.Time) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = now
	for _, scheduled := range clock.tasks {
		for !scheduled.next.After(now) {
			scheduled.next = scheduled.next.Add(scheduled.interval)
		}
	}
}

// Advance moves time forward by d, firing every due callback in order.
func (clock *Manual) Advance(d time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(d)
	clock.mu.Unlock()

	for {
		clock.mu.Lock()
		due := clock.nextDueLocked(target)
		if due == nil {
			clock.now = target
			clock.mu.Unlock()
			return
		}
		clock.now = due.next
		due.next = due.next.Add(due.interval)
		clock.mu.Unlock()

		due.fn()
	}
}

func (clock *Manual) nextDueLocked(target time.Time) *task {
	var due *task
	for _, scheduled := range clock.tasks {
		if scheduled.cancelled.Load() || scheduled.next.After(target) {
			continue
		}
		if due == nil || scheduled.next.Before(due.next) {
			due = scheduled
		}
	}
	return due
}
