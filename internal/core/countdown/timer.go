package countdown

import (
	"time"

	"lazytimer/internal/core/model"
)

const (
	// MinStart is the smallest remaining time that can be started.
	MinStart = time.Second
	// AlertThreshold is the remaining time at which the one-minute alert fires.
	AlertThreshold = time.Minute
)

// Timer is the countdown value. Transitions are pure: time is passed in and
// invalid transitions report false without changing anything.
type Timer struct {
	Target    time.Duration
	Remaining time.Duration
	State     State
	// EndTime is the wall-clock deadline of the latest Running session.
	EndTime time.Time

	alerted bool
}

// TickResult describes what a tick changed.
type TickResult struct {
	Applied  bool
	Crossed  bool
	Finished bool
}

// NewTimer returns an idle timer set to target.
func NewTimer(target time.Duration) Timer {
	if target < 0 {
		target = 0
	}
	return Timer{Target: target, Remaining: target, State: settledState(target, target)}
}

// Running reports whether the timer is counting down.
func (timer Timer) Running() bool {
	return timer.State == StateRunning
}

// SetDuration configures a new target. Rejected while running or for d <= 0.
func (timer *Timer) SetDuration(d time.Duration) bool {
	if timer.Running() || d <= 0 {
		return false
	}
	timer.Target = d
	timer.Remaining = d
	timer.State = StateIdle
	return true
}

// Start begins a running session. Rejected below MinStart.
func (timer *Timer) Start(now time.Time) bool {
	if timer.Running() || timer.Remaining < MinStart {
		return false
	}
	timer.EndTime = now.Add(timer.Remaining)
	timer.State = StateRunning
	timer.alerted = false
	return true
}

// Tick recomputes remaining time from the wall clock.
func (timer *Timer) Tick(now time.Time) TickResult {
	if !timer.Running() {
		return TickResult{}
	}

	previous := timer.Remaining
	remaining := timer.EndTime.Sub(now)
	if remaining > timer.Target {
		remaining = timer.Target
	}
	if remaining <= 0 {
		timer.Remaining = 0
		timer.State = StateFinished
		return TickResult{Applied: true, Finished: true}
	}

	result := TickResult{Applied: true}
	if !timer.alerted && previous >= AlertThreshold && remaining < AlertThreshold {
		timer.alerted = true
		result.Crossed = true
	}
	timer.Remaining = remaining
	return result
}

// Pause freezes the remaining time at its last ticked value.
func (timer *Timer) Pause() bool {
	if !timer.Running() {
		return false
	}
	timer.State = settledState(timer.Remaining, timer.Target)
	return true
}

// Reset restores the configured target. Rejected while running.
func (timer *Timer) Reset() bool {
	if timer.Running() {
		return false
	}
	timer.Remaining = timer.Target
	timer.State = settledState(timer.Remaining, timer.Target)
	return true
}

// Snapshot projects the timer onto the durable record.
func (timer Timer) Snapshot() model.Snapshot {
	snapshot := model.Snapshot{
		TargetMillis:    timer.Target.Milliseconds(),
		RemainingMillis: timer.Remaining.Milliseconds(),
		Running:         timer.Running(),
	}
	if !timer.EndTime.IsZero() {
		snapshot.EndTime = timer.EndTime.UnixMilli()
	}
	return snapshot
}

// Restore rebuilds a timer from a snapshot. A running snapshot is
// recomputed against now; an expired deadline yields Finished.
func Restore(snapshot model.Snapshot, now time.Time) Timer {
	target := snapshot.Target()
	if target < 0 {
		target = 0
	}
	timer := Timer{Target: target, Remaining: clamp(snapshot.Remaining(), target)}
	if snapshot.EndTime != 0 {
		timer.EndTime = snapshot.Deadline()
	}

	if !snapshot.Running {
		timer.State = settledState(timer.Remaining, target)
		return timer
	}

	remaining := timer.EndTime.Sub(now)
	if remaining <= 0 {
		timer.Remaining = 0
		timer.State = StateFinished
		return timer
	}
	timer.Remaining = clamp(remaining, target)
	timer.State = StateRunning
	return timer
}

func settledState(remaining, target time.Duration) State {
	switch {
	case remaining <= 0 && target > 0:
		return StateFinished
	case remaining >= target:
		return StateIdle
	default:
		return StatePaused
	}
}

func clamp(value, limit time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	if value > limit {
		return limit
	}
	return value
}
