package countdown

import (
	"sync"
	"time"

	"lazytimer/internal/core/model"

	"go.uber.org/zap"
)

// Config contains runtime options for Countdown.
type Config struct {
	TickInterval time.Duration
	Logger       *zap.Logger
}

// Countdown owns the timer and its recurring tick and publishes events to
// observers.
type Countdown struct {
	mu         sync.Mutex
	clock      Clock
	options    Config
	timer      Timer
	tick       Task
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an idle Countdown set to target.
func New(target time.Duration, clock Clock, options Config) *Countdown {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if clock == nil {
		clock = RealClock{}
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Countdown{
		clock:   clock,
		options: options,
		timer:   NewTimer(target),
	}
}

// Subscribe registers a new observer channel.
func (countdown *Countdown) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	countdown.mu.Lock()
	if countdown.closed {
		close(ch)
	} else {
		countdown.events = append(countdown.events, ch)
	}
	countdown.mu.Unlock()
	return ch
}

// Timer returns a copy of the current timer value.
func (countdown *Countdown) Timer() Timer {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.timer
}

// SetDuration configures a new target while not running.
func (countdown *Countdown) SetDuration(d time.Duration) bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if !countdown.timer.SetDuration(d) {
		return false
	}
	countdown.emitStateLocked()
	return true
}

// Start begins counting down and schedules the tick.
func (countdown *Countdown) Start() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if !countdown.timer.Start(countdown.clock.Now()) {
		return false
	}
	countdown.scheduleLocked()
	countdown.emitStateLocked()
	return true
}

// Pause stops the tick and freezes the remaining time.
func (countdown *Countdown) Pause() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if !countdown.timer.Pause() {
		return false
	}
	countdown.cancelLocked()
	countdown.emitStateLocked()
	return true
}

// Toggle pauses a running countdown and starts any other.
func (countdown *Countdown) Toggle() bool {
	countdown.mu.Lock()
	running := countdown.timer.Running()
	countdown.mu.Unlock()
	if running {
		return countdown.Pause()
	}
	return countdown.Start()
}

// Reset restores the target while not running.
func (countdown *Countdown) Reset() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if !countdown.timer.Reset() {
		return false
	}
	countdown.emitStateLocked()
	return true
}

// Suspend cancels the tick and returns the durable snapshot. The timer
// keeps its running state so the deadline survives the suspension.
func (countdown *Countdown) Suspend() model.Snapshot {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.cancelLocked()
	return countdown.timer.Snapshot()
}

// Resume replaces the timer with one rebuilt from snapshot and resumes
// ticking when the deadline is still ahead.
func (countdown *Countdown) Resume(snapshot model.Snapshot) Timer {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.cancelLocked()
	countdown.timer = Restore(snapshot, countdown.clock.Now())
	if countdown.timer.Running() {
		countdown.scheduleLocked()
	}
	countdown.emitStateLocked()
	return countdown.timer
}

// Close cancels the tick and closes observers.
func (countdown *Countdown) Close() {
	countdown.mu.Lock()
	if countdown.closed {
		countdown.mu.Unlock()
		return
	}
	countdown.closed = true
	countdown.cancelLocked()
	events := countdown.events
	countdown.events = nil
	countdown.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (countdown *Countdown) scheduleLocked() {
	countdown.cancelLocked()
	generation := countdown.generation
	countdown.tick = countdown.clock.Every(countdown.options.TickInterval, func() {
		countdown.onTick(generation)
	})
}

func (countdown *Countdown) cancelLocked() {
	countdown.generation++
	if countdown.tick != nil {
		countdown.tick.Cancel()
		countdown.tick = nil
	}
}

func (countdown *Countdown) onTick(generation uint64) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	// A tick from a cancelled task can still be waiting on the lock.
	if generation != countdown.generation {
		return
	}

	now := countdown.clock.Now()
	result := countdown.timer.Tick(now)
	if !result.Applied {
		return
	}

	if result.Finished {
		countdown.cancelLocked()
		countdown.emitStateLocked()
		return
	}

	countdown.emitLocked(Event{
		Type:      EventTick,
		State:     countdown.timer.State,
		Remaining: countdown.timer.Remaining,
		Target:    countdown.timer.Target,
		At:        now,
	})
	if result.Crossed {
		countdown.emitLocked(Event{
			Type:      EventOneMinuteLeft,
			State:     countdown.timer.State,
			Remaining: countdown.timer.Remaining,
			Target:    countdown.timer.Target,
			At:        now,
		})
	}
}

func (countdown *Countdown) emitStateLocked() {
	countdown.emitLocked(Event{
		Type:      EventStateChange,
		State:     countdown.timer.State,
		Remaining: countdown.timer.Remaining,
		Target:    countdown.timer.Target,
		At:        countdown.clock.Now(),
	})
}

// emitLocked never blocks. Ticks and state changes are superseded by the
// next event, but a dropped one-minute event loses its notification.
func (countdown *Countdown) emitLocked(event Event) {
	for _, ch := range countdown.events {
		select {
		case ch <- event:
		default:
			if event.Type == EventOneMinuteLeft {
				countdown.options.Logger.Warn("one-minute event dropped, subscriber full",
					zap.Duration("remaining", event.Remaining),
					zap.Int("buffer", cap(ch)),
				)
			}
		}
	}
}
