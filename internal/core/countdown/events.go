package countdown

import "time"

// State represents the current countdown mode.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventTick          EventType = "tick"
	EventOneMinuteLeft EventType = "one_minute_left"
)

// Event represents a countdown update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining time.Duration
	Target    time.Duration
	At        time.Time
}
