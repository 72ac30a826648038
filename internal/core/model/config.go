package model

import "time"

// DefaultTarget is the countdown length used before the user enters one.
const DefaultTarget = 10 * time.Minute

// Snapshot is the durable projection of the timer written on suspend and
// read on resume. Millisecond fields mirror the stored record.
type Snapshot struct {
	TargetMillis    int64
	RemainingMillis int64
	Running         bool
	// EndTime is the absolute wall-clock deadline in epoch milliseconds.
	EndTime int64
}

// DefaultSnapshot is the record assumed when nothing was stored yet.
func DefaultSnapshot() Snapshot {
	target := DefaultTarget.Milliseconds()
	return Snapshot{
		TargetMillis:    target,
		RemainingMillis: target,
	}
}

// Target returns the configured duration.
func (snapshot Snapshot) Target() time.Duration {
	return time.Duration(snapshot.TargetMillis) * time.Millisecond
}

// Remaining returns the stored remaining duration.
func (snapshot Snapshot) Remaining() time.Duration {
	return time.Duration(snapshot.RemainingMillis) * time.Millisecond
}

// Deadline returns EndTime as a time value.
func (snapshot Snapshot) Deadline() time.Time {
	return time.UnixMilli(snapshot.EndTime)
}
