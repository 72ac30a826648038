package shake

import (
	"sync"
	"time"

	"lazytimer/internal/core/model"
)

// Sample is one accelerometer reading in m/s².
type Sample struct {
	X  float64
	Y  float64
	Z  float64
	At time.Time
}

// Detector turns raw samples into debounced shake events.
type Detector struct {
	mu        sync.Mutex
	config    model.ShakeConfig
	now       func() time.Time
	lastShake time.Time
	fired     bool
}

// NewDetector creates a detector. A nil now func uses time.Now.
func NewDetector(config model.ShakeConfig, now func() time.Time) *Detector {
	if now == nil {
		now = time.Now
	}
	if config.Debounce < 0 {
		config.Debounce = 0
	}
	return &Detector{config: config, now: now}
}

// UpdateConfig swaps thresholds and debounce. The debounce anchor is kept.
func (detector *Detector) UpdateConfig(config model.ShakeConfig) {
	if config.Debounce < 0 {
		config.Debounce = 0
	}
	detector.mu.Lock()
	detector.config = config
	detector.mu.Unlock()
}

// Config returns the active settings.
func (detector *Detector) Config() model.ShakeConfig {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.config
}

// IsTrigger reports whether a sample exceeds any axis bound.
func IsTrigger(sample Sample, bounds model.Thresholds) bool {
	return sample.X > bounds.X || sample.X < -bounds.X ||
		sample.Y > bounds.Y || sample.Y < -bounds.Y ||
		sample.Z > bounds.Z || sample.Z < -bounds.Z
}

// Process classifies a sample and reports whether it fires a shake event.
// Triggers inside the debounce window are dropped without moving the anchor.
func (detector *Detector) Process(sample Sample) bool {
	detector.mu.Lock()
	defer detector.mu.Unlock()

	if !detector.config.Enabled || !IsTrigger(sample, detector.config.Thresholds) {
		return false
	}

	at := sample.At
	if at.IsZero() {
		at = detector.now()
	}
	if detector.fired && at.Sub(detector.lastShake) < detector.config.Debounce {
		return false
	}

	detector.fired = true
	detector.lastShake = at
	return true
}
