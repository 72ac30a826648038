package model

import "time"

// Axis thresholds in m/s². The y bound is wider because gravity sits on
// that axis when the device is held upright.
const (
	DefaultThresholdX = 2.0
	DefaultThresholdY = 12.0
	DefaultThresholdZ = 2.0

	DefaultShakeDebounce = time.Second
)

// Thresholds bound each axis; a reading beyond ±bound counts as a shake.
type Thresholds struct {
	X float64
	Y float64
	Z float64
}

// ShakeConfig contains runtime settings for the shake detector.
type ShakeConfig struct {
	Enabled    bool
	Thresholds Thresholds
	Debounce   time.Duration
}

// DefaultShakeConfig returns the stock detector settings.
func DefaultShakeConfig() ShakeConfig {
	return ShakeConfig{
		Enabled: true,
		Thresholds: Thresholds{
			X: DefaultThresholdX,
			Y: DefaultThresholdY,
			Z: DefaultThresholdZ,
		},
		Debounce: DefaultShakeDebounce,
	}
}
