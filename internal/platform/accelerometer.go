package platform

import (
	"time"

	"lazytimer/internal/core/shake"

	"go.uber.org/zap"
)

// fastestInterval is the poll period used when no sampling interval is set.
const fastestInterval = 10 * time.Millisecond

// AccelerometerOptions configures the built-in accelerometer source.
type AccelerometerOptions struct {
	// Interval between reads; zero polls at the fastest supported rate.
	Interval time.Duration
	// Root overrides the sensor device directory. Used by tests.
	Root   string
	Logger *zap.Logger
}

// NewAccelerometer returns a platform-specific accelerometer source, or
// shake.ErrUnsupported when the device has none.
func NewAccelerometer(options AccelerometerOptions) (shake.Source, error) {
	if options.Interval <= 0 {
		options.Interval = fastestInterval
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return newAccelerometer(options)
}
