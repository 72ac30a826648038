//go:build !linux

package platform

import "lazytimer/internal/core/shake"

func newAccelerometer(AccelerometerOptions) (shake.Source, error) {
	return nil, shake.ErrUnsupported
}
