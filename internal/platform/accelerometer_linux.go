//go:build linux

package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lazytimer/internal/core/shake"

	"go.uber.org/zap"
)

const iioRoot = "/sys/bus/iio/devices"

// iioAccelerometer polls an industrial I/O accelerometer through sysfs.
type iioAccelerometer struct {
	device   string
	interval time.Duration
	logger   *zap.Logger
}

func newAccelerometer(options AccelerometerOptions) (shake.Source, error) {
	root := options.Root
	if root == "" {
		root = iioRoot
	}
	device, err := findIIODevice(root)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("iio accelerometer found", zap.String("device", device))
	return &iioAccelerometer{device: device, interval: options.Interval, logger: options.Logger}, nil
}

func findIIODevice(root string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(root, "iio:device*", "in_accel_x_raw"))
	if err != nil {
		return "", fmt.Errorf("scan iio devices: %w", err)
	}
	if len(matches) == 0 {
		return "", shake.ErrUnsupported
	}
	return filepath.Dir(matches[0]), nil
}

func (sensor *iioAccelerometer) Samples(ctx context.Context) (<-chan shake.Sample, error) {
	scale, err := sensor.readScale()
	if err != nil {
		return nil, err
	}

	out := make(chan shake.Sample)
	go func() {
		defer close(out)
		ticker := time.NewTicker(sensor.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				sample, err := sensor.read(scale, now)
				if err != nil {
					sensor.logger.Warn("accelerometer read failed", zap.Error(err))
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- sample:
				}
			}
		}
	}()
	return out, nil
}

// readScale returns the raw-to-m/s² factor, defaulting to 1 when the
// driver reports values already scaled.
func (sensor *iioAccelerometer) readScale() (float64, error) {
	raw, err := os.ReadFile(filepath.Join(sensor.device, "in_accel_scale"))
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("read accel scale: %w", err)
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse accel scale: %w", err)
	}
	return scale, nil
}

func (sensor *iioAccelerometer) read(scale float64, now time.Time) (shake.Sample, error) {
	x, err := sensor.readAxis("x")
	if err != nil {
		return shake.Sample{}, err
	}
	y, err := sensor.readAxis("y")
	if err != nil {
		return shake.Sample{}, err
	}
	z, err := sensor.readAxis("z")
	if err != nil {
		return shake.Sample{}, err
	}
	return shake.Sample{X: x * scale, Y: y * scale, Z: z * scale, At: now}, nil
}

func (sensor *iioAccelerometer) readAxis(axis string) (float64, error) {
	raw, err := os.ReadFile(filepath.Join(sensor.device, "in_accel_"+axis+"_raw"))
	if err != nil {
		return 0, fmt.Errorf("read %s axis: %w", axis, err)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s axis: %w", axis, err)
	}
	return float64(value), nil
}
