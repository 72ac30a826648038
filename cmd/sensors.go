package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"lazytimer/internal/core/shake"
	"lazytimer/internal/platform"
	"lazytimer/internal/sensor"
	"lazytimer/internal/ui/preferences"

	"go.uber.org/zap"
)

var noopCloser io.Closer = io.NopCloser(nil)

// sensorWatcher runs one shake watch at a time and swaps it when the
// sensor settings change.
type sensorWatcher struct {
	ctx      context.Context
	detector *shake.Detector
	onShake  func()
	logger   *zap.Logger
	stdin    io.Reader

	mu          sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}
	stdinStream *sensor.Stream
}

func newSensorWatcher(ctx context.Context, detector *shake.Detector, onShake func(), logger *zap.Logger) *sensorWatcher {
	return &sensorWatcher{
		ctx:      ctx,
		detector: detector,
		onShake:  onShake,
		logger:   logger,
		stdin:    os.Stdin,
	}
}

// Restart stops the running watch and starts one for settings.
func (watcher *sensorWatcher) Restart(settings preferences.Settings) {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	watcher.stopLocked()

	source, closer, err := openSource(settings, watcher.stdinLocked, watcher.logger)
	if errors.Is(err, shake.ErrUnsupported) {
		watcher.logger.Info("no accelerometer available, shake control disabled", zap.String("sensor", settings.SensorSource))
		return
	}
	if err != nil {
		watcher.logger.Error("open sensor", zap.String("sensor", settings.SensorSource), zap.Error(err))
		return
	}
	if source == nil {
		return
	}

	ctx, cancel := context.WithCancel(watcher.ctx)
	done := make(chan struct{})
	watcher.cancel = cancel
	watcher.done = done

	go func() {
		defer close(done)
		defer closer.Close()
		err := shake.Watch(ctx, source, watcher.detector, watcher.onShake)
		switch {
		case err == nil:
			watcher.logger.Info("sensor stream ended", zap.String("sensor", settings.SensorSource))
		case errors.Is(err, context.Canceled):
		default:
			watcher.logger.Error("sensor watch failed", zap.String("sensor", settings.SensorSource), zap.Error(err))
		}
	}()
}

// Stop ends the running watch and waits for it.
func (watcher *sensorWatcher) Stop() {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	watcher.stopLocked()
}

// stdinLocked returns the shared stdin stream. Stdin cannot be reopened,
// so every restart resumes the same reader.
func (watcher *sensorWatcher) stdinLocked() *sensor.Stream {
	if watcher.stdinStream == nil {
		watcher.stdinStream = sensor.NewStream(watcher.stdin, watcher.logger)
	}
	return watcher.stdinStream
}

func (watcher *sensorWatcher) stopLocked() {
	if watcher.cancel == nil {
		return
	}
	watcher.cancel()
	<-watcher.done
	watcher.cancel = nil
	watcher.done = nil
}

// openSource builds the configured sample source. A nil source with a nil
// error means shake input is switched off.
func openSource(settings preferences.Settings, stdin func() *sensor.Stream, logger *zap.Logger) (shake.Source, io.Closer, error) {
	switch settings.SensorSource {
	case preferences.SensorNone:
		return nil, nil, nil
	case preferences.SensorIIO:
		source, err := platform.NewAccelerometer(platform.AccelerometerOptions{
			Interval: settings.SamplingInterval,
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return source, noopCloser, nil
	case preferences.SensorStream:
		stream, closer, err := openStream(settings.SensorStreamPath, stdin, logger)
		if err != nil {
			return nil, nil, err
		}
		return sensor.Throttle(stream, settings.SamplingInterval, nil), closer, nil
	case preferences.SensorMQTT:
		source := sensor.NewMQTT(sensor.MQTTOptions{
			Broker: settings.MQTTBroker,
			Topic:  settings.MQTTTopic,
		}, logger)
		return sensor.Throttle(source, settings.SamplingInterval, nil), noopCloser, nil
	default:
		return nil, nil, fmt.Errorf("unknown sensor source %q", settings.SensorSource)
	}
}

func openStream(path string, stdin func() *sensor.Stream, logger *zap.Logger) (*sensor.Stream, io.Closer, error) {
	if path == "" || path == "-" {
		return stdin(), noopCloser, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sample stream: %w", err)
	}
	return sensor.NewStream(file, logger), file, nil
}

func sensorChanged(previous, current preferences.Settings) bool {
	return previous.SensorSource != current.SensorSource ||
		previous.SensorStreamPath != current.SensorStreamPath ||
		previous.MQTTBroker != current.MQTTBroker ||
		previous.MQTTTopic != current.MQTTTopic ||
		previous.SamplingInterval != current.SamplingInterval
}
