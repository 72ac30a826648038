package shake

import (
	"context"
	"errors"
)

// ErrUnsupported indicates the platform has no usable accelerometer.
var ErrUnsupported = errors.New("accelerometer unsupported")

// Source produces accelerometer samples until ctx ends or the producer stops.
type Source interface {
	Samples(ctx context.Context) (<-chan Sample, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (<-chan Sample, error)

// Samples implements Source.
func (fn SourceFunc) Samples(ctx context.Context) (<-chan Sample, error) {
	return fn(ctx)
}

// Slice replays a fixed list of samples, then closes.
func Slice(samples ...Sample) Source {
	return SourceFunc(func(ctx context.Context) (<-chan Sample, error) {
		ch := make(chan Sample)
		go func() {
			defer close(ch)
			for _, sample := range samples {
				select {
				case <-ctx.Done():
					return
				case ch <- sample:
				}
			}
		}()
		return ch, nil
	})
}

// Watch feeds source samples through the detector and calls onShake for
// every fired event. It returns when ctx ends or the source closes.
func Watch(ctx context.Context, source Source, detector *Detector, onShake func()) error {
	samples, err := source.Samples(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sample, ok := <-samples:
			if !ok {
				return nil
			}
			if detector.Process(sample) && onShake != nil {
				onShake()
			}
		}
	}
}
