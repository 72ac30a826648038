package sensor

import (
	"context"
	"time"

	"lazytimer/internal/core/shake"
)

// Throttle limits a source to one sample per interval, matching a sensor
// registered with a fixed sampling period. An interval of zero passes
// every sample through, like the fastest sensor rate.
func Throttle(source shake.Source, interval time.Duration, now func() time.Time) shake.Source {
	if interval <= 0 {
		return source
	}
	if now == nil {
		now = time.Now
	}
	return shake.SourceFunc(func(ctx context.Context) (<-chan shake.Sample, error) {
		in, err := source.Samples(ctx)
		if err != nil {
			return nil, err
		}
		out := make(chan shake.Sample)
		go func() {
			defer close(out)
			var last time.Time
			for ctx.Err() == nil {
				var sample shake.Sample
				select {
				case <-ctx.Done():
					return
				case received, ok := <-in:
					if !ok {
						return
					}
					sample = received
				}
				at := sample.At
				if at.IsZero() {
					at = now()
				}
				if !last.IsZero() && at.Sub(last) < interval {
					continue
				}
				last = at
				select {
				case <-ctx.Done():
					return
				case out <- sample:
				}
			}
		}()
		return out, nil
	})
}
