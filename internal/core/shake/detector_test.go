package shake

import (
	"context"
	"testing"
	"time"

	"lazytimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.UnixMilli(1_700_000_000_000)

func at(offset time.Duration) time.Time {
	return epoch.Add(offset)
}

func TestIsTrigger(t *testing.T) {
	bounds := model.DefaultShakeConfig().Thresholds
	cases := []struct {
		name    string
		sample  Sample
		trigger bool
	}{
		{"at rest upright", Sample{X: 0.1, Y: 9.81, Z: 0.2}, false},
		{"x positive", Sample{X: 2.1}, true},
		{"x negative", Sample{X: -2.1}, true},
		{"x on bound", Sample{X: 2}, false},
		{"y within gravity band", Sample{Y: 11.9}, false},
		{"y positive", Sample{Y: 12.5}, true},
		{"y negative", Sample{Y: -12.5}, true},
		{"z positive", Sample{Z: 3}, true},
		{"z negative", Sample{Z: -2.01}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.trigger, IsTrigger(tc.sample, bounds))
		})
	}
}

func TestProcessDebounce(t *testing.T) {
	detector := NewDetector(model.DefaultShakeConfig(), nil)

	assert.True(t, detector.Process(Sample{X: 5, At: at(0)}))
	assert.False(t, detector.Process(Sample{X: 5, At: at(999 * time.Millisecond)}))
	assert.True(t, detector.Process(Sample{X: 5, At: at(1000 * time.Millisecond)}))
}

func TestProcessDroppedTriggerKeepsAnchor(t *testing.T) {
	detector := NewDetector(model.DefaultShakeConfig(), nil)

	require.True(t, detector.Process(Sample{Z: 5, At: at(0)}))
	require.False(t, detector.Process(Sample{Z: 5, At: at(600 * time.Millisecond)}))
	assert.True(t, detector.Process(Sample{Z: 5, At: at(1100 * time.Millisecond)}))
}

func TestProcessIgnoresQuietSamples(t *testing.T) {
	detector := NewDetector(model.DefaultShakeConfig(), nil)

	assert.False(t, detector.Process(Sample{Y: 9.8, At: at(0)}))
	assert.True(t, detector.Process(Sample{Y: 13, At: at(10 * time.Millisecond)}))
}

func TestProcessUsesClockWhenUnstamped(t *testing.T) {
	now := at(0)
	detector := NewDetector(model.DefaultShakeConfig(), func() time.Time { return now })

	assert.True(t, detector.Process(Sample{X: 3}))
	now = now.Add(500 * time.Millisecond)
	assert.False(t, detector.Process(Sample{X: 3}))
	now = now.Add(500 * time.Millisecond)
	assert.True(t, detector.Process(Sample{X: 3}))
}

func TestDisabledDetector(t *testing.T) {
	config := model.DefaultShakeConfig()
	config.Enabled = false
	detector := NewDetector(config, nil)

	assert.False(t, detector.Process(Sample{X: 50, At: at(0)}))

	config.Enabled = true
	detector.UpdateConfig(config)
	assert.True(t, detector.Process(Sample{X: 50, At: at(time.Millisecond)}))
}

func TestWatchCountsShakes(t *testing.T) {
	detector := NewDetector(model.DefaultShakeConfig(), nil)
	source := Slice(
		Sample{X: 3, At: at(0)},
		Sample{X: 3, At: at(200 * time.Millisecond)},
		Sample{Y: 0, At: at(900 * time.Millisecond)},
		Sample{Y: -20, At: at(1500 * time.Millisecond)},
		Sample{Z: 4, At: at(2400 * time.Millisecond)},
		Sample{Z: 4, At: at(2500 * time.Millisecond)},
	)

	shakes := 0
	err := Watch(context.Background(), source, detector, func() { shakes++ })
	require.NoError(t, err)
	assert.Equal(t, 3, shakes)
}

func TestWatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := SourceFunc(func(context.Context) (<-chan Sample, error) {
		return make(chan Sample), nil
	})

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, source, NewDetector(model.DefaultShakeConfig(), nil), nil)
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchPropagatesSourceError(t *testing.T) {
	source := SourceFunc(func(context.Context) (<-chan Sample, error) {
		return nil, ErrUnsupported
	})
	err := Watch(context.Background(), source, NewDetector(model.DefaultShakeConfig(), nil), nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}
