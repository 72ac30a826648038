package sensor

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"lazytimer/internal/core/model"
	"lazytimer/internal/core/shake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, source shake.Source) []shake.Sample {
	t.Helper()
	samples, err := source.Samples(context.Background())
	require.NoError(t, err)
	var collected []shake.Sample
	for sample := range samples {
		collected = append(collected, sample)
	}
	return collected
}

func TestDecodeSample(t *testing.T) {
	sample, err := DecodeSample([]byte(`{"x":1.5,"y":-12.5,"z":0,"t":1700000000250}`))
	require.NoError(t, err)
	assert.Equal(t, shake.Sample{X: 1.5, Y: -12.5, Z: 0, At: time.UnixMilli(1_700_000_000_250)}, sample)

	_, err = DecodeSample([]byte(`{"x":1,"y":2}`))
	assert.ErrorContains(t, err, "missing axis")

	_, err = DecodeSample([]byte(`{`))
	assert.Error(t, err)
}

func TestEncodeDecodeSample(t *testing.T) {
	original := shake.Sample{X: 0.25, Y: 9.81, Z: -3, At: time.UnixMilli(1_700_000_000_000)}
	raw, err := EncodeSample(original)
	require.NoError(t, err)

	decoded, err := DecodeSample(raw)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestStreamSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`{"x":0,"y":9.8,"z":0}`,
		``,
		`garbage`,
		`{"x":3,"y":9.8,"z":0,"t":1700000000000}`,
	}, "\n")

	samples := collect(t, NewStream(strings.NewReader(input), nil))
	require.Len(t, samples, 2)
	assert.True(t, samples[0].At.IsZero())
	assert.Equal(t, 3.0, samples[1].X)
}

func TestStreamFeedsDetector(t *testing.T) {
	input := strings.Join([]string{
		`{"x":5,"y":9.8,"z":0,"t":1700000000000}`,
		`{"x":5,"y":9.8,"z":0,"t":1700000000400}`,
		`{"x":5,"y":9.8,"z":0,"t":1700000001000}`,
	}, "\n")

	shakes := 0
	detector := shake.NewDetector(model.DefaultShakeConfig(), nil)
	err := shake.Watch(context.Background(), NewStream(strings.NewReader(input), nil), detector, func() { shakes++ })
	require.NoError(t, err)
	assert.Equal(t, 2, shakes)
}

func TestThrottle(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	source := shake.Slice(
		shake.Sample{X: 1, At: base},
		shake.Sample{X: 2, At: base.Add(5 * time.Millisecond)},
		shake.Sample{X: 3, At: base.Add(20 * time.Millisecond)},
		shake.Sample{X: 4, At: base.Add(25 * time.Millisecond)},
		shake.Sample{X: 5, At: base.Add(40 * time.Millisecond)},
	)

	throttled := collect(t, Throttle(source, 20*time.Millisecond, nil))
	var xs []float64
	for _, sample := range throttled {
		xs = append(xs, sample.X)
	}
	assert.Equal(t, []float64{1, 3, 5}, xs)
}

func TestThrottleZeroPassesThrough(t *testing.T) {
	source := shake.Slice(shake.Sample{X: 1}, shake.Sample{X: 2})
	assert.Len(t, collect(t, Throttle(source, 0, nil)), 2)
}

func TestStreamResubscribeKeepsLines(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	stream := NewStream(reader, nil)

	ctx, cancel := context.WithCancel(context.Background())
	samples, err := stream.Samples(ctx)
	require.NoError(t, err)

	go func() {
		_, _ = io.WriteString(writer, `{"x":1,"y":0,"z":0}`+"\n")
	}()
	first := <-samples
	assert.Equal(t, 1.0, first.X)
	cancel()
	for range samples {
	}

	go func() {
		_, _ = io.WriteString(writer, `{"x":2,"y":0,"z":0}`+"\n"+`{"x":3,"y":0,"z":0}`+"\n")
	}()
	next, err := stream.Samples(context.Background())
	require.NoError(t, err)
	for _, want := range []float64{2, 3} {
		select {
		case sample := <-next:
			assert.Equal(t, want, sample.X)
		case <-time.After(2 * time.Second):
			t.Fatalf("sample %v not delivered after resubscribe", want)
		}
	}
}

func TestThrottleStopsOnCancel(t *testing.T) {
	silent := shake.SourceFunc(func(context.Context) (<-chan shake.Sample, error) {
		return make(chan shake.Sample), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	samples, err := Throttle(silent, 10*time.Millisecond, nil).Samples(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-samples:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("throttle kept waiting on its input after cancel")
	}
}
