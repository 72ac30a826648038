// Package sensor provides accelerometer sources for the shake detector.
package sensor

import (
	"encoding/json"
	"fmt"
	"time"

	"lazytimer/internal/core/shake"
)

type wireSample struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
	// T is the capture time in epoch milliseconds; optional.
	T int64 `json:"t,omitempty"`
}

// DecodeSample parses one JSON sample. All three axes are required.
func DecodeSample(raw []byte) (shake.Sample, error) {
	var wire wireSample
	if err := json.Unmarshal(raw, &wire); err != nil {
		return shake.Sample{}, fmt.Errorf("decode sample: %w", err)
	}
	if wire.X == nil || wire.Y == nil || wire.Z == nil {
		return shake.Sample{}, fmt.Errorf("decode sample: missing axis in %q", raw)
	}
	sample := shake.Sample{X: *wire.X, Y: *wire.Y, Z: *wire.Z}
	if wire.T > 0 {
		sample.At = time.UnixMilli(wire.T)
	}
	return sample, nil
}

// EncodeSample is the inverse of DecodeSample.
func EncodeSample(sample shake.Sample) ([]byte, error) {
	wire := wireSample{X: &sample.X, Y: &sample.Y, Z: &sample.Z}
	if !sample.At.IsZero() {
		wire.T = sample.At.UnixMilli()
	}
	return json.Marshal(wire)
}
