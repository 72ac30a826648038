package preferences

import (
	"time"

	"lazytimer/internal/core/model"
)

// Sensor sources selectable in settings.
const (
	SensorNone   = "none"
	SensorIIO    = "iio"
	SensorStream = "stream"
	SensorMQTT   = "mqtt"
)

// Settings defines editable user preferences.
type Settings struct {
	ShakeEnabled  bool
	ShakeDebounce time.Duration
	ThresholdX    float64
	ThresholdY    float64
	ThresholdZ    float64
	// SamplingInterval of zero asks the sensor for its fastest rate.
	SamplingInterval time.Duration

	SensorSource     string
	SensorStreamPath string
	MQTTBroker       string
	MQTTTopic        string

	MetricsAddr string
}

// DefaultSettings returns default settings for LazyTimer.
func DefaultSettings() Settings {
	shake := model.DefaultShakeConfig()
	return Settings{
		ShakeEnabled:     shake.Enabled,
		ShakeDebounce:    shake.Debounce,
		ThresholdX:       shake.Thresholds.X,
		ThresholdY:       shake.Thresholds.Y,
		ThresholdZ:       shake.Thresholds.Z,
		SamplingInterval: 0,
		SensorSource:     SensorIIO,
		MQTTBroker:       "localhost:1883",
		MQTTTopic:        "lazytimer/accelerometer",
	}
}

// ShakeConfig converts settings to the detector configuration.
func (settings Settings) ShakeConfig() model.ShakeConfig {
	return model.ShakeConfig{
		Enabled: settings.ShakeEnabled,
		Thresholds: model.Thresholds{
			X: settings.ThresholdX,
			Y: settings.ThresholdY,
			Z: settings.ThresholdZ,
		},
		Debounce: settings.ShakeDebounce,
	}
}

// ValidSensorSource reports whether name is a known sensor source.
func ValidSensorSource(name string) bool {
	switch name {
	case SensorNone, SensorIIO, SensorStream, SensorMQTT:
		return true
	default:
		return false
	}
}
