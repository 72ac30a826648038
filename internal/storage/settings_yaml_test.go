package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lazytimer/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)
	saved := preferences.DefaultSettings()
	saved.ShakeEnabled = false
	saved.ShakeDebounce = 1500 * time.Millisecond
	saved.ThresholdY = 14
	saved.SamplingInterval = 20 * time.Millisecond
	saved.SensorSource = preferences.SensorMQTT
	saved.MQTTBroker = "broker.local:1883"
	saved.MetricsAddr = "127.0.0.1:9464"

	require.NoError(t, SaveSettings(path, saved))
	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	raw := []byte("shake_debounce_ms: -5\nshake_threshold_x: 0\nsensor_source: bluetooth\nsampling_interval_ms: -1\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.ShakeDebounce, settings.ShakeDebounce)
	assert.Equal(t, defaults.ThresholdX, settings.ThresholdX)
	assert.Equal(t, defaults.SensorSource, settings.SensorSource)
	assert.Equal(t, defaults.SamplingInterval, settings.SamplingInterval)
	assert.True(t, settings.ShakeEnabled)
}

func TestLoadSettingsRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("shake_enabled: [oops"), 0o644))

	_, err := LoadSettings(path)
	assert.ErrorContains(t, err, "parse settings yaml")
}
