package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lazytimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	ShakeEnabled       *bool   `yaml:"shake_enabled"`
	ShakeDebounceMs    int     `yaml:"shake_debounce_ms"`
	ShakeThresholdX    float64 `yaml:"shake_threshold_x"`
	ShakeThresholdY    float64 `yaml:"shake_threshold_y"`
	ShakeThresholdZ    float64 `yaml:"shake_threshold_z"`
	SamplingIntervalMs int     `yaml:"sampling_interval_ms"`
	SensorSource       string  `yaml:"sensor_source"`
	SensorStreamPath   string  `yaml:"sensor_stream_path"`
	MQTTBroker         string  `yaml:"mqtt_broker"`
	MQTTTopic          string  `yaml:"mqtt_topic"`
	MetricsAddr        string  `yaml:"metrics_addr"`
}

// SettingsPath returns the default settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	enabled := settings.ShakeEnabled
	fileData := yamlSettings{
		ShakeEnabled:       &enabled,
		ShakeDebounceMs:    int(settings.ShakeDebounce / time.Millisecond),
		ShakeThresholdX:    settings.ThresholdX,
		ShakeThresholdY:    settings.ThresholdY,
		ShakeThresholdZ:    settings.ThresholdZ,
		SamplingIntervalMs: int(settings.SamplingInterval / time.Millisecond),
		SensorSource:       settings.SensorSource,
		SensorStreamPath:   settings.SensorStreamPath,
		MQTTBroker:         settings.MQTTBroker,
		MQTTTopic:          settings.MQTTTopic,
		MetricsAddr:        settings.MetricsAddr,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.ShakeEnabled != nil {
		settings.ShakeEnabled = *fileData.ShakeEnabled
	}
	if fileData.ShakeDebounceMs > 0 {
		settings.ShakeDebounce = time.Duration(fileData.ShakeDebounceMs) * time.Millisecond
	}
	if fileData.ShakeThresholdX > 0 {
		settings.ThresholdX = fileData.ShakeThresholdX
	}
	if fileData.ShakeThresholdY > 0 {
		settings.ThresholdY = fileData.ShakeThresholdY
	}
	if fileData.ShakeThresholdZ > 0 {
		settings.ThresholdZ = fileData.ShakeThresholdZ
	}
	if fileData.SamplingIntervalMs >= 0 {
		settings.SamplingInterval = time.Duration(fileData.SamplingIntervalMs) * time.Millisecond
	}

	if preferences.ValidSensorSource(fileData.SensorSource) {
		settings.SensorSource = fileData.SensorSource
	}
	if fileData.SensorStreamPath != "" {
		settings.SensorStreamPath = fileData.SensorStreamPath
	}
	if fileData.MQTTBroker != "" {
		settings.MQTTBroker = fileData.MQTTBroker
	}
	if fileData.MQTTTopic != "" {
		settings.MQTTTopic = fileData.MQTTTopic
	}
	settings.MetricsAddr = fileData.MetricsAddr
}
