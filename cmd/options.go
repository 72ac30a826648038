package main

import (
	"lazytimer/internal/ui/preferences"

	"github.com/spf13/pflag"
)

type cliOptions struct {
	configPath  string
	sensor      string
	sensorPath  string
	mqttBroker  string
	mqttTopic   string
	metricsAddr string
	debug       bool
}

func (options *cliOptions) register(flags *pflag.FlagSet) {
	flags.StringVar(&options.configPath, "config", "", "settings file (default is the user config dir)")
	flags.StringVar(&options.sensor, "sensor", "", "accelerometer source: iio, stream, mqtt or none")
	flags.StringVar(&options.sensorPath, "sensor-path", "", "file or pipe of JSON samples for the stream source, - for stdin")
	flags.StringVar(&options.mqttBroker, "mqtt-broker", "", "MQTT broker host:port for the mqtt source")
	flags.StringVar(&options.mqttTopic, "mqtt-topic", "", "MQTT topic carrying accelerometer samples")
	flags.StringVar(&options.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	flags.BoolVar(&options.debug, "debug", false, "development logging")
}

// apply overrides settings with the flags set on the command line.
func (options *cliOptions) apply(flags *pflag.FlagSet, settings preferences.Settings) preferences.Settings {
	if flags.Changed("sensor") && preferences.ValidSensorSource(options.sensor) {
		settings.SensorSource = options.sensor
	}
	if flags.Changed("sensor-path") {
		settings.SensorStreamPath = options.sensorPath
	}
	if flags.Changed("mqtt-broker") && options.mqttBroker != "" {
		settings.MQTTBroker = options.mqttBroker
	}
	if flags.Changed("mqtt-topic") && options.mqttTopic != "" {
		settings.MQTTTopic = options.mqttTopic
	}
	if flags.Changed("metrics-addr") {
		settings.MetricsAddr = options.metricsAddr
	}
	return settings
}
