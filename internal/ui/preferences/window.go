package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	onCancel   func()
	shake      *widget.Check
	debounce   *widget.Entry
	thresholdX *widget.Entry
	thresholdY *widget.Entry
	thresholdZ *widget.Entry
	sampling   *widget.Entry
	source     *widget.Select
	streamPath *widget.Entry
	broker     *widget.Entry
	topic      *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("LazyTimer Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		shake:      widget.NewCheck("Start/pause by shaking the device", nil),
		debounce:   widget.NewEntry(),
		thresholdX: widget.NewEntry(),
		thresholdY: widget.NewEntry(),
		thresholdZ: widget.NewEntry(),
		sampling:   widget.NewEntry(),
		source:     widget.NewSelect([]string{SensorIIO, SensorStream, SensorMQTT, SensorNone}, nil),
		streamPath: widget.NewEntry(),
		broker:     widget.NewEntry(),
		topic:      widget.NewEntry(),
	}
	prefs.sampling.SetPlaceHolder("fastest")
	prefs.streamPath.SetPlaceHolder("stdin")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Shake", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.shake,
		container.NewHBox(widget.NewLabel("Ignore shakes within"), prefs.debounce, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Threshold X"), prefs.thresholdX, widget.NewLabel("m/s²")),
		container.NewHBox(widget.NewLabel("Threshold Y"), prefs.thresholdY, widget.NewLabel("m/s²")),
		container.NewHBox(widget.NewLabel("Threshold Z"), prefs.thresholdZ, widget.NewLabel("m/s²")),
		widget.NewLabelWithStyle("Sensor", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Source"), prefs.source),
		container.NewHBox(widget.NewLabel("Sample every"), prefs.sampling, widget.NewLabel("ms")),
		container.NewBorder(nil, nil, widget.NewLabel("Stream file"), nil, prefs.streamPath),
		container.NewBorder(nil, nil, widget.NewLabel("MQTT broker"), nil, prefs.broker),
		container.NewBorder(nil, nil, widget.NewLabel("MQTT topic"), nil, prefs.topic),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.shake.SetChecked(settings.ShakeEnabled)
	prefs.debounce.SetText(strconv.FormatInt(settings.ShakeDebounce.Milliseconds(), 10))
	prefs.thresholdX.SetText(formatFloat(settings.ThresholdX))
	prefs.thresholdY.SetText(formatFloat(settings.ThresholdY))
	prefs.thresholdZ.SetText(formatFloat(settings.ThresholdZ))
	if settings.SamplingInterval > 0 {
		prefs.sampling.SetText(strconv.FormatInt(settings.SamplingInterval.Milliseconds(), 10))
	} else {
		prefs.sampling.SetText("")
	}
	prefs.source.SetSelected(settings.SensorSource)
	prefs.streamPath.SetText(settings.SensorStreamPath)
	prefs.broker.SetText(settings.MQTTBroker)
	prefs.topic.SetText(settings.MQTTTopic)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.ShakeEnabled = prefs.shake.Checked
	if millis, ok := parsePositiveInt(prefs.debounce.Text); ok {
		settings.ShakeDebounce = time.Duration(millis) * time.Millisecond
	}
	if value, ok := parsePositiveFloat(prefs.thresholdX.Text); ok {
		settings.ThresholdX = value
	}
	if value, ok := parsePositiveFloat(prefs.thresholdY.Text); ok {
		settings.ThresholdY = value
	}
	if value, ok := parsePositiveFloat(prefs.thresholdZ.Text); ok {
		settings.ThresholdZ = value
	}
	if strings.TrimSpace(prefs.sampling.Text) == "" {
		settings.SamplingInterval = 0
	} else if millis, ok := parsePositiveInt(prefs.sampling.Text); ok {
		settings.SamplingInterval = time.Duration(millis) * time.Millisecond
	}
	if ValidSensorSource(prefs.source.Selected) {
		settings.SensorSource = prefs.source.Selected
	}
	settings.SensorStreamPath = strings.TrimSpace(prefs.streamPath.Text)
	if broker := strings.TrimSpace(prefs.broker.Text); broker != "" {
		settings.MQTTBroker = broker
	}
	if topic := strings.TrimSpace(prefs.topic.Text); topic != "" {
		settings.MQTTTopic = topic
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parsePositiveFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
