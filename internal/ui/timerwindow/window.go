package timerwindow

import (
	"image/color"

	"lazytimer/internal/controller"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const countdownTextSize = 56

var errorColor = color.NRGBA{R: 220, G: 53, B: 69, A: 255}

// Callbacks defines the timer screen handlers.
type Callbacks struct {
	// OnSubmit receives the raw minutes entry; a nil error clears the field.
	OnSubmit func(input string) error
	OnToggle func()
	OnReset  func()
}

// Config defines window behavior.
type Config struct {
	Title string
	// HideOnClose keeps the app alive in the tray when the window closes.
	HideOnClose bool
}

// Window is the main timer screen.
type Window struct {
	window       fyne.Window
	callbacks    Callbacks
	countdown    *canvas.Text
	errorLabel   *canvas.Text
	input        *widget.Entry
	setButton    *widget.Button
	toggleButton *widget.Button
	resetButton  *widget.Button
}

// New creates the timer window.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	title := config.Title
	if title == "" {
		title = "LazyTimer"
	}
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	countdown := canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	countdown.Alignment = fyne.TextAlignCenter
	countdown.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	countdown.TextSize = countdownTextSize

	errorLabel := canvas.NewText("", errorColor)
	errorLabel.Alignment = fyne.TextAlignCenter
	errorLabel.TextSize = theme.CaptionTextSize()

	input := widget.NewEntry()
	input.SetPlaceHolder("Minutes")

	timer := &Window{
		window:     window,
		callbacks:  callbacks,
		countdown:  countdown,
		errorLabel: errorLabel,
		input:      input,
	}
	timer.setButton = widget.NewButtonWithIcon("Set", theme.ConfirmIcon(), timer.submit)
	timer.toggleButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if timer.callbacks.OnToggle != nil {
			timer.callbacks.OnToggle()
		}
	})
	timer.toggleButton.Importance = widget.HighImportance
	timer.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if timer.callbacks.OnReset != nil {
			timer.callbacks.OnReset()
		}
	})
	input.OnSubmitted = func(string) { timer.submit() }

	content := container.NewVBox(
		countdown,
		container.NewBorder(nil, nil, nil, timer.setButton, input),
		errorLabel,
		container.NewGridWithColumns(2, timer.toggleButton, timer.resetButton),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(320, 260))

	if config.HideOnClose {
		window.SetCloseIntercept(window.Hide)
	}

	return timer
}

// Show displays and focuses the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// Window returns the underlying fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Render applies a controller view on the UI goroutine.
func (timer *Window) Render(view controller.View) {
	fyne.Do(func() {
		timer.apply(view)
	})
}

// ShowError displays an input error below the entry.
func (timer *Window) ShowError(message string) {
	fyne.Do(func() {
		timer.setError(message)
	})
}

func (timer *Window) submit() {
	if timer.callbacks.OnSubmit == nil {
		return
	}
	if err := timer.callbacks.OnSubmit(timer.input.Text); err != nil {
		return
	}
	timer.input.SetText("")
	timer.setError("")
}

func (timer *Window) apply(view controller.View) {
	timer.countdown.Text = view.Countdown
	timer.countdown.Refresh()

	setVisible(timer.input, view.InputVisible)
	setVisible(timer.setButton, view.SetVisible)
	setVisible(timer.toggleButton, view.ToggleVisible)
	setVisible(timer.resetButton, view.ResetVisible)

	timer.toggleButton.SetText(view.ToggleLabel)
	if view.Running {
		timer.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		timer.toggleButton.SetIcon(theme.MediaPlayIcon())
	}
	if !view.InputVisible {
		timer.setError("")
	}
}

func (timer *Window) setError(message string) {
	timer.errorLabel.Text = message
	timer.errorLabel.Refresh()
}

func setVisible(object fyne.CanvasObject, visible bool) {
	if visible {
		object.Show()
		return
	}
	object.Hide()
}
