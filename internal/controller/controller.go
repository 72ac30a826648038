package controller

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"lazytimer/internal/core/countdown"
	"lazytimer/internal/notify"
	"lazytimer/internal/observability"
	"lazytimer/internal/storage"

	"go.uber.org/zap"
)

// Toggle sources, used as metric labels.
const (
	SourceButton = "button"
	SourceShake  = "shake"
	SourceTray   = "tray"
)

var (
	// ErrEmptyInput is returned when the duration field is blank.
	ErrEmptyInput = errors.New("empty duration input")
	// ErrNotPositive is returned for zero, negative or unparsable input.
	ErrNotPositive = errors.New("duration must be a positive number of minutes")
)

const maxMinutes = int64(math.MaxInt64 / int64(time.Minute))

// Renderer displays controller output. Implementations must be safe to
// call from any goroutine.
type Renderer interface {
	Render(view View)
	ShowError(message string)
}

// Renderers fans output out to several renderers, such as the window and
// the tray menu.
type Renderers []Renderer

// Render forwards view to every renderer.
func (renderers Renderers) Render(view View) {
	for _, renderer := range renderers {
		renderer.Render(view)
	}
}

// ShowError forwards message to every renderer.
func (renderers Renderers) ShowError(message string) {
	for _, renderer := range renderers {
		renderer.ShowError(message)
	}
}

// Controller binds user input, shake events and lifecycle hooks to the
// countdown.
type Controller struct {
	countdown *countdown.Countdown
	store     storage.SnapshotStore
	gateway   notify.Gateway
	renderer  Renderer
	logger    *zap.Logger
	events    <-chan countdown.Event
}

// New wires a controller and subscribes it to countdown events.
func New(keeper *countdown.Countdown, store storage.SnapshotStore, gateway notify.Gateway, renderer Renderer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		countdown: keeper,
		store:     store,
		gateway:   gateway,
		renderer:  renderer,
		logger:    logger,
		events:    keeper.Subscribe(32),
	}
}

// UserMessage returns the text shown for an input error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Field can't be empty"
	case errors.Is(err, ErrNotPositive):
		return "Please enter a positive number"
	default:
		return err.Error()
	}
}

// Submit parses a minutes entry and sets it as the new target.
func (controller *Controller) Submit(input string) error {
	minutes, err := parseMinutes(input)
	if err != nil {
		controller.renderer.ShowError(UserMessage(err))
		return err
	}

	if !controller.countdown.SetDuration(time.Duration(minutes) * time.Minute) {
		controller.logger.Debug("set ignored while running", zap.Int64("minutes", minutes))
		return nil
	}
	controller.logger.Info("duration set", zap.Int64("minutes", minutes))
	controller.render()
	return nil
}

// ToggleStartPause pauses a running timer and starts any other.
func (controller *Controller) ToggleStartPause(source string) {
	if controller.countdown.Toggle() {
		observability.RecordToggle(source)
		timer := controller.countdown.Timer()
		controller.logger.Info("timer toggled",
			zap.String("source", source),
			zap.String("state", string(timer.State)),
			zap.Duration("remaining", timer.Remaining),
		)
	}
	controller.render()
}

// OnShake handles a debounced shake exactly like a button tap.
func (controller *Controller) OnShake() {
	observability.RecordShake()
	controller.ToggleStartPause(SourceShake)
}

// Reset restores the configured duration.
func (controller *Controller) Reset() {
	if controller.countdown.Reset() {
		controller.logger.Debug("timer reset")
	}
	controller.render()
}

// Suspend persists the snapshot and stops ticking.
func (controller *Controller) Suspend() {
	snapshot := controller.countdown.Suspend()
	controller.store.Save(snapshot)
	observability.RecordSnapshot("save")
	controller.logger.Info("snapshot saved",
		zap.Int64("target_ms", snapshot.TargetMillis),
		zap.Int64("remaining_ms", snapshot.RemainingMillis),
		zap.Bool("running", snapshot.Running),
	)
}

// Resume restores the snapshot, recomputing a running timer against the
// wall clock.
func (controller *Controller) Resume() {
	snapshot := controller.store.Load()
	timer := controller.countdown.Resume(snapshot)
	observability.RecordSnapshot("restore")
	controller.logger.Info("snapshot restored",
		zap.String("state", string(timer.State)),
		zap.Duration("remaining", timer.Remaining),
	)
	controller.render()
}

// Render pushes the current view to the renderer.
func (controller *Controller) Render() {
	controller.render()
}

// Run consumes countdown events until ctx ends or the countdown closes.
func (controller *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-controller.events:
			if !ok {
				return
			}
			controller.handle(event)
		}
	}
}

func (controller *Controller) handle(event countdown.Event) {
	switch event.Type {
	case countdown.EventTick:
		controller.render()
	case countdown.EventStateChange:
		if event.State == countdown.StateFinished {
			controller.logger.Info("timer finished")
		}
		controller.render()
	case countdown.EventOneMinuteLeft:
		alert := notify.NewAlert(event.At)
		if err := controller.gateway.Notify(alert); err != nil {
			controller.logger.Warn("notify failed", zap.String("id", alert.ID), zap.Error(err))
			return
		}
		observability.RecordAlert()
	}
}

func (controller *Controller) render() {
	controller.renderer.Render(DeriveView(controller.countdown.Timer()))
}

func parseMinutes(input string) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, ErrEmptyInput
	}
	minutes, err := strconv.ParseInt(input, 10, 64)
	if err != nil || minutes <= 0 || minutes > maxMinutes {
		return 0, ErrNotPositive
	}
	return minutes, nil
}
