package controller

import (
	"lazytimer/internal/core/countdown"
	"lazytimer/internal/core/display"
)

const (
	labelStart = "Start"
	labelPause = "Pause"
)

// View is the derived state of the timer screen.
type View struct {
	Countdown     string
	Running       bool
	InputVisible  bool
	SetVisible    bool
	ResetVisible  bool
	ToggleVisible bool
	ToggleLabel   string
}

// DeriveView computes widget visibility and labels from the timer.
func DeriveView(timer countdown.Timer) View {
	view := View{
		Countdown: display.Remaining(timer.Remaining),
		Running:   timer.Running(),
	}
	if view.Running {
		view.ToggleVisible = true
		view.ToggleLabel = labelPause
		return view
	}

	view.InputVisible = true
	view.SetVisible = true
	view.ToggleLabel = labelStart
	view.ToggleVisible = timer.Remaining >= countdown.MinStart
	view.ResetVisible = timer.Remaining < timer.Target
	return view
}
