// Package notify delivers user-facing timer alerts.
package notify

import (
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	alertTitle = "Timer Alert"
	alertBody  = "Only 1 Minute left"
)

// Alert is one user notification.
type Alert struct {
	// ID is unique per alert so notifications stack instead of replacing
	// each other.
	ID    string
	Title string
	Body  string
	At    time.Time
}

// NewAlert builds the one-minute alert with a fresh identifier.
func NewAlert(now time.Time) Alert {
	return Alert{
		ID:    uuid.NewString(),
		Title: alertTitle,
		Body:  alertBody,
		At:    now,
	}
}

// Gateway delivers alerts.
type Gateway interface {
	Notify(alert Alert) error
}

// Sender is the part of fyne.App used to post system notifications.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// FyneGateway posts alerts as system notifications.
type FyneGateway struct {
	sender Sender
	logger *zap.Logger
}

// NewFyneGateway creates a gateway posting through sender.
func NewFyneGateway(sender Sender, logger *zap.Logger) *FyneGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FyneGateway{sender: sender, logger: logger}
}

// Notify implements Gateway.
func (gateway *FyneGateway) Notify(alert Alert) error {
	gateway.sender.SendNotification(fyne.NewNotification(alert.Title, alert.Body))
	gateway.logger.Info("notification sent",
		zap.String("id", alert.ID),
		zap.String("title", alert.Title),
		zap.Time("at", alert.At),
	)
	return nil
}
