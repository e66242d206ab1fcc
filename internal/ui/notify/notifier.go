// Package notify signals the interval alert through desktop notifications
// when no audio device is available for the buzzer.
package notify

import (
	"fyne.io/fyne/v2"

	"rudd/internal/core/vibe"
)

// Notifier sends one desktop notification per pulse.
type Notifier struct {
	app     fyne.App
	title   string
	content string
}

var _ vibe.Haptics = (*Notifier)(nil)

// New creates a Notifier on app.
func New(app fyne.App) *Notifier {
	return &Notifier{
		app:     app,
		title:   "rudd",
		content: "Interval elapsed",
	}
}

// TriggerHapticPulse sends the notification.
func (notifier *Notifier) TriggerHapticPulse() error {
	notifier.app.SendNotification(fyne.NewNotification(notifier.title, notifier.content))
	return nil
}
