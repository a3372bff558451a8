// Package notify turns clock stage changes into desktop notifications.
package notify

import (
	"fmt"
	"sync/atomic"
	"time"

	"overfocus/internal/core/model"
	"overfocus/internal/core/pomodoro"

	"fyne.io/fyne/v2"
)

// Sender delivers a notification. fyne.App implements it.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Notifier sends a notification for every stage change it is given.
type Notifier struct {
	sender  Sender
	config  model.PomodoroConfig
	enabled atomic.Bool
}

// New creates a notifier for clocks running with config.
func New(sender Sender, config model.PomodoroConfig, enabled bool) *Notifier {
	notifier := &Notifier{
		sender: sender,
		config: config.Normalized(),
	}
	notifier.enabled.Store(enabled)
	return notifier
}

// SetEnabled turns notifications on or off.
func (notifier *Notifier) SetEnabled(enabled bool) {
	notifier.enabled.Store(enabled)
}

// Watch notifies for events until the channel is closed.
func (notifier *Notifier) Watch(events <-chan pomodoro.Event) {
	for event := range events {
		notifier.Notify(event)
	}
}

// Notify sends the notification for event, if it has one. It reports
// whether anything was sent.
func (notifier *Notifier) Notify(event pomodoro.Event) bool {
	if !notifier.enabled.Load() {
		return false
	}
	notification, ok := notifier.Message(event)
	if !ok {
		return false
	}
	notifier.sender.SendNotification(notification)
	return true
}

// Message builds the notification for event. Only stage changes and
// failures have one.
func (notifier *Notifier) Message(event pomodoro.Event) (*fyne.Notification, bool) {
	rounds := notifier.config.Rounds()
	switch event.Type {
	case pomodoro.EventFailure:
		return fyne.NewNotification("Pomodoro stopped", event.Message), true
	case pomodoro.EventStageChange:
	default:
		return nil, false
	}

	switch event.Stage {
	case pomodoro.StageShortBreak:
		return fyne.NewNotification("Short break",
			fmt.Sprintf("Work %d/%d done. Rest for %s.", event.Cycle+1, rounds, minutes(notifier.config.ShortBreak))), true
	case pomodoro.StageLongBreak:
		return fyne.NewNotification("Long break",
			fmt.Sprintf("All %d work intervals done. Rest for %s.", rounds, minutes(notifier.config.LongBreak))), true
	}

	if event.Previous == pomodoro.StageLongBreak {
		return fyne.NewNotification("Pomodoro complete",
			fmt.Sprintf("%d done so far. Back to work (1/%d).", event.Pomodoros, rounds)), true
	}
	return fyne.NewNotification("Back to work",
		fmt.Sprintf("Work (%d/%d), %s.", event.Cycle+1, rounds, minutes(notifier.config.Work))), true
}

func minutes(d time.Duration) string {
	if d%time.Minute != 0 {
		return d.String()
	}
	count := int(d / time.Minute)
	if count == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", count)
}
