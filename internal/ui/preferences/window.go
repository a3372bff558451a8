package preferences

import (
	"fmt"

	"overfocus/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	notifications *widget.Check
	startNow      *widget.Check
	showTray      *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Overfocus Settings")

	notifications := widget.NewCheck("Desktop notifications on stage changes", nil)
	startNow := widget.NewCheck("Start the clock on launch", nil)
	showTray := widget.NewCheck("Show tray icon (applies on restart)", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		notifications,
		startNow,
		showTray,
		widget.NewLabelWithStyle("Schedule", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(ScheduleSummary(model.DefaultPomodoroConfig())),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 260))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		notifications: notifications,
		startNow:      startNow,
		showTray:      showTray,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.startNow.SetChecked(settings.StartImmediately)
	prefs.showTray.SetChecked(settings.ShowTray)
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Notifications = prefs.notifications.Checked
	settings.StartImmediately = prefs.startNow.Checked
	settings.ShowTray = prefs.showTray.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// ScheduleSummary describes the fixed stage durations.
func ScheduleSummary(config model.PomodoroConfig) string {
	return fmt.Sprintf("%d min work, %d min break, %d min long break after %d work intervals",
		int(config.Work.Minutes()), int(config.ShortBreak.Minutes()), int(config.LongBreak.Minutes()), config.Rounds())
}
