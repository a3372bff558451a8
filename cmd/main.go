package main

import (
	"context"
	"errors"
	"log"
	"time"

	"overfocus/internal/core/model"
	"overfocus/internal/core/pomodoro"
	"overfocus/internal/logbook"
	"overfocus/internal/notify"
	"overfocus/internal/platform"
	"overfocus/internal/storage"
	"overfocus/internal/ui/preferences"
	"overfocus/internal/ui/screens"
	"overfocus/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const (
	appName       = "Overfocus"
	frameInterval = 200 * time.Millisecond
)

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("%s is already running", appName)
		} else {
			log.Printf("single instance: %v", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	book := logbook.New(logbook.Config{Mirror: log.Default()})
	config := model.DefaultPomodoroConfig()

	fyneApp := app.NewWithID("com.overfocus.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	notifier := notify.New(fyneApp, config, settings.Notifications)

	window := fyneApp.NewWindow(appName)
	window.Resize(fyne.NewSize(360, 320))

	var trayManager *tray.Manager
	navigator := screens.NewNavigator(screens.Config{
		StartClock: func() *pomodoro.Clock {
			clock := pomodoro.Start(config, pomodoro.Options{Sink: book})
			go notifier.Watch(clock.Subscribe(8))
			return clock
		},
		Log:    book,
		OnQuit: fyneApp.Quit,
		OnClockChange: func(clock *pomodoro.Clock) {
			if trayManager != nil {
				trayManager.SetRunning(clock != nil)
			}
		},
	})

	view := screens.NewView(window, navigator, book, screens.ViewConfig{
		OnFrame: func() {
			if trayManager == nil {
				return
			}
			screen, ok := navigator.ClockScreen()
			if !ok {
				return
			}
			snapshot, err := screen.Clock().Snapshot()
			if err != nil {
				trayManager.SetStatus("unavailable")
				return
			}
			trayManager.SetPaused(snapshot.Paused())
			trayManager.SetStatus(screens.Status(snapshot))
		},
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		notifier.SetEnabled(settings.Notifications)
		book.Check(storage.SaveSettings(appName, settings))
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok && settings.ShowTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				window.Show()
				window.RequestFocus()
			},
			OnStart: func() {
				navigator.OpenClock()
				view.Refresh()
			},
			OnTogglePause: func() {
				navigator.TogglePause()
				view.Refresh()
			},
			OnStop: func() {
				navigator.CloseClock()
				view.Refresh()
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        navigator.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		window.SetCloseIntercept(window.Hide)
	} else {
		window.SetCloseIntercept(navigator.Quit)
	}

	if settings.StartImmediately {
		navigator.OpenClock()
		view.Refresh()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	view.Run(ctx, frameInterval)

	window.ShowAndRun()
}
