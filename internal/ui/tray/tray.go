package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

const menuTitle = "Overfocus"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnTogglePause func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	running     bool
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. app may be nil,
// in which case the menu is kept but never shown.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start pomodoro", manager.call(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", manager.call(&manager.callbacks.OnTogglePause))
	manager.stopItem = fyne.NewMenuItem("Stop", manager.call(&manager.callbacks.OnStop))

	manager.refreshItems()
	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	if paused == manager.paused {
		return
	}
	manager.paused = paused
	manager.refreshItems()
	manager.refreshStatus()
}

// SetRunning toggles the items that need a running clock.
func (manager *Manager) SetRunning(running bool) {
	if running == manager.running {
		return
	}
	manager.running = running
	if !running {
		manager.paused = false
		manager.statusLabel = "idle"
	}
	manager.refreshItems()
	manager.refreshStatus()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show window", manager.call(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", manager.call(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", manager.call(&manager.callbacks.OnQuit)),
	)
}

// Status returns the text of the status item.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) call(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}

func (manager *Manager) refreshItems() {
	manager.startItem.Disabled = manager.running
	manager.pauseItem.Disabled = !manager.running
	manager.stopItem.Disabled = !manager.running
	if manager.paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
	if manager.app != nil {
		systray.SetTooltip(fmt.Sprintf("%s: %s", menuTitle, status))
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
