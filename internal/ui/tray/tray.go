package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow      func()
	OnToggle    func()
	OnIncrement func()
	OnDecrement func()
	OnQuit      func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	callbacks  Callbacks
	armed      bool
	interval   string
	units      string
}

// New creates a tray manager with the provided callbacks. A nil app builds
// the menu without installing it.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		units:     "min",
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Vibe On", func() {
		call(manager.callbacks.OnToggle)
	})

	manager.refreshStatus()
	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("rudd",
		manager.statusItem,
		fyne.NewMenuItem("Show", func() { call(manager.callbacks.OnShow) }),
		manager.toggleItem,
		fyne.NewMenuItem("Longer interval", func() { call(manager.callbacks.OnIncrement) }),
		fyne.NewMenuItem("Shorter interval", func() { call(manager.callbacks.OnDecrement) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)
}

// SetArmed updates the vibration state shown in the menu.
func (manager *Manager) SetArmed(armed bool) {
	manager.armed = armed
	if armed {
		manager.toggleItem.Label = "Vibe Off"
	} else {
		manager.toggleItem.Label = "Vibe On"
	}
	manager.refreshStatus()
}

// SetInterval updates the interval label shown in the status line.
func (manager *Manager) SetInterval(label string) {
	manager.interval = label
	manager.refreshStatus()
}

// SetUnits sets the unit shown after the interval in the status line.
func (manager *Manager) SetUnits(units string) {
	if units == "" {
		return
	}
	manager.units = units
	manager.refreshStatus()
}

func (manager *Manager) refreshStatus() {
	state := "off"
	if manager.armed {
		state = "on"
	}
	if manager.interval == "" {
		manager.statusItem.Label = fmt.Sprintf("Status: vibe %s", state)
	} else {
		manager.statusItem.Label = fmt.Sprintf("Status: vibe %s, every %s %s", state, manager.interval, manager.units)
	}
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
