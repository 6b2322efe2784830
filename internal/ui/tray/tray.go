package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"zone25/internal/ui/rings"
)

const menuTitle = "Zone25"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnShowTimer   func()
	OnPreferences func()
	OnQuit        func()
}

// Menu is the part of desktop.App the tray needs.
type Menu interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

var _ Menu = desktop.App(nil)

// Manager handles system tray state.
type Manager struct {
	app         Menu
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
	iconBucket  int
}

// New creates a tray manager with the provided callbacks.
func New(app Menu, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		iconBucket: -1,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(toggleLabel(false), func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if manager.statusLabel == status {
		return
	}
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetRunning switches the toggle item between Start and Stop.
func (manager *Manager) SetRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	manager.toggleItem.Label = toggleLabel(running)
	manager.refreshMenu()
}

// SetProgress redraws the tray icon as a ring of the current block's progress.
func (manager *Manager) SetProgress(percent float64) {
	bucket := rings.IconBucket(percent)
	if bucket == manager.iconBucket {
		return
	}
	manager.iconBucket = bucket
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(rings.Icon(percent))
	}
}

// Items returns the current menu items, top to bottom.
func (manager *Manager) Items() []*fyne.MenuItem {
	return []*fyne.MenuItem{
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItem("Show timer", manager.callback(manager.callbacks.OnShowTimer)),
		fyne.NewMenuItem("Settings", manager.callback(manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", manager.callback(manager.callbacks.OnQuit)),
	}
}

func (manager *Manager) callback(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle, manager.Items()...))
	}
}

func toggleLabel(running bool) string {
	if running {
		return "Stop"
	}
	return "Start"
}
