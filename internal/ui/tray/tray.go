package tray

import (
	"fmt"

	"lazytimer/internal/controller"

	"fyne.io/fyne/v2"
)

// MenuHost installs the tray menu. desktop.App satisfies it.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       MenuHost
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))
	manager.resetItem.Disabled = true

	manager.menu = fyne.NewMenu("LazyTimer",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	manager.refreshMenu()

	return manager
}

// Render mirrors the timer view in the tray menu.
func (manager *Manager) Render(view controller.View) {
	fyne.Do(func() {
		manager.apply(view)
	})
}

// ShowError is a no-op; input errors are shown by the timer window.
func (manager *Manager) ShowError(string) {}

// Menu returns the installed tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) apply(view controller.View) {
	status := fmt.Sprintf("Status: %s", view.Countdown)
	if view.Running {
		status += " (running)"
	}

	if status == manager.statusItem.Label &&
		view.ToggleLabel == manager.toggleItem.Label &&
		view.ToggleVisible != manager.toggleItem.Disabled &&
		view.ResetVisible != manager.resetItem.Disabled {
		return
	}

	manager.statusItem.Label = status
	manager.toggleItem.Label = view.ToggleLabel
	manager.toggleItem.Disabled = !view.ToggleVisible
	manager.resetItem.Disabled = !view.ResetVisible
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func invoke(fn *func()) func() {
	return func() {
		if *fn != nil {
			(*fn)()
		}
	}
}
