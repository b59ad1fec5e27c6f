// Package tray provides the system tray interface for the wave alert
// monitor.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray menu of the monitor.
type Tray struct {
	onToggle  func(enabled bool)
	onHistory func()
	onQuit    func()
	enabled   bool
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle    *systray.MenuItem
	menuLastAlert *systray.MenuItem
}

// New creates a new Tray with monitoring enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback called when monitoring is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnHistory sets the callback called when the history menu item is clicked.
func (t *Tray) OnHistory(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onHistory = fn
}

// OnQuit sets the callback called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit shuts down the tray loop, unblocking Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady sets up the menu structure once the tray is available.
func (t *Tray) onReady() {
	systray.SetTitle("Handwave")
	systray.SetTooltip("Handwave Alert Monitor")

	t.menuToggle = systray.AddMenuItem("● Monitoring", "Toggle wave monitoring")
	systray.AddSeparator()

	t.menuLastAlert = systray.AddMenuItem("Last alert: none", "Most recent alert")
	t.menuLastAlert.Disable()
	systray.AddSeparator()

	menuHistory := systray.AddMenuItem("Open History...", "Open alert history in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Handwave")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuHistory.ClickedCh:
				t.handleHistory()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
}

// handleToggle flips the monitoring state and updates the menu title.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Monitoring")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleHistory() {
	t.mu.RLock()
	callback := t.onHistory
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastAlert updates the most recent alert display in the menu.
func (t *Tray) SetLastAlert(when string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastAlert != nil {
		if when == "" {
			t.menuLastAlert.SetTitle("Last alert: none")
		} else {
			t.menuLastAlert.SetTitle("Last alert: " + when)
		}
	}
}

// IsEnabled returns the current monitoring state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
