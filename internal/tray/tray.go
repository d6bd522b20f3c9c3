// ABOUTME: systray glue: builds the menu, pumps click events into the
// ABOUTME: presenter and runs the periodic liveness resync.
package tray

import (
	_ "embed"
	"time"

	"github.com/getlantern/systray"

	"github.com/awake-desktop/awake/internal/logging"
)

var (
	//go:embed icon/on.png
	iconOn []byte

	//go:embed icon/off.png
	iconOff []byte
)

// resyncInterval bounds how long a stale icon can survive an out-of-band
// kill of the sleep-lock process.
const resyncInterval = 30 * time.Second

// SetSystrayIcon switches the tray indicator between its two states.
// Keyed strictly off inhibitor liveness by the presenter.
func SetSystrayIcon(active bool) {
	if active {
		systray.SetIcon(iconOn)
		systray.SetTooltip("Awake: keeping system awake")
	} else {
		systray.SetIcon(iconOff)
		systray.SetTooltip("Awake: system may sleep")
	}
}

// Quit stops the systray event loop; the onExit hook passed to Run fires
// afterwards. Used by the signal handler.
func Quit() {
	systray.Quit()
}

// Run blocks on the systray event loop. onExit runs after Quit is
// selected or the loop is stopped; the caller performs the shutdown
// sequence there.
func Run(p *Presenter, onExit func()) {
	onReady := func() {
		SetSystrayIcon(p.inhibitor.Active())

		keepAwakeItem := systray.AddMenuItemCheckbox(
			"Keep Awake", "Prevent the system from sleeping or idling", false)
		systray.AddSeparator()
		autostartItem := systray.AddMenuItemCheckbox(
			"Start at Login", "Launch awake automatically at login", false)
		systray.AddSeparator()
		quitItem := systray.AddMenuItem("Quit", "Quit awake")

		p.Bind(keepAwakeItem, autostartItem)

		go func() {
			ticker := time.NewTicker(resyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-keepAwakeItem.ClickedCh:
					p.HandleKeepAwakeClick()
				case <-autostartItem.ClickedCh:
					p.HandleAutostartClick()
				case <-ticker.C:
					p.Resync()
				case <-quitItem.ClickedCh:
					logging.Info("quit requested from tray menu")
					systray.Quit()
					return
				}
			}
		}()
	}

	systray.Run(onReady, onExit)
}
