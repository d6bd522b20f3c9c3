// ABOUTME: User-facing failure notifications for the awake tray utility.
// ABOUTME: Prefers the freedesktop Notifications D-Bus API, falling back to beeep.
package notifier

import (
	"time"

	"github.com/esiqveland/notify"
	"github.com/gen2brain/beeep"
	"github.com/godbus/dbus/v5"

	"github.com/awake-desktop/awake/internal/logging"
)

const appName = "awake"

// Reporter surfaces non-fatal failures to the user. It never returns an
// error to UI code: if every delivery path fails, the failure is logged
// and dropped.
type Reporter struct {
	conn      *dbus.Conn
	sendDBus  func(summary, body string) error
	sendBeeep func(summary, body string) error
}

// New builds a reporter. conn is the session bus and may be nil, in which
// case only the beeep fallback is used.
func New(conn *dbus.Conn) *Reporter {
	r := &Reporter{conn: conn}
	r.sendDBus = func(summary, body string) error {
		_, err := notify.SendNotification(r.conn, notify.Notification{
			AppName:       appName,
			Summary:       summary,
			Body:          body,
			ExpireTimeout: 5 * time.Second,
		})
		return err
	}
	r.sendBeeep = func(summary, body string) error {
		return beeep.Notify(summary, body, "")
	}
	return r
}

// Warn shows a notification for a non-fatal failure.
func (r *Reporter) Warn(summary, body string) {
	if r.conn != nil {
		err := r.sendDBus(summary, body)
		if err == nil {
			logging.Debug("notification sent via D-Bus: %s", summary)
			return
		}
		logging.Debug("D-Bus notification failed, falling back to beeep: %v", err)
	}
	if err := r.sendBeeep(summary, body); err != nil {
		logging.Error("failed to deliver notification %q: %v", summary, err)
	}
}
