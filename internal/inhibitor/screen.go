//go:build linux

package inhibitor

import (
	"context"
	"os/exec"
	"strconv"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/awake-desktop/awake/internal/logging"
)

const (
	screenSaverService = "org.freedesktop.ScreenSaver"
	screenSaverPath    = "/org/freedesktop/ScreenSaver"
	xsetTimeout        = 5 * time.Second
)

// screenInhibitor prevents screen blanking while the sleep lock is held.
// It prefers the org.freedesktop.ScreenSaver D-Bus API and falls back to
// xset, snapshotting DPMS settings so release can restore them.
type screenInhibitor struct {
	conn       *dbus.Conn
	cookie     uint32
	haveCookie bool
	xsetActive bool
	saved      *dpmsSettings
	runXset    func(args ...string) (string, error)
}

func newScreenInhibitor(conn *dbus.Conn) *screenInhibitor {
	return &screenInhibitor{
		conn:    conn,
		runXset: runXsetCommand,
	}
}

func (s *screenInhibitor) inhibit() {
	if s.haveCookie || s.xsetActive {
		return
	}

	if s.conn != nil {
		obj := s.conn.Object(screenSaverService, dbus.ObjectPath(screenSaverPath))
		call := obj.Call(screenSaverService+".Inhibit", 0, "awake", "User requested keep-awake")
		err := call.Err
		if err == nil {
			err = call.Store(&s.cookie)
		}
		if err == nil {
			s.haveCookie = true
			logging.Info("screen blanking inhibited via D-Bus (cookie %d)", s.cookie)
			return
		}
		logging.Debug("D-Bus screensaver inhibit failed: %v", err)
	}

	// xset fallback. Snapshot current settings first so they can be
	// restored on release.
	if out, err := s.runXset("q"); err == nil {
		if saved, ok := parseXsetQuery(out); ok {
			s.saved = &saved
			logging.Debug("saved DPMS settings: %+v", saved)
		}
	}
	if _, err := s.runXset("s", "off", "-dpms"); err != nil {
		logging.Warn("xset fallback failed, screen blanking prevention unavailable: %v", err)
		return
	}
	s.xsetActive = true
	logging.Info("screen blanking inhibited via xset fallback")
}

func (s *screenInhibitor) release() {
	if s.haveCookie {
		obj := s.conn.Object(screenSaverService, dbus.ObjectPath(screenSaverPath))
		call := obj.Call(screenSaverService+".UnInhibit", 0, s.cookie)
		if call.Err != nil {
			logging.Warn("failed to release D-Bus screensaver inhibit: %v", call.Err)
		} else {
			logging.Info("screen blanking D-Bus inhibit released (cookie %d)", s.cookie)
		}
		s.haveCookie = false
		s.cookie = 0
	}

	if !s.xsetActive {
		return
	}
	if s.saved != nil {
		_, err := s.runXset("dpms",
			strconv.Itoa(s.saved.Standby),
			strconv.Itoa(s.saved.Suspend),
			strconv.Itoa(s.saved.Off))
		if err == nil {
			_, err = s.runXset("s", strconv.Itoa(s.saved.ScreensaverTimeout))
		}
		if err != nil {
			logging.Warn("failed to restore DPMS settings: %v", err)
		} else {
			logging.Info("restored DPMS settings: %+v", *s.saved)
		}
	} else {
		if _, err := s.runXset("+dpms", "s", "on"); err != nil {
			logging.Warn("failed to re-enable DPMS: %v", err)
		}
	}
	s.xsetActive = false
	s.saved = nil
}

func runXsetCommand(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), xsetTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "xset", args...).CombinedOutput()
	return string(out), err
}
