// ABOUTME: Entry point for awake: loads preferences, applies the initial
// ABOUTME: inhibitor state and runs the tray with a guarded shutdown sequence.
package main

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/godbus/dbus/v5"

	"github.com/awake-desktop/awake/internal/autostart"
	"github.com/awake-desktop/awake/internal/config"
	"github.com/awake-desktop/awake/internal/inhibitor"
	"github.com/awake-desktop/awake/internal/logging"
	"github.com/awake-desktop/awake/internal/notifier"
	"github.com/awake-desktop/awake/internal/tray"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := logging.Init(); err != nil {
		logging.Warn("file logging unavailable: %v", err)
	}
	defer logging.Close()

	cfgPath, err := config.DefaultPath()
	if err != nil {
		logging.Error("cannot resolve config path: %v", err)
		return 1
	}

	prefs, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, config.ErrCorrupt) {
			logging.Error("cannot read preferences: %v", err)
			return 1
		}
		logging.Warn("preferences file corrupt, continuing with defaults: %v", err)
	}
	logging.Info("preferences loaded: enabled_by_default=%v autostart=%v",
		prefs.EnabledByDefault, prefs.Autostart)

	// The session bus serves both the screen-blanking inhibit and
	// notifications. Its absence degrades both, it aborts nothing.
	conn, err := dbus.SessionBus()
	if err != nil {
		logging.Warn("session bus unavailable: %v", err)
		conn = nil
	} else {
		defer conn.Close()
	}

	inh := inhibitor.New(conn)
	reporter := notifier.New(conn)

	if prefs.EnabledByDefault {
		if err := inh.Enable(); err != nil {
			logging.Warn("failed to enable keep-awake on startup: %v", err)
			reporter.Warn("Keep awake failed", err.Error())
		} else {
			logging.Info("keep-awake enabled on startup")
		}
	}

	presenter := tray.NewPresenter(inh, autostart.New(), reporter, prefs,
		func(p config.Preferences) error { return config.Save(cfgPath, p) },
		tray.SetSystrayIcon,
	)

	// Cleanup before save, exactly once: an interrupted shutdown that
	// leaves the lock process orphaned is the failure mode this tool
	// exists to prevent.
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			inh.Cleanup()
			if err := config.Save(cfgPath, presenter.Preferences()); err != nil {
				logging.Error("failed to flush preferences: %v", err)
			}
		})
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info("received signal %v, shutting down", sig)
		tray.Quit()
	}()

	tray.Run(presenter, shutdown)

	logging.Info("clean shutdown")
	return 0
}
