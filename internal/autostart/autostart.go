// ABOUTME: Login-time autostart registration via the systemd user service manager.
// ABOUTME: Calls run synchronously so the caller knows the outcome before committing UI state.
package autostart

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/awake-desktop/awake/internal/logging"
)

// ServiceName is the user unit registered to launch awake at login.
const ServiceName = "awake.service"

// Manager toggles the login-level service registration. The subprocess
// runner is injectable for tests.
type Manager struct {
	unit string
	run  func(args ...string) ([]byte, error)
}

func New() *Manager {
	return &Manager{
		unit: ServiceName,
		run: func(args ...string) ([]byte, error) {
			return exec.Command("systemctl", args...).CombinedOutput()
		},
	}
}

// Enable registers the service to start at login. Blocks until systemctl
// exits; a non-zero exit is returned as an error carrying its output.
func (m *Manager) Enable() error {
	return m.toggle("enable")
}

// Disable removes the login registration.
func (m *Manager) Disable() error {
	return m.toggle("disable")
}

func (m *Manager) toggle(verb string) error {
	out, err := m.run("--user", verb, m.unit)
	if err != nil {
		return fmt.Errorf("systemctl --user %s %s failed: %w (%s)",
			verb, m.unit, err, strings.TrimSpace(string(out)))
	}
	logging.Info("autostart %sd", verb)
	return nil
}

// Enabled probes the current registration state. Best-effort: systemctl
// exits non-zero for "disabled" as well as for real failures, so the
// output is inspected before the error.
func (m *Manager) Enabled() (bool, error) {
	out, err := m.run("--user", "is-enabled", m.unit)
	state := strings.TrimSpace(string(out))
	switch state {
	case "enabled", "enabled-runtime", "linked", "static":
		return true, nil
	case "disabled", "masked", "not-found":
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("systemctl --user is-enabled %s failed: %w", m.unit, err)
	}
	return false, nil
}
