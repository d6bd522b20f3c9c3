//go:build !linux

package inhibitor

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Controller is a stub on non-Linux platforms: the sleep lock is held
// through systemd, which is Linux-only.
type Controller struct{}

func New(conn *dbus.Conn) *Controller { return &Controller{} }

func (c *Controller) Enable() error {
	return fmt.Errorf("%w: sleep inhibition requires systemd (Linux only)", ErrSpawn)
}

func (c *Controller) Disable() error { return nil }

func (c *Controller) Active() bool { return false }

func (c *Controller) Cleanup() {}
