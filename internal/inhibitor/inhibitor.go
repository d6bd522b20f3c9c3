//go:build linux

// ABOUTME: Sleep-lock controller built on a supervised systemd-inhibit child process.
// ABOUTME: The child's liveness is the single source of truth for whether the lock is held.
package inhibitor

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/awake-desktop/awake/internal/logging"
)

const defaultTermTimeout = 2 * time.Second

// Controller owns at most one live systemd-inhibit process. All methods are
// safe for concurrent use, though in practice a single UI loop drives them.
type Controller struct {
	mu          sync.Mutex
	cmd         *exec.Cmd
	done        chan struct{}
	screen      *screenInhibitor
	command     []string
	termTimeout time.Duration
}

// New returns a controller that spawns systemd-inhibit with an idle+sleep
// block. conn is the session bus used for the screen-blanking inhibit; it
// may be nil, in which case only the xset fallback is attempted.
func New(conn *dbus.Conn) *Controller {
	return &Controller{
		command: []string{
			"systemd-inhibit",
			"--what=idle:sleep",
			"--who=awake",
			"--why=User requested keep-awake",
			"--mode=block",
			"sleep", "infinity",
		},
		termTimeout: defaultTermTimeout,
		screen:      newScreenInhibitor(conn),
	}
}

// Enable spawns the sleep-lock process if none is live. Calling it while a
// live handle exists is a no-op success. A spawn failure leaves the
// controller inactive and returns an error wrapping ErrSpawn.
func (c *Controller) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liveLocked() {
		logging.Debug("inhibitor already running (pid %d)", c.cmd.Process.Pid)
		return nil
	}

	cmd := exec.Command(c.command[0], c.command[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()
	c.cmd = cmd
	c.done = done
	logging.Info("inhibitor enabled (pid %d)", cmd.Process.Pid)

	// Best-effort: the systemd lock is the contract, screen blanking
	// prevention rides along.
	c.screen.inhibit()
	return nil
}

// Disable terminates the sleep-lock process: SIGTERM, a bounded wait, then
// SIGKILL. The handle is always cleared before returning, even when
// signalling fails (the process is then already gone). Calling it with no
// live handle is a no-op success.
func (c *Controller) Disable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screen.release()

	if c.cmd == nil {
		return nil
	}
	cmd, done := c.cmd, c.done
	c.cmd, c.done = nil, nil

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		logging.Warn("inhibitor process already gone: %v", err)
	}

	select {
	case <-done:
	case <-time.After(c.termTimeout):
		logging.Warn("inhibitor did not exit after SIGTERM, forcing kill")
		if err := cmd.Process.Kill(); err != nil {
			logging.Warn("failed to kill inhibitor: %v", err)
		}
		select {
		case <-done:
		case <-time.After(c.termTimeout):
			// Escalation exhausted. Treat as terminated for state purposes.
			logging.Error("inhibitor (pid %d) survived SIGKILL, abandoning handle", cmd.Process.Pid)
		}
	}

	logging.Info("inhibitor disabled")
	return nil
}

// Active reports whether the sleep-lock process is live. The child is
// polled, not cached, so a process killed out-of-band is observed as
// inactive and its stale handle cleared.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.liveLocked()
}

// Cleanup is the shutdown alias for Disable. It tolerates repeated calls
// and releases the screen inhibit even when the child already died.
func (c *Controller) Cleanup() {
	if err := c.Disable(); err != nil {
		logging.Warn("cleanup: %v", err)
	}
}

func (c *Controller) liveLocked() bool {
	if c.cmd == nil {
		return false
	}
	select {
	case <-c.done:
		logging.Warn("inhibitor process (pid %d) exited unexpectedly", c.cmd.Process.Pid)
		c.cmd, c.done = nil, nil
		return false
	default:
		return true
	}
}
