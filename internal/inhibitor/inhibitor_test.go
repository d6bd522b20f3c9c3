//go:build linux

package inhibitor

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestController returns a controller that spawns the given command
// instead of systemd-inhibit and never touches D-Bus or xset.
func newTestController(t *testing.T, command ...string) *Controller {
	t.Helper()
	c := New(nil)
	c.command = command
	c.termTimeout = 200 * time.Millisecond
	c.screen.runXset = func(args ...string) (string, error) { return "", nil }
	t.Cleanup(c.Cleanup)
	return c
}

func TestEnableSpawnsProcess(t *testing.T) {
	c := newTestController(t, "sleep", "60")

	require.NoError(t, c.Enable())
	assert.True(t, c.Active())
}

func TestEnableTwiceKeepsSingleHandle(t *testing.T) {
	c := newTestController(t, "sleep", "60")

	require.NoError(t, c.Enable())
	pid := c.cmd.Process.Pid

	require.NoError(t, c.Enable(), "re-enable while active is a no-op success")
	assert.Equal(t, pid, c.cmd.Process.Pid, "second enable must not spawn a new process")
}

func TestEnableSpawnFailure(t *testing.T) {
	c := newTestController(t, "/nonexistent/awake-test-binary")

	err := c.Enable()
	assert.ErrorIs(t, err, ErrSpawn)
	assert.False(t, c.Active(), "failed spawn must not leave a handle")
}

func TestDisableWithoutHandleIsNoop(t *testing.T) {
	c := newTestController(t, "sleep", "60")

	require.NoError(t, c.Disable())
	require.NoError(t, c.Disable())
	assert.False(t, c.Active())
}

func TestDisableTerminatesProcess(t *testing.T) {
	c := newTestController(t, "sleep", "60")
	require.NoError(t, c.Enable())
	pid := c.cmd.Process.Pid

	require.NoError(t, c.Disable())

	assert.False(t, c.Active())
	// The child must be reaped, not just signalled.
	err := syscall.Kill(pid, 0)
	assert.Error(t, err, "process %d should no longer exist", pid)
}

func TestDisableEscalatesToKill(t *testing.T) {
	// The shell ignores SIGTERM, forcing the SIGKILL path.
	c := newTestController(t, "sh", "-c", `trap "" TERM; while true; do sleep 0.1; done`)
	require.NoError(t, c.Enable())

	start := time.Now()
	require.NoError(t, c.Disable())

	assert.False(t, c.Active(), "Active must report false even after forced termination")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestActiveObservesOutOfBandDeath(t *testing.T) {
	c := newTestController(t, "sleep", "60")
	require.NoError(t, c.Enable())
	pid := c.cmd.Process.Pid

	require.NoError(t, syscall.Kill(pid, syscall.SIGKILL))

	assert.Eventually(t, func() bool { return !c.Active() },
		time.Second, 10*time.Millisecond,
		"Active must poll liveness, not cache the last command")
	require.NoError(t, c.Disable(), "disable after out-of-band death is a no-op")
}

func TestEnableAfterOutOfBandDeathRespawns(t *testing.T) {
	c := newTestController(t, "sleep", "60")
	require.NoError(t, c.Enable())
	first := c.cmd.Process.Pid

	require.NoError(t, syscall.Kill(first, syscall.SIGKILL))
	require.Eventually(t, func() bool { return !c.Active() }, time.Second, 10*time.Millisecond)

	require.NoError(t, c.Enable())
	assert.True(t, c.Active())
	assert.NotEqual(t, first, c.cmd.Process.Pid)
}

func TestCleanupTolerated(t *testing.T) {
	c := newTestController(t, "sleep", "60")
	require.NoError(t, c.Enable())

	c.Cleanup()
	c.Cleanup()
	assert.False(t, c.Active())
}
