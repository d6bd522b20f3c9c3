package inhibitor

import "errors"

// ErrSpawn marks a failure to start the external sleep-lock process,
// usually because systemd-inhibit is not installed.
var ErrSpawn = errors.New("failed to start sleep inhibitor")
