package gitcmd

import (
	"sync"
	"time"
)

// Process-wide defaults. These exist for callers that configure once at
// startup; every invocation snapshots them at start, so mutating a default
// mid-flight never changes the behavior of a call already running.
var (
	defaultsMu        sync.RWMutex
	defaultTimeout    time.Duration
	defaultSSHCommand string
)

// SetDefaultTimeout sets the timeout applied when an invocation does not
// supply one. Zero means no default timeout.
func SetDefaultTimeout(d time.Duration) {
	defaultsMu.Lock()
	defaultTimeout = d
	defaultsMu.Unlock()
}

// DefaultTimeout returns the current process-wide default timeout.
func DefaultTimeout() time.Duration {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultTimeout
}

// SetDefaultSSHCommand sets the GIT_SSH_COMMAND value used by the repo
// layer when a Repo does not supply its own. Empty means no override.
func SetDefaultSSHCommand(cmd string) {
	defaultsMu.Lock()
	defaultSSHCommand = cmd
	defaultsMu.Unlock()
}

// DefaultSSHCommand returns the current process-wide SSH command override.
func DefaultSSHCommand() string {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultSSHCommand
}

// snapshot is the read-only copy of the defaults taken at invocation start.
type snapshot struct {
	timeout time.Duration
	ssh     string
}

func snapshotDefaults() snapshot {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return snapshot{timeout: defaultTimeout, ssh: defaultSSHCommand}
}
