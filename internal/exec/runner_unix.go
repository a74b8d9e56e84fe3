//go:build unix

package exec

import "syscall"

// defaultSysProcAttr places the child in its own process group so that
// killing the tool also kills any workers it spawned.
func defaultSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
}

// extractSignal reports the signal that terminated the process, if any.
func extractSignal(state interface{}) (syscall.Signal, bool) {
	ws, ok := state.(syscall.WaitStatus)
	if ok && ws.Signaled() {
		return ws.Signal(), true
	}
	return 0, false
}
