//go:build windows

package exec

import "syscall"

// defaultSysProcAttr returns nil on Windows: process groups are managed
// differently and os/exec handles termination on context cancellation.
func defaultSysProcAttr() *syscall.SysProcAttr {
	return nil
}

// extractSignal is a no-op on Windows.
func extractSignal(_ interface{}) (syscall.Signal, bool) {
	return 0, false
}
