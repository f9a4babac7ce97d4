//go:build !windows

package daemon

import "golang.org/x/sys/unix"

// processAlive checks for an existing process with signal 0, which
// performs permission and existence checks without delivering anything.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}
