//go:build !linux
// +build !linux

package platform

import (
	"fmt"
	"runtime"
)

// Daemonize reports that detaching is only implemented for Linux.
func Daemonize(executable string, args []string, workDir, pidFile string) (int, error) {
	return 0, fmt.Errorf("detached mode not supported on %s", runtime.GOOS)
}

// IsRunningAsDaemon reports whether this process already runs detached.
func IsRunningAsDaemon() bool {
	return false
}
