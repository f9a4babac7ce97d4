//go:build windows

package daemon

import "os"

func processAlive(pid int) bool {
	// FindProcess succeeds for any pid on unix but actually opens a
	// handle on windows, so its error is meaningful here.
	_, err := os.FindProcess(pid)
	return err == nil
}
