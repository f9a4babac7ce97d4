package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WritePidFile records pid at path, creating parent directories as needed.
func WritePidFile(path string, pid int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating pid directory: %w", err)
	}
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644)
}

// ReadPidFile returns the process id recorded at path.
func ReadPidFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("pid file %s is corrupt: %w", path, err)
	}
	return pid, nil
}

// Probe reports whether the daemon recorded in the pid file is alive.
// It only probes; the process is never signalled for real. A stale or
// unreadable pid file reports not running.
func Probe(pidFile string) (pid int, alive bool) {
	pid, err := ReadPidFile(pidFile)
	if err != nil || pid <= 0 {
		return 0, false
	}
	if !processAlive(pid) {
		return pid, false
	}
	return pid, true
}
