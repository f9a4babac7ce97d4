//go:build linux
// +build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// Daemonize re-launches the executable detached from the current session,
// with stdio on /dev/null, and writes the child's pid to pidFile. The
// caller is expected to strip its own detach flag from args to avoid
// forking forever.
func Daemonize(executable string, args []string, workDir, pidFile string) (int, error) {
	cmd := exec.Command(executable, args...)
	cmd.Dir = workDir

	nullDev, err := os.OpenFile("/dev/null", os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open /dev/null: %w", err)
	}
	defer nullDev.Close()

	cmd.Stdin = nullDev
	cmd.Stdout = nullDev
	cmd.Stderr = nullDev

	// New session so the child survives the terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return 0, fmt.Errorf("failed to create pid directory: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon process: %w", err)
	}

	pid := cmd.Process.Pid
	if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", pid)), 0644); err != nil {
		return pid, fmt.Errorf("failed to write pid file: %w", err)
	}

	return pid, nil
}

// IsRunningAsDaemon reports whether this process already runs detached
// (session leader with init as parent).
func IsRunningAsDaemon() bool {
	pid := os.Getpid()
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		return false
	}
	if pid != pgid {
		return false
	}

	ppid := os.Getppid()
	return ppid == 1 || ppid == 0
}
