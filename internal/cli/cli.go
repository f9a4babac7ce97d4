// Package cli exposes the selclipd command tree to the main package.
package cli

import (
	cmdpkg "github.com/selclip/selclip-daemon/internal/cli/cmd"
)

// SetVersionInfo forwards build metadata to the version command.
func SetVersionInfo(version, buildTime, commit string) {
	cmdpkg.SetVersionInfo(version, buildTime, commit)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	cmdpkg.Execute()
}
