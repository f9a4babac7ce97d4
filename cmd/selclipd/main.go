package main

import (
	"github.com/selclip/selclip-daemon/internal/cli"
)

// Set at build time via -ldflags.
var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "none"
)

func main() {
	cli.SetVersionInfo(version, buildTime, commit)
	cli.Execute()
}
