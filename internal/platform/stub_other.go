//go:build !linux
// +build !linux

package platform

import (
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/clipboard"
)

// NewHook reports that pointer observation is only implemented for X11.
func NewHook(pollInterval time.Duration, exitKey string, logger *zap.Logger) (Hook, error) {
	return nil, fmt.Errorf("pointer hook not supported on %s", runtime.GOOS)
}

// NewInjector reports that key injection is only implemented for X11.
func NewInjector(logger *zap.Logger) (clipboard.Injector, error) {
	return nil, fmt.Errorf("key injection not supported on %s", runtime.GOOS)
}
