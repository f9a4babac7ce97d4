// Package platform binds the daemon to the host system: reading and
// writing the real clipboard, observing global pointer activity, injecting
// synthetic key gestures, and detaching the process.
//
// The X11 implementations live behind linux build tags; on other systems
// the constructors return descriptive errors so the rest of the daemon
// (control socket, journal, CLI) still works.
package platform

import (
	"github.com/selclip/selclip-daemon/internal/types"
)

// Hook observes global mouse activity and the configured exit hotkey.
// Implementations deliver events until Stop is called; delivery may drop
// events under backpressure, which downstream consumers must tolerate.
type Hook interface {
	// Start begins observation in background goroutines.
	Start() error

	// Stop ends observation and releases the underlying connection. It is
	// safe to call more than once.
	Stop()

	// Events streams observed pointer changes.
	Events() <-chan types.MouseEvent

	// Exit fires when the exit hotkey is pressed.
	Exit() <-chan struct{}
}
