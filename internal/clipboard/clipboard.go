// Package clipboard implements the capture and paste orchestration around
// the secondary selection buffer.
//
// A capture cycle copies a fresh selection into the secondary buffer by
// briefly driving the real system clipboard (snapshot, synthetic copy,
// poll for change, restore). A paste cycle temporarily installs the
// buffer's content into the system clipboard, fires a synthetic paste, and
// puts the original content back. Both cycles guarantee that the system
// clipboard ends an operation holding whatever it held at the start,
// outside the brief window the gesture itself needs.
//
// The package only talks to the OS through the Gateway and Injector
// interfaces, so the cycles are testable with in-memory fakes.
package clipboard

import (
	"errors"
	"time"

	"github.com/selclip/selclip-daemon/internal/types"
)

// Gateway is the system clipboard abstraction. Both operations are
// synchronous with bounded latency; failures surface as errors rather than
// stale data.
type Gateway interface {
	Read() (string, error)
	Write(text string) error
}

// KeyCombo identifies a synthetic keyboard gesture the injector can press.
type KeyCombo uint8

const (
	// ComboCopy is the platform copy gesture (Ctrl+C).
	ComboCopy KeyCombo = iota
	// ComboPaste is the platform paste gesture (Ctrl+V).
	ComboPaste
)

// String returns a string representation of the combo.
func (c KeyCombo) String() string {
	switch c {
	case ComboCopy:
		return "copy"
	case ComboPaste:
		return "paste"
	default:
		return "unknown"
	}
}

// Injector delivers synthetic key gestures to the focused application.
type Injector interface {
	// Press holds the combo for the given duration, then releases it.
	// It blocks for the hold duration.
	Press(combo KeyCombo, hold time.Duration) error
}

// Recorder receives each successfully captured selection, e.g. the capture
// journal or the in-memory recent log.
type Recorder interface {
	Record(rec *types.CaptureRecord) error
}

// MultiRecorder fans a capture out to several recorders. Each recorder is
// attempted even when an earlier one fails.
func MultiRecorder(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}

type multiRecorder []Recorder

func (m multiRecorder) Record(rec *types.CaptureRecord) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Record(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
