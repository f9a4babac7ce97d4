package clipboard

import (
	"sync"
	"time"

	"github.com/selclip/selclip-daemon/internal/types"
)

// Value is one captured selection as read out of the secondary clipboard.
type Value struct {
	Text       string
	Kind       types.SelectionKind
	CapturedAt time.Time
}

// Secondary is the process-owned selection buffer. It holds at most one
// captured selection, is written only by the capture orchestrator and read
// only by the paste orchestrator, and is never persisted: every process
// start begins with an empty buffer.
//
// Writes replace the whole value atomically; readers take a snapshot and
// never observe a partial update.
type Secondary struct {
	mu  sync.Mutex
	val Value
	set bool
}

// NewSecondary returns an empty buffer.
func NewSecondary() *Secondary {
	return &Secondary{}
}

// Set replaces the buffer content.
func (s *Secondary) Set(text string, kind types.SelectionKind, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = Value{Text: text, Kind: kind, CapturedAt: at}
	s.set = true
}

// Snapshot returns a copy of the current value. ok is false while the
// buffer has never been set or was cleared.
func (s *Secondary) Snapshot() (val Value, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.set
}

// Clear empties the buffer.
func (s *Secondary) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = Value{}
	s.set = false
}
