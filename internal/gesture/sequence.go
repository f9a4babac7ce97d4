package gesture

import (
	"time"

	"github.com/selclip/selclip-daemon/internal/types"
)

// clickSequence tracks consecutive clicks for double/triple click detection.
type clickSequence struct {
	// Configuration
	maxInterval time.Duration
	maxDistance float64

	// Last gesture state
	lastDownPos types.Position
	lastUpTime  time.Time
	count       int
}

func newClickSequence(maxInterval time.Duration, maxDistance float64) *clickSequence {
	return &clickSequence{
		maxInterval: maxInterval,
		maxDistance: maxDistance,
	}
}

// recordDown records a left-button press and returns the click count
// (1, 2, or 3). The count wraps back to 1 after 3: a fourth rapid click
// starts a new sequence.
func (s *clickSequence) recordDown(pos types.Position, timestamp time.Time) int {
	if s.continues(pos, timestamp) {
		s.count++
		if s.count > 3 {
			s.count = 1
		}
	} else {
		s.count = 1
	}
	s.lastDownPos = pos
	return s.count
}

// recordUp records the release that closes the current gesture. The next
// press is compared against this release time.
func (s *clickSequence) recordUp(timestamp time.Time) {
	s.lastUpTime = timestamp
}

// continues reports whether a press at pos extends the current sequence:
// it must land within maxInterval of the previous release and within
// maxDistance of the previous press position.
func (s *clickSequence) continues(pos types.Position, timestamp time.Time) bool {
	if s.count == 0 || s.lastUpTime.IsZero() {
		return false
	}

	// Negative elapsed means out-of-order timestamps; treat as a new
	// sequence rather than guessing.
	elapsed := timestamp.Sub(s.lastUpTime)
	if elapsed < 0 || elapsed > s.maxInterval {
		return false
	}

	return pos.DistanceTo(s.lastDownPos) <= s.maxDistance
}

// reset clears the sequence so the next press counts from 1.
func (s *clickSequence) reset() {
	s.count = 0
	s.lastUpTime = time.Time{}
	s.lastDownPos = types.Position{}
}
