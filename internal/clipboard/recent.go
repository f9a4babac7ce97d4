package clipboard

import (
	"container/ring"
	"sync"

	"github.com/selclip/selclip-daemon/internal/types"
)

// RecentLog keeps the last few captures in memory for status reporting.
// It is a fixed-size ring: the oldest entry falls off as new ones arrive.
type RecentLog struct {
	mu   sync.Mutex
	ring *ring.Ring
	size int
}

// NewRecentLog creates a log holding up to size captures.
func NewRecentLog(size int) *RecentLog {
	if size < 1 {
		size = 1
	}
	return &RecentLog{
		ring: ring.New(size),
		size: size,
	}
}

// Record appends a capture, evicting the oldest when full. It implements
// Recorder and never fails.
func (r *RecentLog) Record(rec *types.CaptureRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ring.Value = rec
	r.ring = r.ring.Next()
	return nil
}

// Last returns up to n captures, newest first.
func (r *RecentLog) Last(n int) []*types.CaptureRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.size {
		n = r.size
	}

	items := make([]*types.CaptureRecord, 0, n)
	// The ring points at the next write slot, so walking backwards visits
	// entries newest first.
	p := r.ring
	for i := 0; i < r.size && len(items) < n; i++ {
		p = p.Prev()
		if p.Value == nil {
			break
		}
		items = append(items, p.Value.(*types.CaptureRecord))
	}
	return items
}
