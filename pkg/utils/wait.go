package utils

import (
	"time"

	"github.com/benbjohnson/clock"
)

// WaitUntil sleeps interval, evaluates pred, and repeats until pred returns
// true or the total elapsed time exceeds timeout. It reports whether pred was
// satisfied. The first evaluation happens after one interval, not
// immediately: clipboard polling gives the gesture a chance to land before
// the first read.
func WaitUntil(clk clock.Clock, interval, timeout time.Duration, pred func() bool) bool {
	if interval <= 0 {
		interval = time.Millisecond // zero interval would busy-spin
	}
	deadline := clk.Now().Add(timeout)
	for clk.Now().Before(deadline) {
		clk.Sleep(interval)
		if pred() {
			return true
		}
	}
	return false
}
