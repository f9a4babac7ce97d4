// Package gesture classifies raw mouse events into selection candidates.
//
// The classifier watches left-button interactions (one press-to-release
// gesture at a time) and decides whether the gesture probably selected
// text: a drag past the minimum distance, a press held past the click
// threshold, or a double/triple click. Plain short clicks produce nothing.
//
// Classification is heuristic. The daemon has no access to the focused
// application's text APIs, so it infers selection purely from timing and
// pointer travel. The thresholds in Config are the tuning knobs for that
// approximation and deliberately stay approximate; tightening them cannot
// make detection exact.
//
// # Usage
//
//	c := gesture.NewClassifier(gesture.DefaultConfig())
//	for ev := range events {
//	    if sel := c.Feed(ev); sel != nil {
//	        capture(sel)
//	    }
//	}
//
// Feed is safe for concurrent use, though the daemon drives it from a
// single dispatch goroutine.
//
// # Tie-break rules
//
// A short click that is the second or third of a multi-click sequence is
// classified by its click count even if the pointer moved a little; drag
// classification only applies when the click count is 1 or the press ran
// long. A fourth rapid click starts a new sequence.
package gesture
