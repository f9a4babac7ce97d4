package gesture

import (
	"sync"
	"time"

	"github.com/selclip/selclip-daemon/internal/types"
)

// State is the classifier's position within a left-button gesture.
type State uint8

const (
	// StateIdle means no left button is held.
	StateIdle State = iota
	// StatePressed means a left press has been seen and the release is
	// pending. Classification happens on release, after which the
	// classifier returns to StateIdle immediately.
	StatePressed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StatePressed:
		return "pressed"
	default:
		return "idle"
	}
}

// Config tunes the selection heuristics.
type Config struct {
	// MinDragDistance is the pointer travel, in pixels, beyond which a
	// gesture counts as a drag selection.
	MinDragDistance float64

	// MaxClickDuration is the longest press still considered a click.
	// A press held longer counts as a drag even without movement.
	MaxClickDuration time.Duration

	// DoubleClickMaxInterval is the window after a release within which
	// the next press continues a multi-click sequence.
	DoubleClickMaxInterval time.Duration

	// DoubleClickMaxDistance is how far apart, in pixels, consecutive
	// presses may land and still count as a multi-click.
	DoubleClickMaxDistance float64
}

// DefaultConfig returns the stock tuning values.
func DefaultConfig() Config {
	return Config{
		MinDragDistance:        5,
		MaxClickDuration:       150 * time.Millisecond,
		DoubleClickMaxInterval: 350 * time.Millisecond,
		DoubleClickMaxDistance: 5,
	}
}

// Classifier consumes left-button mouse events and emits a selection
// candidate when a gesture looks like it selected text. Time is taken from
// the event timestamps, never from a clock, so transitions are pure and
// replayable.
type Classifier struct {
	mu  sync.Mutex
	cfg Config

	state    State
	downTime time.Time
	downPos  types.Position
	dragging bool

	seq *clickSequence
}

// NewClassifier creates a classifier with the given tuning.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{
		cfg: cfg,
		seq: newClickSequence(cfg.DoubleClickMaxInterval, cfg.DoubleClickMaxDistance),
	}
}

// Feed processes one mouse event and returns a selection candidate, or nil
// when the event completed no selection-like gesture. Only left-button
// events affect classification; everything else is ignored.
func (c *Classifier) Feed(ev types.MouseEvent) *types.SelectionEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Action {
	case types.ActionDown:
		if ev.Button == types.ButtonLeft {
			c.handleDown(ev)
		}
	case types.ActionMove:
		c.handleMove(ev)
	case types.ActionUp:
		if ev.Button == types.ButtonLeft {
			return c.handleUp(ev)
		}
	}
	return nil
}

// State returns the classifier's current state.
func (c *Classifier) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset drops any half-open gesture and clears the click sequence.
func (c *Classifier) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toIdle()
	c.seq.reset()
}

func (c *Classifier) handleDown(ev types.MouseEvent) {
	if c.state == StatePressed {
		// A second press without an intervening release means events
		// were lost. Drop the half-open gesture and the click sequence;
		// this press starts over.
		c.toIdle()
		c.seq.reset()
	}

	c.seq.recordDown(ev.Pos, ev.Time)
	c.state = StatePressed
	c.downTime = ev.Time
	c.downPos = ev.Pos
	c.dragging = false
}

func (c *Classifier) handleMove(ev types.MouseEvent) {
	if c.state != StatePressed || c.dragging {
		return
	}
	if ev.Pos.DistanceTo(c.downPos) >= c.cfg.MinDragDistance {
		c.dragging = true
	}
}

// handleUp classifies the completed gesture. Short clicks with a click
// count of 2 or 3 are multi-click selections regardless of small pointer
// movement; otherwise a drag flag or an overlong press makes it a drag, and
// a plain short click emits nothing.
func (c *Classifier) handleUp(ev types.MouseEvent) *types.SelectionEvent {
	if c.state != StatePressed {
		// Release without a matching press. Not an error, but the stream
		// is unreliable here, so start the sequence over too.
		c.toIdle()
		c.seq.reset()
		return nil
	}

	duration := ev.Time.Sub(c.downTime)
	if duration < 0 {
		// Out-of-order timestamps. Drop the gesture.
		c.toIdle()
		c.seq.reset()
		return nil
	}

	// The hook may deliver no move events for a fast drag; the release
	// position still reveals the travel.
	if !c.dragging && ev.Pos.DistanceTo(c.downPos) >= c.cfg.MinDragDistance {
		c.dragging = true
	}

	dragging := c.dragging
	count := c.seq.count
	c.seq.recordUp(ev.Time)
	c.toIdle()

	shortClick := duration <= c.cfg.MaxClickDuration
	switch {
	case shortClick && count == 2:
		return &types.SelectionEvent{Kind: types.SelectionDouble, Time: ev.Time}
	case shortClick && count >= 3:
		return &types.SelectionEvent{Kind: types.SelectionTriple, Time: ev.Time}
	case dragging || !shortClick:
		return &types.SelectionEvent{Kind: types.SelectionDrag, Time: ev.Time}
	default:
		return nil
	}
}

func (c *Classifier) toIdle() {
	c.state = StateIdle
	c.downTime = time.Time{}
	c.downPos = types.Position{}
	c.dragging = false
}
