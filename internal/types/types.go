package types

import (
	"math"
	"time"
)

// Button identifies a mouse button in a MouseEvent.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonOther
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonOther:
		return "other"
	default:
		return "none"
	}
}

// Action is the kind of mouse state change an event reports.
type Action uint8

const (
	ActionNone Action = iota
	ActionDown
	ActionUp
	ActionMove
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	default:
		return "none"
	}
}

// Position is a pointer location in screen coordinates.
type Position struct {
	X int
	Y int
}

// DistanceTo returns the euclidean distance between two positions, in pixels.
// Drag detection compares this against the configured minimum drag distance.
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(float64(p.X-other.X), float64(p.Y-other.Y))
}

// MouseEvent is a single observation from the pointer hook. Events are
// consumed immediately by the gesture classifier and never retained beyond
// the current gesture.
type MouseEvent struct {
	Button Button
	Action Action
	Pos    Position
	Time   time.Time
}

// SelectionKind classifies how a selection candidate was produced.
type SelectionKind string

const (
	SelectionDrag   SelectionKind = "drag"
	SelectionDouble SelectionKind = "double-click"
	SelectionTriple SelectionKind = "triple-click"
)

// SelectionEvent is emitted by the gesture classifier when a left-button
// interaction looks like it produced a text selection. It is consumed once
// by the capture orchestrator.
type SelectionEvent struct {
	Kind SelectionKind
	Time time.Time
}

// CaptureRecord is one successfully captured selection as persisted in the
// capture journal. The journal is an audit trail: the secondary clipboard
// itself is volatile and always starts empty on boot.
type CaptureRecord struct {
	ID         string        `json:"id"`
	Kind       SelectionKind `json:"kind"`
	Text       string        `json:"text"`
	Hash       string        `json:"hash"`
	DeviceID   string        `json:"device_id,omitempty"`
	CapturedAt time.Time     `json:"captured_at"`
}

// Equal compares two capture records by content, ignoring ID and timestamps.
func (c *CaptureRecord) Equal(other *CaptureRecord) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Kind == other.Kind && c.Text == other.Text
}
