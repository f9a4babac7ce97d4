package types

import (
	"testing"
	"time"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
		{ButtonOther, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "none"},
		{ActionDown, "down"},
		{ActionUp, "up"},
		{ActionMove, "move"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.action.String(); got != tt.expected {
				t.Errorf("Action.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPositionDistanceTo(t *testing.T) {
	tests := []struct {
		p1, p2   Position
		expected float64
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 5},
		{Position{10, 10}, Position{10, 3}, 7},
		{Position{-3, 0}, Position{0, 4}, 5},
	}

	for _, tt := range tests {
		if got := tt.p1.DistanceTo(tt.p2); got != tt.expected {
			t.Errorf("DistanceTo(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.expected)
		}
	}
}

func TestCaptureRecordEqual(t *testing.T) {
	a := &CaptureRecord{ID: "1", Kind: SelectionDrag, Text: "hello", CapturedAt: time.Now()}
	b := &CaptureRecord{ID: "2", Kind: SelectionDrag, Text: "hello"}
	c := &CaptureRecord{ID: "3", Kind: SelectionDouble, Text: "hello"}
	d := &CaptureRecord{ID: "4", Kind: SelectionDrag, Text: "world"}

	if !a.Equal(b) {
		t.Error("records with same kind and text should be equal")
	}
	if a.Equal(c) {
		t.Error("records with different kinds should not be equal")
	}
	if a.Equal(d) {
		t.Error("records with different text should not be equal")
	}
	if a.Equal(nil) {
		t.Error("record should not equal nil")
	}
	var e *CaptureRecord
	if !e.Equal(nil) {
		t.Error("nil records should be equal")
	}
}
