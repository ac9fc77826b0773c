// Package input turns raw per-frame pointer and keyboard state into a
// Snapshot with press, release and drag edges.
package input

import (
	"time"

	"github.com/Faultbox/texcomp/pkg/math"
)

// Button identifies a mouse button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
	buttonCount
)

// Key identifies a keyboard action the viewers react to.
type Key uint32

const (
	KeyFit Key = 1 << iota
	KeyEscape
	KeyUp
	KeyDown
	KeyReset
	KeyScreenshot
)

// Has reports whether every key in other is set.
func (k Key) Has(other Key) bool { return k&other == other }

// DefaultDragThreshold is the pointer travel in pixels that turns a press into a drag.
const DefaultDragThreshold = 4

// Double-click limits: the second press must land within this time and
// distance of the first.
const (
	DefaultDoubleClickTime     = 300 * time.Millisecond
	DefaultDoubleClickDistance = 6
)

// Raw is the unprocessed input for one frame.
type Raw struct {
	Pointer math.Vec2
	Down    [buttonCount]bool
	Scroll  float32 // Vertical wheel, positive away from the user
	Keys    Key     // Keys pressed this frame
	Time    time.Duration
}

// ButtonState is the per-frame state of one button.
type ButtonState struct {
	Down     bool
	Pressed  bool
	Released bool
	// DoubleClicked is set on the second press of a double click.
	DoubleClicked bool

	DragStarted bool
	Dragging    bool
	DragStopped bool
	Origin      math.Vec2 // Pointer position at press
}

// Snapshot is the processed input for one frame.
type Snapshot struct {
	Pointer math.Vec2
	Delta   math.Vec2
	Scroll  float32
	Keys    Key
	Buttons [buttonCount]ButtonState
}

// Button returns the state of b.
func (s Snapshot) Button(b Button) ButtonState {
	if b < 0 || b >= buttonCount {
		return ButtonState{}
	}
	return s.Buttons[b]
}

// Pressed reports whether key was pressed this frame.
func (s Snapshot) Pressed(key Key) bool { return s.Keys.Has(key) }

// Tracker keeps the previous frame so it can detect edges.
type Tracker struct {
	DragThreshold       float32
	DoubleClickTime     time.Duration
	DoubleClickDistance float32

	prev      Raw
	started   bool
	origin    [buttonCount]math.Vec2
	dragging  [buttonCount]bool
	lastPress [buttonCount]time.Duration
	armed     [buttonCount]bool
}

// NewTracker returns a tracker with the default drag threshold.
func NewTracker() *Tracker {
	return &Tracker{
		DragThreshold:       DefaultDragThreshold,
		DoubleClickTime:     DefaultDoubleClickTime,
		DoubleClickDistance: DefaultDoubleClickDistance,
	}
}

// Next consumes this frame's raw input.
func (t *Tracker) Next(raw Raw) Snapshot {
	if !t.started {
		t.prev.Pointer = raw.Pointer
		t.started = true
	}
	s := Snapshot{
		Pointer: raw.Pointer,
		Delta:   raw.Pointer.Sub(t.prev.Pointer),
		Scroll:  raw.Scroll,
		Keys:    raw.Keys,
	}

	for b := Button(0); b < buttonCount; b++ {
		down, was := raw.Down[b], t.prev.Down[b]
		st := ButtonState{
			Down:     down,
			Pressed:  down && !was,
			Released: !down && was,
		}
		if st.Pressed {
			st.DoubleClicked = t.armed[b] &&
				raw.Time-t.lastPress[b] <= t.DoubleClickTime &&
				raw.Pointer.Sub(t.origin[b]).Length() <= t.DoubleClickDistance
			// A third press starts a new pair.
			t.armed[b] = !st.DoubleClicked
			t.lastPress[b] = raw.Time
			t.origin[b] = raw.Pointer
		}
		st.Origin = t.origin[b]

		switch {
		case down && !t.dragging[b]:
			if raw.Pointer.Sub(t.origin[b]).Length() >= t.DragThreshold {
				t.dragging[b] = true
				t.armed[b] = false
				st.DragStarted = true
				st.Dragging = true
			}
		case down:
			st.Dragging = true
		case t.dragging[b]:
			t.dragging[b] = false
			st.DragStopped = true
		}
		s.Buttons[b] = st
	}

	t.prev = raw
	return s
}
