package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/texcomp/pkg/math"
)

func raw(x, y float32, buttons ...Button) Raw {
	r := Raw{Pointer: math.Vec2{X: x, Y: y}}
	for _, b := range buttons {
		r.Down[b] = true
	}
	return r
}

func TestFirstFrameHasNoDelta(t *testing.T) {
	tr := NewTracker()
	s := tr.Next(raw(100, 200))
	assert.Equal(t, math.Vec2{}, s.Delta)

	s = tr.Next(raw(110, 195))
	assert.Equal(t, math.Vec2{X: 10, Y: -5}, s.Delta)
}

func TestPressRelease(t *testing.T) {
	tr := NewTracker()
	tr.Next(raw(0, 0))

	s := tr.Next(raw(0, 0, ButtonPrimary))
	assert.True(t, s.Button(ButtonPrimary).Pressed)
	assert.True(t, s.Button(ButtonPrimary).Down)
	assert.False(t, s.Button(ButtonSecondary).Down)

	s = tr.Next(raw(0, 0, ButtonPrimary))
	assert.False(t, s.Button(ButtonPrimary).Pressed)

	s = tr.Next(raw(0, 0))
	assert.True(t, s.Button(ButtonPrimary).Released)
	assert.False(t, s.Button(ButtonPrimary).DragStopped, "a click is not a drag")
}

func TestDragLifecycle(t *testing.T) {
	tr := NewTracker()
	tr.Next(raw(10, 10))

	frames := []struct {
		in                         Raw
		started, dragging, stopped bool
	}{
		{raw(10, 10, ButtonSecondary), false, false, false},
		{raw(12, 11, ButtonSecondary), false, false, false},
		{raw(20, 10, ButtonSecondary), true, true, false},
		{raw(40, 30, ButtonSecondary), false, true, false},
		{raw(40, 30), false, false, true},
		{raw(40, 30), false, false, false},
	}
	for i, f := range frames {
		b := tr.Next(f.in).Button(ButtonSecondary)
		assert.Equal(t, f.started, b.DragStarted, "frame %d started", i)
		assert.Equal(t, f.dragging, b.Dragging, "frame %d dragging", i)
		assert.Equal(t, f.stopped, b.DragStopped, "frame %d stopped", i)
		if f.in.Down[ButtonSecondary] {
			assert.Equal(t, math.Vec2{X: 10, Y: 10}, b.Origin, "frame %d origin", i)
		}
	}
}

func TestKeysAndScroll(t *testing.T) {
	tr := NewTracker()
	r := raw(0, 0)
	r.Keys = KeyFit | KeyEscape
	r.Scroll = -50
	s := tr.Next(r)

	assert.True(t, s.Pressed(KeyFit))
	assert.True(t, s.Pressed(KeyEscape))
	assert.False(t, s.Pressed(KeyUp))
	assert.Equal(t, float32(-50), s.Scroll)
	assert.Equal(t, ButtonState{}, s.Button(Button(7)))
}

func at(r Raw, ms int) Raw {
	r.Time = time.Duration(ms) * time.Millisecond
	return r
}

func TestDoubleClick(t *testing.T) {
	tr := NewTracker()
	tr.Next(at(raw(50, 50), 0))

	s := tr.Next(at(raw(50, 50, ButtonPrimary), 10))
	assert.False(t, s.Button(ButtonPrimary).DoubleClicked)
	tr.Next(at(raw(50, 50), 60))

	s = tr.Next(at(raw(52, 51, ButtonPrimary), 200))
	assert.True(t, s.Button(ButtonPrimary).DoubleClicked)
	tr.Next(at(raw(52, 51), 250))

	s = tr.Next(at(raw(52, 51, ButtonPrimary), 300))
	assert.False(t, s.Button(ButtonPrimary).DoubleClicked, "third press starts over")
}

func TestDoubleClickLimits(t *testing.T) {
	tests := []struct {
		name   string
		second Raw
	}{
		{"too slow", at(raw(50, 50, ButtonPrimary), 500)},
		{"too far", at(raw(70, 50, ButtonPrimary), 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			tr.Next(at(raw(50, 50), 0))
			tr.Next(at(raw(50, 50, ButtonPrimary), 10))
			tr.Next(at(raw(50, 50), 50))
			s := tr.Next(tt.second)
			assert.False(t, s.Button(ButtonPrimary).DoubleClicked)
		})
	}
}

func TestDragCancelsDoubleClick(t *testing.T) {
	tr := NewTracker()
	tr.Next(at(raw(0, 0), 0))
	tr.Next(at(raw(0, 0, ButtonPrimary), 10))
	tr.Next(at(raw(10, 0, ButtonPrimary), 20))
	tr.Next(at(raw(10, 0), 30))
	s := tr.Next(at(raw(10, 0, ButtonPrimary), 100))
	assert.False(t, s.Button(ButtonPrimary).DoubleClicked)
}
