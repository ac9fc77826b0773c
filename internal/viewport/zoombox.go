package viewport

import "github.com/Faultbox/texcomp/pkg/math"

// ZoomBoxState is the phase of a zoom box selection.
type ZoomBoxState int

const (
	Idle ZoomBoxState = iota
	Dragging
)

func (s ZoomBoxState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// ZoomBox tracks a rubber-band selection that zooms the viewport on release.
// At most one selection exists at a time.
type ZoomBox struct {
	state          ZoomBoxState
	start, current math.Vec2
}

// State returns the current phase.
func (z *ZoomBox) State() ZoomBoxState { return z.state }

// Active reports whether a selection is being dragged.
func (z *ZoomBox) Active() bool { return z.state == Dragging }

// Begin starts a selection at pos. It is ignored while already dragging.
func (z *ZoomBox) Begin(pos math.Vec2) {
	if z.state == Dragging {
		return
	}
	z.state = Dragging
	z.start, z.current = pos, pos
}

// Update moves the free corner of the selection.
func (z *ZoomBox) Update(pos math.Vec2) {
	if z.state == Dragging {
		z.current = pos
	}
}

// Cancel discards the selection.
func (z *ZoomBox) Cancel() {
	z.state = Idle
}

// Rect returns the normalized selection while dragging.
func (z *ZoomBox) Rect() (math.Rect, bool) {
	if z.state != Dragging {
		return math.Rect{}, false
	}
	return math.RectFromPoints(z.start, z.current), true
}

// Finish ends the selection and zooms vp to it when it is larger than the
// viewport's minimum selection size. It reports whether the zoom was applied.
func (z *ZoomBox) Finish(vp *Viewport2D) bool {
	r, ok := z.Rect()
	z.state = Idle
	if !ok {
		return false
	}
	min := vp.Options().MinSelectSize
	if r.Width() <= min || r.Height() <= min {
		return false
	}
	vp.ZoomToRect(r)
	return true
}
