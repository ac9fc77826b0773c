package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/texcomp/pkg/math"
)

func TestZoomBoxLifecycle(t *testing.T) {
	var z ZoomBox
	assert.Equal(t, Idle, z.State())
	_, ok := z.Rect()
	assert.False(t, ok)

	z.Update(math.Vec2{X: 5, Y: 5})
	assert.False(t, z.Active(), "update while idle must not start a drag")

	z.Begin(math.Vec2{X: 300, Y: 200})
	z.Update(math.Vec2{X: 100, Y: 250})
	r, ok := z.Rect()
	assert.True(t, ok)
	assert.Equal(t, math.Rect{Min: math.Vec2{X: 100, Y: 200}, Max: math.Vec2{X: 300, Y: 250}}, r)

	z.Begin(math.Vec2{X: 0, Y: 0})
	r2, _ := z.Rect()
	assert.Equal(t, r, r2, "begin while dragging is ignored")
}

func TestZoomBoxCancel(t *testing.T) {
	v := newViewport(math.Vec2{X: 800, Y: 600}, math.Vec2{X: 400, Y: 200})
	var z ZoomBox
	z.Begin(math.Vec2{X: 100, Y: 100})
	z.Update(math.Vec2{X: 400, Y: 400})
	z.Cancel()

	assert.Equal(t, Idle, z.State())
	assert.False(t, z.Finish(v))
	assert.Equal(t, float32(1), v.Zoom())
}

func TestZoomBoxBelowThreshold(t *testing.T) {
	v := newViewport(math.Vec2{X: 800, Y: 600}, math.Vec2{X: 400, Y: 200})
	var z ZoomBox
	z.Begin(math.Vec2{X: 100, Y: 100})
	z.Update(math.Vec2{X: 110, Y: 102})

	assert.False(t, z.Finish(v))
	assert.Equal(t, Idle, z.State())
	assert.Equal(t, float32(1), v.Zoom())
	assert.Equal(t, math.Vec2{}, v.PanOffset())
}

func TestZoomBoxApplies(t *testing.T) {
	v := newViewport(math.Vec2{X: 800, Y: 600}, math.Vec2{X: 400, Y: 200})
	v.FitToViewport()
	var z ZoomBox
	z.Begin(math.Vec2{X: 400, Y: 300})
	z.Update(math.Vec2{X: 200, Y: 200})

	assert.True(t, z.Finish(v))
	assert.Equal(t, Idle, z.State())
	assert.InDelta(t, 8, v.Zoom(), 1e-4)
}

func TestZoomBoxStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
}
