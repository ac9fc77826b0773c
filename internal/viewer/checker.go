package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/texcomp/pkg/math"
)

// checkerSize is the edge of one background square in pixels.
const checkerSize = 16

type checkerCell struct {
	rect math.Rect
	dark bool
}

// checkerboard returns the squares of a screen-aligned checker pattern that
// cover area, clipped to it.
func checkerboard(area math.Rect, size float32) []checkerCell {
	if area.Empty() || size <= 0 {
		return nil
	}
	x0 := int(math32.Floor(area.Min.X / size))
	x1 := int(math32.Ceil(area.Max.X / size))
	y0 := int(math32.Floor(area.Min.Y / size))
	y1 := int(math32.Ceil(area.Max.Y / size))
	cells := make([]checkerCell, 0, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sq := math.RectFromMinSize(
				math.Vec2{X: float32(x) * size, Y: float32(y) * size},
				math.Vec2{X: size, Y: size})
			cells = append(cells, checkerCell{rect: sq.Intersect(area), dark: (x+y)&1 == 0})
		}
	}
	return cells
}
