// Package picking casts rays from the viewport into a mesh.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/texcomp/pkg/math"
)

// parallelEpsilon rejects rays nearly parallel to a triangle's plane.
const parallelEpsilon = 1e-7

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 { return r.Origin.Add(r.Direction.Scale(t)) }

// ScreenToRay unprojects a screen point inside region through invViewProj.
// The ray starts on the near plane.
func ScreenToRay(p math.Vec2, region math.Rect, invViewProj math.Mat4) Ray {
	ndcX := 2*(p.X-region.Min.X)/region.Width() - 1
	ndcY := 1 - 2*(p.Y-region.Min.Y)/region.Height()

	near := invViewProj.MulPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.MulPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectAABB returns the entry distance into the box, or the exit
// distance when the origin is inside it.
func (r Ray) IntersectAABB(min, max math.Vec3) (float32, bool) {
	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	tmin, tmax := float32(-math32.MaxFloat32), float32(math32.MaxFloat32)
	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}
	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to triangle abc. Both faces count.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
