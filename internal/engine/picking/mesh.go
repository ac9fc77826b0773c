package picking

import "github.com/Faultbox/texcomp/pkg/math"

// Surface is indexed triangle geometry with precomputed bounds.
type Surface interface {
	Positions() [][3]float32
	Indices() []uint32
	Bounds() (min, max math.Vec3)
}

// Hit is the nearest surface point along a ray.
type Hit struct {
	Point    math.Vec3
	Distance float32
	Triangle int
}

// Pick returns the closest triangle the ray hits. Triangles referencing
// out-of-range vertices are skipped.
func Pick(r Ray, s Surface) (Hit, bool) {
	min, max := s.Bounds()
	if _, ok := r.IntersectAABB(min, max); !ok {
		return Hit{}, false
	}

	positions := s.Positions()
	indices := s.Indices()
	best := Hit{Triangle: -1}
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		if ia >= len(positions) || ib >= len(positions) || ic >= len(positions) {
			continue
		}
		t, ok := r.IntersectTriangle(vec3(positions[ia]), vec3(positions[ib]), vec3(positions[ic]))
		if ok && (best.Triangle < 0 || t < best.Distance) {
			best = Hit{Distance: t, Triangle: i / 3}
		}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}

func vec3(p [3]float32) math.Vec3 { return math.Vec3{X: p[0], Y: p[1], Z: p[2]} }
