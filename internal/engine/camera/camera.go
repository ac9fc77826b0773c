// Package camera provides the orbit camera rig used by the mesh viewer.
//
// The rig is a stack of three stages: a pivot position, a yaw/pitch rotation
// around the pivot, and an arm offset in camera-local space. Each frame Update
// collapses the stages into a rigid Transform.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/texcomp/pkg/math"
)

// Options configures an OrbitCamera.
type Options struct {
	Distance         float32 // Initial arm length
	DistanceMin      float32
	DistanceMax      float32
	OrbitSensitivity float32 // Degrees per pixel of drag
	PanSpeed         float32 // World units per pixel of drag
	ZoomSpeed        float32 // World units per scroll unit
	PitchLimit       float32 // Degrees
}

// DefaultOptions returns the stock rig settings.
func DefaultOptions() Options {
	return Options{
		Distance:         3,
		DistanceMin:      1,
		DistanceMax:      10,
		OrbitSensitivity: 0.3,
		PanSpeed:         0.001,
		ZoomSpeed:        0.01,
		PitchLimit:       89,
	}
}

// Transform is the rigid pose produced by the rig.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
}

// Right returns the camera's local +X axis in world space.
func (t Transform) Right() math.Vec3 { return t.Rotation.Rotate(math.Vec3{X: 1}) }

// Up returns the camera's local +Y axis in world space.
func (t Transform) Up() math.Vec3 { return t.Rotation.Rotate(math.Vec3{Y: 1}) }

// Forward returns the viewing direction (local -Z) in world space.
func (t Transform) Forward() math.Vec3 { return t.Rotation.Rotate(math.Vec3{Z: -1}) }

// Matrix returns translation(position) * rotation.
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position).Mul(t.Rotation.ToMat4())
}

// OrbitCamera orbits a pivot point.
type OrbitCamera struct {
	Pivot math.Vec3
	Yaw   float32 // Degrees around world Y
	Pitch float32 // Degrees around local X
	Arm   math.Vec3

	opts      Options
	transform Transform
}

// NewOrbitCamera creates a camera looking down -Z at the origin from opts.Distance.
func NewOrbitCamera(opts Options) *OrbitCamera {
	c := &OrbitCamera{opts: opts}
	c.Reset()
	return c
}

// Reset returns the rig to its initial pose.
func (c *OrbitCamera) Reset() {
	c.Pivot = math.Vec3{}
	c.Yaw = 0
	c.Pitch = 0
	c.Arm = math.Vec3{Z: clamp(c.opts.Distance, c.opts.DistanceMin, c.opts.DistanceMax)}
	c.Update(0)
}

// Options returns the rig settings.
func (c *OrbitCamera) Options() Options { return c.opts }

// Orbit rotates the view by a drag delta in pixels. Dragging right turns the view left.
func (c *OrbitCamera) Orbit(delta math.Vec2) {
	c.Yaw -= delta.X * c.opts.OrbitSensitivity
	c.Pitch = clamp(c.Pitch-delta.Y*c.opts.OrbitSensitivity, -c.opts.PitchLimit, c.opts.PitchLimit)
}

// Pan moves the pivot in the screen plane so that content follows the cursor.
// The screen axes come from the last transform computed by Update.
func (c *OrbitCamera) Pan(delta math.Vec2) {
	right := c.transform.Right().Scale(-delta.X * c.opts.PanSpeed)
	up := c.transform.Up().Scale(delta.Y * c.opts.PanSpeed)
	c.Pivot = c.Pivot.Add(right).Add(up)
}

// Zoom shortens the arm by scroll*ZoomSpeed, keeping its direction.
func (c *OrbitCamera) Zoom(scroll float32) {
	dir := c.Arm.Normalize()
	if dir == (math.Vec3{}) {
		dir = math.Vec3{Z: 1}
	}
	dist := clamp(c.Arm.Length()-scroll*c.opts.ZoomSpeed, c.opts.DistanceMin, c.opts.DistanceMax)
	c.Arm = dir.Scale(dist)
}

// Distance returns the current arm length.
func (c *OrbitCamera) Distance() float32 { return c.Arm.Length() }

// Update recomputes the final transform. dt is unused; the rig has no damping.
func (c *OrbitCamera) Update(dt float32) {
	_ = dt
	yaw := math.QuatFromAxisAngle(math.Vec3{Y: 1}, math.Radians(c.Yaw))
	pitch := math.QuatFromAxisAngle(math.Vec3{X: 1}, math.Radians(c.Pitch))
	rot := yaw.Mul(pitch)
	c.transform = Transform{
		Position: c.Pivot.Add(rot.Rotate(c.Arm)),
		Rotation: rot,
	}
}

// Transform returns the transform from the last Update.
func (c *OrbitCamera) Transform() Transform { return c.transform }

// FitToBounds centers the pivot on an axis-aligned box and backs the arm off
// far enough to see it, within the distance bounds.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Pivot = min.Add(max).Scale(0.5)
	radius := max.Sub(min).Length() / 2
	// Distance at which a sphere of this radius fills a 45 degree frustum.
	dist := radius / math32.Sin(math.Radians(22.5))
	c.Arm = math.Vec3{Z: clamp(dist, c.opts.DistanceMin, c.opts.DistanceMax)}
	c.Yaw, c.Pitch = 0, 0
	c.Update(0)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
