package math

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Vec2
}

// RectFromCenterSize builds a rectangle centered on center.
func RectFromCenterSize(center, size Vec2) Rect {
	half := size.Scale(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// RectFromMinSize builds a rectangle from its top-left corner.
func RectFromMinSize(min, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// RectFromPoints returns the normalized rectangle spanning a and b.
func RectFromPoints(a, b Vec2) Rect {
	return Rect{Min: a.Min(b), Max: a.Max(b)}
}

// Width returns Max.X - Min.X.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns Max.Y - Min.Y.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 { return r.Max.Sub(r.Min) }

// Center returns the midpoint.
func (r Rect) Center() Vec2 { return r.Min.Add(r.Max).Scale(0.5) }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersect returns the overlap of r and other. The result may be empty.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{Min: r.Min.Max(other.Min), Max: r.Max.Min(other.Max)}
}
