// Package viewport maps image pixel space onto a screen rectangle and
// implements pan, anchored zoom, fit and zoom-to-region for the image viewer.
package viewport

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/texcomp/pkg/math"
)

// Options bounds and tunes a Viewport2D.
type Options struct {
	ZoomMin           float32
	ZoomMax           float32
	ScrollSensitivity float32 // Zoom factor per scroll unit
	MinSelectSize     float32 // Pixels; smaller zoom boxes are discarded
}

// DefaultOptions returns the stock viewport settings.
func DefaultOptions() Options {
	return Options{
		ZoomMin:           0.01,
		ZoomMax:           100,
		ScrollSensitivity: 0.0015,
		MinSelectSize:     5,
	}
}

// Viewport2D holds the transform for one displayed image. Zoom is always kept
// inside [ZoomMin, ZoomMax].
type Viewport2D struct {
	opts    Options
	zoom    float32
	pan     math.Vec2
	content math.Vec2
	rect    math.Rect
}

// New returns a viewport at 100% with no pan.
func New(opts Options) *Viewport2D {
	if opts.ZoomMin <= 0 {
		opts.ZoomMin = DefaultOptions().ZoomMin
	}
	if opts.ZoomMax < opts.ZoomMin {
		opts.ZoomMax = opts.ZoomMin
	}
	v := &Viewport2D{opts: opts}
	v.Reset()
	return v
}

// Reset restores 100% zoom and zero pan.
func (v *Viewport2D) Reset() {
	v.zoom = v.clampZoom(1)
	v.pan = math.Vec2{}
}

// Options returns the viewport settings.
func (v *Viewport2D) Options() Options { return v.opts }

// SetViewRect updates the screen rectangle the image is drawn into.
func (v *Viewport2D) SetViewRect(r math.Rect) { v.rect = r }

// ViewRect returns the screen rectangle.
func (v *Viewport2D) ViewRect() math.Rect { return v.rect }

// SetContentSize updates the image size in pixels.
func (v *Viewport2D) SetContentSize(size math.Vec2) { v.content = size }

// ContentSize returns the image size in pixels.
func (v *Viewport2D) ContentSize() math.Vec2 { return v.content }

// Zoom returns the current scale factor.
func (v *Viewport2D) Zoom() float32 { return v.zoom }

// SetZoom sets the scale factor around the viewport center.
func (v *Viewport2D) SetZoom(z float32) {
	if z <= 0 || !finite(z) {
		return
	}
	v.zoom = v.clampZoom(z)
}

// ZoomPercent returns the zoom as a percentage.
func (v *Viewport2D) ZoomPercent() float32 { return v.zoom * 100 }

// PanOffset returns the offset of the image center from the viewport center.
func (v *Viewport2D) PanOffset() math.Vec2 { return v.pan }

// SetPanOffset replaces the pan offset.
func (v *Viewport2D) SetPanOffset(p math.Vec2) {
	if p.IsFinite() {
		v.pan = p
	}
}

// Pan moves the image by delta screen pixels. Panning is unbounded.
func (v *Viewport2D) Pan(delta math.Vec2) {
	if delta.IsFinite() {
		v.pan = v.pan.Add(delta)
	}
}

// ScrollFactor converts a scroll amount into a zoom factor.
func (v *Viewport2D) ScrollFactor(scroll float32) float32 {
	return 1 + scroll*v.opts.ScrollSensitivity
}

// ZoomAt multiplies the zoom by factor while keeping the content point under
// anchor fixed on screen. When the bounds clip the zoom the anchor still holds
// for the factor actually applied.
func (v *Viewport2D) ZoomAt(factor float32, anchor math.Vec2) {
	if factor <= 0 || !finite(factor) || !anchor.IsFinite() {
		return
	}
	next := v.clampZoom(v.zoom * factor)
	applied := next / v.zoom
	rel := anchor.Sub(v.rect.Center())
	v.pan = v.pan.Sub(rel).Scale(applied).Add(rel)
	v.zoom = next
}

// ZoomToRect zooms so that the image region under the screen rectangle r fills
// the viewport, centered. Rectangles not larger than MinSelectSize on both
// axes are ignored.
func (v *Viewport2D) ZoomToRect(r math.Rect) {
	r = math.RectFromPoints(r.Min, r.Max)
	if r.Width() <= v.opts.MinSelectSize || r.Height() <= v.opts.MinSelectSize {
		return
	}
	if v.degenerate() {
		return
	}
	lo := v.ScreenToContent(r.Min)
	hi := v.ScreenToContent(r.Max)
	size := hi.Sub(lo)
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	view := v.rect.Size()
	v.zoom = v.clampZoom(math32.Min(view.X/size.X, view.Y/size.Y))
	center := lo.Add(hi).Scale(0.5)
	v.pan = center.Sub(v.content.Scale(0.5)).Scale(-v.zoom)
}

// FitToViewport scales the image to fit inside the viewport and centers it.
func (v *Viewport2D) FitToViewport() {
	if v.degenerate() {
		return
	}
	view := v.rect.Size()
	v.zoom = v.clampZoom(math32.Min(view.X/v.content.X, view.Y/v.content.Y))
	v.pan = math.Vec2{}
}

// ImageRect returns the screen rectangle the image occupies. Drawing and hit
// testing both go through it.
func (v *Viewport2D) ImageRect() math.Rect {
	return math.RectFromCenterSize(v.rect.Center().Add(v.pan), v.content.Scale(v.zoom))
}

// ScreenToContent maps a screen point into image pixel coordinates.
func (v *Viewport2D) ScreenToContent(p math.Vec2) math.Vec2 {
	img := v.ImageRect()
	if img.Empty() {
		return math.Vec2{}
	}
	return p.Sub(img.Min).Div(img.Size()).Mul(v.content)
}

// ContentToScreen maps an image pixel coordinate onto the screen.
func (v *Viewport2D) ContentToScreen(p math.Vec2) math.Vec2 {
	img := v.ImageRect()
	if v.content.X <= 0 || v.content.Y <= 0 {
		return img.Center()
	}
	return img.Min.Add(p.Div(v.content).Mul(img.Size()))
}

func (v *Viewport2D) degenerate() bool {
	return v.content.X <= 0 || v.content.Y <= 0 || v.rect.Empty()
}

func (v *Viewport2D) clampZoom(z float32) float32 {
	return math32.Max(v.opts.ZoomMin, math32.Min(v.opts.ZoomMax, z))
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
