package viewer

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/texcomp/internal/asset"
	"github.com/Faultbox/texcomp/internal/engine/input"
	"github.com/Faultbox/texcomp/internal/engine/texture"
	"github.com/Faultbox/texcomp/internal/logger"
	"github.com/Faultbox/texcomp/internal/viewport"
	"github.com/Faultbox/texcomp/pkg/math"
)

var (
	zoomBoxFill   = imgui.NewVec4(100.0/255, 150.0/255, 1, 50.0/255)
	zoomBoxBorder = imgui.NewVec4(100.0/255, 150.0/255, 1, 1)
	checkerDark   = imgui.NewVec4(0.50, 0.50, 0.50, 1)
	checkerLight  = imgui.NewVec4(0.63, 0.63, 0.63, 1)
)

// ImageViewer pans and zooms one image at a time.
type ImageViewer struct {
	vp       *viewport.Viewport2D
	box      viewport.ZoomBox
	drags    drags
	filter   texture.Filter
	uploader asset.TextureUploader

	current *asset.Image
	texErr  error
}

// NewImageViewer creates a viewer uploading textures through up.
func NewImageViewer(opts viewport.Options, filter texture.Filter, up asset.TextureUploader) *ImageViewer {
	return &ImageViewer{vp: viewport.New(opts), filter: filter, uploader: up}
}

// Viewport exposes the transform of the current image.
func (v *ImageViewer) Viewport() *viewport.Viewport2D { return v.vp }

// ZoomBox exposes the zoom selection.
func (v *ImageViewer) ZoomBox() *viewport.ZoomBox { return &v.box }

// Filter returns the sampling mode used to draw.
func (v *ImageViewer) Filter() texture.Filter { return v.filter }

// SetFilter changes the sampling mode.
func (v *ImageViewer) SetFilter(f texture.Filter) {
	v.filter = f
	v.texErr = nil
}

// Update applies one frame of input. A different image than last frame
// starts from 100% zoom and no pan.
//
// Scroll zooms around the pointer, a primary drag pans, a secondary drag
// selects a zoom box (Escape cancels it) and F fits the image.
func (v *ImageViewer) Update(img *asset.Image, in input.Snapshot, region math.Rect, hovered bool) {
	if img != v.current {
		v.current = img
		v.vp.Reset()
		v.box.Cancel()
		v.texErr = nil
	}
	v.vp.SetViewRect(region)
	if img == nil {
		return
	}
	v.vp.SetContentSize(img.Size())

	hovered = hovered && region.Contains(in.Pointer)
	if hovered && in.Pressed(input.KeyFit) {
		v.vp.FitToViewport()
	}
	if hovered && in.Scroll != 0 {
		v.vp.ZoomAt(v.vp.ScrollFactor(in.Scroll), in.Pointer)
	}

	if st, ok := v.drags.update(in, input.ButtonPrimary, region); ok && st.Dragging {
		v.vp.Pan(in.Delta)
	}

	st, ok := v.drags.update(in, input.ButtonSecondary, region)
	switch {
	case ok && st.DragStarted:
		v.box.Begin(st.Origin)
		v.box.Update(in.Pointer)
	case ok && st.Dragging:
		v.box.Update(in.Pointer)
	}
	if v.box.Active() && in.Pressed(input.KeyEscape) {
		v.box.Cancel()
	}
	if ok && st.DragStopped && v.box.Active() {
		v.box.Update(in.Pointer)
		v.box.Finish(v.vp)
	}
}

// ShowViewer draws img with the checker background and the zoom box.
func (v *ImageViewer) ShowViewer(in input.Snapshot, img *asset.Image) {
	region, hovered, visible := beginCanvas("##image")
	defer endCanvas()
	v.Update(img, in, region, hovered)
	if !visible {
		return
	}
	if img == nil {
		imgui.TextDisabled("No image selected")
		return
	}

	tex, err := img.Texture(v.uploader, v.filter)
	if err != nil {
		if v.texErr == nil {
			logger.Error("texture upload failed", zap.String("asset", img.Name()), zap.Error(err))
		}
		v.texErr = err
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), fmt.Sprintf("Failed to upload %s: %v", img.Name(), err))
		return
	}

	dl := imgui.WindowDrawList()
	rect := v.vp.ImageRect()
	for _, c := range checkerboard(rect.Intersect(region), checkerSize) {
		col := checkerLight
		if c.dark {
			col = checkerDark
		}
		dl.AddRectFilledV(vec2(c.rect.Min), vec2(c.rect.Max), imgui.ColorU32Vec4(col), 0, 0)
	}

	imgui.SetCursorScreenPos(vec2(rect.Min))
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(tex))
	imgui.ImageV(*texRef, vec2(rect.Size()), imgui.NewVec2(0, 0), imgui.NewVec2(1, 1))

	if r, ok := v.box.Rect(); ok {
		dl.AddRectFilledV(vec2(r.Min), vec2(r.Max), imgui.ColorU32Vec4(zoomBoxFill), 0, 0)
		dl.AddRectV(vec2(r.Min), vec2(r.Max), imgui.ColorU32Vec4(zoomBoxBorder), 0, 0, 2)
	}
}

// ShowInfo shows the image size, the zoom and the filter switch.
func (v *ImageViewer) ShowInfo() {
	if v.current == nil {
		imgui.TextDisabled("No image")
		return
	}
	size := v.current.Size()
	imgui.Text(printer.Sprintf("(%d, %d) [%.2f%%]", int(size.X), int(size.Y), v.vp.ZoomPercent()))

	imgui.Text("Interpolation:")
	for _, f := range texture.Filters {
		imgui.SameLine()
		if imgui.SelectableBoolV(f.String(), v.filter == f, 0, imgui.NewVec2(60, 0)) {
			v.SetFilter(f)
		}
	}
	if imgui.Button("Fit") {
		v.vp.FitToViewport()
	}
	imgui.SameLine()
	if imgui.Button("100%") {
		v.vp.Reset()
	}
}

// ShowHelp lists the controls.
func (v *ImageViewer) ShowHelp() {
	helpLines("Image Viewer Help:",
		"Scroll to zoom in/out",
		"Left click and drag to pan the image",
		"Right click and drag to select zoom area",
		"Escape cancels the selection",
		"Press F to fit image to frame",
	)
}
