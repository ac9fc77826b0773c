package viewer

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/texcomp/internal/asset"
	"github.com/Faultbox/texcomp/internal/engine/camera"
	"github.com/Faultbox/texcomp/internal/engine/debug"
	"github.com/Faultbox/texcomp/internal/engine/input"
	"github.com/Faultbox/texcomp/internal/engine/paint"
	"github.com/Faultbox/texcomp/internal/engine/picking"
	"github.com/Faultbox/texcomp/internal/engine/render"
	"github.com/Faultbox/texcomp/pkg/math"
)

// frameTime is the step passed to the camera rig each frame.
const frameTime = 1.0 / 60

// ModelViewer orbits a mesh drawn through a paint session.
type ModelViewer struct {
	cam     *camera.OrbitCamera
	drags   drags
	host    *paint.Host
	session paint.SessionID

	current *asset.Mesh
}

// NewModelViewer creates a viewer painting into session of host.
func NewModelViewer(opts camera.Options, host *paint.Host, session paint.SessionID) *ModelViewer {
	return &ModelViewer{
		cam:     camera.NewOrbitCamera(opts),
		host:    host,
		session: session,
	}
}

// Camera exposes the rig.
func (v *ModelViewer) Camera() *camera.OrbitCamera { return v.cam }

// Session returns the paint session the viewer draws into.
func (v *ModelViewer) Session() paint.SessionID { return v.session }

// ResetView frames the current mesh, or restores the default pose without one.
func (v *ModelViewer) ResetView() {
	v.cam.Reset()
	if v.current != nil && v.current.VertexCount() > 0 {
		v.cam.FitToBounds(v.current.Bounds())
	}
}

// Update applies one frame of input and returns what to draw.
//
// A primary drag orbits, a secondary or middle drag pans, scroll zooms and
// R or F frames the mesh again. Double-clicking the mesh moves the pivot to
// the point under the pointer.
func (v *ModelViewer) Update(mesh *asset.Mesh, in input.Snapshot, region math.Rect, hovered bool) render.Frame {
	if mesh != v.current {
		v.current = mesh
		v.ResetView()
	}

	hovered = hovered && region.Contains(in.Pointer)
	if hovered && (in.Pressed(input.KeyReset) || in.Pressed(input.KeyFit)) {
		v.ResetView()
	}
	if st, ok := v.drags.update(in, input.ButtonPrimary, region); ok && st.Dragging {
		v.cam.Orbit(in.Delta)
	}
	// Pan uses the axes of the previous transform, so refresh it first.
	v.cam.Update(frameTime)
	if hovered && mesh != nil && in.Button(input.ButtonPrimary).DoubleClicked {
		v.focus(mesh, in.Pointer, region)
	}
	for _, b := range []input.Button{input.ButtonSecondary, input.ButtonMiddle} {
		if st, ok := v.drags.update(in, b, region); ok && st.Dragging {
			v.cam.Pan(in.Delta)
		}
	}
	if hovered && in.Scroll != 0 {
		v.cam.Zoom(in.Scroll)
	}
	v.cam.Update(frameTime)

	var aspect float32
	if !region.Empty() {
		aspect = region.Width() / region.Height()
	}
	return render.Frame{
		Mesh:     mesh,
		Aspect:   aspect,
		Camera:   v.cam.Transform(),
		Viewport: v.session,
	}
}

// focus moves the pivot to the mesh surface under p.
func (v *ModelViewer) focus(mesh *asset.Mesh, p math.Vec2, region math.Rect) bool {
	if region.Empty() {
		return false
	}
	inv := render.ViewProj(region.Width()/region.Height(), v.cam.Transform()).Inverse()
	hit, ok := picking.Pick(picking.ScreenToRay(p, region, inv), mesh)
	if !ok {
		return false
	}
	v.cam.Pivot = hit.Point
	return true
}

// ShowViewer registers the paint callback for mesh and shows its target.
func (v *ModelViewer) ShowViewer(in input.Snapshot, mesh *asset.Mesh) {
	region, hovered, visible := beginCanvas("##model")
	defer endCanvas()
	frame := v.Update(mesh, in, region, hovered)
	if !visible {
		return
	}
	if mesh == nil {
		imgui.TextDisabled("No mesh selected")
		return
	}
	if err := v.host.Err(v.session); err != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), "Rendering failed:")
		imgui.TextWrapped(err.Error())
		if imgui.Button("Retry") {
			v.host.Reset(v.session)
		}
		return
	}
	tex, ok := v.host.Add(v.session, region, render.Callback{Frame: frame})
	if !ok {
		return
	}
	// Render targets are stored bottom-up.
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(tex))
	imgui.ImageV(*texRef, vec2(region.Size()), imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
}

// Screenshot saves the last rendered frame.
func (v *ModelViewer) Screenshot(shots *debug.Screenshots) (string, error) {
	target, ok := v.host.Target(v.session)
	if !ok {
		return "", fmt.Errorf("nothing rendered yet")
	}
	w, h := target.Size()
	return shots.CapturePixels(target.ReadPixels(), w, h)
}

// ShowInfo shows mesh statistics and the camera state.
func (v *ModelViewer) ShowInfo() {
	if v.current == nil {
		imgui.TextDisabled("No mesh")
		return
	}
	imgui.Text(printer.Sprintf("Vertices: %d", v.current.VertexCount()))
	imgui.Text(printer.Sprintf("Triangles: %d", v.current.TriangleCount()))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Distance: %.2f", v.cam.Distance()))
	imgui.Text(fmt.Sprintf("Yaw: %.1f  Pitch: %.1f", v.cam.Yaw, v.cam.Pitch))
	if imgui.ButtonV("Reset View", imgui.NewVec2(-1, 0)) {
		v.ResetView()
	}
}

// ShowHelp lists the controls.
func (v *ModelViewer) ShowHelp() {
	helpLines("Model Viewer Help:",
		"Left click and drag to orbit",
		"Right or middle click and drag to pan",
		"Scroll to zoom in/out",
		"Double-click the mesh to orbit around that point",
		"Press R or F to reset the view",
		"Press F12 to save a screenshot",
	)
}
