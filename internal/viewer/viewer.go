// Package viewer holds the image and mesh viewer widgets. Each widget has a
// pure Update step that turns an input snapshot into transform changes, and
// imgui Show methods that lay out and draw the current frame.
package viewer

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/texcomp/internal/asset"
	"github.com/Faultbox/texcomp/internal/engine/input"
	"github.com/Faultbox/texcomp/pkg/math"
)

// Viewer shows one kind of asset.
type Viewer[T asset.Asset] interface {
	// ShowViewer draws a into the remaining space of the current window and
	// applies this frame's input.
	ShowViewer(in input.Snapshot, a T)
	ShowInfo()
	ShowHelp()
}

var (
	_ Viewer[*asset.Image] = (*ImageViewer)(nil)
	_ Viewer[*asset.Mesh]  = (*ModelViewer)(nil)
)

var printer = message.NewPrinter(language.English)

// drags remembers which button drags started inside the viewer, so a drag
// keeps working after the pointer leaves the region.
type drags struct {
	owned [3]bool
}

// update returns the state of b and whether its drag belongs to region.
func (d *drags) update(in input.Snapshot, b input.Button, region math.Rect) (input.ButtonState, bool) {
	st := in.Button(b)
	if st.DragStarted {
		d.owned[b] = region.Contains(st.Origin)
	}
	owned := d.owned[b]
	if !st.Down {
		d.owned[b] = false
	}
	return st, owned && (st.Dragging || st.DragStopped)
}

// beginCanvas opens a borderless child filling the remaining space and
// returns its screen rectangle and hover state. endCanvas must follow.
func beginCanvas(id string) (math.Rect, bool, bool) {
	flags := imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsNoScrollWithMouse
	visible := imgui.BeginChildStrV(id, imgui.NewVec2(0, 0), imgui.ChildFlagsNone, flags)
	pos := imgui.CursorScreenPos()
	avail := imgui.ContentRegionAvail()
	region := math.RectFromMinSize(math.Vec2{X: pos.X, Y: pos.Y}, math.Vec2{X: avail.X, Y: avail.Y})
	return region, imgui.IsWindowHovered(), visible
}

func endCanvas() { imgui.EndChild() }

func vec2(v math.Vec2) imgui.Vec2 { return imgui.NewVec2(v.X, v.Y) }

func helpLines(title string, lines ...string) {
	imgui.Text(title)
	for _, l := range lines {
		imgui.TextDisabled("- " + l)
	}
}
