package input

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/texcomp/pkg/math"
)

// ScrollLinePixels converts imgui's wheel notches into pixel-like scroll units.
const ScrollLinePixels = 50

var epoch = time.Now()

var keyBindings = []struct {
	key   Key
	chord imgui.Key
}{
	{KeyFit, imgui.KeyF},
	{KeyEscape, imgui.KeyEscape},
	{KeyUp, imgui.KeyUpArrow},
	{KeyDown, imgui.KeyDownArrow},
	{KeyReset, imgui.KeyR},
	{KeyScreenshot, imgui.KeyF12},
}

// ReadImGui samples the current imgui IO state. Keyboard shortcuts are
// dropped while a text field has focus.
func ReadImGui() Raw {
	io := imgui.CurrentIO()
	pos := imgui.MousePos()
	raw := Raw{
		Pointer: math.Vec2{X: pos.X, Y: pos.Y},
		Down: [buttonCount]bool{
			imgui.IsMouseDown(imgui.MouseButtonLeft),
			imgui.IsMouseDown(imgui.MouseButtonRight),
			imgui.IsMouseDown(imgui.MouseButtonMiddle),
		},
		Scroll: io.MouseWheel() * ScrollLinePixels,
		Time:   time.Since(epoch),
	}
	if io.WantTextInput() {
		return raw
	}
	for _, b := range keyBindings {
		if imgui.IsKeyChordPressed(imgui.KeyChord(b.chord)) {
			raw.Keys |= b.key
		}
	}
	return raw
}
