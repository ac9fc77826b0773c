package main

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 3 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastError
)

type toast struct {
	text    string
	level   toastLevel
	expires time.Time
}

// toasts is a queue of timed overlay messages, newest last.
type toasts struct {
	items []toast
	now   func() time.Time
	max   int
}

func newToasts() *toasts {
	return &toasts{now: time.Now, max: 5}
}

func (t *toasts) push(level toastLevel, text string) {
	t.items = append(t.items, toast{text: text, level: level, expires: t.now().Add(toastDuration)})
	if len(t.items) > t.max {
		t.items = t.items[len(t.items)-t.max:]
	}
}

func (t *toasts) info(text string)  { t.push(toastInfo, text) }
func (t *toasts) error(text string) { t.push(toastError, text) }

// active drops expired messages and returns the rest.
func (t *toasts) active() []toast {
	now := t.now()
	kept := t.items[:0]
	for _, it := range t.items {
		if now.Before(it.expires) {
			kept = append(kept, it)
		}
	}
	t.items = kept
	return t.items
}

// draw stacks the messages in the top-left corner of the work area.
func (t *toasts) draw(pos imgui.Vec2) {
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs
	items := t.active()
	if len(items) == 0 {
		return
	}
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Toasts", nil, flags) {
		for _, it := range items {
			if it.level == toastError {
				imgui.TextColored(imgui.NewVec4(1, 0.45, 0.45, 1), it.text)
			} else {
				imgui.Text(it.text)
			}
		}
	}
	imgui.End()
}
