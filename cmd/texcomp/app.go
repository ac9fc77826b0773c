package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/texcomp/internal/asset"
	"github.com/Faultbox/texcomp/internal/config"
	"github.com/Faultbox/texcomp/internal/engine/debug"
	"github.com/Faultbox/texcomp/internal/engine/gpu"
	"github.com/Faultbox/texcomp/internal/engine/input"
	"github.com/Faultbox/texcomp/internal/engine/paint"
	"github.com/Faultbox/texcomp/internal/engine/texture"
	"github.com/Faultbox/texcomp/internal/logger"
	"github.com/Faultbox/texcomp/internal/viewer"
)

// Layout dimensions in pixels.
const (
	sidebarWidth    = 240
	infoPanelWidth  = 280
	statusBarHeight = 30
)

// modelSession is the paint session of the mesh viewer.
const modelSession paint.SessionID = 1

// App is the viewer application.
type App struct {
	cfg     *config.Config
	cfgPath string

	backend backend.Backend[sdlbackend.SDLWindowFlags]
	host    *paint.Host
	tracker *input.Tracker
	lib     *library
	images  *viewer.ImageViewer
	models  *viewer.ModelViewer
	toasts  *toasts
	shots   *debug.Screenshots

	shotRequested bool
	windowSize    imgui.Vec2

	// Paths from the file dialog goroutine and drop events, opened on the
	// main thread.
	mu         sync.Mutex
	pending    []string
	dialogOpen atomic.Bool
}

// NewApp creates the window and the GPU objects. cfgPath is where settings
// are written back on exit; empty means the per-user config directory.
func NewApp(cfg *config.Config, cfgPath string) (*App, error) {
	filter, err := texture.ParseFilter(cfg.Viewer.Filter)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:     cfg,
		cfgPath: cfgPath,
		tracker: input.NewTracker(),
		toasts:  newToasts(),
		shots:   debug.NewScreenshots(cfg.Screenshots.Dir, "texcomp"),
	}

	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("creating backend: %w", err)
	}
	bg := cfg.Viewer.Background
	app.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], bg[3]))
	app.backend.CreateWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.FPS > 0 {
		app.backend.SetTargetFPS(cfg.Window.FPS)
	}
	app.backend.SetDropCallback(func(paths []string) {
		app.queue(paths...)
	})

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	uploader := texture.GLUploader{}
	app.host = paint.NewHost(gpu.NewGLDevice(), bg)
	app.lib = newLibrary(uploader)
	app.images = viewer.NewImageViewer(cfg.ViewportOptions(), filter, uploader)
	app.models = viewer.NewModelViewer(cfg.CameraOptions(), app.host, modelSession)
	return app, nil
}

// Open queues files to be opened on the next frame.
func (app *App) Open(paths ...string) { app.queue(paths...) }

func (app *App) queue(paths ...string) {
	app.mu.Lock()
	app.pending = append(app.pending, paths...)
	app.mu.Unlock()
}

func (app *App) openPending() {
	app.mu.Lock()
	paths := app.pending
	app.pending = nil
	app.mu.Unlock()

	for _, p := range paths {
		if err := app.lib.open(p); err != nil {
			if errors.Is(err, asset.ErrUnsupported) {
				app.toasts.error(fmt.Sprintf("Unsupported format: %s", filepath.Base(p)))
			} else {
				app.toasts.error(fmt.Sprintf("Cannot open %s: %v", filepath.Base(p), err))
			}
		}
	}
}

// openFileDialog runs the native dialog off the main thread; the chosen
// file is queued like a drop.
func (app *App) openFileDialog() {
	if !app.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	exts := make([]string, 0, len(asset.Extensions()))
	for _, e := range asset.Extensions() {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	go func() {
		defer app.dialogOpen.Store(false)
		filename, err := dialog.File().
			Filter("Images and meshes", exts...).
			Filter("All Files", "*").
			Title("Open").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		app.queue(filename)
	}()
}

// Run blocks until the window closes.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GPU objects and writes settings back.
func (app *App) Close() {
	if size := app.windowSize; size.X > 0 && size.Y > 0 {
		app.cfg.Window.Width, app.cfg.Window.Height = int(size.X), int(size.Y)
	}
	app.cfg.Viewer.Filter = app.images.Filter().Key()

	app.lib.releaseAll()
	app.host.Close()

	save := app.cfg.Save
	if app.cfgPath != "" {
		save = func() error { return app.cfg.SaveTo(app.cfgPath) }
	}
	if err := save(); err != nil {
		logger.Warn("saving config failed", zap.Error(err))
	}
}

func (app *App) render() {
	app.openPending()
	in := app.tracker.Next(input.ReadImGui())

	if in.Pressed(input.KeyUp) {
		app.lib.list.Prev()
	} else if in.Pressed(input.KeyDown) {
		app.lib.list.Next()
	}

	app.renderMenu()

	vp := imgui.MainViewport()
	app.windowSize = vp.Size()
	workPos := vp.WorkPos()
	workSize := vp.WorkSize()
	contentHeight := workSize.Y - statusBarHeight
	centerWidth := workSize.X - sidebarWidth - infoPanelWidth
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(sidebarWidth, contentHeight))
	if imgui.BeginV("Assets", nil, flags) {
		app.renderSidebar()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+sidebarWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(centerWidth, contentHeight))
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("Viewer", nil, flags|imgui.WindowFlagsNoScrollbar|imgui.WindowFlagsNoScrollWithMouse) {
		app.renderViewer(in)
	}
	imgui.End()
	imgui.PopStyleVar()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+sidebarWidth+centerWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(infoPanelWidth, contentHeight))
	if imgui.BeginV("Info", nil, flags) {
		app.renderInfo()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	if imgui.BeginV("##StatusBar", nil, flags|imgui.WindowFlagsNoTitleBar|imgui.WindowFlagsNoScrollbar) {
		app.renderStatusBar()
	}
	imgui.End()

	app.toasts.draw(imgui.NewVec2(workPos.X+sidebarWidth+10, workPos.Y+10))

	// Offscreen passes run before imgui renders the frame that shows them.
	if err := app.host.Flush(); err != nil {
		app.toasts.error("Rendering failed, see the viewer for details")
	}
	if app.shotRequested {
		app.shotRequested = false
		app.captureScreenshot()
	}
}

func (app *App) renderMenu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open...") {
			app.openFileDialog()
		}
		if imgui.MenuItemBool("Close") {
			if i := app.lib.list.Index(); i >= 0 {
				app.lib.remove(i)
			}
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			app.exit()
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderSidebar() {
	items := app.lib.list.Items()
	if len(items) == 0 {
		imgui.TextDisabled("Drop files here")
		imgui.TextDisabled("or use File > Open...")
		return
	}
	remove := -1
	for i, it := range items {
		label := fmt.Sprintf("%s##%d", it.asset.Name(), i)
		if imgui.SelectableBoolV(label, i == app.lib.list.Index(), 0, imgui.NewVec2(0, 0)) {
			app.lib.list.Select(i)
		}
		if imgui.IsItemHovered() {
			imgui.SetTooltip(it.path)
			if imgui.IsMouseClickedBool(imgui.MouseButtonMiddle) {
				remove = i
			}
		}
	}
	if remove >= 0 {
		app.lib.remove(remove)
	}
}

func (app *App) renderViewer(in input.Snapshot) {
	switch a := app.lib.selected().(type) {
	case *asset.Image:
		app.images.ShowViewer(in, a)
	case *asset.Mesh:
		app.models.ShowViewer(in, a)
		if in.Pressed(input.KeyScreenshot) {
			app.shotRequested = true
		}
	default:
		imgui.TextDisabled("Drop images or meshes onto the window to view them")
	}
}

func (app *App) renderInfo() {
	var v interface {
		ShowInfo()
		ShowHelp()
	}
	switch app.lib.selected().(type) {
	case *asset.Image:
		v = app.images
	case *asset.Mesh:
		v = app.models
	default:
		imgui.TextDisabled("Nothing selected")
		return
	}
	v.ShowInfo()
	imgui.Separator()
	v.ShowHelp()
}

func (app *App) renderStatusBar() {
	n := app.lib.list.Len()
	if n == 0 {
		imgui.Text("No assets loaded")
		return
	}
	it, _ := app.lib.list.Selected()
	imgui.Text(fmt.Sprintf("%d/%d | %s | %s", app.lib.list.Index()+1, n, it.asset.Kind(), it.path))
}

func (app *App) captureScreenshot() {
	path, err := app.models.Screenshot(app.shots)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		app.toasts.error(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	app.toasts.info("Screenshot: " + path)
}
