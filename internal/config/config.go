// Package config loads viewer settings: defaults, then a YAML file, then
// command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/texcomp/internal/engine/camera"
	"github.com/Faultbox/texcomp/internal/viewport"
)

// Config holds all application settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Viewer      ViewerConfig     `yaml:"viewer"`
	Camera      CameraConfig     `yaml:"camera"`
	Logging     LoggingConfig    `yaml:"logging"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
}

// WindowConfig holds the main window settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    uint   `yaml:"fps"` // 0 leaves the backend default
}

// ViewerConfig holds 2D image viewer settings.
type ViewerConfig struct {
	ScrollSensitivity float32    `yaml:"scroll_sensitivity"`
	ZoomMin           float32    `yaml:"zoom_min"`
	ZoomMax           float32    `yaml:"zoom_max"`
	MinSelectSize     float32    `yaml:"min_select_size"`
	Filter            string     `yaml:"filter"` // nearest or linear
	Background        [4]float32 `yaml:"background,flow"`
}

// CameraConfig holds 3D orbit camera settings. Angles are in degrees.
type CameraConfig struct {
	Distance         float32 `yaml:"distance"`
	DistanceMin      float32 `yaml:"distance_min"`
	DistanceMax      float32 `yaml:"distance_max"`
	OrbitSensitivity float32 `yaml:"orbit_sensitivity"`
	PanSpeed         float32 `yaml:"pan_speed"`
	ZoomSpeed        float32 `yaml:"zoom_speed"`
	PitchLimit       float32 `yaml:"pitch_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ScreenshotConfig holds render capture settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the stock configuration.
func Default() *Config {
	vp := viewport.DefaultOptions()
	cam := camera.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Title:  "texcomp",
			Width:  1280,
			Height: 800,
		},
		Viewer: ViewerConfig{
			ScrollSensitivity: vp.ScrollSensitivity,
			ZoomMin:           vp.ZoomMin,
			ZoomMax:           vp.ZoomMax,
			MinSelectSize:     vp.MinSelectSize,
			Filter:            "nearest",
			Background:        [4]float32{0.1, 0.1, 0.12, 1},
		},
		Camera: CameraConfig{
			Distance:         cam.Distance,
			DistanceMin:      cam.DistanceMin,
			DistanceMax:      cam.DistanceMax,
			OrbitSensitivity: cam.OrbitSensitivity,
			PanSpeed:         cam.PanSpeed,
			ZoomSpeed:        cam.ZoomSpeed,
			PitchLimit:       cam.PitchLimit,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
	}
}

// Validate reports settings that would break the viewers.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Viewer.ZoomMin <= 0 || c.Viewer.ZoomMax < c.Viewer.ZoomMin {
		errs = append(errs, fmt.Errorf("viewer zoom range [%g, %g] is invalid", c.Viewer.ZoomMin, c.Viewer.ZoomMax))
	}
	if c.Viewer.Filter != "nearest" && c.Viewer.Filter != "linear" {
		errs = append(errs, fmt.Errorf("viewer filter %q must be nearest or linear", c.Viewer.Filter))
	}
	if c.Camera.DistanceMin <= 0 || c.Camera.DistanceMax < c.Camera.DistanceMin {
		errs = append(errs, fmt.Errorf("camera distance range [%g, %g] is invalid", c.Camera.DistanceMin, c.Camera.DistanceMax))
	}
	if c.Camera.PitchLimit <= 0 || c.Camera.PitchLimit >= 90 {
		errs = append(errs, fmt.Errorf("camera pitch limit %g must be in (0, 90)", c.Camera.PitchLimit))
	}
	return errors.Join(errs...)
}

// ViewportOptions converts the viewer section for the 2D viewport.
func (c *Config) ViewportOptions() viewport.Options {
	return viewport.Options{
		ZoomMin:           c.Viewer.ZoomMin,
		ZoomMax:           c.Viewer.ZoomMax,
		ScrollSensitivity: c.Viewer.ScrollSensitivity,
		MinSelectSize:     c.Viewer.MinSelectSize,
	}
}

// CameraOptions converts the camera section for the orbit camera.
func (c *Config) CameraOptions() camera.Options {
	return camera.Options{
		Distance:         c.Camera.Distance,
		DistanceMin:      c.Camera.DistanceMin,
		DistanceMax:      c.Camera.DistanceMax,
		OrbitSensitivity: c.Camera.OrbitSensitivity,
		PanSpeed:         c.Camera.PanSpeed,
		ZoomSpeed:        c.Camera.ZoomSpeed,
		PitchLimit:       c.Camera.PitchLimit,
	}
}
