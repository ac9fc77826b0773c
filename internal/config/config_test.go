package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/texcomp/internal/engine/camera"
	"github.com/Faultbox/texcomp/internal/viewport"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "nearest", cfg.Viewer.Filter)
	assert.Equal(t, float32(0.0015), cfg.Viewer.ScrollSensitivity)
	assert.Equal(t, float32(3), cfg.Camera.Distance)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, viewport.DefaultOptions(), cfg.ViewportOptions())
	assert.Equal(t, camera.DefaultOptions(), cfg.CameraOptions())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
window:
  width: 1920
  height: 1080
viewer:
  filter: linear
  zoom_max: 50
camera:
  distance: 5
  zoom_speed: 0.02
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, used, err := Load(&Flags{Config: path})
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.Equal(t, "linear", cfg.Viewer.Filter)
	assert.Equal(t, float32(50), cfg.Viewer.ZoomMax)
	assert.Equal(t, float32(0.01), cfg.Viewer.ZoomMin, "unset keys keep defaults")
	assert.Equal(t, float32(5), cfg.Camera.Distance)
	assert.Equal(t, float32(0.02), cfg.Camera.ZoomSpeed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 1920\nviewer:\n  filter: linear\n"), 0o644))

	f, err := ParseFlags([]string{"-config", path, "-width", "640", "-debug", "-filter", "nearest", "a.png", "b.obj"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.obj"}, f.Files)

	cfg, _, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, "nearest", cfg.Viewer.Filter)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(&Flags{Config: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("window: [1, 2"), 0o644))
	_, _, err = Load(&Flags{Config: bad})
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("viewer:\n  filter: bicubic\n"), 0o644))
	_, _, err = Load(&Flags{Config: invalid})
	assert.ErrorContains(t, err, "bicubic")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"zoom range", func(c *Config) { c.Viewer.ZoomMax = c.Viewer.ZoomMin / 2 }},
		{"zoom min", func(c *Config) { c.Viewer.ZoomMin = 0 }},
		{"distance", func(c *Config) { c.Camera.DistanceMin = -1 }},
		{"pitch", func(c *Config) { c.Camera.PitchLimit = 90 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Viewer.Filter = "linear"
	cfg.Window.Width = 1600
	require.NoError(t, cfg.SaveTo(path))

	loaded, _, err := Load(&Flags{Config: path})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDirIsPerApplication(t *testing.T) {
	assert.Equal(t, "texcomp", filepath.Base(Dir()))
}
