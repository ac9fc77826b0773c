package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func fileOptions(level, path string) Options {
	opts := DefaultOptions(path)
	opts.Level = level
	opts.Compress = false
	opts.Console = false
	return opts
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(dir, tt.level+".log")
			if err := Init(fileOptions(tt.level, path)); err != nil {
				t.Fatalf("Init: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			for _, exp := range tt.expected {
				if !strings.Contains(string(content), exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(string(content), exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestInvalidLevel(t *testing.T) {
	if err := Init(Options{Level: "loud"}); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestCreatesLogDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs", "texcomp.log")
	if err := Init(fileOptions("info", path)); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("hello", zap.String("asset", "cube.obj"))
	Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(content), `"asset": "cube.obj"`) {
		t.Errorf("structured field missing from %q", content)
	}
}

func TestNamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.log")
	if err := Init(fileOptions("info", path)); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Named("viewer").Info("opened")
	Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(content), "viewer") || !strings.Contains(string(content), "logger_test.go") {
		t.Errorf("expected logger name and caller in %q", content)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions("/tmp/texcomp.log")
	if opts.File != "/tmp/texcomp.log" || opts.Level != "info" || !opts.Console {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.MaxSizeMB <= 0 || opts.MaxBackups <= 0 {
		t.Errorf("rotation disabled by default: %+v", opts)
	}
}
