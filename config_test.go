package dither

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Grid != DefaultGridRange {
		t.Errorf("Grid = %+v, want %+v", cfg.Grid, DefaultGridRange)
	}
	if cfg.Surface.HeightRatio != 0.75 || cfg.Surface.WidthRatio != 1 {
		t.Errorf("Surface = %+v, want 1 x 0.75", cfg.Surface)
	}
	if !cfg.Grayscale || cfg.ClearColor != ColorWhite {
		t.Error("default should be grayscale over white")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeFile(t, "dither.yaml", `
grid:
  min: 2
  max: 12
grayscale: false
window:
  title: demo
  width: 640
  height: 480
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Grid != (GridRange{Min: 2, Max: 12}) {
		t.Errorf("Grid = %+v", cfg.Grid)
	}
	if cfg.Grayscale {
		t.Error("Grayscale = true, want false")
	}
	if cfg.Window.Title != "demo" || cfg.Window.Width != 640 {
		t.Errorf("Window = %+v", cfg.Window)
	}
	// Untouched keys keep defaults.
	if cfg.PixelSizeRatio != 1 || cfg.ScreenshotDir != "screenshots" {
		t.Errorf("defaults lost: ratio %v dir %q", cfg.PixelSizeRatio, cfg.ScreenshotDir)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"grid":    "grid: {min: 0, max: 20}\n",
		"ratio":   "pixelSizeRatio: -1\n",
		"surface": "surface: {widthRatio: 1.5, heightRatio: 1}\n",
		"window":  "window: {width: 0, height: 10}\n",
		"color":   "clearColor: {r: 2, g: 0, b: 0, a: 1}\n",
		"clear":   "clearColor: {r: 0, g: 0, b: 0, a: 0}\n",
	}
	for name, content := range tests {
		_, err := LoadConfig(writeFile(t, name+".yaml", content))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("missing file: want error")
	}
	if cfg.Grid != DefaultGridRange {
		t.Error("missing file should return defaults")
	}

	_, err = LoadConfig(writeFile(t, "bad.yaml", "grid: [1, 2\n"))
	if err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Errorf("malformed YAML: err = %v, want parse error", err)
	}
}

func TestConfigClearColorMatchesPipeline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClearColor = Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// The pipeline keeps a configured color; App.Draw fills the margins with
	// the same one.
	p := NewEffectPipeline(cfg.PipelineOptions())
	if p.opts.ClearColor != cfg.ClearColor {
		t.Errorf("pipeline ClearColor = %+v, want %+v", p.opts.ClearColor, cfg.ClearColor)
	}

	cfg.ClearColor = Color{}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("transparent clear color: err = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigPipelineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PixelSizeRatio = 2
	opts := cfg.PipelineOptions()
	if opts.PixelSizeRatio != 2 || !opts.Grayscale || opts.Param != 1 {
		t.Errorf("PipelineOptions = %+v", opts)
	}
}
