package dither

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Config validation error.
var ErrInvalidConfig = errors.New("invalid config")

// WindowConfig controls the host window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// Config is the YAML configuration of a dither application.
//
// Example:
//
//	grid: {min: 1, max: 20}
//	pixelSizeRatio: 1
//	grayscale: true
//	surface: {widthRatio: 1, heightRatio: 0.75}
//	window: {title: dither, width: 1280, height: 720, resizable: true}
type Config struct {
	Grid           GridRange     `yaml:"grid"`
	PixelSizeRatio float64       `yaml:"pixelSizeRatio"`
	Grayscale      bool          `yaml:"grayscale"`
	ClearColor     Color         `yaml:"clearColor"`
	Surface        SurfaceLayout `yaml:"surface"`
	Window         WindowConfig  `yaml:"window"`

	// Debug enables per-frame stats at debug log level.
	Debug bool `yaml:"debug"`
	// ShowFPS draws the FPS overlay.
	ShowFPS bool `yaml:"showFPS"`
	// ScreenshotDir receives screenshots taken by scripts. Default "screenshots".
	ScreenshotDir string `yaml:"screenshotDir"`

	// Texture is an image file for the plane. Empty uses a generated pattern.
	Texture string `yaml:"texture"`
	// Text is repeated around the rings.
	Text string `yaml:"text"`
	// Footer is drawn centered below the surface.
	Footer string `yaml:"footer"`
	// Caption is drawn in the top-left corner of the window.
	Caption string `yaml:"caption"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Grid:           DefaultGridRange,
		PixelSizeRatio: 1,
		Grayscale:      true,
		ClearColor:     ColorWhite,
		Surface:        SurfaceLayout{WidthRatio: 1, HeightRatio: 0.75},
		Window: WindowConfig{
			Title:     "dither",
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		ScreenshotDir: "screenshots",
		Text:          "DITHER",
	}
}

// LoadConfig reads a YAML file over DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field that has a constrained range.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: grid: %w", ErrInvalidConfig, err)
	}
	if c.PixelSizeRatio <= 0 || math.IsNaN(c.PixelSizeRatio) || math.IsInf(c.PixelSizeRatio, 0) {
		return fmt.Errorf("%w: pixelSizeRatio %v must be positive", ErrInvalidConfig, c.PixelSizeRatio)
	}
	if !ratioOK(c.Surface.WidthRatio) || !ratioOK(c.Surface.HeightRatio) {
		return fmt.Errorf("%w: surface ratios %v x %v must be in (0, 1]",
			ErrInvalidConfig, c.Surface.WidthRatio, c.Surface.HeightRatio)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	for _, v := range []float64{c.ClearColor.R, c.ClearColor.G, c.ClearColor.B, c.ClearColor.A} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clearColor component %v outside [0, 1]", ErrInvalidConfig, v)
		}
	}
	// The window margins are filled with ClearColor too, so a transparent
	// color would not match the surface's base pass.
	if c.ClearColor.A == 0 {
		return fmt.Errorf("%w: clearColor must not be fully transparent", ErrInvalidConfig)
	}
	return nil
}

// PipelineOptions returns the pipeline options described by the config.
func (c Config) PipelineOptions() PipelineOptions {
	return PipelineOptions{
		ClearColor:     c.ClearColor,
		PixelSizeRatio: c.PixelSizeRatio,
		Grayscale:      c.Grayscale,
		Param:          c.Grid.Min,
	}
}

func ratioOK(v float64) bool {
	return v > 0 && v <= 1
}
