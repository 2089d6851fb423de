// Package config holds render settings: canvas bounds, default text style and
// output parameters. Values come from Default, optionally overlaid by a YAML
// file and then by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the render configuration for one label job.
type Config struct {
	// MinX is the initial canvas width in columns.
	MinX int `yaml:"min_x"`
	// MaxX is the widest the canvas may grow.
	MaxX int `yaml:"max_x"`
	// Y is the fixed canvas height, the print head's dot count.
	Y int `yaml:"y"`

	Font           string  `yaml:"font"`
	PointSize      float64 `yaml:"point_size"`
	VerticalCentre bool    `yaml:"vertical_centre"`
	// Clip drops glyph pixels outside the canvas instead of failing the job.
	Clip bool `yaml:"clip"`

	// PrintDPI maps columns to physical size for PDF output.
	PrintDPI float64 `yaml:"print_dpi"`
	// Theme is the preview/PNG palette: light or dark.
	Theme string `yaml:"theme"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		MinX:      32,
		MaxX:      1024,
		Y:         64,
		Font:      "mono",
		PointSize: 24,
		PrintDPI:  180,
		Theme:     "light",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the renderer relies on.
func (c Config) Validate() error {
	switch {
	case c.Y <= 0:
		return fmt.Errorf("config: y must be positive, got %d", c.Y)
	case c.MinX < 0:
		return fmt.Errorf("config: min_x must not be negative, got %d", c.MinX)
	case c.MaxX < c.MinX:
		return fmt.Errorf("config: max_x %d is below min_x %d", c.MaxX, c.MinX)
	case c.MaxX > math.MaxInt16 || c.Y > math.MaxInt16:
		// bitmap fonts address pixels with int16
		return fmt.Errorf("config: canvas %dx%d exceeds %d", c.MaxX, c.Y, math.MaxInt16)
	case c.PointSize <= 0:
		return fmt.Errorf("config: point_size must be positive, got %g", c.PointSize)
	case c.PrintDPI <= 0:
		return fmt.Errorf("config: print_dpi must be positive, got %g", c.PrintDPI)
	case c.Theme != "light" && c.Theme != "dark":
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	return nil
}
