// Package config handles field, viewer and tool configuration.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/mask"
)

// Config holds all settings.
type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Shading ShadingConfig `yaml:"shading"`
	Mask    MaskConfig    `yaml:"mask"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// FieldConfig holds the generation parameters.
type FieldConfig struct {
	PlaneSize            float32 `yaml:"plane_size"`
	BladeCount           int     `yaml:"blade_count"`
	BladeWidth           float32 `yaml:"blade_width"`
	BladeHeight          float32 `yaml:"blade_height"`
	BladeHeightVariation float32 `yaml:"blade_height_variation"`
	Seed                 uint64  `yaml:"seed"` // 0 picks a new seed per run
	MaxRetries           int     `yaml:"max_retries"`
}

// ShadingConfig holds the grass material uniforms.
type ShadingConfig struct {
	Color      string  `yaml:"color"` // "#rrggbb"
	WaveSpeed  float32 `yaml:"wave_speed"`
	Brightness float32 `yaml:"brightness"`
	Contrast   float32 `yaml:"contrast"`
	TextureMix float32 `yaml:"texture_mix"` // Ground texture tint on blades, 0..1
}

// MaskConfig selects an optional placement mask.
type MaskConfig struct {
	Path      string  `yaml:"path"`
	Mode      string  `yaml:"mode"` // threshold or weighted
	Threshold float32 `yaml:"threshold"`
	Include   string  `yaml:"include"` // dark or light
	Feather   float64 `yaml:"feather"` // Gaussian blur radius in mask pixels
}

// RenderConfig holds viewer window settings.
type RenderConfig struct {
	Width         int  `yaml:"width"`
	Height        int  `yaml:"height"`
	Fullscreen    bool `yaml:"fullscreen"`
	VSync         bool `yaml:"vsync"`
	GroundTexture bool `yaml:"ground_texture"`
}

// OutputConfig holds where grassgen writes files.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		Field: FieldConfig{
			PlaneSize:            grass.DefaultPlaneSize,
			BladeCount:           grass.DefaultBladeCount,
			BladeWidth:           grass.DefaultBladeWidth,
			BladeHeight:          grass.DefaultBladeHeight,
			BladeHeightVariation: grass.DefaultBladeHeightVariation,
			MaxRetries:           grass.DefaultMaxRetries,
		},
		Shading: ShadingConfig{
			Color:      "#00ff00",
			WaveSpeed:  grass.DefaultWaveSpeed,
			Brightness: -0.1,
			Contrast:   1.0,
			TextureMix: 0.5,
		},
		Mask: MaskConfig{
			Mode:      "threshold",
			Threshold: 0.5,
			Include:   "dark",
		},
		Render: RenderConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// FieldParams converts the field section to generation parameters.
func (c *Config) FieldParams() grass.Params {
	return grass.Params{
		PlaneSize:            c.Field.PlaneSize,
		BladeCount:           c.Field.BladeCount,
		BladeWidth:           c.Field.BladeWidth,
		BladeHeight:          c.Field.BladeHeight,
		BladeHeightVariation: c.Field.BladeHeightVariation,
	}
}

// Predicate builds the mask predicate from the mask section.
func (c *Config) Predicate() (mask.Predicate, error) {
	include, err := mask.ParseInclude(c.Mask.Include)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Mask.Mode) {
	case "", "threshold":
		if c.Mask.Threshold < 0 || c.Mask.Threshold > 1 {
			return nil, fmt.Errorf("mask threshold %v outside [0, 1]", c.Mask.Threshold)
		}
		return mask.Threshold{Level: c.Mask.Threshold, Include: include}, nil
	case "weighted":
		return mask.Weighted{Include: include}, nil
	}
	return nil, fmt.Errorf("unknown mask mode %q", c.Mask.Mode)
}

// ColorRGB parses the shading color into [0,1] components.
func (c *Config) ColorRGB() ([3]float32, error) {
	return parseHexColor(c.Shading.Color)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.FieldParams().Validate(); err != nil {
		return err
	}
	if c.Field.MaxRetries < 0 {
		return &grass.ConfigurationError{Field: "MaxRetries", Value: float64(c.Field.MaxRetries), Reason: "must not be negative"}
	}
	if _, err := c.Predicate(); err != nil {
		return err
	}
	if c.Mask.Feather < 0 {
		return fmt.Errorf("mask feather %v must not be negative", c.Mask.Feather)
	}
	if _, err := c.ColorRGB(); err != nil {
		return err
	}
	if c.Shading.TextureMix < 0 || c.Shading.TextureMix > 1 {
		return fmt.Errorf("texture mix %v must be in [0, 1]", c.Shading.TextureMix)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	return nil
}

func parseHexColor(s string) ([3]float32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return [3]float32{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("color %q: %w", s, err)
	}
	return [3]float32{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
