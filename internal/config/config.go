// Package config handles mooncam configuration loading and management.
package config

import (
	"fmt"
	"math"

	"github.com/echoflaresat/mooncam/internal/logger"
	"github.com/echoflaresat/mooncam/options"
)

// Config holds all tool settings.
type Config struct {
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Texture TextureConfig `yaml:"texture" toml:"texture"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// RenderConfig holds output and lighting settings.
type RenderConfig struct {
	Width        int     `yaml:"width" toml:"width"`
	Height       int     `yaml:"height" toml:"height"`
	Antialiasing string  `yaml:"antialiasing" toml:"antialiasing"`
	Exposure     float64 `yaml:"exposure" toml:"exposure"`
	Orientation  float64 `yaml:"orientation_deg" toml:"orientation_deg"` // degrees about the view axis
}

// TextureConfig holds texture lookup settings.
type TextureConfig struct {
	Name      string `yaml:"name" toml:"name"`
	HostDir   string `yaml:"host_dir" toml:"host_dir"` // empty: executable directory
	CacheSize int    `yaml:"cache_size" toml:"cache_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Default returns a Config with the standard render settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:        512,
			Height:       512,
			Antialiasing: options.X4.String(),
			Exposure:     1.0,
		},
		Texture: TextureConfig{
			Name:      "moon.png",
			CacheSize: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := options.ParseAntialiasing(c.Render.Antialiasing); err != nil {
		return fmt.Errorf("render.antialiasing: %w", err)
	}
	if math.IsNaN(c.Render.Exposure) || math.IsInf(c.Render.Exposure, 0) {
		return fmt.Errorf("render.exposure: %v is not a finite number", c.Render.Exposure)
	}
	if c.Texture.Name == "" {
		return fmt.Errorf("texture.name: must not be empty")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Size returns the configured output size.
func (c *Config) Size() options.Size {
	return options.Size{Width: c.Render.Width, Height: c.Render.Height}
}

// Options converts the render section into rendering options.
func (c *Config) Options() (options.Options, error) {
	aa, err := options.ParseAntialiasing(c.Render.Antialiasing)
	if err != nil {
		return options.Options{}, err
	}
	opts := options.Default()
	opts.Antialiasing = aa
	opts.Exposure = c.Render.Exposure
	if c.Render.Orientation != 0 {
		rad := c.Render.Orientation * math.Pi / 180
		opts.OrientationCorrection = &rad
	}
	return opts, nil
}
