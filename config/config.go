// Package config handles renderer configuration loading.
package config

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all renderer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds frame output settings.
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Number of worker goroutines. Zero selects one worker per CPU.
	Workers int `yaml:"workers"`

	// Block scheduling algorithm; either "naive" or "perfect".
	Scheduler string `yaml:"scheduler"`

	// Gamma applied to linear colors before quantization. A value of 1
	// disables gamma correction.
	Gamma float64 `yaml:"gamma"`

	Out string `yaml:"out"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string         `yaml:"level"`
	File     string         `yaml:"file"`
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig controls log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:     512,
			Height:    512,
			Workers:   0,
			Scheduler: "perfect",
			Gamma:     2.2,
			Out:       "frame.png",
		},
		Logging: LoggingConfig{
			Level: "notice",
			Rotation: RotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
	}
}

// Validate checks that all settings are within their allowed ranges.
func (c *Config) Validate() error {
	switch {
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: frame dimensions must be positive; got %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	case c.Render.Workers < 0:
		return fmt.Errorf("%w: worker count must not be negative; got %d", ErrInvalidConfig, c.Render.Workers)
	case c.Render.Gamma <= 0:
		return fmt.Errorf("%w: gamma must be positive; got %f", ErrInvalidConfig, c.Render.Gamma)
	case c.Render.Scheduler != "naive" && c.Render.Scheduler != "perfect":
		return fmt.Errorf("%w: unknown scheduler %q", ErrInvalidConfig, c.Render.Scheduler)
	case c.Render.Out == "":
		return fmt.Errorf("%w: output filename must not be empty", ErrInvalidConfig)
	}
	return nil
}
