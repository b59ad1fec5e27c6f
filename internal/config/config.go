// Package config loads the Handwave configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CameraConfig configures the video source and load shedding.
type CameraConfig struct {
	Device int `yaml:"device"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Stride is the throttling stride: every strideth captured frame is
	// forwarded to the landmark estimator.
	Stride int `yaml:"stride"`
	// MotionThreshold is the pixel-change percentage that wakes the
	// pipeline out of standby.
	MotionThreshold float64 `yaml:"motion_threshold"`
}

// WaveConfig configures the gesture detector.
type WaveConfig struct {
	WindowSize   int `yaml:"window_size"`
	MinReversals int `yaml:"min_reversals"`
	// Landmark is the hand landmark index tracked as the motion reference
	// point (0 = wrist).
	Landmark int `yaml:"landmark"`
}

// AlertConfig configures the alert lifecycle and sinks.
type AlertConfig struct {
	CooldownSeconds int `yaml:"cooldown_seconds"`
	// HoldSeconds keeps a raised alert visible for at least this long.
	// Zero ties visibility directly to the detector output.
	HoldSeconds int `yaml:"hold_seconds"`
	// ReferenceLine is the horizontal position of the rendered reference
	// line as a fraction of frame width.
	ReferenceLine float64 `yaml:"reference_line"`
	LogPath       string  `yaml:"log_path"`
}

// HooksConfig configures external alert hooks.
type HooksConfig struct {
	Dir       string `yaml:"dir"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Listen    string `yaml:"listen"`
	StaticDir string `yaml:"static_dir"`
}

// Config is the full Handwave configuration.
type Config struct {
	Camera CameraConfig `yaml:"camera"`
	Wave   WaveConfig   `yaml:"wave"`
	Alert  AlertConfig  `yaml:"alert"`
	Hooks  HooksConfig  `yaml:"hooks"`
	Server ServerConfig `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			Device:          0,
			Width:           320,
			Height:          240,
			Stride:          2,
			MotionThreshold: 1.0,
		},
		Wave: WaveConfig{
			WindowSize:   20,
			MinReversals: 3,
			Landmark:     0,
		},
		Alert: AlertConfig{
			CooldownSeconds: 3,
			HoldSeconds:     0,
			ReferenceLine:   0.5,
		},
		Hooks: HooksConfig{
			TimeoutMs: 5000,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// Load reads the configuration file at path, applying its values over the
// defaults. A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Cooldown returns the alert cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Alert.CooldownSeconds) * time.Second
}

// Hold returns the minimum visible alert duration.
func (c *Config) Hold() time.Duration {
	return time.Duration(c.Alert.HoldSeconds) * time.Second
}
