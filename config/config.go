// Package config provides configuration loading and access for the editor.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all editor configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Map        MapConfig        `yaml:"map"`
	Player     PlayerConfig     `yaml:"player"`
	Brush      BrushConfig      `yaml:"brush"`
	Raycast    RaycastConfig    `yaml:"raycast"`
	Spray      SprayConfig      `yaml:"spray"`
	SoftCircle SoftCircleConfig `yaml:"soft_circle"`
	Throttle   ThrottleConfig   `yaml:"throttle"`
	Camera     CameraConfig     `yaml:"camera"`
	Generate   GenerateConfig   `yaml:"generate"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// MapConfig holds the terrain grid dimensions in cells.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig holds movement parameters of the ray origin.
type PlayerConfig struct {
	Speed            float64 `yaml:"speed"`             // Units per second
	SprintMultiplier float64 `yaml:"sprint_multiplier"` // Applied while shift is held
	Radius           float64 `yaml:"radius"`            // Drawn marker radius
}

// BrushConfig holds brush size, blend and edge handling.
type BrushConfig struct {
	Size         float64 `yaml:"size"`          // Initial radius
	Min          float64 `yaml:"min"`           // Smallest radius reachable with the wheel
	Max          float64 `yaml:"max"`           // Largest radius reachable with the wheel
	ScaleStep    float64 `yaml:"scale_step"`    // Factor per wheel notch
	BlendRange   int     `yaml:"blend_range"`   // Half-width of the averaging window
	PaintRadius  int     `yaml:"paint_radius"`  // Radius of the ctrl+middle paint disc
	EdgePolicy   string  `yaml:"edge_policy"`   // "empty" or "clamp"
	FastStrategy string  `yaml:"fast_strategy"` // reference, summed_area or separable
	Tool         string  `yaml:"tool"`          // Tool active at startup
}

// RaycastConfig holds the target ray budget.
type RaycastConfig struct {
	MaxDistance float64 `yaml:"max_distance"`
}

// SprayConfig holds the conical gaussian spray parameters.
type SprayConfig struct {
	ConeAngle float64 `yaml:"cone_angle"` // Half-angle in degrees
	Step      float64 `yaml:"step"`       // Degrees between rays
	Bias      float64 `yaml:"bias"`       // Subtracted from the gaussian
}

// SoftCircleConfig holds the soft circle falloff bias.
type SoftCircleConfig struct {
	Bias float64 `yaml:"bias"`
}

// ThrottleConfig holds the held-button edit cadence.
type ThrottleConfig struct {
	Interval float64 `yaml:"interval"` // Seconds between edits while a button is held
}

// CameraConfig holds pan and zoom limits.
type CameraConfig struct {
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
	ZoomSpeed float64 `yaml:"zoom_speed"` // Fraction per wheel notch
}

// GenerateConfig holds the noise terrain used to seed the field.
type GenerateConfig struct {
	Enabled     bool    `yaml:"enabled"` // Seed the field at startup
	Seed        int64   `yaml:"seed"`
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Gain        float64 `yaml:"gain"`
	Threshold   float64 `yaml:"threshold"`
	Softness    float64 `yaml:"softness"`
	ClearRadius int     `yaml:"clear_radius"` // Pocket cleared around the player
}

// TelemetryConfig holds logging and CSV output settings.
type TelemetryConfig struct {
	StatsWindowSec float64 `yaml:"stats_window_sec"` // Seconds per field statistics window
	PerfWindow     int     `yaml:"perf_window"`      // Frames averaged by the perf collector
	LogEdits       bool    `yaml:"log_edits"`        // Log every applied edit
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	MapW32    float32 // Map.Width as float32
	MapH32    float32 // Map.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects values the editor cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Map.Width <= 0 || c.Map.Height <= 0:
		return fmt.Errorf("%w: map size %dx%d", ErrInvalid, c.Map.Width, c.Map.Height)
	case c.Brush.Min <= 0 || c.Brush.Max < c.Brush.Min:
		return fmt.Errorf("%w: brush limits [%g, %g]", ErrInvalid, c.Brush.Min, c.Brush.Max)
	case c.Brush.ScaleStep <= 1:
		return fmt.Errorf("%w: brush scale_step %g must exceed 1", ErrInvalid, c.Brush.ScaleStep)
	case c.Brush.BlendRange <= 0:
		return fmt.Errorf("%w: blend_range %d", ErrInvalid, c.Brush.BlendRange)
	case c.Brush.PaintRadius <= 0:
		return fmt.Errorf("%w: paint_radius %d", ErrInvalid, c.Brush.PaintRadius)
	case c.Raycast.MaxDistance <= 0:
		return fmt.Errorf("%w: raycast max_distance %g", ErrInvalid, c.Raycast.MaxDistance)
	case c.Spray.Step <= 0 || c.Spray.ConeAngle < 0:
		return fmt.Errorf("%w: spray cone %g step %g", ErrInvalid, c.Spray.ConeAngle, c.Spray.Step)
	case c.Throttle.Interval < 0:
		return fmt.Errorf("%w: throttle interval %g", ErrInvalid, c.Throttle.Interval)
	case c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom:
		return fmt.Errorf("%w: camera zoom [%g, %g]", ErrInvalid, c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.MapW32 = float32(c.Map.Width)
	c.Derived.MapH32 = float32(c.Map.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
