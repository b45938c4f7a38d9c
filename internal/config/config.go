// Package config handles Stone configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/stone/pkg/occlusion"
)

// Config holds all generator and viewer settings.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Occlusion OcclusionConfig `yaml:"occlusion"`
	Render    RenderConfig    `yaml:"render"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorldConfig holds terrain generation settings.
type WorldConfig struct {
	SizeX int   `yaml:"size_x"`
	SizeY int   `yaml:"size_y"`
	SizeZ int   `yaml:"size_z"`
	Seed  int64 `yaml:"seed"` // 0 picks a time-based seed

	HeightMap     string       `yaml:"height_map"`     // load heights from file instead of synthesizing
	HeightMode    string       `yaml:"height_mode"`    // "idw" or "perlin"
	ControlPoints int          `yaml:"control_points"` // 0 derives from footprint
	Jitter        int          `yaml:"jitter"`
	ColorLo       int          `yaml:"color_lo"`
	ColorSpan     int          `yaml:"color_span"`
	Perlin        PerlinConfig `yaml:"perlin"`
}

// PerlinConfig tunes the perlin height mode.
type PerlinConfig struct {
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
	Scale   float64 `yaml:"scale"`
}

// OcclusionConfig holds ambient occlusion sampling settings.
type OcclusionConfig struct {
	Rays       int     `yaml:"rays"`
	PathLength int     `yaml:"path_length"`
	Step       float64 `yaml:"step"`
	Boundary   string  `yaml:"boundary"` // "blocked" or "escape"
	Workers    int     `yaml:"workers"`  // 0 uses every CPU
}

// RenderConfig holds window, projection and shader settings.
type RenderConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Fullscreen     bool    `yaml:"fullscreen"`
	VSync          bool    `yaml:"vsync"`
	FOV            float32 `yaml:"fov"`
	Near           float32 `yaml:"near"`
	Far            float32 `yaml:"far"`
	VertexShader   string  `yaml:"vertex_shader"`
	FragmentShader string  `yaml:"fragment_shader"`
}

// OutputConfig holds optional artifact paths.
type OutputConfig struct {
	MeshFile      string `yaml:"mesh_file"`
	HeightMapFile string `yaml:"height_map_file"`
	MetricsFile   string `yaml:"metrics_file"`
	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures in the viewer
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Height modes.
const (
	HeightModeIDW    = "idw"
	HeightModePerlin = "perlin"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			SizeX:      256,
			SizeY:      64,
			SizeZ:      256,
			HeightMode: HeightModeIDW,
			Jitter:     1,
			ColorLo:    120,
			ColorSpan:  16,
			Perlin: PerlinConfig{
				Alpha:   2,
				Beta:    2,
				Octaves: 3,
				Scale:   0.02,
			},
		},
		Occlusion: OcclusionConfig{
			Rays:       128,
			PathLength: 1024,
			Step:       0.2,
			Boundary:   "blocked",
		},
		Render: RenderConfig{
			Width:          1024,
			Height:         768,
			VSync:          true,
			FOV:            60,
			Near:           0.1,
			Far:            1024,
			VertexShader:   "shaders/world.vert",
			FragmentShader: "shaders/world.frag",
		},
		Output: OutputConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that cannot drive a generation run.
func (c *Config) Validate() error {
	w := c.World
	if w.SizeX <= 0 || w.SizeY <= 0 || w.SizeZ <= 0 {
		return fmt.Errorf("world size must be positive, got %dx%dx%d", w.SizeX, w.SizeY, w.SizeZ)
	}
	if w.HeightMode != HeightModeIDW && w.HeightMode != HeightModePerlin {
		return fmt.Errorf("unknown height mode %q", w.HeightMode)
	}
	if w.ControlPoints < 0 || w.Jitter < 0 {
		return fmt.Errorf("control_points and jitter must not be negative")
	}
	if w.ColorLo < 0 || w.ColorSpan < 1 || w.ColorLo+w.ColorSpan > 256 {
		return fmt.Errorf("color band [%d, %d) outside [0, 256)", w.ColorLo, w.ColorLo+w.ColorSpan)
	}

	o := c.Occlusion
	if o.Rays < 1 {
		return fmt.Errorf("occlusion rays must be at least 1, got %d", o.Rays)
	}
	if o.PathLength < 1 {
		return fmt.Errorf("occlusion path_length must be at least 1, got %d", o.PathLength)
	}
	if o.Step <= 0 || o.Step >= 1 {
		return fmt.Errorf("occlusion step must be in (0, 1), got %v", o.Step)
	}
	if _, err := occlusion.ParseBoundaryPolicy(o.Boundary); err != nil {
		return err
	}
	if o.Workers < 0 {
		return fmt.Errorf("occlusion workers must not be negative")
	}
	return nil
}

// SamplerConfig converts the occlusion section for the sampler.
func (c *Config) SamplerConfig() (occlusion.Config, error) {
	policy, err := occlusion.ParseBoundaryPolicy(c.Occlusion.Boundary)
	if err != nil {
		return occlusion.Config{}, err
	}
	return occlusion.Config{
		Rays:       c.Occlusion.Rays,
		PathLength: c.Occlusion.PathLength,
		Step:       c.Occlusion.Step,
		Boundary:   policy,
		Workers:    c.Occlusion.Workers,
	}, nil
}
