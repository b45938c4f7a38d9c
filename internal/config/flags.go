package config

import "flag"

var (
	flagConfig         = flag.String("config", "", "Path to config file")
	flagDebug          = flag.Bool("debug", false, "Enable debug logging")
	flagSeed           = flag.Int64("seed", 0, "World seed (0 = time based)")
	flagHeightMap      = flag.String("heightmap", "", "Load heights from a bracket-format file")
	flagVertexShader   = flag.String("vertex-shader", "", "Vertex shader path")
	flagFragmentShader = flag.String("fragment-shader", "", "Fragment shader path")
	flagRays           = flag.Int("rays", 0, "Occlusion ray count")
	flagPathLength     = flag.Int("path-length", 0, "Cells marched per occlusion ray")
	flagWorkers        = flag.Int("workers", 0, "Occlusion worker goroutines")
	flagBoundary       = flag.String("boundary", "", "Rays leaving the world: blocked or escape")
	flagWindowed       = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen     = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth          = flag.Int("width", 0, "Window width")
	flagHeight         = flag.Int("height", 0, "Window height")
	flagMeshOut        = flag.String("mesh-out", "", "Write the generated mesh to this file")
	flagHeightMapOut   = flag.String("heightmap-out", "", "Write the height map to this file")
	flagMetricsOut     = flag.String("metrics-out", "", "Write generation metrics to this file")
)

// args holds positional arguments: [vertex-shader fragment-shader [heightmap]].
var args []string

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
	args = flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag and positional overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagHeightMap != "" {
		cfg.World.HeightMap = *flagHeightMap
	}
	if *flagVertexShader != "" {
		cfg.Render.VertexShader = *flagVertexShader
	}
	if *flagFragmentShader != "" {
		cfg.Render.FragmentShader = *flagFragmentShader
	}
	if *flagRays > 0 {
		cfg.Occlusion.Rays = *flagRays
	}
	if *flagPathLength > 0 {
		cfg.Occlusion.PathLength = *flagPathLength
	}
	if *flagWorkers > 0 {
		cfg.Occlusion.Workers = *flagWorkers
	}
	if *flagBoundary != "" {
		cfg.Occlusion.Boundary = *flagBoundary
	}
	if *flagWindowed {
		cfg.Render.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Render.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagMeshOut != "" {
		cfg.Output.MeshFile = *flagMeshOut
	}
	if *flagHeightMapOut != "" {
		cfg.Output.HeightMapFile = *flagHeightMapOut
	}
	if *flagMetricsOut != "" {
		cfg.Output.MetricsFile = *flagMetricsOut
	}

	applyArgs(cfg, args)
}

func applyArgs(cfg *Config, positional []string) {
	if len(positional) >= 2 {
		cfg.Render.VertexShader = positional[0]
		cfg.Render.FragmentShader = positional[1]
	}
	if len(positional) >= 3 {
		cfg.World.HeightMap = positional[2]
	}
}
