// Package world runs the terrain generation pipeline:
// height field, voxel population, ambient occlusion, then mesh extraction.
package world

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/stone/internal/config"
	"github.com/Faultbox/stone/internal/logger"
	"github.com/Faultbox/stone/internal/metrics"
	"github.com/Faultbox/stone/pkg/heightfield"
	"github.com/Faultbox/stone/pkg/mesh"
	"github.com/Faultbox/stone/pkg/occlusion"
	"github.com/Faultbox/stone/pkg/voxel"
)

// Stage names used in logs and metrics.
const (
	StageHeights   = "heights"
	StageVoxels    = "voxels"
	StageOcclusion = "occlusion"
	StageMesh      = "mesh"
)

// World is everything one generation run produced. It is built once and
// read-only afterwards.
type World struct {
	RunID   string
	Seed    int64
	Heights *heightfield.Field
	Grid    *voxel.Grid
	Sampler *occlusion.Sampler
	Mesh    *mesh.Mesh
	Stats   Stats
}

// Stats summarizes a run.
type Stats struct {
	Solid      int
	Candidates int
	RaysCast   int64
	Escaped    int64
	Durations  map[string]time.Duration
}

// Generator owns the inputs of a run.
type Generator struct {
	cfg *config.Config
	rec *metrics.Recorder
	log *zap.Logger
}

// NewGenerator creates a generator. rec may be nil.
func NewGenerator(cfg *config.Config, rec *metrics.Recorder) *Generator {
	if rec == nil {
		rec = metrics.New()
	}
	return &Generator{cfg: cfg, rec: rec}
}

// Generate builds a world from cfg, recording into rec.
func Generate(cfg *config.Config, rec *metrics.Recorder) (*World, error) {
	return NewGenerator(cfg, rec).Generate()
}

// Generate runs every stage in order. Any stage failure aborts the run.
func (g *Generator) Generate() (*World, error) {
	wc := g.cfg.World
	w := &World{
		RunID: uuid.NewString(),
		Seed:  wc.Seed,
		Stats: Stats{Durations: make(map[string]time.Duration)},
	}
	if w.Seed == 0 {
		w.Seed = time.Now().UnixNano()
	}
	g.log = logger.With(zap.String("run", w.RunID))
	g.log.Info("generating world",
		zap.Int("size_x", wc.SizeX),
		zap.Int("size_y", wc.SizeY),
		zap.Int("size_z", wc.SizeZ),
		zap.Int64("seed", w.Seed),
	)

	rng := rand.New(rand.NewSource(w.Seed))

	if err := g.run(w, StageHeights, func() error { return g.buildHeights(w, rng) }); err != nil {
		return nil, err
	}
	if err := g.run(w, StageVoxels, func() error { return g.buildVoxels(w, rng) }); err != nil {
		return nil, err
	}
	if err := g.run(w, StageOcclusion, func() error { return g.computeOcclusion(w) }); err != nil {
		return nil, err
	}
	if err := g.run(w, StageMesh, func() error { return g.buildMesh(w) }); err != nil {
		return nil, err
	}
	return w, nil
}

func (g *Generator) run(w *World, stage string, fn func() error) error {
	done := logger.Stage(g.log, stage)
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	d := done()
	w.Stats.Durations[stage] = d
	g.rec.ObserveStage(stage, d)
	return nil
}

func (g *Generator) buildHeights(w *World, rng *rand.Rand) error {
	wc := g.cfg.World

	var (
		field *heightfield.Field
		err   error
	)
	switch {
	case wc.HeightMap != "":
		g.log.Info("loading height map", zap.String("path", wc.HeightMap))
		field, err = heightfield.Load(wc.HeightMap)
	case wc.HeightMode == config.HeightModePerlin:
		field, err = heightfield.Perlin(wc.SizeX, wc.SizeZ, heightfield.PerlinOptions{
			MaxHeight: wc.SizeY,
			Alpha:     wc.Perlin.Alpha,
			Beta:      wc.Perlin.Beta,
			Octaves:   wc.Perlin.Octaves,
			Scale:     wc.Perlin.Scale,
			Seed:      w.Seed,
		})
	default:
		k := wc.ControlPoints
		if k == 0 {
			k = heightfield.ControlPointCount(wc.SizeX, wc.SizeZ)
		}
		g.log.Info("generating control points", zap.Int("count", k))
		points := heightfield.RandomPoints(rng, wc.SizeX, wc.SizeZ, wc.SizeY, k)
		field, err = heightfield.Interpolate(wc.SizeX, wc.SizeZ, points, heightfield.InterpolateOptions{
			MaxHeight: wc.SizeY,
			Jitter:    wc.Jitter,
		}, rng)
	}
	if err != nil {
		return err
	}
	if err := field.Validate(wc.SizeX, wc.SizeY, wc.SizeZ); err != nil {
		return err
	}

	lo, hi := field.Range()
	g.log.Debug("height range", zap.Int("min", lo), zap.Int("max", hi))
	w.Heights = field
	return nil
}

func (g *Generator) buildVoxels(w *World, rng *rand.Rand) error {
	wc := g.cfg.World
	grid, err := voxel.NewGrid(wc.SizeX, wc.SizeY, wc.SizeZ)
	if err != nil {
		return err
	}
	palette := voxel.Palette{Lo: wc.ColorLo, Span: wc.ColorSpan}
	if err := voxel.Populate(grid, w.Heights, palette, rng); err != nil {
		return err
	}
	w.Grid = grid
	w.Stats.Solid = grid.CountSolid()
	return nil
}

func (g *Generator) computeOcclusion(w *World) error {
	sc, err := g.cfg.SamplerConfig()
	if err != nil {
		return err
	}

	g.log.Info("generating rays",
		zap.Int("rays", sc.Rays),
		zap.Int("path_length", sc.PathLength),
		zap.Float64("step", sc.Step),
		zap.Stringer("boundary", sc.Boundary),
	)
	sampler, err := occlusion.NewSampler(sc)
	if err != nil {
		var degenerate *occlusion.DegenerateRaysError
		if errors.As(err, &degenerate) {
			g.log.Error("degenerate ray set", zap.String("rays", degenerate.Dump()))
		}
		return err
	}
	w.Sampler = sampler

	stats := sampler.Apply(w.Grid)
	w.Stats.Candidates = stats.Candidates
	w.Stats.RaysCast = stats.RaysCast
	w.Stats.Escaped = stats.Escaped

	g.rec.SetVoxels(w.Grid.Len(), w.Stats.Solid, stats.Candidates)
	g.rec.AddOcclusion(sc.Rays, stats.RaysCast, stats.Escaped)
	g.log.Info("occlusion computed",
		zap.Int("candidates", stats.Candidates),
		zap.Int64("rays_cast", stats.RaysCast),
		zap.Int64("escaped", stats.Escaped),
	)
	if v, ok := w.Grid.At(0, 0, 0); ok {
		g.log.Debug("first voxel", zap.Stringer("voxel", v))
	}
	return nil
}

func (g *Generator) buildMesh(w *World) error {
	m := mesh.Build(w.Grid)
	w.Mesh = m

	g.rec.SetMesh(m.VertexCount(), m.SizeBytes())
	g.log.Info("filled vertex buffer",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("quads", m.QuadCount()),
		zap.String("size", humanize.IBytes(uint64(m.SizeBytes()))),
	)
	if m.VertexCount() > 0 {
		g.log.Debug("first vertex", zap.Any("vertex", m.Vertices[0]))
	}
	return nil
}

// Export writes the configured output artifacts. Empty paths are skipped.
func (w *World) Export(out config.OutputConfig) error {
	if out.MeshFile != "" {
		if err := mesh.WriteFile(out.MeshFile, w.Mesh); err != nil {
			return fmt.Errorf("writing mesh: %w", err)
		}
		logger.Info("mesh written", zap.String("path", out.MeshFile))
	}
	if out.HeightMapFile != "" {
		if err := heightfield.Save(out.HeightMapFile, w.Heights); err != nil {
			return fmt.Errorf("writing height map: %w", err)
		}
		logger.Info("height map written", zap.String("path", out.HeightMapFile))
	}
	return nil
}
