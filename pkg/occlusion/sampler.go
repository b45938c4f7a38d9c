package occlusion

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/stone/pkg/voxel"
)

// BoundaryPolicy decides what a ray that leaves the grid contributes.
type BoundaryPolicy int

const (
	// BoundaryBlocked treats leaving the grid like hitting a solid voxel.
	BoundaryBlocked BoundaryPolicy = iota
	// BoundaryEscape treats leaving the grid as reaching open sky.
	BoundaryEscape
)

// ParseBoundaryPolicy converts a config name into a policy.
func ParseBoundaryPolicy(name string) (BoundaryPolicy, error) {
	switch name {
	case "", "blocked":
		return BoundaryBlocked, nil
	case "escape":
		return BoundaryEscape, nil
	default:
		return 0, fmt.Errorf("unknown boundary policy %q", name)
	}
}

func (p BoundaryPolicy) String() string {
	if p == BoundaryEscape {
		return "escape"
	}
	return "blocked"
}

// Config holds the sampling parameters.
type Config struct {
	Rays       int            // number of sample directions
	PathLength int            // cells recorded per ray path
	Step       float64        // march increment in grid units
	Boundary   BoundaryPolicy // contribution of rays leaving the grid
	Workers    int            // 0 means one per CPU
}

// DefaultConfig returns the standard sampling parameters.
func DefaultConfig() Config {
	return Config{
		Rays:       128,
		PathLength: 1024,
		Step:       0.2,
		Boundary:   BoundaryBlocked,
	}
}

// Stats summarizes an Apply run.
type Stats struct {
	Candidates int
	RaysCast   int64
	Escaped    int64
}

// Sampler holds the precomputed rays, their face totals and their paths.
// It is read-only after construction and safe for concurrent use.
type Sampler struct {
	cfg    Config
	rays   []Ray
	totals voxel.Faces
	paths  []Path
}

// NewSampler generates the ray set and paths for cfg.
func NewSampler(cfg Config) (*Sampler, error) {
	if cfg.Rays < 1 {
		return nil, fmt.Errorf("ray count must be positive, got %d", cfg.Rays)
	}
	if cfg.PathLength < 1 {
		return nil, fmt.Errorf("path length must be positive, got %d", cfg.PathLength)
	}

	rays := GenerateRays(cfg.Rays)
	totals, err := FaceTotals(rays)
	if err != nil {
		return nil, err
	}

	paths := make([]Path, len(rays))
	for i, r := range rays {
		p, err := GenerateRayPath(r.Dir, cfg.Step, cfg.PathLength)
		if err != nil {
			return nil, fmt.Errorf("ray %d: %w", i, err)
		}
		paths[i] = p
	}

	return &Sampler{cfg: cfg, rays: rays, totals: totals, paths: paths}, nil
}

// Config returns the sampling parameters.
func (s *Sampler) Config() Config { return s.cfg }

// Rays returns the sample rays.
func (s *Sampler) Rays() []Ray { return s.rays }

// Totals returns the per-face weight totals used for normalization.
func (s *Sampler) Totals() voxel.Faces { return s.totals }

// Paths returns the ray paths, parallel to Rays.
func (s *Sampler) Paths() []Path { return s.paths }

// escapes walks one path from (x, y, z) and reports whether it reaches the
// end without touching a solid voxel.
func (s *Sampler) escapes(g *voxel.Grid, path Path, x, y, z int) bool {
	for _, o := range path {
		px, py, pz := x+o.X, y+o.Y, z+o.Z
		if !g.InBounds(px, py, pz) {
			return s.cfg.Boundary == BoundaryEscape
		}
		if g.IsSolid(px, py, pz) {
			return false
		}
	}
	return true
}

// Occlusion computes the normalized record for the voxel at (x, y, z):
// 1 - escaped/total per face, 0 when every ray of a face escapes.
func (s *Sampler) Occlusion(g *voxel.Grid, x, y, z int) (voxel.Faces, int) {
	var acc voxel.Faces
	escaped := 0
	for i := range s.rays {
		if s.escapes(g, s.paths[i], x, y, z) {
			acc = acc.Add(s.rays[i].Weights)
			escaped++
		}
	}

	var out voxel.Faces
	for f := range out {
		out[f] = 1 - acc[f]/s.totals[f]
	}
	return out, escaped
}

// Apply fills the occlusion record of every candidate voxel (Air with a
// Solid neighbor). Z slices are processed in parallel; each voxel only
// writes its own record while solidity is only read.
func (s *Sampler) Apply(g *voxel.Grid) Stats {
	sx, sy, sz := g.Size()

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var candidates, escaped atomic.Int64
	var eg errgroup.Group
	eg.SetLimit(workers)

	for z := 0; z < sz; z++ {
		z := z
		eg.Go(func() error {
			var n, e int64
			for y := 0; y < sy; y++ {
				for x := 0; x < sx; x++ {
					if !g.IsCandidate(x, y, z) {
						continue
					}
					occ, esc := s.Occlusion(g, x, y, z)
					g.Cell(x, y, z).Occlusion = occ
					n++
					e += int64(esc)
				}
			}
			candidates.Add(n)
			escaped.Add(e)
			return nil
		})
	}
	_ = eg.Wait()

	c := candidates.Load()
	return Stats{
		Candidates: int(c),
		RaysCast:   c * int64(len(s.rays)),
		Escaped:    escaped.Load(),
	}
}
