package heightfield

import (
	"fmt"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// ControlPointCount returns how many control points a footprint gets:
// one per 2000 cells, never fewer than 3.
func ControlPointCount(sizeX, sizeZ int) int {
	return max(3, sizeX*sizeZ/2000)
}

// RandomPoints scatters k control points inside the footprint with heights in [0, maxHeight].
func RandomPoints(rng *rand.Rand, sizeX, sizeZ, maxHeight, k int) []Point {
	points := make([]Point, k)
	for i := range points {
		points[i] = Point{
			X:      rng.Intn(sizeX),
			Z:      rng.Intn(sizeZ),
			Height: rng.Intn(maxHeight + 1),
		}
	}
	return points
}

// InterpolateOptions tunes inverse-distance synthesis.
type InterpolateOptions struct {
	MaxHeight int // heights are clamped to [0, MaxHeight]
	Jitter    int // interpolated cells get a random extra in [0, Jitter]
}

// Interpolate builds a field as the inverse-squared-distance weighted average
// of the control points. A cell that hosts control points takes exactly their
// height (averaged if several share the cell) and gets no jitter.
func Interpolate(sizeX, sizeZ int, points []Point, opts InterpolateOptions, rng *rand.Rand) (*Field, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no control points")
	}
	f, err := NewField(sizeX, sizeZ)
	if err != nil {
		return nil, err
	}

	for z := 0; z < sizeZ; z++ {
		for x := 0; x < sizeX; x++ {
			var exactHeight, exactCount int
			var totalHeight, totalWeight float64

			for _, p := range points {
				if p.X == x && p.Z == z {
					exactHeight += p.Height
					exactCount++
					continue
				}
				dx := float64(x - p.X)
				dz := float64(z - p.Z)
				w := 1 / (dx*dx + dz*dz)
				totalHeight += float64(p.Height) * w
				totalWeight += w
			}

			var h int
			if exactCount > 0 {
				h = exactHeight / exactCount
			} else {
				h = int(totalHeight / totalWeight)
				if opts.Jitter > 0 {
					h += rng.Intn(opts.Jitter + 1)
				}
			}
			f.Set(x, z, clamp(h, 0, opts.MaxHeight))
		}
	}
	return f, nil
}

// PerlinOptions tunes noise synthesis.
type PerlinOptions struct {
	MaxHeight int
	Alpha     float64
	Beta      float64
	Octaves   int32
	Scale     float64
	Seed      int64
}

// Perlin builds a field from 2D Perlin noise mapped onto [0, MaxHeight].
func Perlin(sizeX, sizeZ int, opts PerlinOptions) (*Field, error) {
	f, err := NewField(sizeX, sizeZ)
	if err != nil {
		return nil, err
	}
	noise := perlin.NewPerlin(opts.Alpha, opts.Beta, opts.Octaves, opts.Seed)

	for z := 0; z < sizeZ; z++ {
		for x := 0; x < sizeX; x++ {
			// Noise2D is roughly in [-1, 1]
			n := (noise.Noise2D(float64(x)*opts.Scale, float64(z)*opts.Scale) + 1) / 2
			f.Set(x, z, clamp(int(n*float64(opts.MaxHeight)), 0, opts.MaxHeight))
		}
	}
	return f, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
