package voxel

import (
	"fmt"
	"math/rand"
)

// HeightSource yields the column height for a footprint cell.
type HeightSource interface {
	Size() (x, z int)
	Height(x, z int) int
}

// Palette describes the brightness band solid colors are drawn from.
// Each channel is sampled independently from [Lo, Lo+Span).
type Palette struct {
	Lo   int
	Span int
}

// DefaultPalette returns the stone gray band.
func DefaultPalette() Palette {
	return Palette{Lo: 120, Span: 16}
}

// Validate checks the band stays within a byte.
func (p Palette) Validate() error {
	if p.Lo < 0 || p.Span < 1 || p.Lo+p.Span > 256 {
		return fmt.Errorf("palette band [%d, %d) outside [0, 256)", p.Lo, p.Lo+p.Span)
	}
	return nil
}

func (p Palette) sample(rng *rand.Rand) Color {
	return Color{
		R: uint8(p.Lo + rng.Intn(p.Span)),
		G: uint8(p.Lo + rng.Intn(p.Span)),
		B: uint8(p.Lo + rng.Intn(p.Span)),
	}
}

// Populate fills the grid from a height source: a voxel is Solid when
// y < height of its column, else Air. Solid voxels get a random palette color.
// The height source footprint must match the grid's X and Z extents.
func Populate(g *Grid, heights HeightSource, palette Palette, rng *rand.Rand) error {
	if err := palette.Validate(); err != nil {
		return err
	}
	hx, hz := heights.Size()
	if hx != g.sizeX || hz != g.sizeZ {
		return fmt.Errorf("height field %dx%d does not match grid footprint %dx%d",
			hx, hz, g.sizeX, g.sizeZ)
	}

	for z := 0; z < g.sizeZ; z++ {
		for x := 0; x < g.sizeX; x++ {
			h := heights.Height(x, z)
			for y := 0; y < g.sizeY; y++ {
				cell := g.Cell(x, y, z)
				if y < h {
					cell.Kind = Solid
					cell.Color = palette.sample(rng)
				} else {
					*cell = Voxel{Kind: Air}
				}
			}
		}
	}
	return nil
}
