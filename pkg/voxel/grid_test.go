package voxel

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatHeights struct {
	x, z int
	h    func(x, z int) int
}

func (f flatHeights) Size() (int, int)     { return f.x, f.z }
func (f flatHeights) Height(x, z int) int { return f.h(x, z) }

func TestNewGridInvalidExtents(t *testing.T) {
	for _, size := range [][3]int{{0, 1, 1}, {1, -1, 1}, {1, 1, 0}} {
		_, err := NewGrid(size[0], size[1], size[2])
		assert.True(t, errors.Is(err, ErrInvalidExtents), "size %v", size)
	}
}

func TestGridIndexing(t *testing.T) {
	g, err := NewGrid(4, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 24, g.Len())

	i, ok := g.Index(1, 2, 1)
	require.True(t, ok)
	assert.Equal(t, 1+2*4+1*4*3, i)

	x, y, z := g.Coords(i)
	assert.Equal(t, [3]int{1, 2, 1}, [3]int{x, y, z})

	for _, c := range [][3]int{{-1, 0, 0}, {4, 0, 0}, {0, 3, 0}, {0, 0, 2}, {0, -1, 0}} {
		_, ok := g.At(c[0], c[1], c[2])
		assert.False(t, ok, "coord %v should be outside", c)
		assert.Nil(t, g.Cell(c[0], c[1], c[2]))
		assert.False(t, g.Set(c[0], c[1], c[2], Voxel{Kind: Solid}))
		assert.False(t, g.IsSolid(c[0], c[1], c[2]))
	}
}

func TestGridCandidates(t *testing.T) {
	g, err := NewGrid(3, 3, 3)
	require.NoError(t, err)
	require.True(t, g.Set(1, 1, 1, Voxel{Kind: Solid}))

	assert.True(t, g.IsCandidate(0, 1, 1))
	assert.True(t, g.IsCandidate(1, 2, 1))
	assert.False(t, g.IsCandidate(1, 1, 1), "solid voxel is never a candidate")
	assert.False(t, g.IsCandidate(0, 0, 0), "diagonal neighbors do not count")
	assert.False(t, g.IsCandidate(5, 5, 5))
}

func TestPopulateStrictHeight(t *testing.T) {
	g, err := NewGrid(2, 4, 2)
	require.NoError(t, err)

	heights := flatHeights{x: 2, z: 2, h: func(x, z int) int { return x + z + 1 }}
	require.NoError(t, Populate(g, heights, DefaultPalette(), rand.New(rand.NewSource(1))))

	for z := 0; z < 2; z++ {
		for x := 0; x < 2; x++ {
			h := x + z + 1
			for y := 0; y < 4; y++ {
				v, ok := g.At(x, y, z)
				require.True(t, ok)
				if y < h {
					assert.Equal(t, Solid, v.Kind, "(%d,%d,%d)", x, y, z)
				} else {
					assert.Equal(t, Air, v.Kind, "(%d,%d,%d)", x, y, z)
				}
			}
		}
	}
	assert.Equal(t, 1+2+2+3, g.CountSolid())
}

func TestPopulateColorBand(t *testing.T) {
	g, err := NewGrid(8, 8, 8)
	require.NoError(t, err)

	palette := Palette{Lo: 40, Span: 8}
	heights := flatHeights{x: 8, z: 8, h: func(int, int) int { return 8 }}
	require.NoError(t, Populate(g, heights, palette, rand.New(rand.NewSource(7))))

	for i := 0; i < g.Len(); i++ {
		c := g.CellAt(i).Color
		for _, ch := range []uint8{c.R, c.G, c.B} {
			assert.GreaterOrEqual(t, int(ch), 40)
			assert.Less(t, int(ch), 48)
		}
	}
}

func TestPopulateMismatchedFootprint(t *testing.T) {
	g, err := NewGrid(4, 4, 4)
	require.NoError(t, err)
	heights := flatHeights{x: 3, z: 4, h: func(int, int) int { return 1 }}
	assert.Error(t, Populate(g, heights, DefaultPalette(), rand.New(rand.NewSource(1))))
}

func TestPaletteValidate(t *testing.T) {
	assert.NoError(t, DefaultPalette().Validate())
	assert.Error(t, Palette{Lo: 250, Span: 10}.Validate())
	assert.Error(t, Palette{Lo: 10, Span: 0}.Validate())
}

func TestFaceOpposite(t *testing.T) {
	for _, f := range AllFaces {
		n, o := f.Normal(), f.Opposite().Normal()
		assert.Equal(t, [3]int{-n[0], -n[1], -n[2]}, o, f.String())
	}
}
