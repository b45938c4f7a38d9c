// Package heightfield builds the 2D height map the voxel terrain is raised from.
package heightfield

import "fmt"

// Point is a control sample the synthesized field interpolates between.
type Point struct {
	X, Z   int
	Height int
}

// Field maps every footprint cell (x, z) to an integer column height.
type Field struct {
	sizeX, sizeZ int
	heights      []int
}

// NewField allocates a zero-height field.
func NewField(sizeX, sizeZ int) (*Field, error) {
	if sizeX <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("invalid height field size %dx%d", sizeX, sizeZ)
	}
	return &Field{
		sizeX:   sizeX,
		sizeZ:   sizeZ,
		heights: make([]int, sizeX*sizeZ),
	}, nil
}

// Size returns the footprint extents.
func (f *Field) Size() (x, z int) {
	return f.sizeX, f.sizeZ
}

// Height returns the height at (x, z), or 0 outside the footprint.
func (f *Field) Height(x, z int) int {
	if x < 0 || x >= f.sizeX || z < 0 || z >= f.sizeZ {
		return 0
	}
	return f.heights[x+z*f.sizeX]
}

// Set stores the height at (x, z). Out-of-range coordinates are ignored.
func (f *Field) Set(x, z, h int) {
	if x < 0 || x >= f.sizeX || z < 0 || z >= f.sizeZ {
		return
	}
	f.heights[x+z*f.sizeX] = h
}

// Range returns the lowest and highest heights.
func (f *Field) Range() (lo, hi int) {
	lo, hi = f.heights[0], f.heights[0]
	for _, h := range f.heights[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	return lo, hi
}

// Validate checks the field fits a world of the given extents.
func (f *Field) Validate(sizeX, sizeY, sizeZ int) error {
	if f.sizeX != sizeX || f.sizeZ != sizeZ {
		return fmt.Errorf("height field is %dx%d, world footprint is %dx%d", f.sizeX, f.sizeZ, sizeX, sizeZ)
	}
	lo, hi := f.Range()
	if lo < 0 || hi > sizeY {
		return fmt.Errorf("heights span [%d, %d], world height is %d", lo, hi, sizeY)
	}
	return nil
}
