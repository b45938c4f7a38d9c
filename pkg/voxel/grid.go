package voxel

import (
	"errors"
	"fmt"
)

// ErrInvalidExtents is returned when a grid is created with a non-positive size.
var ErrInvalidExtents = errors.New("invalid grid extents")

// Grid is a dense 3D array of voxels with fixed extents.
// Cells are stored at index x + y*SizeX + z*SizeX*SizeY.
type Grid struct {
	sizeX, sizeY, sizeZ int
	cells               []Voxel
}

// NewGrid allocates an all-Air grid.
func NewGrid(sizeX, sizeY, sizeZ int) (*Grid, error) {
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidExtents, sizeX, sizeY, sizeZ)
	}
	return &Grid{
		sizeX: sizeX,
		sizeY: sizeY,
		sizeZ: sizeZ,
		cells: make([]Voxel, sizeX*sizeY*sizeZ),
	}, nil
}

// Size returns the grid extents.
func (g *Grid) Size() (x, y, z int) {
	return g.sizeX, g.sizeY, g.sizeZ
}

// Len returns the number of stored cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// InBounds reports whether the coordinate addresses a stored cell.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.sizeX && y >= 0 && y < g.sizeY && z >= 0 && z < g.sizeZ
}

// Index returns the flat index of a coordinate and whether it is in bounds.
func (g *Grid) Index(x, y, z int) (int, bool) {
	if !g.InBounds(x, y, z) {
		return 0, false
	}
	return x + y*g.sizeX + z*g.sizeX*g.sizeY, true
}

// Coords is the inverse of Index.
func (g *Grid) Coords(i int) (x, y, z int) {
	x = i % g.sizeX
	y = (i / g.sizeX) % g.sizeY
	z = i / (g.sizeX * g.sizeY)
	return x, y, z
}

// At returns a copy of the voxel at the coordinate.
// ok is false for coordinates outside the grid.
func (g *Grid) At(x, y, z int) (v Voxel, ok bool) {
	i, ok := g.Index(x, y, z)
	if !ok {
		return Voxel{}, false
	}
	return g.cells[i], true
}

// Cell returns a pointer to the stored voxel, or nil outside the grid.
func (g *Grid) Cell(x, y, z int) *Voxel {
	i, ok := g.Index(x, y, z)
	if !ok {
		return nil
	}
	return &g.cells[i]
}

// CellAt returns a pointer to the voxel at a flat index.
func (g *Grid) CellAt(i int) *Voxel {
	return &g.cells[i]
}

// Set stores a voxel. It returns false for coordinates outside the grid.
func (g *Grid) Set(x, y, z int, v Voxel) bool {
	i, ok := g.Index(x, y, z)
	if !ok {
		return false
	}
	g.cells[i] = v
	return true
}

// IsSolid reports whether the coordinate holds a Solid voxel.
// Outside coordinates are never solid.
func (g *Grid) IsSolid(x, y, z int) bool {
	i, ok := g.Index(x, y, z)
	return ok && g.cells[i].Kind == Solid
}

// HasSolidNeighbor reports whether any of the six axis neighbors is Solid.
func (g *Grid) HasSolidNeighbor(x, y, z int) bool {
	for _, f := range AllFaces {
		n := f.Normal()
		if g.IsSolid(x+n[0], y+n[1], z+n[2]) {
			return true
		}
	}
	return false
}

// IsCandidate reports whether the cell is Air with at least one Solid neighbor.
// Only candidates can ever contribute faces to a mesh.
func (g *Grid) IsCandidate(x, y, z int) bool {
	i, ok := g.Index(x, y, z)
	if !ok || g.cells[i].Kind != Air {
		return false
	}
	return g.HasSolidNeighbor(x, y, z)
}

// CountSolid returns the number of Solid voxels.
func (g *Grid) CountSolid() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Kind == Solid {
			n++
		}
	}
	return n
}
