package occlusion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Path construction errors.
var (
	ErrZeroDirection = errors.New("ray direction has zero length")
	ErrInvalidStep   = errors.New("ray step must be in (0, 1)")
)

// Offset is a cell offset relative to the voxel a ray starts in.
type Offset struct {
	X, Y, Z int
}

// Path is the ordered sequence of cells a ray direction crosses.
// Consecutive offsets always differ.
type Path []Offset

// GenerateRayPath marches from the origin along dir in increments of step
// and records each new cell entered, truncating coordinates toward zero,
// until length offsets are collected.
func GenerateRayPath(dir mgl32.Vec3, step float64, length int) (Path, error) {
	if dir.Len() < 1e-6 {
		return nil, ErrZeroDirection
	}
	if step <= 0 || step >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}

	sx := float64(dir.X()) * step
	sy := float64(dir.Y()) * step
	sz := float64(dir.Z()) * step

	path := make(Path, 0, length)
	var x, y, z float64
	last := Offset{}
	for len(path) < length {
		x += sx
		y += sy
		z += sz

		cell := Offset{int(x), int(y), int(z)}
		if cell != last {
			path = append(path, cell)
			last = cell
		}
	}
	return path, nil
}
