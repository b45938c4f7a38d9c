// Package voxel provides the dense voxel grid the terrain pipeline builds.
package voxel

import "fmt"

// Kind is the material of a voxel.
type Kind uint8

// Voxel kinds.
const (
	Air   Kind = 0
	Solid Kind = 1
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Air:
		return "Air"
	case Solid:
		return "Solid"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Floats returns the color as normalized floats in [0, 1].
func (c Color) Floats() [3]float32 {
	return [3]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
	}
}

// Face identifies one of the six axis-aligned directions.
type Face int

// Face directions. Right/Left are +X/-X, Up/Down are +Y/-Y, Front/Back are +Z/-Z.
const (
	FaceUp Face = iota
	FaceDown
	FaceLeft
	FaceRight
	FaceFront
	FaceBack
)

// FaceCount is the number of axis-aligned faces.
const FaceCount = 6

// AllFaces lists every face in index order.
var AllFaces = [FaceCount]Face{FaceUp, FaceDown, FaceLeft, FaceRight, FaceFront, FaceBack}

var faceNormals = [FaceCount][3]int{
	FaceUp:    {0, 1, 0},
	FaceDown:  {0, -1, 0},
	FaceLeft:  {-1, 0, 0},
	FaceRight: {1, 0, 0},
	FaceFront: {0, 0, 1},
	FaceBack:  {0, 0, -1},
}

// Normal returns the unit integer vector the face points along.
func (f Face) Normal() [3]int {
	return faceNormals[f]
}

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face {
	switch f {
	case FaceUp:
		return FaceDown
	case FaceDown:
		return FaceUp
	case FaceLeft:
		return FaceRight
	case FaceRight:
		return FaceLeft
	case FaceFront:
		return FaceBack
	default:
		return FaceFront
	}
}

// String returns the face name.
func (f Face) String() string {
	switch f {
	case FaceUp:
		return "up"
	case FaceDown:
		return "down"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	default:
		return fmt.Sprintf("face(%d)", int(f))
	}
}

// Faces holds one scalar per face, indexed by Face.
type Faces [FaceCount]float32

// Add returns the element-wise sum.
func (f Faces) Add(other Faces) Faces {
	for i := range f {
		f[i] += other[i]
	}
	return f
}

// String formats the record as (up, down, left, right, front, back).
func (f Faces) String() string {
	return fmt.Sprintf("(%f, %f, %f, %f, %f, %f)",
		f[FaceUp], f[FaceDown], f[FaceLeft], f[FaceRight], f[FaceFront], f[FaceBack])
}

// Voxel is a single grid cell.
// Occlusion is only filled for Air voxels that border a Solid one.
type Voxel struct {
	Kind      Kind
	Color     Color
	Occlusion Faces
}

// IsSolid reports whether the voxel is Solid.
func (v Voxel) IsSolid() bool {
	return v.Kind == Solid
}

// String returns a diagnostic dump of the voxel.
func (v Voxel) String() string {
	return fmt.Sprintf("kind=%s color=(%d, %d, %d) occlusion=%s",
		v.Kind, v.Color.R, v.Color.G, v.Color.B, v.Occlusion)
}
