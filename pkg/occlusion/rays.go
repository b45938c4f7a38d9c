// Package occlusion precomputes per-face ambient occlusion for a voxel grid
// by marching a fixed set of sample rays from every exposed Air voxel.
package occlusion

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stone/pkg/voxel"
)

// FaceEpsilon is the smallest per-face weight total a usable ray set may have.
const FaceEpsilon = 1e-6

// Ray is a unit sample direction and how strongly it lets light escape
// through each of the six faces.
type Ray struct {
	Dir     mgl32.Vec3
	Weights voxel.Faces
}

// GenerateRays places n directions on the unit sphere with the
// Fibonacci (golden angle) spiral. The result depends only on n.
func GenerateRays(n int) []Ray {
	rays := make([]Ray, n)

	inc := math.Pi * (3 - math.Sqrt(5))
	off := 2 / float64(n)

	for i := range rays {
		y := float64(i)*off - 1 + off/2
		r := math.Sqrt(1 - y*y)
		phi := float64(i) * inc

		dir := mgl32.Vec3{
			float32(math.Cos(phi) * r),
			float32(y),
			float32(math.Sin(phi) * r),
		}
		rays[i] = Ray{Dir: dir, Weights: EscapeWeights(dir)}
	}
	return rays
}

// EscapeWeights splits a direction into the six positive half-axis buckets.
func EscapeWeights(dir mgl32.Vec3) voxel.Faces {
	var w voxel.Faces
	w[voxel.FaceRight] = max(dir.X(), 0)
	w[voxel.FaceLeft] = max(-dir.X(), 0)
	w[voxel.FaceUp] = max(dir.Y(), 0)
	w[voxel.FaceDown] = max(-dir.Y(), 0)
	w[voxel.FaceFront] = max(dir.Z(), 0)
	w[voxel.FaceBack] = max(-dir.Z(), 0)
	return w
}

// DegenerateRaysError reports a ray set in which some face receives no weight.
type DegenerateRaysError struct {
	Faces  []voxel.Face
	Totals voxel.Faces
	Rays   []Ray
}

func (e *DegenerateRaysError) Error() string {
	names := make([]string, len(e.Faces))
	for i, f := range e.Faces {
		names[i] = f.String()
	}
	return fmt.Sprintf("degenerate ray set of %d rays: no weight on face(s) %s, totals %s",
		len(e.Rays), strings.Join(names, ", "), e.Totals)
}

// Dump lists every ray direction with its face weights.
func (e *DegenerateRaysError) Dump() string {
	var b strings.Builder
	for i, r := range e.Rays {
		fmt.Fprintf(&b, "ray %d: dir=(%f, %f, %f) weights=%s\n",
			i, r.Dir.X(), r.Dir.Y(), r.Dir.Z(), r.Weights)
	}
	return b.String()
}

// FaceTotals sums the escape weights of all rays per face. It fails with a
// *DegenerateRaysError when any total is below FaceEpsilon, since that face
// could never be normalized.
func FaceTotals(rays []Ray) (voxel.Faces, error) {
	var totals voxel.Faces
	for _, r := range rays {
		totals = totals.Add(r.Weights)
	}

	var degenerate []voxel.Face
	for _, f := range voxel.AllFaces {
		if totals[f] < FaceEpsilon {
			degenerate = append(degenerate, f)
		}
	}
	if len(degenerate) > 0 {
		return totals, &DegenerateRaysError{Faces: degenerate, Totals: totals, Rays: rays}
	}
	return totals, nil
}
