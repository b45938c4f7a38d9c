// Package camera provides the drifting fly-over camera used by the viewer.
package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DriftCamera moves its eye and target at constant velocities.
type DriftCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Per-millisecond velocities.
	PositionDrift mgl32.Vec3
	TargetDrift   mgl32.Vec3

	FOV  float32 // degrees
	Near float32
	Far  float32
}

// NewDriftCamera places the camera at the low corner of a world of the given
// extents, looking across it toward the far corner.
func NewDriftCamera(sizeX, sizeY, sizeZ int, fov, near, far float32) *DriftCamera {
	sx, sy, sz := float32(sizeX), float32(sizeY), float32(sizeZ)
	return &DriftCamera{
		Position:      mgl32.Vec3{0, 0.5 * sy, 0.05 * sz},
		Target:        mgl32.Vec3{sx, 0.6 * sy, sz},
		Up:            mgl32.Vec3{0, 1, 0},
		PositionDrift: mgl32.Vec3{sx * 5e-5, sy * 1e-5, 0},
		TargetDrift:   mgl32.Vec3{-sx * 5e-5, 0, 0},
		FOV:           fov,
		Near:          near,
		Far:           far,
	}
}

// Advance moves the camera by dt worth of drift.
func (c *DriftCamera) Advance(dt time.Duration) {
	ms := float32(dt.Seconds() * 1000)
	c.Position = c.Position.Add(c.PositionDrift.Mul(ms))
	c.Target = c.Target.Add(c.TargetDrift.Mul(ms))
}

// View returns the world to eye transform.
func (c *DriftCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective transform for the given aspect ratio.
func (c *DriftCamera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Matrices returns the modelview and model-view-projection matrices for a
// viewport of the given size. The model transform is identity.
func (c *DriftCamera) Matrices(width, height int) (modelView, mvp mgl32.Mat4) {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	modelView = c.View()
	return modelView, c.Projection(aspect).Mul4(modelView)
}
