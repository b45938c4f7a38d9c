package camera

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewDriftCamera(t *testing.T) {
	c := NewDriftCamera(200, 100, 400, 60, 0.1, 1024)

	assert.Equal(t, mgl32.Vec3{0, 50, 20}, c.Position)
	assert.True(t, c.Target.ApproxEqualThreshold(mgl32.Vec3{200, 60, 400}, 1e-4))
	assert.InDelta(t, 0.01, c.PositionDrift.X(), 1e-6)
	assert.InDelta(t, -0.01, c.TargetDrift.X(), 1e-6)
}

func TestAdvance(t *testing.T) {
	c := NewDriftCamera(200, 100, 400, 60, 0.1, 1024)
	c.Advance(time.Second)

	assert.InDelta(t, 10, c.Position.X(), 1e-3)
	assert.InDelta(t, 51, c.Position.Y(), 1e-3)
	assert.InDelta(t, 20, c.Position.Z(), 1e-3)
	assert.InDelta(t, 190, c.Target.X(), 1e-3)
	assert.InDelta(t, 60, c.Target.Y(), 1e-3)
}

func TestViewLooksDownNegativeZ(t *testing.T) {
	c := NewDriftCamera(64, 32, 64, 60, 0.1, 1024)

	eye := c.View().Mul4x1(c.Target.Vec4(1))
	assert.InDelta(t, 0, eye.X(), 1e-3)
	assert.InDelta(t, 0, eye.Y(), 1e-3)
	assert.Less(t, eye.Z(), float32(0))

	origin := c.View().Mul4x1(c.Position.Vec4(1))
	assert.InDelta(t, 0, origin.Vec3().Len(), 1e-3)
}

func TestMatricesTargetCentered(t *testing.T) {
	c := NewDriftCamera(64, 32, 64, 60, 0.1, 1024)
	_, mvp := c.Matrices(800, 600)

	clip := mvp.Mul4x1(c.Target.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-3)
	assert.InDelta(t, 0, ndc.Y(), 1e-3)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)
}
