// Package camera provides the orbit camera used to inspect a field.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // Pitch, radians
	RotationY float32 // Yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FovY      float32 // Vertical field of view, radians
	Near, Far float32
}

// NewOrbitCamera creates a camera sized for a field a few tens of units
// across.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        15,
		RotationX:       0.45,
		MinDistance:     0.5,
		MaxDistance:     200,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            math32.Pi / 4,
		Near:            0.05,
		Far:             500,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sx, cx := math32.Sincos(c.RotationX)
	sy, cy := math32.Sincos(c.RotationY)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cx * sy,
		Y: c.Distance * sx,
		Z: c.Distance * cx * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProj returns projection × view.
func (c *OrbitCamera) ViewProj(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitField frames a field of the given plane size from a low angle.
func (c *OrbitCamera) FitField(planeSize float32) {
	c.Center = math.Vec3{Y: 0.3}
	c.Distance = clamp(planeSize*0.6, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.45
	c.RotationY = 0
	c.Far = max(c.Far, planeSize*4)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
