// Package camera provides an orbit camera for viewing the visualizations.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/qwes348/Pseudorandom-Noise/config"
)

// Pitch stays short of the poles so the up vector never aligns with the
// view direction.
const maxPitch = 89

// Orbit circles a target point at a fixed distance.
type Orbit struct {
	// Target is the point the camera looks at
	Target mgl32.Vec3

	// Spherical placement around Target, angles in degrees
	Yaw, Pitch float32
	Distance   float32

	// Vertical field of view, degrees
	FOV float32

	// Distance constraints
	MinDistance, MaxDistance float32

	initial config.CameraConfig
}

// New creates a camera looking at the origin.
func New(cfg config.CameraConfig) *Orbit {
	c := &Orbit{
		MinDistance: 0.5,
		MaxDistance: 50,
		initial:     cfg,
	}
	c.Reset()
	return c
}

// Reset returns the camera to its configured placement.
func (c *Orbit) Reset() {
	c.Target = mgl32.Vec3{}
	c.Yaw = wrap(c.initial.Yaw)
	c.Pitch = clamp(c.initial.Pitch, -maxPitch, maxPitch)
	c.FOV = c.initial.FOV
	if c.FOV <= 0 {
		c.FOV = 45
	}
	c.SetDistance(c.initial.Distance)
}

// Position returns the camera eye in world coordinates.
func (c *Orbit) Position() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	cp := math32.Cos(pitch)
	offset := mgl32.Vec3{
		cp * math32.Sin(yaw),
		math32.Sin(pitch),
		cp * math32.Cos(yaw),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// Up returns the camera up vector.
func (c *Orbit) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}
}

// View returns the world-to-camera matrix.
func (c *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, c.Up())
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Orbit) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, near, far)
}

// Rotate turns the camera by the given deltas in degrees.
func (c *Orbit) Rotate(dyaw, dpitch float32) {
	c.Yaw = wrap(c.Yaw + dyaw)
	c.Pitch = clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// SetDistance sets the orbit radius, clamped to min/max.
func (c *Orbit) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the distance by factor; factors above 1 move closer.
func (c *Orbit) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// wrap maps an angle to [0, 360).
func wrap(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
