// Package scene assembles what the pipeline draws each frame: a camera, the
// objects with their surfaces and transforms, and a star backdrop.
package scene

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// pitchLimit keeps the orbiting eye off the poles where the view basis
// degenerates.
const pitchLimit = math.Pi/2 - 0.1

// minDistance is the closest Zoom lets the eye approach the center.
const minDistance = 0.1

// Camera is a look-at camera that orbits its center.
type Camera struct {
	Eye, Center, Up mathutil.Vec3
	Yaw, Pitch      float64

	// HasChanged is set by every mutation; frame loops clear it after
	// redrawing.
	HasChanged bool
}

func NewCamera(eye, center, up mathutil.Vec3) *Camera {
	return &Camera{Eye: eye, Center: center, Up: up, HasChanged: true}
}

// View returns the look-at view matrix.
func (c *Camera) View() mathutil.Mat4 {
	return mathutil.LookAt(c.Eye, c.Center, c.Up)
}

// Forward is the unit direction from eye to center.
func (c *Camera) Forward() mathutil.Vec3 {
	return c.Center.Sub(c.Eye).Normalize()
}

// Distance is the eye-to-center distance.
func (c *Camera) Distance() float64 {
	return c.Center.Sub(c.Eye).Len()
}

// BasisChange maps a camera-space direction (x right, y up, z toward the
// viewer) to a unit world-space direction.
func (c *Camera) BasisChange(v mathutil.Vec3) mathutil.Vec3 {
	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()
	return right.Scale(v[0]).Add(up.Scale(v[1])).Sub(forward.Scale(v[2])).Normalize()
}

// Orbit rotates the eye around the center, keeping the distance. Pitch is
// clamped short of straight up or down.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	r := c.Eye.Sub(c.Center)
	radius := r.Len()

	c.Yaw = math.Mod(math.Atan2(r[2], r[0])+deltaYaw, 2*math.Pi)
	radiusXZ := math.Hypot(r[0], r[2])
	c.Pitch = mathutil.Clamp(math.Atan2(-r[1], radiusXZ)+deltaPitch, -pitchLimit, pitchLimit)

	c.Eye = c.Center.Add(mathutil.Vec3{
		radius * math.Cos(c.Yaw) * math.Cos(c.Pitch),
		-radius * math.Sin(c.Pitch),
		radius * math.Sin(c.Yaw) * math.Cos(c.Pitch),
	})
	c.HasChanged = true
}

// Zoom moves the eye toward the center by delta (away when negative), never
// closer than minDistance.
func (c *Camera) Zoom(delta float64) {
	dist := c.Distance()
	delta = math.Min(delta, dist-minDistance)
	c.Eye = c.Eye.Add(c.Forward().Scale(delta))
	c.HasChanged = true
}

// MoveCenter turns the view direction around the eye: dir.x pans around the
// world Y axis and dir.y tilts around the camera's right axis.
func (c *Camera) MoveCenter(dir mathutil.Vec3) {
	r := c.Center.Sub(c.Eye)
	radius := r.Len()

	rotated := mathutil.RotateAround(r, mathutil.Vec3{0, 1, 0}, dir[0]*0.05)
	right := rotated.Cross(c.Up).Normalize()
	rotated = mathutil.RotateAround(rotated, right, dir[1]*0.05)

	c.Center = c.Eye.Add(rotated.Normalize().Scale(radius))
	c.HasChanged = true
}
