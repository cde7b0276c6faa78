package scene

import (
	"math"

	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/shader"
)

// Orbit moves an object on a circle in the XZ plane around its Position.
type Orbit struct {
	Radius float64
	Speed  float64 // radians per frame
	Phase  float64 // radians
}

// Object is one drawable: geometry, the surface that shades it and its
// transform. Angles are radians.
type Object struct {
	Name     string
	Vertices []raster.Vertex
	Surface  shader.Surface

	Position mathutil.Vec3
	Rotation mathutil.Vec3 // Euler XYZ
	Scale    float64
	Spin     mathutil.Vec3 // Euler XYZ added per frame
	Orbit    Orbit
}

// Model returns the model matrix at the given frame.
func (o *Object) Model(frame uint64) mathutil.Mat4 {
	f := float64(frame)
	pos := o.Position
	if o.Orbit.Radius != 0 {
		a := o.Orbit.Phase + o.Orbit.Speed*f
		pos = pos.Add(mathutil.Vec3{o.Orbit.Radius * math.Cos(a), 0, o.Orbit.Radius * math.Sin(a)})
	}
	rot := o.Rotation.Add(o.Spin.Scale(f))
	scale := o.Scale
	if scale == 0 {
		scale = 1
	}
	return mathutil.Model(pos, mathutil.EulerToQuat(rot[0], rot[1], rot[2]), scale)
}
