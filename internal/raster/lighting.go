package raster

import "planet-renderer/internal/mathutil"

// Light derives the per-vertex intensity scalar that fragments interpolate.
type Light struct {
	Dir     mathutil.Vec3 // towards the light, world space
	Ambient float64       // floor applied to faces turned away
}

// DefaultLight shines from the +z side, towards a camera placed on +z.
func DefaultLight() Light {
	return Light{
		Dir:     mathutil.Vec3{0, 0, 1},
		Ambient: 0.15,
	}
}

// Intensity returns ambient + (1-ambient)·max(0, n·l), in [0,1] for unit normals.
func (l Light) Intensity(normal mathutil.Vec3) float64 {
	ndl := normal.Dot(l.Dir.Normalize())
	if ndl < 0 {
		ndl = 0
	}
	return mathutil.Clamp(l.Ambient+(1-l.Ambient)*ndl, 0, 1)
}
