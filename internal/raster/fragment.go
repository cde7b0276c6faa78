package raster

import (
	"math"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
)

// Fragment is one covered pixel with attributes interpolated from its
// triangle. Fragments are transient; nothing retains them after shading.
type Fragment struct {
	Position       mathutil.Vec2 // pixel coordinates
	Color          color.Color
	Depth          float64 // NDC z, smaller is nearer
	Normal         mathutil.Vec3
	Intensity      float64
	VertexPosition mathutil.Vec3 // object space, before projection
	TexCoords      mathutil.Vec2
}

// Pixel returns the integer pixel the fragment covers.
func (f *Fragment) Pixel() (x, y int) {
	return int(math.Floor(f.Position[0])), int(math.Floor(f.Position[1]))
}
