package render

import (
	"math"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/scene"
)

const orbitSegments = 64

// DrawOrbits traces each orbiting object's path as a polyline over the
// finished frame. Lines are not depth tested. Segments with an endpoint
// behind the camera are skipped.
func DrawOrbits(fb *raster.FrameBuffer, s *scene.Scene, c color.Color) {
	clip := mathutil.Mat4Mul(s.Projection.Matrix(fb.Width, fb.Height), s.Camera.View())
	vp := mathutil.Viewport(float64(fb.Width), float64(fb.Height))

	project := func(p mathutil.Vec3) (int, int, bool) {
		h := clip.MulVec4(p.Point())
		if h[3] <= 0 {
			return 0, 0, false
		}
		sp := vp.MulVec4(mathutil.Vec4{h[0] / h[3], h[1] / h[3], h[2] / h[3], 1})
		if !sp.XYZ().IsFinite() || math.Abs(sp[0]) > 1e4 || math.Abs(sp[1]) > 1e4 {
			return 0, 0, false
		}
		return int(math.Floor(sp[0])), int(math.Floor(sp[1])), true
	}

	for _, o := range s.Objects {
		if o.Orbit.Radius == 0 {
			continue
		}
		px, py, pok := 0, 0, false
		for i := 0; i <= orbitSegments; i++ {
			a := 2 * math.Pi * float64(i) / orbitSegments
			p := o.Position.Add(mathutil.Vec3{o.Orbit.Radius * math.Cos(a), 0, o.Orbit.Radius * math.Sin(a)})
			x, y, ok := project(p)
			if ok && pok {
				fb.DrawLine(px, py, x, y, c)
			}
			px, py, pok = x, y, ok
		}
	}
}
