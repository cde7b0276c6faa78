package scene

import (
	"math"
	"math/rand/v2"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/raster"
)

const (
	starRadius = 100.0
	// starDepth is behind anything the projection maps into NDC.
	starDepth = 1000.0
)

// Star is one backdrop point.
type Star struct {
	Position   mathutil.Vec3
	Brightness float64 // [0,1)
	Size       int     // 1..3
}

// Skybox is a fixed field of stars on a sphere around the camera.
type Skybox struct {
	Stars []Star
}

// NewSkybox scatters count stars with a deterministic seed.
func NewSkybox(count int, seed uint64) *Skybox {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	sb := &Skybox{Stars: make([]Star, count)}
	for i := range sb.Stars {
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi
		sb.Stars[i] = Star{
			Position: mathutil.Vec3{
				starRadius * math.Sin(phi) * math.Cos(theta),
				starRadius * math.Cos(phi),
				starRadius * math.Sin(phi) * math.Sin(theta),
			},
			Brightness: rng.Float64(),
			Size:       1 + rng.IntN(3),
		}
	}
	return sb
}

// Render draws the stars at starDepth so that all geometry covers them.
// Only the view's rotation applies: stars turn with the camera but never
// get closer. It returns the number of stars drawn.
func (sb *Skybox) Render(fb *raster.FrameBuffer, view, projection, viewport mathutil.Mat4) int {
	rot := mathutil.FromMat3Translation(view.Linear(), mathutil.Vec3{})
	clip := mathutil.Mat4Mul(projection, rot)

	drawn := 0
	for _, s := range sb.Stars {
		p := clip.MulVec4(s.Position.Point())
		if p[3] <= 0 {
			continue
		}
		ndc := mathutil.Vec4{p[0] / p[3], p[1] / p[3], p[2] / p[3], 1}
		screen := viewport.MulVec4(ndc)
		if screen[2] < 0 || !screen.XYZ().IsFinite() {
			continue
		}
		x, y := int(math.Floor(screen[0])), int(math.Floor(screen[1]))
		if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
			continue
		}

		v := uint8(s.Brightness * 255)
		c := color.New(v, v, v)
		for _, o := range starShape(s.Size) {
			fb.Write(x+o[0], y+o[1], starDepth, c)
		}
		drawn++
	}
	return drawn
}

var starShapes = [...][][2]int{
	{{0, 0}},
	{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}},
}

func starShape(size int) [][2]int {
	if size < 1 || size > len(starShapes) {
		size = 1
	}
	return starShapes[size-1]
}
