package scene

import (
	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/mesh"
	"planet-renderer/internal/noise"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/shader"
)

// Projection holds the perspective parameters. FOV is vertical, in degrees.
type Projection struct {
	FOV       float64
	Near, Far float64
}

// DefaultProjection is 45° with near 0.1 and far 100.
func DefaultProjection() Projection {
	return Projection{FOV: 45, Near: 0.1, Far: 100}
}

// Matrix returns the projection for a width×height target.
func (p Projection) Matrix(width, height int) mathutil.Mat4 {
	return mathutil.Perspective(mathutil.Deg2Rad(p.FOV), float64(width)/float64(height), p.Near, p.Far)
}

// Scene is everything drawn in a frame.
type Scene struct {
	Camera     *Camera
	Projection Projection
	Objects    []*Object
	Skybox     *Skybox
	Background color.Color
	Noise      *noise.Generator

	// TextureName and NormalMapName are resolved through a texture cache
	// by whoever builds the shader dispatcher. Empty means none.
	TextureName   string
	NormalMapName string
}

// Uniforms builds the uniform bundle for one object at one frame.
func (s *Scene) Uniforms(o *Object, frame uint64, width, height int, emission float64) raster.Uniforms {
	u := raster.NewUniforms(
		o.Model(frame),
		s.Camera.View(),
		s.Projection.Matrix(width, height),
		mathutil.Viewport(float64(width), float64(height)),
	)
	u.Frame = frame
	u.Noise = s.Noise
	u.EmissionIntensity = emission
	return u
}

// Default returns a small system: a terran planet at the origin, a gas giant
// and a frozen moon on orbits, and a wormhole in the distance.
func Default(stars int, seed int64) *Scene {
	sphere := mesh.Sphere(24, 32).VertexArray()
	obj := func(name string, s shader.Surface, pos mathutil.Vec3, scale float64) *Object {
		return &Object{
			Name:     name,
			Vertices: sphere,
			Surface:  s,
			Position: pos,
			Scale:    scale,
			Spin:     mathutil.Vec3{0, 0.01, 0},
		}
	}

	giant := obj("giant", shader.DefaultGaseous(), mathutil.Vec3{}, 0.6)
	giant.Orbit = Orbit{Radius: 3, Speed: 0.01}
	moon := obj("moon", shader.DefaultFrozen(), mathutil.Vec3{}, 0.3)
	moon.Orbit = Orbit{Radius: 1.8, Speed: 0.025, Phase: 2}

	return &Scene{
		Camera:     NewCamera(mathutil.Vec3{0, 2, 8}, mathutil.Vec3{}, mathutil.Vec3{0, 1, 0}),
		Projection: DefaultProjection(),
		Objects: []*Object{
			obj("earth", shader.DefaultTerran(), mathutil.Vec3{}, 1),
			giant,
			moon,
			obj("wormhole", shader.DefaultWormhole(), mathutil.Vec3{-4, 1, -6}, 1),
		},
		Skybox:     NewSkybox(stars, uint64(seed)),
		Background: color.Black,
		Noise:      noise.New(seed),
	}
}
