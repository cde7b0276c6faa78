package raster

import (
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/noise"
)

// Uniforms is the per-object, per-frame state shared read-only by every
// vertex and fragment of one draw.
type Uniforms struct {
	Model      mathutil.Mat4
	View       mathutil.Mat4
	Projection mathutil.Mat4
	Viewport   mathutil.Mat4

	// Transform is Projection × View × Model.
	Transform mathutil.Mat4
	// NormalMatrix is the inverse-transpose of Model's linear part.
	NormalMatrix mathutil.Mat3

	Frame             uint64
	Noise             *noise.Generator
	EmissionIntensity float64
}

// NewUniforms precomposes the transform and normal matrix. Frame, Noise and
// EmissionIntensity are left for the caller.
func NewUniforms(model, view, projection, viewport mathutil.Mat4) Uniforms {
	return Uniforms{
		Model:        model,
		View:         view,
		Projection:   projection,
		Viewport:     viewport,
		Transform:    mathutil.Mat4Mul(projection, mathutil.Mat4Mul(view, model)),
		NormalMatrix: model.Linear().NormalMatrix(),
	}
}
