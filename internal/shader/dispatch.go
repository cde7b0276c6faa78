package shader

import (
	"errors"
	"fmt"

	"planet-renderer/internal/color"
	"planet-renderer/internal/noise"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/texture"
)

var (
	ErrMissingTexture   = errors.New("shader: surface samples a texture but none was provided")
	ErrMissingNormalMap = errors.New("shader: surface samples a normal map but none was provided")
)

// fallbackNoise serves uniforms built without a noise handle.
var fallbackNoise = noise.New(1)

// Dispatcher owns the samplers that surfaces read. It is immutable after
// construction and safe for concurrent use.
type Dispatcher struct {
	tex     *texture.Texture
	normals *texture.NormalMap
}

// NewDispatcher injects the samplers. Either may be nil when no surface in
// the scene samples it; Validate reports the mismatch.
func NewDispatcher(tex *texture.Texture, normals *texture.NormalMap) *Dispatcher {
	return &Dispatcher{tex: tex, normals: normals}
}

// Validate reports whether s can be shaded with the injected samplers.
func (d *Dispatcher) Validate(s Surface) error {
	switch s := s.(type) {
	case Oceanic:
		if d.tex == nil {
			return fmt.Errorf("%w (%s)", ErrMissingTexture, s.Name())
		}
		if s.NormalMapped && d.normals == nil {
			return fmt.Errorf("%w (%s)", ErrMissingNormalMap, s.Name())
		}
	case EmissiveCore:
		if s.Textured && d.tex == nil {
			return fmt.Errorf("%w (%s)", ErrMissingTexture, s.Name())
		}
	case nil:
		return errors.New("shader: nil surface")
	}
	return nil
}

// Shade colours one fragment. It returns the exposed base colour and, for
// emissive surfaces, the emissive contribution with ok set.
//
// Shade panics if s samples a resource that was not injected.
func (d *Dispatcher) Shade(f *raster.Fragment, u *raster.Uniforms, s Surface) (base, emission color.Color, ok bool) {
	ctx := shadeContext{frag: f, u: u, noise: u.Noise, time: float64(u.Frame)}
	if ctx.noise == nil {
		ctx.noise = fallbackNoise
	}

	switch s := s.(type) {
	case VertexColor:
		base = f.Color
	case Rocky:
		base = s.shade(&ctx)
	case Gaseous:
		base = s.shade(&ctx)
	case Frozen:
		base = s.shade(&ctx)
	case Terran:
		base = s.shade(&ctx)
	case Oceanic:
		base = s.shade(&ctx, d.texture(), d.normalMap(s.NormalMapped))
	case Metallic:
		base = s.shade(&ctx)
	case EmissiveCore:
		var tex *texture.Texture
		if s.Textured {
			tex = d.texture()
		}
		base, emission = s.shade(&ctx, tex)
		ok = true
	case Wormhole:
		base, emission = s.shade(&ctx)
		ok = true
	default:
		panic(fmt.Sprintf("shader: unknown surface %T", s))
	}
	return Exposure(base, f.Depth, f.Intensity), emission, ok
}

func (d *Dispatcher) texture() *texture.Texture {
	if d.tex == nil {
		panic(ErrMissingTexture)
	}
	return d.tex
}

func (d *Dispatcher) normalMap(needed bool) *texture.NormalMap {
	if !needed {
		return nil
	}
	if d.normals == nil {
		panic(ErrMissingNormalMap)
	}
	return d.normals
}

// Exposure darkens c with depth, then scales it by the lighting intensity.
// brightness = clamp(1 - depth*0.5, 0, 1).
func Exposure(c color.Color, depth, intensity float64) color.Color {
	brightness := 1 - depth*0.5
	if !(brightness > 0) {
		brightness = 0
	} else if brightness > 1 {
		brightness = 1
	}
	return c.Scale(brightness).Scale(intensity)
}

// shadeContext is what a surface reads while shading one fragment.
type shadeContext struct {
	frag  *raster.Fragment
	u     *raster.Uniforms
	noise *noise.Generator
	time  float64
}

func (c *shadeContext) noise2(kind noise.Kind, freq, dx, dy float64) float64 {
	return c.noise.Eval2(kind, freq, c.frag.Position[0]+dx, c.frag.Position[1]+dy)
}
