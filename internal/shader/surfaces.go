package shader

import (
	"math"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/noise"
	"planet-renderer/internal/texture"
)

// bandSquash flattens gas-giant band noise along x and z.
const bandSquash = 0.2

// diffuse is max(0, n·l).
func diffuse(n, light mathutil.Vec3) float64 {
	return math.Max(0, n.Dot(light))
}

func (s Rocky) shade(c *shadeContext) color.Color {
	drift := c.time * s.DustSpeed
	dust := c.noise2(noise.OpenSimplex, s.DuneFreq, drift, drift)
	dune := c.noise2(noise.OpenSimplex, s.DuneFreq, 0, 0)
	rock := math.Abs(c.noise2(noise.Cellular, s.RockFreq, 0, 0))

	var surface color.Color
	if dune > s.DuneThreshold {
		surface = s.Sand.Lerp(s.Rock, rock)
	} else {
		surface = s.Sand.Lerp(s.Cracked, rock)
	}
	dusty := surface.Lerp(s.Sand, math.Abs(dust)*s.DustAmount)
	lit := dusty.Scale(0.6 + 0.4*diffuse(c.frag.Normal, s.Light))

	fog := (c.frag.VertexPosition.Len() - 0.7) / 0.3
	return lit.Lerp(s.Fog, fog)
}

func (s Gaseous) shade(c *shadeContext) color.Color {
	drift := c.time * s.Speed
	// Bands follow latitude on the body itself: x and z are squashed so the
	// field varies mostly with object-space y.
	p3 := c.frag.VertexPosition
	band := c.noise.Eval3(noise.Perlin, s.BandFreq, p3[0]*bandSquash, p3[1], p3[2]*bandSquash+drift)
	turb := c.noise2(noise.Perlin, s.TurbFreq, drift, 0)

	col := s.Bands[len(s.Bands)-1]
	for i, limit := range s.BandLimits {
		if band < limit {
			col = s.Bands[i]
			break
		}
	}
	col = col.Lerp(s.Bands[1], math.Abs(turb)*s.TurbAmount)

	p := mathutil.Vec2{c.frag.VertexPosition[0], c.frag.VertexPosition[1]}
	if d := p.Dist(s.SpotCenter); d < s.SpotRadius {
		col = s.Spot.Lerp(s.SpotHighlight, (s.SpotRadius-d)/s.SpotRadius)
	}
	return col.Scale(0.7 + 0.3*diffuse(c.frag.Normal, s.Light))
}

func (s Frozen) shade(c *shadeContext) color.Color {
	n := 0.1 * ((c.noise2(noise.Perlin, s.Freq, 0, 0) + 1) / 5)

	var surface color.Color
	switch {
	case n < s.SnowBelow:
		surface = s.Snow
	case n < s.CrackBelow:
		surface = s.Crack
	default:
		surface = s.Ice
	}
	reflective := surface.Scale(0.7 + 0.3*diffuse(c.frag.Normal, s.Light))

	fog := c.noise2(noise.OpenSimplex, s.FogFreq, c.time*s.FogSpeed, 0)
	return reflective.Lerp(s.Cloud, (fog+1)/2*s.FogStrength)
}

func (s Terran) shade(c *shadeContext) color.Color {
	tectonic := c.time * s.TectonicSpeed
	terrain := c.noise2(noise.OpenSimplex, s.TerrainFreq, tectonic, tectonic)

	var ground color.Color
	switch {
	case terrain < s.OceanBelow:
		current := c.noise2(noise.Perlin, s.CurrentFreq, c.time*0.2, 0)
		ground = s.DeepOcean.Lerp(s.ShallowOcean, math.Abs(current))
	case terrain < s.LandBelow:
		ground = s.Land.Lerp(s.Mountain, math.Abs(terrain)*0.4)
	default:
		ground = s.Mountain
	}

	cloud := c.noise2(noise.Perlin, s.CloudFreq, c.time*s.CloudSpeed, 0)
	layered := ground.Lerp(s.Cloud, (cloud+1)/2*0.5)

	rim := (c.frag.VertexPosition.Len() - s.AtmosphereStart) / 0.3
	return layered.Lerp(s.Atmosphere, rim)
}

func (s Oceanic) shade(c *shadeContext, tex *texture.Texture, normals *texture.NormalMap) color.Color {
	uv := c.frag.TexCoords
	base := tex.Sample(uv[0], uv[1])
	if normals == nil {
		return base
	}

	n := c.frag.Normal.Add(normals.Sample(uv[0], uv[1])).Normalize()
	reflect := n.Scale(2 * n.Dot(s.Light)).Sub(s.Light)
	spec := math.Pow(math.Max(0, reflect.Dot(n)), s.Shininess)
	return base.BlendAdd(s.Highlight.Scale(spec))
}

func (s Metallic) shade(c *shadeContext) color.Color {
	reflection := mathutil.Clamp(c.noise2(noise.OpenSimplex, s.Freq, 0, 0)*1.5, -1, 0)
	surface := s.Metal.Lerp(s.Highlight, math.Abs(reflection)*0.5*c.frag.Intensity)

	aura := mathutil.Clamp(s.AuraRadius-c.frag.VertexPosition.Len(), 0, 1) * 0.5
	return surface.Lerp(s.Aura, aura)
}

func (s EmissiveCore) shade(c *shadeContext, tex *texture.Texture) (base, emission color.Color) {
	ei := c.u.EmissionIntensity
	if tex != nil {
		uv := c.frag.TexCoords
		base = tex.Sample(uv[0], uv[1])
		return base, base.Scale(ei)
	}

	r := c.frag.VertexPosition.Len()
	base = s.Horizon
	if r > s.DiskInner && r < s.DiskOuter {
		pulse := (math.Sin(c.time*s.PulseSpeed)*0.5 + 0.5) * 1.5
		glow := mathutil.Clamp(1/(1+(r-s.HorizonRadius)*10), 1, 2)
		base = s.Disk.Scale(pulse).Scale(glow)
	}
	return base, base.Scale(ei * (1 + r*0.5))
}

func (s Wormhole) shade(c *shadeContext) (base, emission color.Color) {
	p := c.frag.VertexPosition
	r := p.Len()

	angle := c.time * s.Spin
	cos, sin := math.Cos(angle), math.Sin(angle)
	rx := p[0]*cos - p[1]*sin
	ry := p[0]*sin + p[1]*cos

	base = s.Core
	if r > s.InnerRadius && r < s.BorderRadius {
		t := (r - s.InnerRadius) / (s.BorderRadius - s.InnerRadius)
		base = base.Lerp(s.Border, 1-t*t)
	}
	horizontal := math.Abs(ry) < s.CrossThickness && math.Abs(rx) < s.CrossLength
	vertical := math.Abs(rx) < s.CrossThickness && math.Abs(ry) < s.CrossLength
	if horizontal || vertical {
		base = base.Lerp(s.Cross, 1-r/s.InnerRadius)
	}
	return base, base.Scale(c.u.EmissionIntensity * s.Boost)
}
