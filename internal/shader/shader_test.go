package shader

import (
	"errors"
	"image"
	stdcolor "image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/noise"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/texture"
)

func solidTexture(c stdcolor.NRGBA) *texture.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, c)
		}
	}
	return texture.FromImage(img)
}

func flatNormals() *texture.NormalMap {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, stdcolor.NRGBA{128, 128, 255, 255})
	return texture.NormalMapFromImage(img)
}

func testFragment(pos mathutil.Vec3) *raster.Fragment {
	return &raster.Fragment{
		Position:       mathutil.Vec2{40, 30},
		Color:          color.New(200, 100, 50),
		Depth:          0,
		Normal:         mathutil.Vec3{0, 0, 1},
		Intensity:      1,
		VertexPosition: pos,
		TexCoords:      mathutil.Vec2{0.25, 0.75},
	}
}

func testUniforms() *raster.Uniforms {
	u := raster.NewUniforms(mathutil.Mat4Identity(), mathutil.Mat4Identity(), mathutil.Mat4Identity(), mathutil.Mat4Identity())
	u.Noise = noise.New(7)
	u.EmissionIntensity = 1
	return &u
}

func TestExposure(t *testing.T) {
	c := color.New(200, 100, 50)

	tests := []struct {
		name             string
		depth, intensity float64
		want             color.Color
	}{
		{"near full light", 0, 1, c},
		{"half brightness", 1, 1, color.New(100, 50, 25)},
		{"beyond falloff", 2.5, 1, color.Black},
		{"negative depth clamps", -3, 1, c},
		{"intensity scales after brightness", 1, 0.5, color.New(50, 25, 12)},
		{"NaN intensity", 0, math.NaN(), color.Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Exposure(c, tt.depth, tt.intensity))
		})
	}
}

func TestVertexColorPassesThroughExposure(t *testing.T) {
	d := NewDispatcher(nil, nil)
	f := testFragment(mathutil.Vec3{})
	f.Depth = 1

	base, emission, ok := d.Shade(f, testUniforms(), VertexColor{})
	assert.Equal(t, color.New(100, 50, 25), base)
	assert.Equal(t, color.Black, emission)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tex := solidTexture(stdcolor.NRGBA{10, 20, 30, 255})
	mapped := DefaultOceanic()
	mapped.NormalMapped = true
	textured := DefaultEmissiveCore()
	textured.Textured = true

	tests := []struct {
		name    string
		d       *Dispatcher
		surface Surface
		want    error
	}{
		{"procedural needs nothing", NewDispatcher(nil, nil), DefaultRocky(), nil},
		{"oceanic needs texture", NewDispatcher(nil, nil), DefaultOceanic(), ErrMissingTexture},
		{"oceanic with texture", NewDispatcher(tex, nil), DefaultOceanic(), nil},
		{"normal mapped needs normals", NewDispatcher(tex, nil), mapped, ErrMissingNormalMap},
		{"normal mapped with both", NewDispatcher(tex, flatNormals()), mapped, nil},
		{"textured core needs texture", NewDispatcher(nil, nil), textured, ErrMissingTexture},
		{"procedural core", NewDispatcher(nil, nil), DefaultEmissiveCore(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate(tt.surface)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
	assert.Error(t, NewDispatcher(nil, nil).Validate(nil))
}

func TestShadePanicsWithoutInjectedTexture(t *testing.T) {
	d := NewDispatcher(nil, nil)
	assert.Panics(t, func() {
		d.Shade(testFragment(mathutil.Vec3{}), testUniforms(), DefaultOceanic())
	})

	mapped := DefaultOceanic()
	mapped.NormalMapped = true
	d = NewDispatcher(solidTexture(stdcolor.NRGBA{1, 2, 3, 255}), nil)
	assert.Panics(t, func() {
		d.Shade(testFragment(mathutil.Vec3{}), testUniforms(), mapped)
	})
}

func TestOceanicSamplesTexture(t *testing.T) {
	d := NewDispatcher(solidTexture(stdcolor.NRGBA{10, 20, 30, 255}), flatNormals())
	base, _, ok := d.Shade(testFragment(mathutil.Vec3{}), testUniforms(), DefaultOceanic())
	assert.False(t, ok)
	assert.Equal(t, color.New(10, 20, 30), base)

	mapped := DefaultOceanic()
	mapped.NormalMapped = true
	lit, _, _ := d.Shade(testFragment(mathutil.Vec3{}), testUniforms(), mapped)
	assert.GreaterOrEqual(t, lit.B, base.B)
}

func TestEmissiveCoreDisk(t *testing.T) {
	d := NewDispatcher(nil, nil)
	u := testUniforms()

	base, emission, ok := d.Shade(testFragment(mathutil.Vec3{1, 0, 0}), u, DefaultEmissiveCore())
	require.True(t, ok)
	assert.Equal(t, color.New(191, 45, 186), base)
	assert.Equal(t, color.New(255, 67, 255), emission)

	base, emission, ok = d.Shade(testFragment(mathutil.Vec3{}), u, DefaultEmissiveCore())
	require.True(t, ok)
	assert.Equal(t, color.Black, base)
	assert.Equal(t, color.Black, emission)

	u.EmissionIntensity = 0
	_, emission, _ = d.Shade(testFragment(mathutil.Vec3{1, 0, 0}), u, DefaultEmissiveCore())
	assert.Equal(t, color.Black, emission)
}

func TestEmissiveCoreTextured(t *testing.T) {
	d := NewDispatcher(solidTexture(stdcolor.NRGBA{100, 40, 20, 255}), nil)
	core := DefaultEmissiveCore()
	core.Textured = true

	base, emission, ok := d.Shade(testFragment(mathutil.Vec3{}), testUniforms(), core)
	require.True(t, ok)
	assert.Equal(t, color.New(100, 40, 20), base)
	assert.Equal(t, color.New(100, 40, 20), emission)
}

func TestWormholeBorder(t *testing.T) {
	d := NewDispatcher(nil, nil)
	base, emission, ok := d.Shade(testFragment(mathutil.Vec3{0.8, 0, 0}), testUniforms(), DefaultWormhole())
	require.True(t, ok)
	assert.Equal(t, color.New(191, 105, 0), base)
	assert.Equal(t, color.New(255, 157, 0), emission)
}

func TestShadeIsDeterministic(t *testing.T) {
	d := NewDispatcher(solidTexture(stdcolor.NRGBA{10, 20, 30, 255}), flatNormals())
	u := testUniforms()
	u.Frame = 42

	for _, name := range Names() {
		s, ok := ByName(name)
		require.True(t, ok)
		t.Run(name, func(t *testing.T) {
			for _, p := range []mathutil.Vec3{{0, 0, 1}, {0.3, -0.5, 0.8}, {0.9, 0.1, 0}} {
				f := testFragment(p)
				b1, e1, ok1 := d.Shade(f, u, s)
				b2, e2, ok2 := d.Shade(f, u, s)
				assert.Equal(t, b1, b2)
				assert.Equal(t, e1, e2)
				assert.Equal(t, ok1, ok2)
			}
		})
	}
}

func TestShadeDoesNotMutateFragment(t *testing.T) {
	d := NewDispatcher(nil, nil)
	f := testFragment(mathutil.Vec3{0.2, 0.4, 0.6})
	orig := *f
	d.Shade(f, testUniforms(), DefaultTerran())
	assert.Equal(t, orig, *f)
}

func TestShadeWithoutNoiseHandle(t *testing.T) {
	d := NewDispatcher(nil, nil)
	u := testUniforms()
	u.Noise = nil
	assert.NotPanics(t, func() {
		d.Shade(testFragment(mathutil.Vec3{}), u, DefaultGaseous())
	})
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, s.Name())
	}
	_, ok := ByName("plasma")
	assert.False(t, ok)
	assert.Len(t, Names(), 9)
}

// The surface tests below use testFragment's normal (0,0,1), which faces away
// from every default light, so diffuse terms are zero, and depth 0 with
// intensity 1, so exposure leaves the colour unchanged.

func TestGaseousSpot(t *testing.T) {
	d := NewDispatcher(nil, nil)
	g := DefaultGaseous()
	u := testUniforms()

	centre := mathutil.Vec3{g.SpotCenter[0], g.SpotCenter[1], 0.8}
	base, _, ok := d.Shade(testFragment(centre), u, g)
	assert.False(t, ok)
	assert.Equal(t, g.SpotHighlight.Scale(0.7), base)

	lo, hi := g.Spot.Scale(0.7), g.SpotHighlight.Scale(0.7)
	edge := mathutil.Vec3{g.SpotCenter[0] + 0.8*g.SpotRadius, g.SpotCenter[1], 0.8}
	base, _, _ = d.Shade(testFragment(edge), u, g)
	assert.True(t, base.G >= lo.G && base.G <= hi.G, "G %d outside [%d,%d]", base.G, lo.G, hi.G)
	assert.True(t, base.B >= lo.B && base.B <= hi.B, "B %d outside [%d,%d]", base.B, lo.B, hi.B)
	assert.NotEqual(t, hi, base)
}

func TestGaseousBandSelection(t *testing.T) {
	d := NewDispatcher(nil, nil)
	g := DefaultGaseous()
	g.SpotRadius = 0
	g.TurbAmount = 0
	p := mathutil.Vec3{0.1, 0.4, 0.9}

	g.BandLimits = [3]float64{2, 2, 2}
	base, _, _ := d.Shade(testFragment(p), testUniforms(), g)
	assert.Equal(t, g.Bands[0].Scale(0.7), base)

	g.BandLimits = [3]float64{-2, -2, -2}
	base, _, _ = d.Shade(testFragment(p), testUniforms(), g)
	assert.Equal(t, g.Bands[3].Scale(0.7), base)
}

func TestGaseousBandsFollowTheBody(t *testing.T) {
	d := NewDispatcher(nil, nil)
	g := DefaultGaseous()
	g.SpotRadius = 0
	g.TurbAmount = 0
	u := testUniforms()

	// Same object-space point seen at two screen positions.
	a := testFragment(mathutil.Vec3{0.2, -0.3, 0.9})
	b := testFragment(a.VertexPosition)
	b.Position = mathutil.Vec2{300, 7}
	ba, _, _ := d.Shade(a, u, g)
	bb, _, _ := d.Shade(b, u, g)
	assert.Equal(t, ba, bb)

	// Latitude changes the band somewhere along the meridian.
	seen := map[color.Color]bool{}
	for y := -1.0; y <= 1.0; y += 0.05 {
		c, _, _ := d.Shade(testFragment(mathutil.Vec3{0, y, 0.5}), u, g)
		seen[c] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestRockyFogAtLimb(t *testing.T) {
	d := NewDispatcher(nil, nil)
	r := DefaultRocky()
	limb := mathutil.Vec3{0, 0, 1.2}

	base, _, ok := d.Shade(testFragment(limb), testUniforms(), r)
	assert.False(t, ok)
	assert.Equal(t, r.Fog, base)

	f := testFragment(limb)
	f.Depth = 0.5
	base, _, _ = d.Shade(f, testUniforms(), r)
	assert.Equal(t, Exposure(r.Fog, 0.5, 1), base)
	assert.Equal(t, r.Fog.Scale(0.75), base)
}

func TestTerranRimIsAtmosphere(t *testing.T) {
	d := NewDispatcher(nil, nil)
	tr := DefaultTerran()
	for _, p := range []mathutil.Vec3{{0, 0, 1.2}, {1.1, 0, 0}, {0, -1.5, 0}} {
		base, _, ok := d.Shade(testFragment(p), testUniforms(), tr)
		assert.False(t, ok)
		assert.Equal(t, tr.Atmosphere, base, "position %v", p)
	}

	// Well inside the atmosphere start the ground and clouds show through.
	base, _, _ := d.Shade(testFragment(mathutil.Vec3{0, 0, 0.3}), testUniforms(), tr)
	assert.NotEqual(t, tr.Atmosphere, base)
}

func TestMetallicAura(t *testing.T) {
	d := NewDispatcher(nil, nil)
	m := DefaultMetallic()
	u := testUniforms()

	// Metallic noise is keyed on screen position, so both fragments share the
	// same body colour and differ only by the aura.
	outside, _, ok := d.Shade(testFragment(mathutil.Vec3{0, 0, 0.9}), u, m)
	assert.False(t, ok)
	inside, _, _ := d.Shade(testFragment(mathutil.Vec3{}), u, m)

	assert.Equal(t, outside.Lerp(m.Aura, m.AuraRadius*0.5), inside)
	assert.NotEqual(t, outside, inside)

	atEdge, _, _ := d.Shade(testFragment(mathutil.Vec3{m.AuraRadius, 0, 0}), u, m)
	assert.Equal(t, outside, atEdge)
}

func TestFrozenBandThresholds(t *testing.T) {
	d := NewDispatcher(nil, nil)
	p := mathutil.Vec3{0.1, 0.2, 0.9}

	tests := []struct {
		name                  string
		snowBelow, crackBelow float64
		want                  func(Frozen) color.Color
	}{
		{"snow", 1, 1, func(f Frozen) color.Color { return f.Snow }},
		{"crack", -1, 1, func(f Frozen) color.Color { return f.Crack }},
		{"ice", -1, -1, func(f Frozen) color.Color { return f.Ice }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFrozen()
			f.FogStrength = 0
			f.SnowBelow, f.CrackBelow = tt.snowBelow, tt.crackBelow

			base, _, ok := d.Shade(testFragment(p), testUniforms(), f)
			assert.False(t, ok)
			assert.Equal(t, tt.want(f).Scale(0.7), base)
		})
	}
}

func TestFrozenDefaultsNeverReachIce(t *testing.T) {
	// The band value stays in [0, 0.04]; with defaults the surface is snow or
	// crack, never bare ice.
	d := NewDispatcher(nil, nil)
	f := DefaultFrozen()
	f.FogStrength = 0
	snow, crack := f.Snow.Scale(0.7), f.Crack.Scale(0.7)
	for x := 0.0; x < 400; x += 37 {
		frag := testFragment(mathutil.Vec3{0, 0, 0.9})
		frag.Position = mathutil.Vec2{x, x / 2}
		base, _, _ := d.Shade(frag, testUniforms(), f)
		assert.Contains(t, []color.Color{snow, crack}, base)
	}
}
