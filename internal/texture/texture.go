// Package texture holds the decoded 2D samplers consumed by shading
// functions: a color texture and a tangent-space normal map.
package texture

import (
	"image"
	"math"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
)

// Filter selects how a sampler reconstructs between texels.
type Filter int

const (
	Nearest Filter = iota
	Bilinear
)

// ParseFilter maps a config string to a Filter. Unknown names are Nearest.
func ParseFilter(s string) Filter {
	if s == "bilinear" {
		return Bilinear
	}
	return Nearest
}

// Texture is an immutable color image sampled by UV.
type Texture struct {
	Width  int
	Height int
	Filter Filter
	texels []color.Color
}

// FromImage copies img into a texture. Alpha is discarded.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		texels: make([]color.Color, b.Dx()*b.Dy()),
	}
	nrgba := toNRGBA(img)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			i := nrgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			t.texels[y*t.Width+x] = color.New(nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
		}
	}
	return t
}

// Sample returns the texel at (u,v). Coordinates wrap by their fractional
// part; NaN or infinite coordinates sample (0,0).
func (t *Texture) Sample(u, v float64) color.Color {
	if t.Width == 0 || t.Height == 0 {
		return color.Black
	}
	u, v = wrapUV(u, v)
	if t.Filter == Bilinear {
		return t.bilinear(u, v)
	}
	x, y := texel(u, t.Width), texel(v, t.Height)
	return t.texels[y*t.Width+x]
}

// NormalMap is an immutable tangent-space normal map.
type NormalMap struct {
	Width   int
	Height  int
	normals []mathutil.Vec3
}

// NormalMapFromImage decodes RGB in [0,255] to unit vectors in [-1,1]³.
func NormalMapFromImage(img image.Image) *NormalMap {
	t := FromImage(img)
	nm := &NormalMap{
		Width:   t.Width,
		Height:  t.Height,
		normals: make([]mathutil.Vec3, len(t.texels)),
	}
	for i, c := range t.texels {
		nm.normals[i] = mathutil.Vec3{
			float64(c.R)/255*2 - 1,
			float64(c.G)/255*2 - 1,
			float64(c.B)/255*2 - 1,
		}.Normalize()
	}
	return nm
}

// Sample returns the normal at (u,v) with the same addressing as Texture.Sample.
func (nm *NormalMap) Sample(u, v float64) mathutil.Vec3 {
	if nm.Width == 0 || nm.Height == 0 {
		return mathutil.Vec3{0, 0, 1}
	}
	u, v = wrapUV(u, v)
	return nm.normals[texel(v, nm.Height)*nm.Width+texel(u, nm.Width)]
}

// wrapUV keeps the fractional part in [0,1). Invalid input falls back to (0,0).
func wrapUV(u, v float64) (float64, float64) {
	if !finite(u) || !finite(v) {
		return 0, 0
	}
	return u - math.Floor(u), v - math.Floor(v)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// texel maps a wrapped coordinate to an index in [0,n).
func texel(f float64, n int) int {
	i := int(f * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
