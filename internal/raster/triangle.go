package raster

import (
	"math"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
)

// Cull selects which screen-space winding is discarded.
//
// Winding is read from the signed area edge(v0,v1,v2) of the transformed
// vertices. A triangle wound counter-clockwise in object space and facing the
// camera has positive area after the viewport's y flip; that is the front face.
type Cull int

const (
	CullNone  Cull = iota // rasterize both windings
	CullBack              // drop negative-area triangles
	CullFront             // drop positive-area triangles
)

// minArea is the signed-area magnitude below which a triangle is degenerate.
const minArea = 1e-8

// Rasterizer turns transformed vertices into fragments clipped to a
// width×height target. Triangles are independent: the rasterizer keeps no
// state between them and leaves depth resolution to the framebuffer.
type Rasterizer struct {
	Width, Height int
	Cull          Cull
	Light         Light
}

// NewRasterizer returns a rasterizer for the given target size with no
// culling and the default light.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		Width:  width,
		Height: height,
		Light:  DefaultLight(),
	}
}

// Rasterize consumes vs three at a time; a trailing partial group is ignored.
// emit is called once per covered pixel, in no guaranteed order. It returns
// the number of fragments emitted.
func (r *Rasterizer) Rasterize(vs []Vertex, emit func(*Fragment)) int {
	n := 0
	for i := 0; i+2 < len(vs); i += 3 {
		n += r.Triangle(&vs[i], &vs[i+1], &vs[i+2], emit)
	}
	return n
}

// Fragments is Rasterize collecting into a slice.
func (r *Rasterizer) Fragments(vs []Vertex) []Fragment {
	var out []Fragment
	r.Rasterize(vs, func(f *Fragment) { out = append(out, *f) })
	return out
}

// edge is the signed edge function of p against the directed edge a→b.
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

// SignedArea returns edge(v0,v1,v2) over the transformed positions; twice
// the triangle's screen area, signed by winding.
func SignedArea(v0, v1, v2 *Vertex) float64 {
	p0, p1, p2 := v0.TransformedPosition, v1.TransformedPosition, v2.TransformedPosition
	return edge(p0[0], p0[1], p1[0], p1[1], p2[0], p2[1])
}

// Triangle rasterizes one triangle and returns the number of fragments emitted.
//
// Every integer pixel position inside the clipped bounding box is tested with
// the three edge functions; boundary points (weight zero) are inside.
// Degenerate, culled and non-finite triangles emit nothing.
//
// The emitted *Fragment points at scratch storage reused for the next pixel.
func (r *Rasterizer) Triangle(v0, v1, v2 *Vertex, emit func(*Fragment)) int {
	p0, p1, p2 := v0.TransformedPosition, v1.TransformedPosition, v2.TransformedPosition
	if !p0.IsFinite() || !p1.IsFinite() || !p2.IsFinite() {
		return 0
	}
	x0, y0 := p0[0], p0[1]
	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]

	area := edge(x0, y0, x1, y1, x2, y2)
	if math.Abs(area) < minArea || math.IsInf(area, 0) || math.IsNaN(area) {
		return 0
	}
	switch {
	case r.Cull == CullBack && area < 0:
		return 0
	case r.Cull == CullFront && area > 0:
		return 0
	}

	// Bounding box, clamped in float space before converting so that huge
	// coordinates from a near-zero w cannot overflow int.
	fMinX := math.Max(math.Floor(math.Min(math.Min(x0, x1), x2)), 0)
	fMaxX := math.Min(math.Ceil(math.Max(math.Max(x0, x1), x2)), float64(r.Width-1))
	fMinY := math.Max(math.Floor(math.Min(math.Min(y0, y1), y2)), 0)
	fMaxY := math.Min(math.Ceil(math.Max(math.Max(y0, y1), y2)), float64(r.Height-1))
	if fMinX > fMaxX || fMinY > fMaxY {
		return 0
	}
	minX, maxX := int(fMinX), int(fMaxX)
	minY, maxY := int(fMinY), int(fMaxY)

	invArea := 1.0 / area
	i0 := r.Light.Intensity(v0.TransformedNormal)
	i1 := r.Light.Intensity(v1.TransformedNormal)
	i2 := r.Light.Intensity(v2.TransformedNormal)

	var frag Fragment
	n := 0
	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy)
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx)
			// Dividing by the signed area makes every inside weight
			// non-negative regardless of winding.
			w0 := edge(x1, y1, x2, y2, px, py) * invArea
			w1 := edge(x2, y2, x0, y0, px, py) * invArea
			w2 := edge(x0, y0, x1, y1, px, py) * invArea
			if !(w0 >= 0 && w1 >= 0 && w2 >= 0) {
				continue
			}

			frag.Position = mathutil.Vec2{px, py}
			frag.Color = interpolateColor(v0.Color, v1.Color, v2.Color, w0, w1, w2)
			frag.Depth = w0*p0[2] + w1*p1[2] + w2*p2[2]
			frag.Normal = interpolate3(v0.TransformedNormal, v1.TransformedNormal, v2.TransformedNormal, w0, w1, w2).Normalize()
			frag.Intensity = w0*i0 + w1*i1 + w2*i2
			frag.VertexPosition = interpolate3(v0.Position, v1.Position, v2.Position, w0, w1, w2)
			frag.TexCoords = mathutil.Vec2{
				w0*v0.TexCoords[0] + w1*v1.TexCoords[0] + w2*v2.TexCoords[0],
				w0*v0.TexCoords[1] + w1*v1.TexCoords[1] + w2*v2.TexCoords[1],
			}
			emit(&frag)
			n++
		}
	}
	return n
}

func interpolate3(a, b, c mathutil.Vec3, w0, w1, w2 float64) mathutil.Vec3 {
	return mathutil.Vec3{
		w0*a[0] + w1*b[0] + w2*c[0],
		w0*a[1] + w1*b[1] + w2*c[1],
		w0*a[2] + w1*b[2] + w2*c[2],
	}
}

func interpolateColor(a, b, c color.Color, w0, w1, w2 float64) color.Color {
	return color.Color{
		R: channel(w0*float64(a.R) + w1*float64(b.R) + w2*float64(c.R)),
		G: channel(w0*float64(a.G) + w1*float64(b.G) + w2*float64(c.G)),
		B: channel(w0*float64(a.B) + w1*float64(b.B) + w2*float64(c.B)),
	}
}

func channel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
