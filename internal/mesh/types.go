// Package mesh loads and generates triangle geometry for the pipeline.
// Triangles are wound counter-clockwise when seen from outside the surface.
package mesh

import (
	"errors"
	"math"

	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/raster"
)

// ErrNoFaces is returned when a mesh source defines no triangles.
var ErrNoFaces = errors.New("mesh: no faces")

// Triangle holds index triples into the position, normal and texcoord arrays.
// A normal or texcoord index of -1 means the corner has none.
type Triangle struct {
	VI [3]int
	NI [3]int
	TI [3]int
}

// Mesh is indexed triangle geometry.
type Mesh struct {
	Name      string
	Positions []mathutil.Vec3
	Normals   []mathutil.Vec3
	TexCoords []mathutil.Vec2
	Tris      []Triangle
}

// DefaultNormal is used for corners without a normal.
var DefaultNormal = mathutil.Vec3{0, 1, 0}

// VertexArray expands the mesh into a flat vertex sequence, three per triangle,
// ready for the vertex stage.
func (m *Mesh) VertexArray() []raster.Vertex {
	out := make([]raster.Vertex, 0, len(m.Tris)*3)
	for _, t := range m.Tris {
		for c := 0; c < 3; c++ {
			normal := DefaultNormal
			if i := t.NI[c]; i >= 0 && i < len(m.Normals) {
				normal = m.Normals[i]
			}
			var uv mathutil.Vec2
			if i := t.TI[c]; i >= 0 && i < len(m.TexCoords) {
				uv = m.TexCoords[i]
			}
			out = append(out, raster.NewVertex(m.Positions[t.VI[c]], normal, uv))
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the positions. An empty
// mesh returns +Inf/-Inf.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	lo = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range m.Positions {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return lo, hi
}
