package raster

import (
	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
)

// Vertex carries the authoring attributes loaded with the mesh plus the
// screen-space attributes the vertex stage derives each frame.
type Vertex struct {
	Position  mathutil.Vec3 // object space
	Normal    mathutil.Vec3 // object space
	TexCoords mathutil.Vec2
	Color     color.Color

	// Written by TransformVertex only.
	TransformedPosition mathutil.Vec3 // pixel x/y, NDC z
	TransformedNormal   mathutil.Vec3 // world space, unit length
}

// NewVertex returns a white vertex with the given attributes.
func NewVertex(position, normal mathutil.Vec3, texCoords mathutil.Vec2) Vertex {
	return Vertex{
		Position:  position,
		Normal:    normal,
		TexCoords: texCoords,
		Color:     color.White,
	}
}

// TransformVertex runs the vertex stage on a copy of v:
//
//	transformed_position = viewport · divide(transform · [position, 1])
//	transformed_normal   = normalize(normal_matrix · normal)
//
// A w of zero is not special-cased; it yields non-finite coordinates that the
// rasterizer rejects.
func TransformVertex(v Vertex, u *Uniforms) Vertex {
	clip := u.Transform.MulVec4(v.Position.Point())
	w := clip[3]
	ndc := mathutil.Vec4{clip[0] / w, clip[1] / w, clip[2] / w, 1}
	screen := u.Viewport.MulVec4(ndc)

	v.TransformedPosition = screen.XYZ()
	v.TransformedNormal = u.NormalMatrix.MulVec3(v.Normal).Normalize()
	return v
}

// TransformVertices runs the vertex stage over src, reusing dst's storage.
func TransformVertices(dst, src []Vertex, u *Uniforms) []Vertex {
	dst = dst[:0]
	for i := range src {
		dst = append(dst, TransformVertex(src[i], u))
	}
	return dst
}
