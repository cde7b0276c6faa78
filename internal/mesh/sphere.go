package mesh

import (
	"math"

	"planet-renderer/internal/mathutil"
)

// Sphere generates a unit UV sphere centred at the origin. Normals point
// outward and texcoords run u around the equator, v from the north pole.
// stacks is clamped to at least 2 and slices to at least 3.
func Sphere(stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := &Mesh{Name: "sphere"}
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			p := mathutil.Vec3{
				math.Sin(phi) * math.Sin(theta),
				math.Cos(phi),
				math.Sin(phi) * math.Cos(theta),
			}
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, p)
			m.TexCoords = append(m.TexCoords, mathutil.Vec2{
				float64(j) / float64(slices),
				float64(i) / float64(stacks),
			})
		}
	}

	at := func(i, j int) int { return i*(slices+1) + j }
	tri := func(a, b, c int) Triangle {
		return Triangle{VI: [3]int{a, b, c}, NI: [3]int{a, b, c}, TI: [3]int{a, b, c}}
	}
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := at(i, j), at(i+1, j)
			c, d := at(i+1, j+1), at(i, j+1)
			// The pole rows collapse one triangle of each quad.
			if i != stacks-1 {
				m.Tris = append(m.Tris, tri(a, b, c))
			}
			if i != 0 {
				m.Tris = append(m.Tris, tri(a, c, d))
			}
		}
	}
	return m
}
