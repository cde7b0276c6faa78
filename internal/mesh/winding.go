package mesh

import "planet-renderer/internal/mathutil"

// WindingReport counts triangles by orientation relative to their reference
// direction.
type WindingReport struct {
	CounterClockwise int
	Clockwise        int
	Degenerate       int
}

// Consistent reports whether every non-degenerate triangle is counter-clockwise.
func (r WindingReport) Consistent() bool {
	return r.Clockwise == 0
}

// AuditWinding classifies each triangle by comparing its geometric normal
// (p1-p0)×(p2-p0) with a reference outward direction: the mean of its corner
// normals when present, otherwise the direction from the mesh centre.
func AuditWinding(m *Mesh) WindingReport {
	lo, hi := m.Bounds()
	centre := lo.Add(hi).Scale(0.5)

	var r WindingReport
	for _, t := range m.Tris {
		p0, p1, p2 := m.Positions[t.VI[0]], m.Positions[t.VI[1]], m.Positions[t.VI[2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Len() < 1e-12 {
			r.Degenerate++
			continue
		}

		var ref mathutil.Vec3
		for c := 0; c < 3; c++ {
			if i := t.NI[c]; i >= 0 && i < len(m.Normals) {
				ref = ref.Add(m.Normals[i])
			}
		}
		if ref.Len() < 1e-12 {
			ref = p0.Add(p1).Add(p2).Scale(1.0 / 3).Sub(centre)
		}

		if n.Dot(ref) >= 0 {
			r.CounterClockwise++
		} else {
			r.Clockwise++
		}
	}
	return r
}
