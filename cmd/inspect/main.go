package main

import (
	"fmt"
	"math"
	"os"

	"planet-renderer/internal/mesh"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: inspect <model.obj> [...]")
		os.Exit(1)
	}

	bad := 0
	for _, path := range os.Args[1:] {
		m, err := mesh.LoadOBJ(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			bad++
			continue
		}
		fmt.Printf("%s (%s)\n", path, m.Name)
		fmt.Printf("  Positions: %d, Normals: %d, TexCoords: %d, Tris: %d\n",
			len(m.Positions), len(m.Normals), len(m.TexCoords), len(m.Tris))

		lo, hi := m.Bounds()
		fmt.Printf("  BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
		fmt.Printf("  Size: %.2f x %.2f x %.2f\n", hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])

		// Surface area by dominant face direction
		areaByDir := map[string]float64{}
		for _, t := range m.Tris {
			p0, p1, p2 := m.Positions[t.VI[0]], m.Positions[t.VI[1]], m.Positions[t.VI[2]]
			n := p1.Sub(p0).Cross(p2.Sub(p0))
			ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
			axis := 2
			switch {
			case ax >= ay && ax >= az:
				axis = 0
			case ay >= az:
				axis = 1
			}
			dir := "+" + "XYZ"[axis:axis+1]
			if n[axis] < 0 {
				dir = "-" + "XYZ"[axis:axis+1]
			}
			areaByDir[dir] += 0.5 * n.Len()
		}
		fmt.Println("  --- Surface area by direction ---")
		for _, d := range []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"} {
			fmt.Printf("  %s: %.3f\n", d, areaByDir[d])
		}

		missingNormals, missingUV := 0, 0
		for _, t := range m.Tris {
			for c := 0; c < 3; c++ {
				if t.NI[c] < 0 {
					missingNormals++
				}
				if t.TI[c] < 0 {
					missingUV++
				}
			}
		}
		if missingNormals > 0 || missingUV > 0 {
			fmt.Printf("  Corners without normal: %d, without UV: %d\n", missingNormals, missingUV)
		}

		w := mesh.AuditWinding(m)
		fmt.Printf("  Winding: ccw=%d cw=%d degenerate=%d\n", w.CounterClockwise, w.Clockwise, w.Degenerate)
		if !w.Consistent() {
			fmt.Println("  WARNING: clockwise triangles are dropped when back-face culling is on")
			bad++
		}
	}

	if bad > 0 {
		os.Exit(1)
	}
}
