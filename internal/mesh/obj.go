package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"planet-renderer/internal/mathutil"
)

// LoadOBJ parses a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: %s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ reads positions (v), texcoords (vt), normals (vn) and faces (f).
// Polygons are fan-triangulated from their first corner and negative indices
// count back from the end. Materials, groups and smoothing are ignored; the
// first object name (o) becomes the mesh name.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			m.Positions = append(m.Positions, mathutil.Vec3{v[0], v[1], v[2]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			m.Normals = append(m.Normals, mathutil.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", line, err)
			}
			m.TexCoords = append(m.TexCoords, mathutil.Vec2{v[0], v[1]})
		case "f":
			if err := m.addFace(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: face: %w", line, err)
			}
		case "o":
			if m.Name == "" && len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Tris) == 0 {
		return nil, ErrNoFaces
	}
	return m, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

type corner struct{ v, t, n int }

func (m *Mesh) addFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("want at least 3 corners, got %d", len(fields))
	}
	corners := make([]corner, len(fields))
	for i, f := range fields {
		c, err := m.parseCorner(f)
		if err != nil {
			return err
		}
		corners[i] = c
	}
	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		m.Tris = append(m.Tris, Triangle{
			VI: [3]int{a.v, b.v, c.v},
			TI: [3]int{a.t, b.t, c.t},
			NI: [3]int{a.n, b.n, c.n},
		})
	}
	return nil
}

// parseCorner reads v, v/t, v//n or v/t/n.
func (m *Mesh) parseCorner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	c := corner{t: -1, n: -1}

	var err error
	if c.v, err = resolveIndex(parts[0], len(m.Positions)); err != nil {
		return c, fmt.Errorf("vertex index %q: %w", s, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.t, err = resolveIndex(parts[1], len(m.TexCoords)); err != nil {
			return c, fmt.Errorf("texcoord index %q: %w", s, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.n, err = resolveIndex(parts[2], len(m.Normals)); err != nil {
			return c, fmt.Errorf("normal index %q: %w", s, err)
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to a
// 0-based one and checks it against the elements defined so far.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("out of range (%d defined)", n)
	}
	return i, nil
}
