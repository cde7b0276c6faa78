package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/mesh"
	"planet-renderer/internal/noise"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/shader"
)

// ErrUnknownSurface is returned for a surface name no shader defines.
var ErrUnknownSurface = errors.New("scene: unknown surface")

// File is the YAML scene description. Angles are degrees.
type File struct {
	Camera struct {
		Eye    []float64 `yaml:"eye"`
		Center []float64 `yaml:"center"`
		Up     []float64 `yaml:"up"`
	} `yaml:"camera"`
	Projection struct {
		FOV  float64 `yaml:"fov"`
		Near float64 `yaml:"near"`
		Far  float64 `yaml:"far"`
	} `yaml:"projection"`
	Background string       `yaml:"background"` // "#rrggbb"
	Stars      *int         `yaml:"stars"`
	Seed       int64        `yaml:"seed"`
	Texture    string       `yaml:"texture"`
	NormalMap  string       `yaml:"normal_map"`
	Objects    []ObjectFile `yaml:"objects"`
}

// ObjectFile describes one object.
type ObjectFile struct {
	Name     string    `yaml:"name"`
	Mesh     string    `yaml:"mesh"` // "sphere" or an OBJ path
	Surface  string    `yaml:"surface"`
	Position []float64 `yaml:"position"`
	Rotation []float64 `yaml:"rotation"`
	Scale    float64   `yaml:"scale"`
	Spin     []float64 `yaml:"spin"` // degrees per frame
	Orbit    struct {
		Radius float64 `yaml:"radius"`
		Speed  float64 `yaml:"speed"` // degrees per frame
		Phase  float64 `yaml:"phase"`
	} `yaml:"orbit"`
	NormalMapped bool `yaml:"normal_mapped"`
	Textured     bool `yaml:"textured"`
}

const defaultStars = 500

// Load reads a YAML scene. Relative OBJ paths resolve against the file's
// directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML bytes.
func Parse(data []byte, baseDir string) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	eye, err := vec3(f.Camera.Eye, mathutil.Vec3{0, 0, 5})
	if err != nil {
		return nil, fmt.Errorf("camera eye: %w", err)
	}
	center, err := vec3(f.Camera.Center, mathutil.Vec3{})
	if err != nil {
		return nil, fmt.Errorf("camera center: %w", err)
	}
	up, err := vec3(f.Camera.Up, mathutil.Vec3{0, 1, 0})
	if err != nil {
		return nil, fmt.Errorf("camera up: %w", err)
	}

	proj := DefaultProjection()
	if f.Projection.FOV > 0 {
		proj.FOV = f.Projection.FOV
	}
	if f.Projection.Near > 0 {
		proj.Near = f.Projection.Near
	}
	if f.Projection.Far > 0 {
		proj.Far = f.Projection.Far
	}

	bg := color.Black
	if f.Background != "" {
		if bg, err = parseHex(f.Background); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}
	stars := defaultStars
	if f.Stars != nil {
		stars = *f.Stars
	}
	seed := f.Seed
	if seed == 0 {
		seed = 1
	}

	s := &Scene{
		Camera:        NewCamera(eye, center, up),
		Projection:    proj,
		Skybox:        NewSkybox(stars, uint64(seed)),
		Background:    bg,
		Noise:         noise.New(seed),
		TextureName:   f.Texture,
		NormalMapName: f.NormalMap,
	}

	meshes := map[string][]raster.Vertex{}
	for i, of := range f.Objects {
		o, err := buildObject(of, baseDir, meshes)
		if err != nil {
			name := of.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("object %s: %w", name, err)
		}
		s.Objects = append(s.Objects, o)
	}
	return s, nil
}

func buildObject(of ObjectFile, baseDir string, meshes map[string][]raster.Vertex) (*Object, error) {
	surf, ok := shader.ByName(of.Surface)
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownSurface, of.Surface, strings.Join(shader.Names(), ", "))
	}
	switch s := surf.(type) {
	case shader.Oceanic:
		s.NormalMapped = of.NormalMapped
		surf = s
	case shader.EmissiveCore:
		s.Textured = of.Textured
		surf = s
	}

	src := of.Mesh
	if src == "" {
		src = "sphere"
	}
	vs, ok := meshes[src]
	if !ok {
		if src == "sphere" {
			vs = mesh.Sphere(24, 32).VertexArray()
		} else {
			path := src
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			m, err := mesh.LoadOBJ(path)
			if err != nil {
				return nil, err
			}
			vs = m.VertexArray()
		}
		meshes[src] = vs
	}

	o := &Object{
		Name:     of.Name,
		Vertices: vs,
		Surface:  surf,
		Scale:    of.Scale,
		Orbit: Orbit{
			Radius: of.Orbit.Radius,
			Speed:  mathutil.Deg2Rad(of.Orbit.Speed),
			Phase:  mathutil.Deg2Rad(of.Orbit.Phase),
		},
	}
	var err error
	if o.Position, err = vec3(of.Position, mathutil.Vec3{}); err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	if o.Rotation, err = vec3(of.Rotation, mathutil.Vec3{}); err != nil {
		return nil, fmt.Errorf("rotation: %w", err)
	}
	if o.Spin, err = vec3(of.Spin, mathutil.Vec3{}); err != nil {
		return nil, fmt.Errorf("spin: %w", err)
	}
	o.Rotation = degrees(o.Rotation)
	o.Spin = degrees(o.Spin)
	return o, nil
}

func vec3(v []float64, def mathutil.Vec3) (mathutil.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mathutil.Vec3{v[0], v[1], v[2]}, nil
	}
	return def, fmt.Errorf("want 3 components, got %d", len(v))
}

func degrees(v mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{mathutil.Deg2Rad(v[0]), mathutil.Deg2Rad(v[1]), mathutil.Deg2Rad(v[2])}
}

func parseHex(s string) (color.Color, error) {
	h, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || h > 0xffffff {
		return color.Black, fmt.Errorf("invalid colour %q", s)
	}
	return color.FromHex(uint32(h)), nil
}
