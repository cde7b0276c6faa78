// Package noise provides the procedural-noise handle that shading functions
// sample through the uniform bundle.
package noise

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kind selects the noise basis.
type Kind int

const (
	OpenSimplex Kind = iota
	Perlin
	Cellular
)

func (k Kind) String() string {
	switch k {
	case OpenSimplex:
		return "opensimplex"
	case Perlin:
		return "perlin"
	case Cellular:
		return "cellular"
	}
	return "unknown"
}

// Perlin octave parameters. alpha is the per-octave amplitude divisor, beta the
// frequency multiplier.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Generator evaluates every noise kind from one seed. It holds only
// precomputed permutation tables and is safe for concurrent reads.
type Generator struct {
	seed    int64
	simplex opensimplex.Noise
	perlin  *perlin.Perlin
}

// New builds a generator. Equal seeds give identical fields.
func New(seed int64) *Generator {
	return &Generator{
		seed:    seed,
		simplex: opensimplex.New(seed),
		perlin:  perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
	}
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 { return g.seed }

// Eval2 samples the field of the given kind at (x,y) scaled by freq.
// The result is in [-1,1].
func (g *Generator) Eval2(kind Kind, freq, x, y float64) float64 {
	x, y = x*freq, y*freq
	var v float64
	switch kind {
	case Perlin:
		v = g.perlin.Noise2D(x, y)
	case Cellular:
		v = cellular2(g.seed, x, y)
	default:
		v = g.simplex.Eval2(x, y)
	}
	return clamp(v)
}

// Eval3 samples the 3D field. Surfaces use it when the pattern must stay fixed
// to the body, keyed by object-space position instead of screen position.
func (g *Generator) Eval3(kind Kind, freq, x, y, z float64) float64 {
	x, y, z = x*freq, y*freq, z*freq
	var v float64
	switch kind {
	case Perlin:
		v = g.perlin.Noise3D(x, y, z)
	case Cellular:
		v = cellular3(g.seed, x, y, z)
	default:
		v = g.simplex.Eval3(x, y, z)
	}
	return clamp(v)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
