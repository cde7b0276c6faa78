// Package shader routes rasterized fragments to the surface that colours them.
//
// Surface is a closed set: every variant is declared in this package and
// carries its own parameters. Dispatcher.Shade switches over the variants and
// funnels each result through the shared exposure step.
package shader

import (
	"sort"

	"planet-renderer/internal/color"
	"planet-renderer/internal/mathutil"
)

// Surface is one shading function with its parameters.
type Surface interface {
	// Name is the identifier used in scene files.
	Name() string
	surface()
}

// VertexColor shades with the fragment's interpolated vertex colour.
type VertexColor struct{}

// Rocky is an arid surface: OpenSimplex dunes over cellular rock with
// drifting dust and a pale haze toward the limb.
type Rocky struct {
	Sand, Rock, Cracked, Fog color.Color
	DuneFreq, RockFreq       float64
	DuneThreshold            float64
	DustSpeed, DustAmount    float64
	Light                    mathutil.Vec3
}

// Gaseous is a banded giant with Perlin turbulence and one storm spot.
type Gaseous struct {
	// Bands from darkest (lowest noise) to brightest.
	Bands               [4]color.Color
	BandLimits          [3]float64
	Spot, SpotHighlight color.Color
	SpotCenter          mathutil.Vec2 // object-space x,y
	SpotRadius          float64
	BandFreq            float64 // per object-space unit
	TurbFreq            float64 // per pixel
	Speed, TurbAmount   float64
	Light               mathutil.Vec3
}

// Frozen is an ice world veiled by drifting fog.
type Frozen struct {
	Ice, Snow, Crack, Cloud color.Color
	Freq                    float64
	SnowBelow, CrackBelow   float64
	FogFreq, FogSpeed       float64
	FogStrength             float64
	Light                   mathutil.Vec3
}

// Terran has continents over animated ocean currents, a cloud layer and an
// atmospheric rim.
type Terran struct {
	Land, Mountain            color.Color
	DeepOcean, ShallowOcean   color.Color
	Cloud, Atmosphere         color.Color
	TerrainFreq, CurrentFreq  float64
	CloudFreq                 float64
	TectonicSpeed, CloudSpeed float64
	OceanBelow, LandBelow     float64
	AtmosphereStart           float64
}

// Oceanic samples the injected texture by UV. With NormalMapped set it adds
// a specular highlight from the injected normal map.
type Oceanic struct {
	NormalMapped bool
	Highlight    color.Color
	Shininess    float64
	Light        mathutil.Vec3
}

// Metallic is a brushed hull with a faint aura near the object centre.
type Metallic struct {
	Metal, Highlight, Aura color.Color
	Freq                   float64
	AuraRadius             float64
}

// EmissiveCore is a black hole with a pulsing accretion disk. With Textured
// set the disk colour comes from the injected texture instead.
type EmissiveCore struct {
	Textured             bool
	Horizon, Disk        color.Color
	HorizonRadius        float64
	DiskInner, DiskOuter float64
	PulseSpeed           float64
}

// Wormhole is a dark throat with a glowing border and a rotating cross.
type Wormhole struct {
	Core, Border, Cross       color.Color
	InnerRadius, BorderRadius float64
	CrossThickness            float64
	CrossLength               float64
	Spin                      float64
	Boost                     float64
}

func (VertexColor) Name() string  { return "vertex_color" }
func (Rocky) Name() string        { return "rocky" }
func (Gaseous) Name() string      { return "gaseous" }
func (Frozen) Name() string       { return "frozen" }
func (Terran) Name() string       { return "terran" }
func (Oceanic) Name() string      { return "oceanic" }
func (Metallic) Name() string     { return "metallic" }
func (EmissiveCore) Name() string { return "emissive_core" }
func (Wormhole) Name() string     { return "wormhole" }

func (VertexColor) surface()  {}
func (Rocky) surface()        {}
func (Gaseous) surface()      {}
func (Frozen) surface()       {}
func (Terran) surface()       {}
func (Oceanic) surface()      {}
func (Metallic) surface()     {}
func (EmissiveCore) surface() {}
func (Wormhole) surface()     {}

func DefaultRocky() Rocky {
	return Rocky{
		Sand:          color.New(210, 180, 140),
		Rock:          color.New(139, 115, 85),
		Cracked:       color.New(148, 129, 104),
		Fog:           color.New(255, 245, 230),
		DuneFreq:      0.02,
		RockFreq:      0.1,
		DuneThreshold: 0.3,
		DustSpeed:     0.5,
		DustAmount:    0.2,
		Light:         mathutil.Vec3{1, -1, 0.5}.Normalize(),
	}
}

func DefaultGaseous() Gaseous {
	return Gaseous{
		Bands: [4]color.Color{
			color.New(139, 69, 19),
			color.New(222, 184, 135),
			color.New(255, 140, 0),
			color.White,
		},
		BandLimits:    [3]float64{-0.2, 0.1, 0.3},
		Spot:          color.New(255, 69, 0),
		SpotHighlight: color.New(255, 160, 122),
		SpotCenter:    mathutil.Vec2{0.3, -0.5},
		SpotRadius:    0.1,
		BandFreq:      4,
		TurbFreq:      0.2,
		Speed:         0.03,
		TurbAmount:    0.3,
		Light:         mathutil.Vec3{1, 1, -1}.Normalize(),
	}
}

func DefaultFrozen() Frozen {
	return Frozen{
		Ice:         color.New(19, 62, 135),
		Snow:        color.White,
		Crack:       color.New(198, 231, 255),
		Cloud:       color.New(247, 247, 248),
		Freq:        0.02,
		SnowBelow:   0.02,
		CrackBelow:  0.09,
		FogFreq:     0.01,
		FogSpeed:    2.1,
		FogStrength: 0.6,
		Light:       mathutil.Vec3{1, 1, -1}.Normalize(),
	}
}

func DefaultTerran() Terran {
	return Terran{
		Land:            color.New(34, 139, 34),
		Mountain:        color.New(139, 69, 19),
		DeepOcean:       color.New(0, 40, 90),
		ShallowOcean:    color.New(0, 140, 180),
		Cloud:           color.White,
		Atmosphere:      color.New(135, 206, 250),
		TerrainFreq:     0.01,
		CurrentFreq:     0.08,
		CloudFreq:       0.02,
		TectonicSpeed:   0.09,
		CloudSpeed:      0.8,
		OceanBelow:      -0.3,
		LandBelow:       0.1,
		AtmosphereStart: 0.8,
	}
}

func DefaultOceanic() Oceanic {
	return Oceanic{
		Highlight: color.White,
		Shininess: 25,
		Light:     mathutil.Vec3{1, 1, -0.5}.Normalize(),
	}
}

func DefaultMetallic() Metallic {
	return Metallic{
		Metal:      color.New(192, 192, 192),
		Highlight:  color.White,
		Aura:       color.New(200, 200, 255),
		Freq:       0.005,
		AuraRadius: 0.6,
	}
}

func DefaultEmissiveCore() EmissiveCore {
	return EmissiveCore{
		Horizon:       color.Black,
		Disk:          color.New(255, 60, 248),
		HorizonRadius: 0.6,
		DiskInner:     0.35,
		DiskOuter:     1.5,
		PulseSpeed:    0.3,
	}
}

func DefaultWormhole() Wormhole {
	return Wormhole{
		Core:           color.Black,
		Border:         color.New(255, 140, 0),
		Cross:          color.New(255, 100, 100),
		InnerRadius:    0.7,
		BorderRadius:   0.9,
		CrossThickness: 0.1,
		CrossLength:    1.5,
		Spin:           0.5,
		Boost:          1.5,
	}
}

var defaults = map[string]func() Surface{
	"vertex_color":  func() Surface { return VertexColor{} },
	"rocky":         func() Surface { return DefaultRocky() },
	"gaseous":       func() Surface { return DefaultGaseous() },
	"frozen":        func() Surface { return DefaultFrozen() },
	"terran":        func() Surface { return DefaultTerran() },
	"oceanic":       func() Surface { return DefaultOceanic() },
	"metallic":      func() Surface { return DefaultMetallic() },
	"emissive_core": func() Surface { return DefaultEmissiveCore() },
	"wormhole":      func() Surface { return DefaultWormhole() },
}

// ByName returns the named surface with default parameters.
func ByName(name string) (Surface, bool) {
	f, ok := defaults[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names lists every surface identifier, sorted.
func Names() []string {
	names := make([]string, 0, len(defaults))
	for n := range defaults {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
