package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir" toml:"base_dir"`
	SceneFile string `json:"scene" toml:"scene"` // empty renders the built-in scene
	AssetsDir string `json:"assets_dir" toml:"assets_dir"`
	OutputDir string `json:"output_dir" toml:"output_dir"`

	// Render settings
	Width         int     `json:"width" toml:"width"`
	Height        int     `json:"height" toml:"height"`
	Frames        int     `json:"frames" toml:"frames"`
	OrbitStep     float64 `json:"orbit_step" toml:"orbit_step"` // camera yaw per frame, degrees
	Workers       int     `json:"workers" toml:"workers"`
	Upscale       int     `json:"upscale" toml:"upscale"`
	Filter        string  `json:"filter" toml:"filter"` // texture filter: nearest or bilinear
	CullBackFaces bool    `json:"cull_back_faces" toml:"cull_back_faces"`

	// Projection overrides; zero keeps the scene's value.
	FOV  float64 `json:"fov" toml:"fov"`
	Near float64 `json:"near" toml:"near"`
	Far  float64 `json:"far" toml:"far"`

	// Zero is meaningful for these, so nil means unset.
	BloomRadius       *int     `json:"bloom_radius" toml:"bloom_radius"`
	BloomIntensity    *float64 `json:"bloom_intensity" toml:"bloom_intensity"`
	EmissionIntensity *float64 `json:"emission_intensity" toml:"emission_intensity"`
	Stars             *int     `json:"stars" toml:"stars"`
	Seed              int64    `json:"seed" toml:"seed"`
}

// Load reads a JSON or TOML (by .toml extension) config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	if c.SceneFile != "" && !filepath.IsAbs(c.SceneFile) {
		c.SceneFile = filepath.Join(c.BaseDir, c.SceneFile)
	}
	if c.AssetsDir == "" {
		c.AssetsDir = filepath.Join(c.BaseDir, "assets")
	} else if !filepath.IsAbs(c.AssetsDir) {
		c.AssetsDir = filepath.Join(c.BaseDir, c.AssetsDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "frames")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Frames <= 0 {
		c.Frames = 120
	}
	if c.OrbitStep == 0 {
		c.OrbitStep = 3
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Upscale <= 0 {
		c.Upscale = 1
	}
	if c.Filter == "" {
		c.Filter = "nearest"
	}
	if c.BloomRadius == nil {
		c.BloomRadius = ptr(2)
	}
	if c.BloomIntensity == nil {
		c.BloomIntensity = ptr(0.5)
	}
	if c.EmissionIntensity == nil {
		c.EmissionIntensity = ptr(1.0)
	}
	if c.Stars == nil {
		c.Stars = ptr(500)
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Validate checks a resolved config.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Width > 0 && c.Height > 0, "size %dx%d", c.Width, c.Height)
	check(c.Upscale >= 1 && c.Upscale <= 8, "upscale %d not in [1,8]", c.Upscale)
	check(c.Filter == "nearest" || c.Filter == "bilinear", "filter %q", c.Filter)
	check(c.BloomRadius == nil || *c.BloomRadius >= 0, "negative bloom radius")
	check(c.BloomIntensity == nil || *c.BloomIntensity >= 0, "negative bloom intensity")
	check(c.Stars == nil || *c.Stars >= 0, "negative star count")
	check(c.Near >= 0 && c.Far >= 0 && (c.Far == 0 || c.Far > c.Near), "near %g far %g", c.Near, c.Far)
	return errors.Join(errs...)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	SceneFile string
	OutputDir string
	Width     int
	Height    int
	Frames    int
	Workers   int
}

func ptr[T any](v T) *T { return &v }
