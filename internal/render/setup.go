package render

import (
	"fmt"

	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/scene"
	"planet-renderer/internal/shader"
	"planet-renderer/internal/texture"
)

// Setup is what a frame loop needs, built from a resolved config.
type Setup struct {
	Scene      *scene.Scene
	Dispatcher *shader.Dispatcher
	Options    Options
	Textures   int // images found under the assets directory
}

// Prepare validates cfg, loads the scene (or builds the default one),
// resolves the scene's samplers under cfg.AssetsDir and checks that every
// object can be shaded.
func Prepare(cfg config.Config) (*Setup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var s *scene.Scene
	if cfg.SceneFile != "" {
		var err error
		if s, err = scene.Load(cfg.SceneFile); err != nil {
			return nil, err
		}
	} else {
		s = scene.Default(*cfg.Stars, cfg.Seed)
	}
	if cfg.FOV > 0 {
		s.Projection.FOV = cfg.FOV
	}
	if cfg.Near > 0 {
		s.Projection.Near = cfg.Near
	}
	if cfg.Far > 0 {
		s.Projection.Far = cfg.Far
	}

	index := texture.BuildIndex(cfg.AssetsDir)
	cache := texture.NewCache(index, texture.ParseFilter(cfg.Filter))
	tex, normals, err := s.Samplers(cache)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Width:             cfg.Width,
		Height:            cfg.Height,
		BloomRadius:       *cfg.BloomRadius,
		BloomIntensity:    *cfg.BloomIntensity,
		EmissionIntensity: *cfg.EmissionIntensity,
	}
	if cfg.CullBackFaces {
		opts.Cull = raster.CullBack
	}

	d := shader.NewDispatcher(tex, normals)
	if err := New(opts, d).Validate(s); err != nil {
		return nil, fmt.Errorf("%w (textures are looked up in %s)", err, cfg.AssetsDir)
	}

	logging.Logger().Info("scene loaded",
		"scene", cfg.SceneFile,
		"objects", len(s.Objects),
		"textures", index.Len(),
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
	)
	return &Setup{Scene: s, Dispatcher: d, Options: opts, Textures: index.Len()}, nil
}
