package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planet-renderer/internal/config"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/shader"
)

func resolved(dir string) config.Config {
	var c config.Config
	c.Resolve(config.Flags{BaseDir: dir, Width: 40, Height: 30})
	return c
}

func TestPrepareDefaultScene(t *testing.T) {
	cfg := resolved(t.TempDir())
	cfg.CullBackFaces = true
	cfg.FOV = 60

	s, err := Prepare(cfg)
	require.NoError(t, err)
	assert.Len(t, s.Scene.Objects, 4)
	assert.Len(t, s.Scene.Skybox.Stars, 500)
	assert.Equal(t, 60.0, s.Scene.Projection.FOV)
	assert.Equal(t, raster.CullBack, s.Options.Cull)
	assert.Equal(t, 40, s.Options.Width)
	assert.Equal(t, 2, s.Options.BloomRadius)
	assert.Zero(t, s.Textures)
}

func TestPrepareReportsMissingTexture(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "sea.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte("objects:\n  - surface: oceanic\n"), 0o644))

	cfg := resolved(dir)
	cfg.SceneFile = scenePath
	_, err := Prepare(cfg)
	assert.True(t, errors.Is(err, shader.ErrMissingTexture), "got %v", err)
}

func TestPrepareRejectsInvalidConfig(t *testing.T) {
	cfg := resolved(t.TempDir())
	cfg.Filter = "cubic"
	_, err := Prepare(cfg)
	assert.True(t, errors.Is(err, config.ErrInvalid), "got %v", err)
}
