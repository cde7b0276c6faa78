package texture

import (
	"errors"
	"image"
	stdcolor "image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/image/bmp"

	"planet-renderer/internal/color"
)

// checker returns a 2×2 image: red, green / blue, white.
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, stdcolor.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, stdcolor.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, stdcolor.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, stdcolor.NRGBA{255, 255, 255, 255})
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestSampleNearest(t *testing.T) {
	tex := FromImage(checker())
	require.Equal(t, 2, tex.Width)

	assert.Equal(t, color.New(255, 0, 0), tex.Sample(0.1, 0.1))
	assert.Equal(t, color.New(0, 255, 0), tex.Sample(0.9, 0.1))
	assert.Equal(t, color.New(0, 0, 255), tex.Sample(0.1, 0.9))
	assert.Equal(t, color.White, tex.Sample(0.9, 0.9))
}

func TestSampleWrapsFractionalPart(t *testing.T) {
	tex := FromImage(checker())

	assert.Equal(t, tex.Sample(0.9, 0.1), tex.Sample(1.9, 0.1))
	assert.Equal(t, tex.Sample(0.9, 0.1), tex.Sample(-0.1, 0.1))
	assert.Equal(t, tex.Sample(0.1, 0.9), tex.Sample(0.1, -3.1))
	assert.Equal(t, tex.Sample(0, 0), tex.Sample(1, 1))
}

func TestSampleInvalidCoordinatesFallBackToOrigin(t *testing.T) {
	tex := FromImage(checker())
	origin := tex.Sample(0, 0)

	for _, uv := range [][2]float64{
		{math.NaN(), 0.9},
		{0.9, math.NaN()},
		{math.Inf(1), 0.5},
		{0.5, math.Inf(-1)},
	} {
		assert.Equal(t, origin, tex.Sample(uv[0], uv[1]), "uv %v", uv)
	}
}

func TestSampleEmptyTexture(t *testing.T) {
	var tex Texture
	assert.Equal(t, color.Black, tex.Sample(0.5, 0.5))
	var nm NormalMap
	assert.Equal(t, 1.0, nm.Sample(0.5, 0.5)[2])
}

func TestBilinearBlendsNeighbours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, stdcolor.NRGBA{0, 0, 0, 255})
	img.Set(1, 0, stdcolor.NRGBA{200, 100, 50, 255})
	tex := FromImage(img)
	tex.Filter = Bilinear

	assert.Equal(t, color.New(0, 0, 0), tex.Sample(0, 0))
	assert.Equal(t, color.New(100, 50, 25), tex.Sample(0.5, 0))
}

func TestParseFilter(t *testing.T) {
	assert.Equal(t, Bilinear, ParseFilter("bilinear"))
	assert.Equal(t, Nearest, ParseFilter("nearest"))
	assert.Equal(t, Nearest, ParseFilter("cubic"))
}

func TestNormalMapDecode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, stdcolor.NRGBA{128, 128, 255, 255})
	img.Set(1, 0, stdcolor.NRGBA{255, 128, 128, 255})
	nm := NormalMapFromImage(img)

	flat := nm.Sample(0.1, 0.5)
	assert.InDelta(t, 0, flat[0], 0.01)
	assert.InDelta(t, 0, flat[1], 0.01)
	assert.InDelta(t, 1, flat[2], 0.01)

	tilted := nm.Sample(0.9, 0.5)
	assert.InDelta(t, 1, tilted[0], 0.01)
	assert.InDelta(t, 1, tilted.Len(), 1e-9)
}

func TestLoadTextureFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "surface.png")
	writePNG(t, path, checker())

	tex, err := LoadTexture(path, Bilinear)
	require.NoError(t, err)
	assert.Equal(t, Bilinear, tex.Filter)
	assert.Equal(t, 2, tex.Height)

	_, err = LoadTexture(filepath.Join(dir, "missing.png"), Nearest)
	assert.Error(t, err)
}

// quadrants returns a 16×16 image split into red, green / blue, white blocks,
// large enough for lossy encoders to keep block centres intact.
func quadrants() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	src := checker()
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, src.At(x/8, y/8))
		}
	}
	return img
}

func encodeJPEG(w io.Writer, m image.Image) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: 100})
}

// encodeGIF writes m with an exact four-colour palette so no dithering occurs.
func encodeGIF(w io.Writer, m image.Image) error {
	pal := stdcolor.Palette{
		stdcolor.NRGBA{255, 0, 0, 255},
		stdcolor.NRGBA{0, 255, 0, 255},
		stdcolor.NRGBA{0, 0, 255, 255},
		stdcolor.NRGBA{255, 255, 255, 255},
	}
	b := m.Bounds()
	p := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.Set(x, y, m.At(x, y))
		}
	}
	return gif.Encode(w, p, nil)
}

func TestDecodeFileByExtension(t *testing.T) {
	tests := []struct {
		ext    string
		encode func(io.Writer, image.Image) error
		delta  float64
	}{
		{".png", png.Encode, 0},
		{".jpg", encodeJPEG, 24},
		{".jpeg", encodeJPEG, 24},
		{".gif", encodeGIF, 0},
		{".bmp", bmp.Encode, 0},
		{".webp", func(w io.Writer, m image.Image) error { return nativewebp.Encode(w, m, nil) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "surface"+tt.ext)
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, tt.encode(f, quadrants()))
			require.NoError(t, f.Close())

			tex, err := LoadTexture(path, Nearest)
			require.NoError(t, err)
			require.Equal(t, 16, tex.Width)
			require.Equal(t, 16, tex.Height)

			for _, c := range []struct {
				u, v float64
				want color.Color
			}{
				{0.25, 0.25, color.New(255, 0, 0)},
				{0.75, 0.25, color.New(0, 255, 0)},
				{0.25, 0.75, color.New(0, 0, 255)},
				{0.75, 0.75, color.White},
			} {
				got := tex.Sample(c.u, c.v)
				assert.InDelta(t, c.want.R, got.R, tt.delta, "uv (%v,%v)", c.u, c.v)
				assert.InDelta(t, c.want.G, got.G, tt.delta, "uv (%v,%v)", c.u, c.v)
				assert.InDelta(t, c.want.B, got.B, tt.delta, "uv (%v,%v)", c.u, c.v)
			}
		})
	}
}

func TestDecodeFileRejectsMismatchedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surface.jpg")
	writePNG(t, path, checker())
	_, err := DecodeFile(path)
	assert.ErrorContains(t, err, "surface.jpg")
}

func TestIndexPrefersEarlierExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writePNG(t, filepath.Join(dir, "sub", "Earth.png"), checker())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "earth.bmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	idx := BuildIndex(dir)
	assert.Equal(t, 1, idx.Len())

	path, ok := idx.ResolvePath(`textures\EARTH.jpg`)
	require.True(t, ok)
	assert.Equal(t, "Earth.png", filepath.Base(path))

	_, ok = idx.ResolvePath("notes")
	assert.False(t, ok)
}

func TestCacheLoadsOnceAndReportsMissing(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "earth.png"), checker())
	c := NewCache(BuildIndex(dir), Nearest)

	a, err := c.Texture("earth")
	require.NoError(t, err)
	b, err := c.Texture("earth")
	require.NoError(t, err)
	assert.Same(t, a, b)

	nm, err := c.NormalMap("earth")
	require.NoError(t, err)
	assert.Equal(t, 2, nm.Width)

	_, err = c.Texture("mars")
	assert.True(t, errors.Is(err, ErrNotFound))
}
