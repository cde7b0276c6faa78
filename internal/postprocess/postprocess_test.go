package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpscaleRepeatsPixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	src.Set(1, 0, color.NRGBA{0, 0, 255, 255})

	dst := Upscale(src, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), dst.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := color.NRGBA{255, 0, 0, 255}
			if x >= 3 {
				want = color.NRGBA{0, 0, 255, 255}
			}
			assert.Equal(t, want, dst.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}

	assert.Same(t, src, Upscale(src, 1))
}

func TestThumbnailKeepsAspect(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 800, 600))
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i-1] = 200
		src.Pix[i] = 255
	}

	th := Thumbnail(src, 200)
	assert.Equal(t, image.Rect(0, 0, 200, 150), th.Bounds())
	c := th.NRGBAAt(100, 75)
	assert.InDelta(t, 200, int(c.B), 1)
	assert.InDelta(t, 0, int(c.R), 1)

	tall := image.NewNRGBA(image.Rect(0, 0, 100, 400))
	assert.Equal(t, image.Rect(0, 0, 25, 100), Thumbnail(tall, 100).Bounds())

	small := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, Thumbnail(small, 64))
}
