package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrNotFound is returned when a texture name is not in the index.
var ErrNotFound = errors.New("texture: not found")

// Extensions lists the file types DecodeFile understands, in lookup priority.
var Extensions = []string{".png", ".jpg", ".jpeg", ".tga", ".bmp", ".webp", ".gif"}

// DecodeFile reads and decodes an image file, choosing the decoder by extension.
func DecodeFile(path string) (image.Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := decode(strings.ToLower(filepath.Ext(path)), bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// decode picks the decoder from the extension. The tga package registers an
// empty magic string that matches any input, so image.Decode would hand every
// file to it; the registry is only consulted for unknown extensions.
func decode(ext string, r io.Reader) (image.Image, error) {
	switch ext {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".gif":
		return gif.Decode(r)
	case ".tga":
		return tga.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".webp":
		return webp.Decode(r)
	default:
		img, _, err := image.Decode(r)
		return img, err
	}
}

// LoadTexture decodes a color texture from disk.
func LoadTexture(path string, filter Filter) (*Texture, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	t := FromImage(img)
	t.Filter = filter
	return t, nil
}

// LoadNormalMap decodes a tangent-space normal map from disk.
func LoadNormalMap(path string) (*NormalMap, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return NormalMapFromImage(img), nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha: draw and force opaque.
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 255
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
