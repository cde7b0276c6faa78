// Package color implements the 24-bit RGB value used on every plane of the
// framebuffer, with saturating arithmetic and photographic blend modes.
//
// Every operation keeps each channel in [0,255]; nothing wraps or panics.
package color

import (
	"fmt"
	"math"
)

// Color is an opaque 8-bit-per-channel RGB value.
type Color struct {
	R, G, B uint8
}

// Black is the zero value.
var Black = Color{}

// White is full intensity on every channel.
var White = Color{255, 255, 255}

// New returns the color with the given channels.
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromFloat builds a color from channels in [0,1]. Out-of-range input is clamped.
func FromFloat(r, g, b float64) Color {
	return Color{
		R: uint8(clampUnit(r) * 255),
		G: uint8(clampUnit(g) * 255),
		B: uint8(clampUnit(b) * 255),
	}
}

// FromHex unpacks a 0xRRGGBB value. Bits above 24 are ignored.
func FromHex(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
	}
}

// Hex packs the color as 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// IsBlack reports whether every channel is zero.
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Add is the per-channel saturating sum.
func (c Color) Add(o Color) Color {
	return Color{addSat(c.R, o.R), addSat(c.G, o.G), addSat(c.B, o.B)}
}

// Scale multiplies every channel by s and clamps to [0,255]. The fractional
// part is truncated. NaN scales to black.
func (c Color) Scale(s float64) Color {
	return Color{scaleSat(c.R, s), scaleSat(c.G, s), scaleSat(c.B, s)}
}

// Lerp interpolates towards o. t is clamped to [0,1] and each channel is rounded.
func (c Color) Lerp(o Color, t float64) Color {
	t = clampUnit(t)
	return Color{lerp8(c.R, o.R, t), lerp8(c.G, o.G, t), lerp8(c.B, o.B, t)}
}

// String formats the channels for logs and test failures.
func (c Color) String() string {
	return fmt.Sprintf("Color(r: %d, g: %d, b: %d)", c.R, c.G, c.B)
}

// RGBA implements image/color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func subSat(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func scaleSat(v uint8, s float64) uint8 {
	f := float64(v) * s
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

func lerp8(a, b uint8, t float64) uint8 {
	fa := float64(a)
	return uint8(math.Round(fa + (float64(b)-fa)*t))
}
