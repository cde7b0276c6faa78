package raster

import (
	"image"
	"math"

	"planet-renderer/internal/color"
)

// FrameBuffer owns the three per-pixel planes of a frame as flat row-major
// slices: color, depth (+Inf when empty, smaller wins) and emission.
//
// A frame runs Clear → depth-tested writes → Bloom → handoff. Writes outside
// the buffer are silently dropped. FrameBuffer is not safe for concurrent
// writes; parallel renderers serialize access or own one buffer each.
type FrameBuffer struct {
	Width    int
	Height   int
	Color    []color.Color
	Depth    []float64
	Emission []color.Color

	background color.Color
	sat        []int // summed-area scratch for Bloom, (W+1)*(H+1)*3
}

// NewFrameBuffer allocates a cleared buffer with a black background.
func NewFrameBuffer(w, h int) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * h
	fb := &FrameBuffer{
		Width:    w,
		Height:   h,
		Color:    make([]color.Color, n),
		Depth:    make([]float64, n),
		Emission: make([]color.Color, n),
	}
	fb.Clear()
	return fb
}

// SetBackground sets the color Clear fills the color plane with.
func (fb *FrameBuffer) SetBackground(c color.Color) {
	fb.background = c
}

// Clear resets color to the background, depth to +Inf and emission to black.
func (fb *FrameBuffer) Clear() {
	inf := math.Inf(1)
	for i := range fb.Color {
		fb.Color[i] = fb.background
		fb.Depth[i] = inf
		fb.Emission[i] = color.Black
	}
}

func (fb *FrameBuffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0, false
	}
	return y*fb.Width + x, true
}

// Write stores c at (x,y) if depth is nearer than the stored depth, updating
// color and depth together. It reports whether the write happened.
func (fb *FrameBuffer) Write(x, y int, depth float64, c color.Color) bool {
	i, ok := fb.index(x, y)
	if !ok || !(depth < fb.Depth[i]) {
		return false
	}
	fb.Color[i] = c
	fb.Depth[i] = depth
	return true
}

// WriteShaded is Write for a shaded fragment: on success the emission plane
// takes emission as well, so glow hidden behind a nearer surface is replaced
// rather than left to bleed through. Pass color.Black for no emission.
func (fb *FrameBuffer) WriteShaded(x, y int, depth float64, base, emission color.Color) bool {
	i, ok := fb.index(x, y)
	if !ok || !(depth < fb.Depth[i]) {
		return false
	}
	fb.Color[i] = base
	fb.Depth[i] = depth
	fb.Emission[i] = emission
	return true
}

// WriteEmissive is the depth-tested write targeting the emission plane.
func (fb *FrameBuffer) WriteEmissive(x, y int, depth float64, c color.Color) bool {
	i, ok := fb.index(x, y)
	if !ok || !(depth < fb.Depth[i]) {
		return false
	}
	fb.Emission[i] = c
	fb.Depth[i] = depth
	return true
}

// At returns the color at (x,y), or black outside the buffer.
func (fb *FrameBuffer) At(x, y int) color.Color {
	i, ok := fb.index(x, y)
	if !ok {
		return color.Black
	}
	return fb.Color[i]
}

// DepthAt returns the depth at (x,y), or +Inf outside the buffer.
func (fb *FrameBuffer) DepthAt(x, y int) float64 {
	i, ok := fb.index(x, y)
	if !ok {
		return math.Inf(1)
	}
	return fb.Depth[i]
}

// Pixels appends the color plane to dst as packed 0xRRGGBB values, row-major.
func (fb *FrameBuffer) Pixels(dst []uint32) []uint32 {
	for _, c := range fb.Color {
		dst = append(dst, c.Hex())
	}
	return dst
}

// CopyRGBA writes the color plane into pix as opaque RGBA bytes. pix must hold
// at least Width*Height*4 bytes.
func (fb *FrameBuffer) CopyRGBA(pix []byte) {
	for i, c := range fb.Color {
		o := i * 4
		pix[o] = c.R
		pix[o+1] = c.G
		pix[o+2] = c.B
		pix[o+3] = 255
	}
}

// Image converts the color plane to an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}
