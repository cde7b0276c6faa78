package texture

import "planet-renderer/internal/color"

// bilinear filters the four texels around (u,v), wrapping at the edges.
// u and v must already be wrapped into [0,1).
func (t *Texture) bilinear(u, v float64) color.Color {
	w, h := t.Width, t.Height

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	// Four texels
	c00 := t.texels[y0*w+x0]
	c10 := t.texels[y0*w+x1]
	c01 := t.texels[y1*w+x0]
	c11 := t.texels[y1*w+x1]

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(c00.R)*w00 + float64(c10.R)*w10 + float64(c01.R)*w01 + float64(c11.R)*w11
	fg := float64(c00.G)*w00 + float64(c10.G)*w10 + float64(c01.G)*w01 + float64(c11.G)*w11
	fb := float64(c00.B)*w00 + float64(c10.B)*w10 + float64(c01.B)*w01 + float64(c11.B)*w11

	return color.New(uint8(fr+0.5), uint8(fg+0.5), uint8(fb+0.5))
}
