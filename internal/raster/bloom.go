package raster

import "planet-renderer/internal/color"

// Bloom blurs the emission plane with a box of the given radius, scales it by
// intensity and screen-blends it into the color plane. Neighbours outside the
// buffer count neither towards the sum nor the divisor, so edges are not
// darkened. The emission plane is cleared afterwards.
//
// An intensity of 0 leaves the color plane unchanged.
func (fb *FrameBuffer) Bloom(radius int, intensity float64) {
	if radius < 0 {
		radius = 0
	}
	w, h := fb.Width, fb.Height
	if w == 0 || h == 0 {
		return
	}
	fb.buildSAT()

	stride := (w + 1) * 3
	for y := 0; y < h; y++ {
		ya, yb := max(y-radius, 0), min(y+radius, h-1)+1
		for x := 0; x < w; x++ {
			xa, xb := max(x-radius, 0), min(x+radius, w-1)+1
			count := (xb - xa) * (yb - ya)

			var avg [3]int
			for ch := 0; ch < 3; ch++ {
				sum := fb.sat[yb*stride+xb*3+ch] - fb.sat[ya*stride+xb*3+ch] -
					fb.sat[yb*stride+xa*3+ch] + fb.sat[ya*stride+xa*3+ch]
				avg[ch] = sum / count
			}
			glow := color.New(uint8(avg[0]), uint8(avg[1]), uint8(avg[2])).Scale(intensity)

			i := y*w + x
			fb.Color[i] = fb.Color[i].BlendScreen(glow)
		}
	}

	for i := range fb.Emission {
		fb.Emission[i] = color.Black
	}
}

// buildSAT fills the summed-area table of the emission plane: entry (x,y)
// holds the per-channel sum over [0,x)×[0,y).
func (fb *FrameBuffer) buildSAT() {
	w, h := fb.Width, fb.Height
	stride := (w + 1) * 3
	n := stride * (h + 1)
	if cap(fb.sat) < n {
		fb.sat = make([]int, n)
	}
	fb.sat = fb.sat[:n]
	for i := 0; i < stride; i++ {
		fb.sat[i] = 0
	}

	for y := 1; y <= h; y++ {
		row := y * stride
		prev := (y - 1) * stride
		fb.sat[row], fb.sat[row+1], fb.sat[row+2] = 0, 0, 0
		var run [3]int
		for x := 1; x <= w; x++ {
			e := fb.Emission[(y-1)*w+x-1]
			run[0] += int(e.R)
			run[1] += int(e.G)
			run[2] += int(e.B)
			o := x * 3
			fb.sat[row+o] = fb.sat[prev+o] + run[0]
			fb.sat[row+o+1] = fb.sat[prev+o+1] + run[1]
			fb.sat[row+o+2] = fb.sat[prev+o+2] + run[2]
		}
	}
}
