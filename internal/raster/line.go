package raster

import "planet-renderer/internal/color"

// DrawLine draws a Bresenham line between two pixels, endpoints included.
// It bypasses the depth test and is meant for overlays drawn after Bloom.
func (fb *FrameBuffer) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		if i, ok := fb.index(x0, y0); ok {
			fb.Color[i] = c
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
