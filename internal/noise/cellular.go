package noise

import "math"

// Cellular (Worley F1) noise: one jittered feature point per unit cell, value
// derived from the distance to the nearest point and remapped to [-1,1].

func cellular2(seed int64, x, y float64) float64 {
	cx, cy := math.Floor(x), math.Floor(y)
	best := math.Inf(1)
	for dy := -1.0; dy <= 1; dy++ {
		for dx := -1.0; dx <= 1; dx++ {
			ix, iy := int64(cx+dx), int64(cy+dy)
			h := hash(seed, ix, iy, 0)
			px := cx + dx + unit(h)
			py := cy + dy + unit(h>>21)
			d := (px-x)*(px-x) + (py-y)*(py-y)
			if d < best {
				best = d
			}
		}
	}
	return remap(math.Sqrt(best))
}

func cellular3(seed int64, x, y, z float64) float64 {
	cx, cy, cz := math.Floor(x), math.Floor(y), math.Floor(z)
	best := math.Inf(1)
	for dz := -1.0; dz <= 1; dz++ {
		for dy := -1.0; dy <= 1; dy++ {
			for dx := -1.0; dx <= 1; dx++ {
				h := hash(seed, int64(cx+dx), int64(cy+dy), int64(cz+dz))
				px := cx + dx + unit(h)
				py := cy + dy + unit(h>>21)
				pz := cz + dz + unit(h>>42)
				d := (px-x)*(px-x) + (py-y)*(py-y) + (pz-z)*(pz-z)
				if d < best {
					best = d
				}
			}
		}
	}
	return remap(math.Sqrt(best))
}

// remap takes an F1 distance (at most √3 for the 3×3×3 search) to [-1,1],
// with -1 on a feature point.
func remap(d float64) float64 {
	return math.Min(d, 1)*2 - 1
}

// hash mixes the lattice coordinates with splitmix64 finalisation.
func hash(seed, x, y, z int64) uint64 {
	h := uint64(seed)*0x9E3779B97F4A7C15 ^ uint64(x)*0xBF58476D1CE4E5B9 ^
		uint64(y)*0x94D049BB133111EB ^ uint64(z)*0xD6E8FEB86659FD93
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31
	return h
}

// unit maps the low 21 bits of h to [0,1).
func unit(h uint64) float64 {
	return float64(h&0x1FFFFF) / float64(1<<21)
}
